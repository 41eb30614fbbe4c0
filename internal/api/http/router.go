package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/bank-auth-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Customers      *handlers.CustomersHandler
	Employees      *handlers.EmployeesHandler
	Payments       *handlers.PaymentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	customerAuth := app.Group("/api/auth")
	customerAuth.Post("/signup", cfg.Customers.Signup)
	customerAuth.Post("/login", cfg.Customers.Login)
	customerAuth.Get("/test", cfg.Customers.Test)
	customerAuth.Post("/check-user", cfg.Customers.CheckUser)

	employeeAuth := app.Group("/api/employee/auth")
	employeeAuth.Post("/login", cfg.Employees.Login)

	payments := app.Group("/api/payments", cfg.AuthMiddleware.Handle, auth.RequireCustomer())
	payments.Post("/transfers", cfg.Payments.CreateTransfer)
	payments.Get("/transfers", cfg.Payments.ListTransfers)
}
