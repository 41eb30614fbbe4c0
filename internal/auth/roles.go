package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-auth-service/internal/domain"
)

// RequireCustomer ensures a customer session is authenticated.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Type != domain.PrincipalTypeCustomer || principal.Customer == nil {
			return fiber.NewError(http.StatusForbidden, "customer session required")
		}
		return c.Next()
	}
}

// RequireEmployeeRole ensures the employee principal has one of the
// allowed roles. With no roles listed, any employee passes.
func RequireEmployeeRole(allowed ...domain.EmployeeRole) fiber.Handler {
	allowedSet := make(map[domain.EmployeeRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Type != domain.PrincipalTypeEmployee || principal.Employee == nil {
			return fiber.NewError(http.StatusForbidden, "employee role required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Employee.Role]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
