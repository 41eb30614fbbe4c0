package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-auth-service/internal/api/dto"
	"github.com/spec-kit/bank-auth-service/internal/service"
	"github.com/spec-kit/bank-auth-service/internal/validation"
)

// CustomersHandler exposes the customer auth endpoints under /api/auth.
type CustomersHandler struct {
	auth             *service.AuthService
	secretConfigured bool
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(authService *service.AuthService, secretConfigured bool) *CustomersHandler {
	return &CustomersHandler{auth: authService, secretConfigured: secretConfigured}
}

// Signup handles POST /api/auth/signup.
func (h *CustomersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	customer, token, err := h.auth.SignupCustomer(c.Context(), validation.SignupInput{
		FullName:      req.FullName,
		NationalID:    req.IDNumber,
		Username:      req.Username,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "account created",
		"user":    customer.PublicProfile(),
		"token":   token,
	})
}

// Login handles POST /api/auth/login.
func (h *CustomersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	customer, token, err := h.auth.LoginCustomer(c.Context(), service.CustomerLoginInput{
		Username:      req.Username,
		AccountNumber: req.AccountNumber,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"user":    customer.PublicProfile(),
		"token":   token,
	})
}

// Test handles GET /api/auth/test, a diagnostic endpoint.
func (h *CustomersHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":          "auth service reachable",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"secretConfigured": h.secretConfigured,
	})
}

// CheckUser handles POST /api/auth/check-user. It is an unauthenticated
// existence oracle: callers learn whether an account exists without a
// password. That is a known tradeoff of this API surface.
func (h *CustomersHandler) CheckUser(c *fiber.Ctx) error {
	var req dto.CheckUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	customer, err := h.auth.CheckCustomer(c.Context(), req.Username, req.AccountNumber)
	if err != nil {
		return err
	}
	if customer == nil {
		return c.JSON(fiber.Map{"exists": false})
	}
	return c.JSON(fiber.Map{
		"exists": true,
		"user":   customer.PublicProfile(),
	})
}
