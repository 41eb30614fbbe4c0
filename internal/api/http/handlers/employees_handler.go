package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-auth-service/internal/api/dto"
	"github.com/spec-kit/bank-auth-service/internal/service"
)

// EmployeesHandler exposes employee auth endpoints under
// /api/employee/auth.
type EmployeesHandler struct {
	auth *service.AuthService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(authService *service.AuthService) *EmployeesHandler {
	return &EmployeesHandler{auth: authService}
}

// Login handles POST /api/employee/auth/login.
func (h *EmployeesHandler) Login(c *fiber.Ctx) error {
	var req dto.EmployeeLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	employee, token, err := h.auth.LoginEmployee(c.Context(), req.EmployeeID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"employee": fiber.Map{
			"id":         employee.ID,
			"employeeId": employee.EmployeeID,
			"fullName":   employee.FullName,
			"role":       employee.Role,
			"department": employee.Department,
		},
		"token": token,
	})
}
