package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bank-auth-service/internal/api/dto"
	"github.com/spec-kit/bank-auth-service/internal/auth"
	"github.com/spec-kit/bank-auth-service/internal/service"
)

// PaymentsHandler exposes the payments namespace. Every route requires
// an authenticated customer session.
type PaymentsHandler struct {
	payments *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// CreateTransfer handles POST /api/payments/transfers.
func (h *PaymentsHandler) CreateTransfer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	payment, err := h.payments.CreateTransfer(c.Context(), principal.Customer, req.ToAccountNumber, req.AmountCents, req.Reference)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "transfer recorded",
		"transfer": dto.TransferResponse{
			ID:                payment.ID,
			FromAccountNumber: payment.FromAccountNumber,
			ToAccountNumber:   payment.ToAccountNumber,
			AmountCents:       payment.AmountCents,
			Reference:         payment.Reference,
			CreatedAt:         payment.CreatedAt,
		},
	})
}

// ListTransfers handles GET /api/payments/transfers.
func (h *PaymentsHandler) ListTransfers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	payments, err := h.payments.ListTransfers(c.Context(), principal.Customer.ID, limit, offset)
	if err != nil {
		return err
	}

	transfers := make([]dto.TransferResponse, 0, len(payments))
	for _, payment := range payments {
		transfers = append(transfers, dto.TransferResponse{
			ID:                payment.ID,
			FromAccountNumber: payment.FromAccountNumber,
			ToAccountNumber:   payment.ToAccountNumber,
			AmountCents:       payment.AmountCents,
			Reference:         payment.Reference,
			CreatedAt:         payment.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"message":   "ok",
		"transfers": transfers,
	})
}
