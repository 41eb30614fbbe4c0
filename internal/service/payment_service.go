package service

import (
	"context"

	"github.com/spec-kit/bank-auth-service/internal/domain"
	"github.com/spec-kit/bank-auth-service/internal/repository"
	"github.com/spec-kit/bank-auth-service/internal/validation"
	apperrors "github.com/spec-kit/bank-auth-service/pkg/util/errorutil"
)

// PaymentService records transfers for authenticated customers.
// Settlement is handled by an external system; this slice only captures
// the transfer intent.
type PaymentService struct {
	payments repository.PaymentRepository
}

// NewPaymentService builds the service.
func NewPaymentService(payments repository.PaymentRepository) *PaymentService {
	return &PaymentService{payments: payments}
}

// CreateTransfer validates and records a transfer from the customer's
// own account.
func (s *PaymentService) CreateTransfer(ctx context.Context, customer *domain.Customer, toAccountNumber string, amountCents int64, reference string) (*domain.Payment, error) {
	toAccountNumber = validation.Sanitize(toAccountNumber)

	var errs []string
	if !validation.ValidAccountNumber(toAccountNumber) {
		errs = append(errs, "toAccountNumber must be 10-12 digits")
	}
	if amountCents <= 0 {
		errs = append(errs, "amountCents must be positive")
	}
	if toAccountNumber == customer.AccountNumber {
		errs = append(errs, "cannot transfer to the same account")
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError("validation failed", errs)
	}

	payment := &domain.Payment{
		CustomerID:        customer.ID,
		FromAccountNumber: customer.AccountNumber,
		ToAccountNumber:   toAccountNumber,
		AmountCents:       amountCents,
		Reference:         validation.Sanitize(reference),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListTransfers returns the customer's transfers, newest first.
func (s *PaymentService) ListTransfers(ctx context.Context, customerID string, limit, offset int) ([]domain.Payment, error) {
	return s.payments.ListByCustomer(ctx, customerID, limit, offset)
}
