package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/spec-kit/bank-auth-service/internal/domain"
)

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	payment.ID = fmt.Sprintf("pay-%d", len(r.payments)+1)
	copied := *payment
	r.payments = append(r.payments, &copied)
	return nil
}

func (r *fakePaymentRepo) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:            "cust-1",
		FullName:      "Jane Doe",
		Username:      "jane_doe",
		AccountNumber: "1234567890",
	}
}

func TestCreateTransfer(t *testing.T) {
	repo := &fakePaymentRepo{}
	svc := NewPaymentService(repo)
	ctx := context.Background()

	payment, err := svc.CreateTransfer(ctx, testCustomer(), "9999999999", 2500, "rent")
	if err != nil {
		t.Fatal(err)
	}
	if payment.FromAccountNumber != "1234567890" {
		t.Errorf("from = %q, want customer's own account", payment.FromAccountNumber)
	}
	if payment.AmountCents != 2500 {
		t.Errorf("amount = %d, want 2500", payment.AmountCents)
	}

	listed, err := svc.ListTransfers(ctx, "cust-1", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(listed))
	}
}

func TestCreateTransferValidation(t *testing.T) {
	svc := NewPaymentService(&fakePaymentRepo{})
	ctx := context.Background()

	if _, err := svc.CreateTransfer(ctx, testCustomer(), "bad", 100, ""); err == nil {
		t.Error("malformed destination account accepted")
	}
	if _, err := svc.CreateTransfer(ctx, testCustomer(), "9999999999", 0, ""); err == nil {
		t.Error("zero amount accepted")
	}
	if _, err := svc.CreateTransfer(ctx, testCustomer(), "1234567890", 100, ""); err == nil {
		t.Error("self transfer accepted")
	}
}
