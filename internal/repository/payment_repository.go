package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bank-auth-service/internal/domain"
)

// PaymentRepository persists customer transfers.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates the repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO payments (id, customer_id, from_account_number, to_account_number, amount_cents, reference)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		payment.ID,
		payment.CustomerID,
		payment.FromAccountNumber,
		payment.ToAccountNumber,
		payment.AmountCents,
		payment.Reference,
	).Scan(&payment.CreatedAt)
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, customer_id, from_account_number, to_account_number, amount_cents, reference, created_at
        FROM payments WHERE customer_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.CustomerID,
			&payment.FromAccountNumber,
			&payment.ToAccountNumber,
			&payment.AmountCents,
			&payment.Reference,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, payment)
	}
	return result, rows.Err()
}
