package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bank-auth-service/internal/domain"
	apperrors "github.com/spec-kit/bank-auth-service/pkg/util/errorutil"
)

// CustomerFilter selects a customer by any combination of its unique
// fields. Supplied filters compose with AND: when both username and
// account number are given, a record must match both.
type CustomerFilter struct {
	Username      *string
	AccountNumber *string
	NationalID    *string
}

// Empty reports whether no filter field is set.
func (f CustomerFilter) Empty() bool {
	return f.Username == nil && f.AccountNumber == nil && f.NationalID == nil
}

// CustomerRepository defines persistence access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	FindOne(ctx context.Context, filter CustomerFilter) (*domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = "id, full_name, national_id, username, account_number, password_hash, created_at, updated_at"

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	customer.Username = strings.ToLower(customer.Username)

	const query = `
        INSERT INTO customers (id, full_name, national_id, username, account_number, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		customer.ID,
		customer.FullName,
		customer.NationalID,
		customer.Username,
		customer.AccountNumber,
		customer.PasswordHash,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers WHERE id=$1", customerColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *customerRepository) FindOne(ctx context.Context, filter CustomerFilter) (*domain.Customer, error) {
	if filter.Empty() {
		return nil, pgx.ErrNoRows
	}

	args := []any{}
	clauses := []string{}
	if filter.Username != nil {
		args = append(args, strings.ToLower(*filter.Username))
		clauses = append(clauses, fmt.Sprintf("LOWER(username)=$%d", len(args)))
	}
	if filter.AccountNumber != nil {
		args = append(args, *filter.AccountNumber)
		clauses = append(clauses, fmt.Sprintf("account_number=$%d", len(args)))
	}
	if filter.NationalID != nil {
		args = append(args, *filter.NationalID)
		clauses = append(clauses, fmt.Sprintf("national_id=$%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM customers WHERE %s",
		customerColumns, strings.Join(clauses, " AND "))
	return r.scanOne(r.pool.QueryRow(ctx, query, args...))
}

func (r *customerRepository) scanOne(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.NationalID,
		&customer.Username,
		&customer.AccountNumber,
		&customer.PasswordHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

// translateUniqueViolation converts SQLSTATE 23505 into a descriptive
// Conflict error. The service pre-checks duplicates for friendlier
// messages; this translation closes the race between check and insert.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "customers_username_lower_key":
		return apperrors.NewConflict("username already in use")
	case "customers_national_id_key":
		return apperrors.NewConflict("idNumber already registered")
	case "customers_account_number_key":
		return apperrors.NewConflict("accountNumber already registered")
	default:
		return apperrors.NewConflict("duplicate record")
	}
}
