package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bank-auth-service/internal/domain"
	apperrors "github.com/spec-kit/bank-auth-service/pkg/util/errorutil"
)

// EmployeeRepository handles persistence for employees. The HTTP surface
// only reads employees; Create exists for the seed command.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO employees (id, employee_id, full_name, role, department, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.ID,
		employee.EmployeeID,
		employee.FullName,
		employee.Role,
		employee.Department,
		employee.PasswordHash,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflict("employeeId already registered")
		}
		return err
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	const query = `
        SELECT id, employee_id, full_name, role, department, password_hash, created_at, updated_at
        FROM employees WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	const query = `
        SELECT id, employee_id, full_name, role, department, password_hash, created_at, updated_at
        FROM employees WHERE employee_id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, employeeID))
}

func (r *employeeRepository) scanOne(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.EmployeeID,
		&employee.FullName,
		&employee.Role,
		&employee.Department,
		&employee.PasswordHash,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}
