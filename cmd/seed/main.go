// Command seed provisions employee accounts. Employees have no HTTP
// creation path; this is the administrative entry point.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/bank-auth-service/internal/auth"
	"github.com/spec-kit/bank-auth-service/internal/config"
	"github.com/spec-kit/bank-auth-service/internal/domain"
	"github.com/spec-kit/bank-auth-service/internal/observability"
	"github.com/spec-kit/bank-auth-service/internal/persistence"
	"github.com/spec-kit/bank-auth-service/internal/repository"
)

func main() {
	employeeID := flag.String("employee-id", "", "unique employee id")
	fullName := flag.String("full-name", "", "employee full name")
	role := flag.String("role", string(domain.EmployeeRoleTeller), "role: TELLER, MANAGER or ADMIN")
	department := flag.String("department", "Operations", "department name")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *employeeID == "" || *fullName == "" || *password == "" {
		log.Fatal("employee-id, full-name and password are required")
	}

	employeeRole, err := domain.ParseEmployeeRole(*role)
	if err != nil {
		log.Fatalf("invalid -role: %v (expected TELLER, MANAGER or ADMIN)", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	employee := &domain.Employee{
		EmployeeID:   *employeeID,
		FullName:     *fullName,
		Role:         employeeRole,
		Department:   *department,
		PasswordHash: hash,
	}

	repo := repository.NewEmployeeRepository(pg.PoolHandle())
	if err := repo.Create(ctx, employee); err != nil {
		logger.Fatal("failed to create employee", zap.Error(err))
	}

	logger.Info("employee created",
		zap.String("id", employee.ID),
		zap.String("employee_id", employee.EmployeeID),
		zap.String("role", string(employee.Role)),
	)
}
