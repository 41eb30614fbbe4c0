package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bank-auth-service/internal/auth"
	"github.com/spec-kit/bank-auth-service/internal/config"
	"github.com/spec-kit/bank-auth-service/internal/domain"
	"github.com/spec-kit/bank-auth-service/internal/repository"
	"github.com/spec-kit/bank-auth-service/internal/validation"
	apperrors "github.com/spec-kit/bank-auth-service/pkg/util/errorutil"
)

// AuthService coordinates signup, login and existence-check flows for
// both principal types.
type AuthService struct {
	customers  repository.CustomerRepository
	employees  repository.EmployeeRepository
	tokenMgr   *auth.TokenManager
	guard      *auth.LoginGuard
	bcryptCost int
	authCfg    config.AuthConfig
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	CustomerRepo repository.CustomerRepository
	EmployeeRepo repository.EmployeeRepository
	TokenManager *auth.TokenManager
	LoginGuard   *auth.LoginGuard
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		customers:  deps.CustomerRepo,
		employees:  deps.EmployeeRepo,
		tokenMgr:   deps.TokenManager,
		guard:      deps.LoginGuard,
		bcryptCost: cfg.Auth.BcryptCost,
		authCfg:    cfg.Auth,
	}
}

// SignupCustomer sanitizes and validates the payload, checks the three
// unique fields, hashes the password as an explicit pre-save step, and
// creates the record before issuing a session token.
func (s *AuthService) SignupCustomer(ctx context.Context, in validation.SignupInput) (*domain.Customer, string, error) {
	in = validation.SanitizeSignup(in)
	if errs := validation.ValidateSignup(in); len(errs) > 0 {
		return nil, "", apperrors.NewValidationError("validation failed", errs)
	}

	// Explicit pre-checks produce descriptive conflict messages; the
	// storage-level unique indexes remain the atomic backstop.
	if err := s.checkDuplicate(ctx, repository.CustomerFilter{Username: &in.Username}, "username already in use"); err != nil {
		return nil, "", err
	}
	if err := s.checkDuplicate(ctx, repository.CustomerFilter{NationalID: &in.NationalID}, "idNumber already registered"); err != nil {
		return nil, "", err
	}
	if err := s.checkDuplicate(ctx, repository.CustomerFilter{AccountNumber: &in.AccountNumber}, "accountNumber already registered"); err != nil {
		return nil, "", err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	customer := &domain.Customer{
		FullName:      in.FullName,
		NationalID:    in.NationalID,
		Username:      in.Username,
		AccountNumber: in.AccountNumber,
		PasswordHash:  hash,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(customer.ID, domain.PrincipalTypeCustomer, nil, s.authCfg.CustomerTokenTTL())
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

func (s *AuthService) checkDuplicate(ctx context.Context, filter repository.CustomerFilter, message string) error {
	_, err := s.customers.FindOne(ctx, filter)
	if err == nil {
		return apperrors.NewConflict(message)
	}
	if err != pgx.ErrNoRows {
		return err
	}
	return nil
}

// CustomerLoginInput identifies a customer by username and/or account
// number plus a password.
type CustomerLoginInput struct {
	Username      string
	AccountNumber string
	Password      string
}

// LoginCustomer authenticates a customer. When both identifiers are
// supplied they are both applied as lookup filters (an AND): a record
// must match both, which can yield invalid-credentials even when one
// identifier alone would match. This is the documented behavior of the
// API and is preserved deliberately.
func (s *AuthService) LoginCustomer(ctx context.Context, in CustomerLoginInput) (*domain.Customer, string, error) {
	in.Username = validation.Sanitize(in.Username)
	in.AccountNumber = validation.Sanitize(in.AccountNumber)

	if in.Password == "" || (in.Username == "" && in.AccountNumber == "") {
		return nil, "", apperrors.NewValidationError("validation failed",
			[]string{"password and username or accountNumber required"})
	}

	filter := repository.CustomerFilter{}
	if in.Username != "" {
		if !validation.ValidUsername(in.Username) {
			return nil, "", apperrors.NewValidationError("validation failed",
				[]string{"username must be 3-20 letters, digits or underscores"})
		}
		filter.Username = &in.Username
	}
	if in.AccountNumber != "" {
		if !validation.ValidAccountNumber(in.AccountNumber) {
			return nil, "", apperrors.NewValidationError("validation failed",
				[]string{"accountNumber must be 10-12 digits"})
		}
		filter.AccountNumber = &in.AccountNumber
	}

	guardKey := in.Username
	if guardKey == "" {
		guardKey = in.AccountNumber
	}
	if !s.guard.Allowed(ctx, guardKey) {
		return nil, "", apperrors.NewInvalidCredentials()
	}

	customer, err := s.customers.FindOne(ctx, filter)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.guard.RecordFailure(ctx, guardKey)
			return nil, "", apperrors.NewInvalidCredentials()
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(customer.PasswordHash, in.Password); err != nil {
		s.guard.RecordFailure(ctx, guardKey)
		return nil, "", apperrors.NewInvalidCredentials()
	}
	s.guard.RecordSuccess(ctx, guardKey)

	token, _, err := s.tokenMgr.GenerateToken(customer.ID, domain.PrincipalTypeCustomer, nil, s.authCfg.CustomerTokenTTL())
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

// LoginEmployee authenticates an employee by employee id and password
// and returns a role-bearing token.
func (s *AuthService) LoginEmployee(ctx context.Context, employeeID, password string) (*domain.Employee, string, error) {
	employeeID = validation.Sanitize(employeeID)
	if employeeID == "" || password == "" {
		return nil, "", apperrors.NewValidationError("validation failed",
			[]string{"employeeId and password required"})
	}

	if !s.guard.Allowed(ctx, employeeID) {
		return nil, "", apperrors.NewInvalidCredentials()
	}

	employee, err := s.employees.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.guard.RecordFailure(ctx, employeeID)
			return nil, "", apperrors.NewInvalidCredentials()
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		s.guard.RecordFailure(ctx, employeeID)
		return nil, "", apperrors.NewInvalidCredentials()
	}
	s.guard.RecordSuccess(ctx, employeeID)

	token, _, err := s.tokenMgr.GenerateToken(employee.ID, domain.PrincipalTypeEmployee, &employee.Role, s.authCfg.EmployeeTokenTTL())
	if err != nil {
		return nil, "", err
	}
	return employee, token, nil
}

// CheckCustomer reports whether a customer matching the identifiers
// exists, without requiring a password. This is an unauthenticated
// existence oracle and is a documented tradeoff of the API.
func (s *AuthService) CheckCustomer(ctx context.Context, username, accountNumber string) (*domain.Customer, error) {
	username = validation.Sanitize(username)
	accountNumber = validation.Sanitize(accountNumber)

	if username == "" && accountNumber == "" {
		return nil, apperrors.NewValidationError("validation failed",
			[]string{"username or accountNumber required"})
	}

	filter := repository.CustomerFilter{}
	if username != "" {
		filter.Username = &username
	}
	if accountNumber != "" {
		filter.AccountNumber = &accountNumber
	}

	customer, err := s.customers.FindOne(ctx, filter)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
