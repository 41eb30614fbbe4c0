package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/bank-auth-service/internal/auth"
	"github.com/spec-kit/bank-auth-service/internal/config"
	"github.com/spec-kit/bank-auth-service/internal/domain"
	"github.com/spec-kit/bank-auth-service/internal/observability"
	"github.com/spec-kit/bank-auth-service/internal/repository"
	"github.com/spec-kit/bank-auth-service/internal/service"
	apperrors "github.com/spec-kit/bank-auth-service/pkg/util/errorutil"
)

type memCustomerRepo struct {
	customers []*domain.Customer
	nextID    int
}

func (r *memCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	for _, existing := range r.customers {
		if strings.EqualFold(existing.Username, customer.Username) {
			return apperrors.NewConflict("username already in use")
		}
		if existing.NationalID == customer.NationalID {
			return apperrors.NewConflict("idNumber already registered")
		}
		if existing.AccountNumber == customer.AccountNumber {
			return apperrors.NewConflict("accountNumber already registered")
		}
	}
	r.nextID++
	customer.ID = fmt.Sprintf("cust-%d", r.nextID)
	copied := *customer
	r.customers = append(r.customers, &copied)
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCustomerRepo) FindOne(_ context.Context, filter repository.CustomerFilter) (*domain.Customer, error) {
	if filter.Empty() {
		return nil, pgx.ErrNoRows
	}
	for _, c := range r.customers {
		if filter.Username != nil && !strings.EqualFold(c.Username, *filter.Username) {
			continue
		}
		if filter.AccountNumber != nil && c.AccountNumber != *filter.AccountNumber {
			continue
		}
		if filter.NationalID != nil && c.NationalID != *filter.NationalID {
			continue
		}
		copied := *c
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

type memEmployeeRepo struct {
	employees []*domain.Employee
}

func (r *memEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	employee.ID = "emp-" + employee.EmployeeID
	copied := *employee
	r.employees = append(r.employees, &copied)
	return nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeID == employeeID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memPaymentRepo struct {
	payments []*domain.Payment
}

func (r *memPaymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	payment.ID = fmt.Sprintf("pay-%d", len(r.payments)+1)
	copied := *payment
	r.payments = append(r.payments, &copied)
	return nil
}

func (r *memPaymentRepo) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			result = append(result, *p)
		}
	}
	return result, nil
}

type testEnv struct {
	app       *fiber.App
	customers *memCustomerRepo
	employees *memEmployeeRepo
	metrics   *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokenMgr, err := auth.NewTokenManager("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		CustomerTokenTTLHours: 168,
		EmployeeTokenTTLHours: 8,
		BcryptCost:            4,
	}}

	customers := &memCustomerRepo{}
	employees := &memEmployeeRepo{}
	payments := &memPaymentRepo{}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		CustomerRepo: customers,
		EmployeeRepo: employees,
		TokenManager: tokenMgr,
		LoginGuard:   auth.NewLoginGuard(nil, nil, 5, 0),
	})
	paymentService := service.NewPaymentService(payments)

	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, "*", 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("bank-auth-service", "test", nil, nil),
		Customers:      handlers.NewCustomersHandler(authService, true),
		Employees:      handlers.NewEmployeesHandler(authService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		AuthMiddleware: auth.NewMiddleware(tokenMgr, customers, employees),
	})

	return &testEnv{app: app, customers: customers, employees: employees, metrics: metrics}
}

func (env *testEnv) request(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	decoded := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded, string(raw)
}

func signupBody() map[string]any {
	return map[string]any{
		"fullName":      "Jane Doe",
		"idNumber":      "1234567890123",
		"username":      "jane_doe",
		"accountNumber": "1234567890",
		"password":      "s3cret",
	}
}

func TestSignupEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, body, raw := env.request(t, "POST", "/api/auth/signup", signupBody(), nil)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", status, raw)
	}
	if body["message"] == "" || body["token"] == "" {
		t.Errorf("missing message or token: %s", raw)
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user object: %s", raw)
	}
	if user["username"] != "jane_doe" || user["accountNumber"] != "1234567890" {
		t.Errorf("unexpected user fields: %v", user)
	}
	if strings.Contains(strings.ToLower(raw), "password") {
		t.Errorf("response leaks a password field: %s", raw)
	}
}

func TestSignupValidationEnvelope(t *testing.T) {
	env := newTestEnv(t)

	payload := signupBody()
	payload["password"] = "abc"
	payload["idNumber"] = "123"
	status, body, raw := env.request(t, "POST", "/api/auth/signup", payload, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, raw)
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected 2 itemized errors, got %v", body["errors"])
	}
	if len(env.customers.customers) != 0 {
		t.Error("invalid signup created a record")
	}
}

func TestErrorMiddlewareRecordsMetrics(t *testing.T) {
	env := newTestEnv(t)

	payload := signupBody()
	payload["password"] = "abc"
	if status, _, raw := env.request(t, "POST", "/api/auth/signup", payload, nil); status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, raw)
	}

	if got := env.metrics.ErrorCount("/api/auth/signup", "POST", "VALIDATION_FAILED"); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
	if got := env.metrics.ErrorCount("/api/auth/signup", "POST", "CONFLICT"); got != 0 {
		t.Errorf("unrelated code counted: %d", got)
	}
}

func TestSignupDuplicateEndpoint(t *testing.T) {
	env := newTestEnv(t)

	if status, _, raw := env.request(t, "POST", "/api/auth/signup", signupBody(), nil); status != http.StatusCreated {
		t.Fatalf("first signup failed: %d %s", status, raw)
	}
	status, body, raw := env.request(t, "POST", "/api/auth/signup", signupBody(), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d, want 400: %s", status, raw)
	}
	if body["message"] == "" {
		t.Errorf("missing message: %s", raw)
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, "POST", "/api/auth/signup", signupBody(), nil)

	status, body, raw := env.request(t, "POST", "/api/auth/login", map[string]any{
		"username": "jane_doe",
		"password": "s3cret",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, raw)
	}
	if body["token"] == "" {
		t.Errorf("missing token: %s", raw)
	}

	status, _, _ = env.request(t, "POST", "/api/auth/login", map[string]any{
		"username": "jane_doe",
		"password": "wrong",
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("wrong password status = %d, want 400", status)
	}
}

func TestCheckUserEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, "POST", "/api/auth/signup", signupBody(), nil)

	status, body, raw := env.request(t, "POST", "/api/auth/check-user", map[string]any{
		"username": "jane_doe",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, raw)
	}
	if body["exists"] != true {
		t.Errorf("exists = %v, want true", body["exists"])
	}
	if strings.Contains(strings.ToLower(raw), "password") {
		t.Errorf("check-user leaks a password field: %s", raw)
	}

	_, body, _ = env.request(t, "POST", "/api/auth/check-user", map[string]any{
		"username": "ghost_user",
	}, nil)
	if body["exists"] != false {
		t.Errorf("exists = %v, want false", body["exists"])
	}
}

func TestAuthTestEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, body, raw := env.request(t, "GET", "/api/auth/test", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, raw)
	}
	if body["secretConfigured"] != true {
		t.Errorf("secretConfigured = %v, want true", body["secretConfigured"])
	}
	if body["timestamp"] == "" {
		t.Errorf("missing timestamp: %s", raw)
	}
}

func TestEmployeeLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	hash, err := auth.HashPassword("hunter2", 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.employees.Create(context.Background(), &domain.Employee{
		EmployeeID:   "E1001",
		FullName:     "Bob Smith",
		Role:         domain.EmployeeRoleManager,
		Department:   "Retail",
		PasswordHash: hash,
	}); err != nil {
		t.Fatal(err)
	}

	status, body, raw := env.request(t, "POST", "/api/employee/auth/login", map[string]any{
		"employeeId": "E1001",
		"password":   "hunter2",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, raw)
	}
	employee, ok := body["employee"].(map[string]any)
	if !ok {
		t.Fatalf("missing employee object: %s", raw)
	}
	if employee["role"] != "MANAGER" || employee["department"] != "Retail" {
		t.Errorf("unexpected employee fields: %v", employee)
	}

	status, _, _ = env.request(t, "POST", "/api/employee/auth/login", map[string]any{
		"employeeId": "E1001",
		"password":   "wrong",
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("wrong password status = %d, want 400", status)
	}
}

func TestPaymentsRequireCustomerSession(t *testing.T) {
	env := newTestEnv(t)

	status, _, _ := env.request(t, "GET", "/api/payments/transfers", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", status)
	}

	_, body, _ := env.request(t, "POST", "/api/auth/signup", signupBody(), nil)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("signup returned no token")
	}
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	status, created, raw := env.request(t, "POST", "/api/payments/transfers", map[string]any{
		"toAccountNumber": "9999999999",
		"amountCents":     2500,
		"reference":       "rent",
	}, authHeader)
	if status != http.StatusCreated {
		t.Fatalf("create transfer status = %d, want 201: %s", status, raw)
	}
	transfer, ok := created["transfer"].(map[string]any)
	if !ok || transfer["fromAccountNumber"] != "1234567890" {
		t.Errorf("unexpected transfer payload: %s", raw)
	}

	status, listed, raw := env.request(t, "GET", "/api/payments/transfers", nil, authHeader)
	if status != http.StatusOK {
		t.Fatalf("list status = %d, want 200: %s", status, raw)
	}
	transfers, ok := listed["transfers"].([]any)
	if !ok || len(transfers) != 1 {
		t.Errorf("expected 1 transfer, got %s", raw)
	}
}

func TestEmployeeTokenRejectedOnPayments(t *testing.T) {
	env := newTestEnv(t)

	hash, err := auth.HashPassword("hunter2", 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.employees.Create(context.Background(), &domain.Employee{
		EmployeeID:   "E1001",
		FullName:     "Bob Smith",
		Role:         domain.EmployeeRoleTeller,
		Department:   "Operations",
		PasswordHash: hash,
	}); err != nil {
		t.Fatal(err)
	}

	_, body, _ := env.request(t, "POST", "/api/employee/auth/login", map[string]any{
		"employeeId": "E1001",
		"password":   "hunter2",
	}, nil)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("employee login returned no token")
	}

	status, _, _ := env.request(t, "GET", "/api/payments/transfers", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if status != http.StatusForbidden {
		t.Errorf("employee token on payments status = %d, want 403", status)
	}
}
