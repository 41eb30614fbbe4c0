package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bank-auth-service/internal/api/http"
	"github.com/spec-kit/bank-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/bank-auth-service/internal/auth"
	"github.com/spec-kit/bank-auth-service/internal/config"
	"github.com/spec-kit/bank-auth-service/internal/observability"
	"github.com/spec-kit/bank-auth-service/internal/persistence"
	"github.com/spec-kit/bank-auth-service/internal/repository"
	"github.com/spec-kit/bank-auth-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokenMgr, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	loginGuard := auth.NewLoginGuard(redis.Client, logger, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow())

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		CustomerRepo: customerRepo,
		EmployeeRepo: employeeRepo,
		TokenManager: tokenMgr,
		LoginGuard:   loginGuard,
	})
	paymentService := service.NewPaymentService(paymentRepo)
	authMiddleware := auth.NewMiddleware(tokenMgr, customerRepo, employeeRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.CORSAllowOrigins, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Customers:      handlers.NewCustomersHandler(authService, cfg.Auth.JWTSecret != ""),
		Employees:      handlers.NewEmployeesHandler(authService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
