package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/babilsoft/babil-erp/internal/application/auth"
	"github.com/babilsoft/babil-erp/internal/application/catalog"
	"github.com/babilsoft/babil-erp/internal/application/customers"
	"github.com/babilsoft/babil-erp/internal/application/sales"
	"github.com/babilsoft/babil-erp/internal/infrastructure/postgres"
	httpRouter "github.com/babilsoft/babil-erp/internal/interfaces/http"
	"github.com/babilsoft/babil-erp/pkg/config"
	"github.com/babilsoft/babil-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	motorcycleRepo := postgres.NewMotorcycleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	balanceRepo := postgres.NewCustomerBalanceRepository(pool)
	draftRepo := postgres.NewDraftRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := sales.NewStockLedger(log)
	customerLedger := sales.NewCustomerLedger(log)

	draftUC := sales.NewDraftUseCase(txRunner, draftRepo, productRepo, motorcycleRepo, customerRepo, log)
	finalizeUC := sales.NewFinalizeDraftUseCase(txRunner, stockLedger, customerLedger, log)
	reconcileUC := sales.NewReconcileInvoiceUseCase(txRunner, stockLedger, customerLedger, log)
	paymentUC := sales.NewRecordPaymentUseCase(txRunner, customerLedger, log)
	invoiceQueries := sales.NewInvoiceQueries(invoiceRepo, movementRepo)

	customerUC := customers.NewCustomerUseCase(customerRepo, balanceRepo)
	catalogUC := catalog.NewCatalogUseCase(productRepo, motorcycleRepo, movementRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		DraftUC:        draftUC,
		FinalizeUC:     finalizeUC,
		ReconcileUC:    reconcileUC,
		PaymentUC:      paymentUC,
		InvoiceQueries: invoiceQueries,
		CustomerUC:     customerUC,
		CatalogUC:      catalogUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
