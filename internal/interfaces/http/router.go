package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/babilsoft/babil-erp/internal/application/auth"
	"github.com/babilsoft/babil-erp/internal/application/catalog"
	"github.com/babilsoft/babil-erp/internal/application/customers"
	"github.com/babilsoft/babil-erp/internal/application/sales"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	DraftUC        *sales.DraftUseCase
	FinalizeUC     *sales.FinalizeDraftUseCase
	ReconcileUC    *sales.ReconcileInvoiceUseCase
	PaymentUC      *sales.RecordPaymentUseCase
	InvoiceQueries *sales.InvoiceQueries
	CustomerUC     *customers.CustomerUseCase
	CatalogUC      *catalog.CatalogUseCase
	JWTSecret      string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Drafts: the mutable order stage
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC, deps.FinalizeUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/", draftHandler.List)
	drafts.Get("/:id", draftHandler.GetByID)
	drafts.Put("/:id", draftHandler.Update)
	drafts.Post("/:id/cancel", draftHandler.Cancel)
	drafts.Post("/:id/finalize", draftHandler.Finalize)

	// Invoices: reads and reconciliation
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceQueries, deps.ReconcileUC)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/movements", invoiceHandler.Movements)
	invoices.Put("/:id", invoiceHandler.Reconcile)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)

	// Customers and their debt ledger
	custGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.InvoiceQueries)
	custGroup.Post("/", customerHandler.Create)
	custGroup.Get("/", customerHandler.List)
	custGroup.Get("/debtors", customerHandler.Debtors)
	custGroup.Get("/:id", customerHandler.GetByID)
	custGroup.Put("/:id", customerHandler.Update)
	custGroup.Get("/:id/balances", customerHandler.Balances)
	custGroup.Get("/:id/invoices", customerHandler.Invoices)

	// Catalog
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/movements", productHandler.Movements)

	motorcycles := protected.Group("/motorcycles", RequireRole("admin", "seller"))
	motorcycleHandler := NewMotorcycleHandler(deps.CatalogUC)
	motorcycles.Post("/", motorcycleHandler.Create)
	motorcycles.Get("/", motorcycleHandler.List)
	motorcycles.Get("/:id", motorcycleHandler.GetByID)
	motorcycles.Put("/:id", motorcycleHandler.Update)
}
