package sales

import (
	"context"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

// InvoiceQueries read-only invoice access for the HTTP layer. Writes go
// through FinalizeDraftUseCase and ReconcileInvoiceUseCase only.
type InvoiceQueries struct {
	invoices  repository.InvoiceRepository
	movements repository.StockMovementRepository
}

// NewInvoiceQueries builds the query facade.
func NewInvoiceQueries(invoices repository.InvoiceRepository, movements repository.StockMovementRepository) *InvoiceQueries {
	return &InvoiceQueries{invoices: invoices, movements: movements}
}

// Get returns the invoice with its items.
func (q *InvoiceQueries) Get(ctx context.Context, id string) (*entity.Invoice, []*entity.InvoiceItem, error) {
	inv, err := q.invoices.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := q.invoices.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

// ListByCustomer pages a customer's invoices.
func (q *InvoiceQueries) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Invoice, error) {
	return q.invoices.ListByCustomer(customerID, limit, offset)
}

// Movements returns the stock audit rows one invoice produced.
func (q *InvoiceQueries) Movements(ctx context.Context, invoiceID string) ([]*entity.StockMovement, error) {
	inv, err := q.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return q.movements.ListByInvoice(invoiceID)
}
