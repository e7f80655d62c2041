package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// InvoiceRepository is the persistence port for invoices and their items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	Update(invoice *entity.Invoice) error
	// ReplaceItems rewrites the invoice's items wholesale (reconciliation).
	ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate locks the invoice row so concurrent reconciliations of the
	// same invoice serialize.
	GetForUpdate(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Invoice, error)
}
