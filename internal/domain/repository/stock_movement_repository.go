package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// StockMovementRepository is the persistence port for the stock audit trail.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// DeleteByInvoiceID drops the invoice's audit rows; reconciliation rewrites
	// them after reapplying stock.
	DeleteByInvoiceID(invoiceID string) error
	ListByInvoice(invoiceID string) ([]*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
