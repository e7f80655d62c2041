package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// SaleRepository is the persistence port for sales and their items.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// Update persists the sale header (totals propagated by reconciliation).
	Update(sale *entity.Sale) error
	// ReplaceItems rewrites the sale's items wholesale.
	ReplaceItems(saleID string, items []*entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
}
