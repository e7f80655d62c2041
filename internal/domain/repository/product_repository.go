package repository

import (
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository is the persistence port for catalog products.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate locks the product row; the stock ledger locks before any
	// quantity change.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStockQuantity(id string, quantity decimal.Decimal) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
