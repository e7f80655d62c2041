package repository

import (
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MotorcycleRepository is the persistence port for serialized motorcycles.
type MotorcycleRepository interface {
	Create(m *entity.Motorcycle) error
	GetByID(id string) (*entity.Motorcycle, error)
	GetForUpdate(id string) (*entity.Motorcycle, error)
	UpdateStockQuantity(id string, quantity decimal.Decimal) error
	Update(m *entity.Motorcycle) error
	List(limit, offset int) ([]*entity.Motorcycle, error)
}
