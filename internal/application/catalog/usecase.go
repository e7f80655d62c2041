package catalog

import (
	"time"

	"github.com/babilsoft/babil-erp/internal/application/dto"
	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogUseCase product and motorcycle catalog management. Stock quantities
// set here are the opening balances; once sales exist only the stock ledger
// writes them.
type CatalogUseCase struct {
	products    repository.ProductRepository
	motorcycles repository.MotorcycleRepository
	movements   repository.StockMovementRepository
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(
	products repository.ProductRepository,
	motorcycles repository.MotorcycleRepository,
	movements repository.StockMovementRepository,
) *CatalogUseCase {
	return &CatalogUseCase{products: products, motorcycles: motorcycles, movements: movements}
}

// CreateProduct registers a product priced in IQD.
func (uc *CatalogUseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Cost:          in.Cost,
		TaxRate:       in.TaxRate,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(p), nil
}

// UpdateProduct changes the product's catalog fields. Stock is untouched;
// only the stock ledger writes it.
func (uc *CatalogUseCase) UpdateProduct(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.SKU = in.SKU
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Cost = in.Cost
	p.TaxRate = in.TaxRate
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(p), nil
}

// GetProduct returns one product.
func (uc *CatalogUseCase) GetProduct(id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(p), nil
}

// ListProducts pages the product catalog.
func (uc *CatalogUseCase) ListProducts(limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	ps, err := uc.products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// CreateMotorcycle registers a motorcycle priced in USD.
func (uc *CatalogUseCase) CreateMotorcycle(in dto.CreateMotorcycleRequest) (*dto.MotorcycleResponse, error) {
	if in.Brand == "" || in.Model == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.Motorcycle{
		ID:            uuid.New().String(),
		Brand:         in.Brand,
		Model:         in.Model,
		Year:          in.Year,
		Color:         in.Color,
		ChassisNumber: in.ChassisNumber,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.motorcycles.Create(m); err != nil {
		return nil, err
	}
	return dto.ToMotorcycleResponse(m), nil
}

// UpdateMotorcycle changes the motorcycle's catalog fields. Stock is
// untouched; only the stock ledger writes it.
func (uc *CatalogUseCase) UpdateMotorcycle(id string, in dto.UpdateMotorcycleRequest) (*dto.MotorcycleResponse, error) {
	if in.Brand == "" || in.Model == "" || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.motorcycles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Brand = in.Brand
	m.Model = in.Model
	m.Year = in.Year
	m.Color = in.Color
	m.ChassisNumber = in.ChassisNumber
	m.Price = in.Price
	m.UpdatedAt = time.Now()
	if err := uc.motorcycles.Update(m); err != nil {
		return nil, err
	}
	return dto.ToMotorcycleResponse(m), nil
}

// GetMotorcycle returns one motorcycle.
func (uc *CatalogUseCase) GetMotorcycle(id string) (*dto.MotorcycleResponse, error) {
	m, err := uc.motorcycles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToMotorcycleResponse(m), nil
}

// ListMotorcycles pages the motorcycle catalog.
func (uc *CatalogUseCase) ListMotorcycles(limit, offset int) ([]*dto.MotorcycleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	ms, err := uc.motorcycles.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MotorcycleResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.ToMotorcycleResponse(m))
	}
	return out, nil
}

// ProductMovements pages the audit trail of one product's stock changes.
func (uc *CatalogUseCase) ProductMovements(productID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	p, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	ms, err := uc.movements.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.ToStockMovementResponse(m))
	}
	return out, nil
}
