package dto

import (
	"time"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// UpdateProductRequest body for PUT /api/products/:id. Catalog fields only;
// stock is never writable here.
type UpdateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// ProductResponse a product in responses.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProductResponse maps the entity.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID: p.ID, SKU: p.SKU, Name: p.Name, Description: p.Description,
		Price: p.Price, Cost: p.Cost, TaxRate: p.TaxRate,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// CreateMotorcycleRequest body for POST /api/motorcycles. Price is in USD.
type CreateMotorcycleRequest struct {
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	Color         string          `json:"color,omitempty"`
	ChassisNumber string          `json:"chassis_number,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// UpdateMotorcycleRequest body for PUT /api/motorcycles/:id. Catalog fields
// only; stock is never writable here.
type UpdateMotorcycleRequest struct {
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	Color         string          `json:"color,omitempty"`
	ChassisNumber string          `json:"chassis_number,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

// MotorcycleResponse a motorcycle in responses.
type MotorcycleResponse struct {
	ID            string          `json:"id"`
	Brand         string          `json:"brand"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	Color         string          `json:"color,omitempty"`
	ChassisNumber string          `json:"chassis_number,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToMotorcycleResponse maps the entity.
func ToMotorcycleResponse(m *entity.Motorcycle) *MotorcycleResponse {
	if m == nil {
		return nil
	}
	return &MotorcycleResponse{
		ID: m.ID, Brand: m.Brand, Model: m.Model, Year: m.Year,
		Color: m.Color, ChassisNumber: m.ChassisNumber,
		Price: m.Price, StockQuantity: m.StockQuantity,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}
