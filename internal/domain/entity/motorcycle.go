package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motorcycle is a serialized catalog item priced in USD. Unlike products,
// motorcycle stock changes do not produce movement audit rows; only
// StockQuantity is updated.
type Motorcycle struct {
	ID            string
	Brand         string
	Model         string
	Year          int
	Color         string
	ChassisNumber string
	Price         decimal.Decimal // USD
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
