package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item priced in IQD. StockQuantity is the single
// current balance; once a sale exists only the stock ledger writes it.
type Product struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	TaxRate       decimal.Decimal // percentage, 0..100
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
