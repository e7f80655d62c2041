package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// Sale is the immutable record of a committed transaction. It is created only
// by draft finalization; reconciliation may replace its items as a unit but
// never deletes the record.
type Sale struct {
	ID            string
	Type          string // wholesale | retail
	CustomerID    *string
	Status        string
	Currency      string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	AmountDue     decimal.Decimal
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem mirrors DraftItem, owned by its Sale.
type SaleItem struct {
	ID     string
	SaleID string
	Line
	LineTotal decimal.Decimal
	SortOrder int
}
