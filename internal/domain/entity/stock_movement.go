package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types.
const (
	MovementTypeSale   = "sale"   // deduction from a finalized invoice
	MovementTypeAdjust = "adjust" // manual correction
)

// StockMovement is an append-only audit row for a net product stock change
// tied to one invoice: one row per distinct product, not per raw line item.
type StockMovement struct {
	ID           string
	ProductID    string
	InvoiceID    string
	Type         string
	Quantity     decimal.Decimal // signed net delta (negative for sales)
	BalanceAfter decimal.Decimal
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
}
