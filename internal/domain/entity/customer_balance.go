package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerBalance is an append-only ledger row for a customer debt change.
// Invoice debts are positive, payments negative; the cached debt columns on
// Customer are recomputable by summing these rows per currency.
type CustomerBalance struct {
	ID          string
	CustomerID  string
	InvoiceID   *string
	AmountIQD   decimal.Decimal // signed
	AmountUSD   decimal.Decimal // signed
	Method      string          // cash, transfer, ...
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
