package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer carries two independent running debt balances (IQD and USD) plus
// CurrentBalance, an IQD-scoped secondary figure used for display and overdue
// logic. Debts never go negative and are adjusted only through the customer
// ledger, never directly.
type Customer struct {
	ID              string
	Name            string
	Phone           string
	Address         string
	DebtIQD         decimal.Decimal
	DebtUSD         decimal.Decimal
	CurrentBalance  decimal.Decimal // IQD-coupled, moves with DebtIQD
	LastPaymentDate *time.Time
	DaysOverdue     int // derived, recomputed lazily
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasDebt reports whether the customer owes anything in either currency.
func (c *Customer) HasDebt() bool {
	return c.DebtIQD.GreaterThan(decimal.Zero) || c.DebtUSD.GreaterThan(decimal.Zero)
}
