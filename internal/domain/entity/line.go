package entity

import "github.com/shopspring/decimal"

// Line item kinds. A line points at exactly one catalog record; the kind is
// an explicit tag, never inferred from free text.
const (
	LineKindProduct    = "product"
	LineKindMotorcycle = "motorcycle"
)

// Currencies handled by the ledgers. Debt balances are tracked independently
// per currency and never converted.
const (
	CurrencyIQD = "IQD"
	CurrencyUSD = "USD"
)

// ValidLineKind reports whether s is a known line kind.
func ValidLineKind(s string) bool {
	return s == LineKindProduct || s == LineKindMotorcycle
}

// ValidCurrency reports whether s is a supported currency.
func ValidCurrency(s string) bool {
	return s == CurrencyIQD || s == CurrencyUSD
}

// Line is the shared shape of a draft, sale or invoice line: one catalog item
// with quantity, unit price and per-line discount/tax percentages.
type Line struct {
	Kind        string // product | motorcycle
	ItemID      string
	Name        string // catalog name snapshot at time of sale
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	DiscountPct decimal.Decimal // 0..100
	TaxRatePct  decimal.Decimal // 0..100
}
