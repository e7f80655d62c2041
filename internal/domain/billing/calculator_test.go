package billing_test

import (
	"testing"

	"github.com/babilsoft/babil-erp/internal/domain/billing"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name                           string
		qty, price, discount, tax, exp string
	}{
		{"plain", "2", "1000", "0", "0", "2000"},
		{"with discount", "2", "1000", "10", "0", "1800"},
		{"with tax", "2", "1000", "0", "5", "2100"},
		{"discount then tax", "2", "1000", "10", "5", "1890"},
		{"fractional qty", "1.5", "1000", "0", "0", "1500"},
		{"zero qty", "0", "1000", "10", "5", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.LineTotal(d(tt.qty), d(tt.price), d(tt.discount), d(tt.tax))
			assert.True(t, got.Equal(d(tt.exp)), "got %s, want %s", got, tt.exp)
		})
	}
}

func TestAggregateTotals(t *testing.T) {
	items := []entity.Line{
		{Quantity: d("2"), UnitPrice: d("1000"), DiscountPct: d("10"), TaxRatePct: d("5")},
		{Quantity: d("1"), UnitPrice: d("500"), DiscountPct: d("0"), TaxRatePct: d("0")},
	}

	totals := billing.AggregateTotals(items, decimal.Zero)

	// 2*1000*0.9 = 1800, plus 500 -> 2300
	require.True(t, totals.Subtotal.Equal(d("2300")), "subtotal: %s", totals.Subtotal)
	// tax only on the first line: 1800 * 5% = 90
	require.True(t, totals.TaxAmount.Equal(d("90")), "tax: %s", totals.TaxAmount)
	require.True(t, totals.Total.Equal(d("2390")), "total: %s", totals.Total)
}

func TestAggregateTotals_InvoiceDiscount(t *testing.T) {
	items := []entity.Line{
		{Quantity: d("1"), UnitPrice: d("1000"), DiscountPct: d("0"), TaxRatePct: d("10")},
	}

	totals := billing.AggregateTotals(items, d("20"))

	// subtotal stays pre-invoice-discount; tax applies after it
	assert.True(t, totals.Subtotal.Equal(d("1000")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(d("80")), "tax: %s", totals.TaxAmount) // 800 * 10%
	assert.True(t, totals.Total.Equal(d("880")), "total: %s", totals.Total)
}

// Totals must not depend on the order lines arrive in.
func TestAggregateTotals_OrderIndependent(t *testing.T) {
	a := entity.Line{Quantity: d("3"), UnitPrice: d("333.33"), DiscountPct: d("7"), TaxRatePct: d("5")}
	b := entity.Line{Quantity: d("1.25"), UnitPrice: d("1999.99"), DiscountPct: d("0"), TaxRatePct: d("19")}
	c := entity.Line{Quantity: d("10"), UnitPrice: d("12.5"), DiscountPct: d("50"), TaxRatePct: d("0")}

	t1 := billing.AggregateTotals([]entity.Line{a, b, c}, d("3"))
	t2 := billing.AggregateTotals([]entity.Line{c, a, b}, d("3"))
	t3 := billing.AggregateTotals([]entity.Line{b, c, a}, d("3"))

	assert.True(t, t1.Total.Equal(t2.Total) && t2.Total.Equal(t3.Total))
	assert.True(t, t1.TaxAmount.Equal(t2.TaxAmount) && t2.TaxAmount.Equal(t3.TaxAmount))
	assert.True(t, t1.Subtotal.Equal(t2.Subtotal) && t2.Subtotal.Equal(t3.Subtotal))
}

func TestAggregateTotals_Empty(t *testing.T) {
	totals := billing.AggregateTotals(nil, decimal.Zero)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}
