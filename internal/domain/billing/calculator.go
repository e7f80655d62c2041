package billing

import (
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are the aggregate monetary figures of a draft or invoice.
type Totals struct {
	Subtotal  decimal.Decimal // sum of line subtotals after their own discounts
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineTotal computes a single line's total:
// (quantity*unitPrice) * (1 - discountPct/100) * (1 + taxPct/100).
func LineTotal(quantity, unitPrice, discountPct, taxPct decimal.Decimal) decimal.Decimal {
	base := quantity.Mul(unitPrice)
	discounted := base.Mul(decimal.NewFromInt(1).Sub(discountPct.Div(hundred)))
	return discounted.Mul(decimal.NewFromInt(1).Add(taxPct.Div(hundred)))
}

// lineSubtotal is the line amount after its own discount, before tax.
func lineSubtotal(l entity.Line) decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Mul(decimal.NewFromInt(1).Sub(l.DiscountPct.Div(hundred)))
}

// AggregateTotals computes invoice-level totals from the lines: subtotal is
// the sum of per-line subtotals, the invoice discount is applied on top, and
// tax is summed per line over the post-discount amounts. Pure and exact
// (decimal arithmetic), so the result is independent of line order.
func AggregateTotals(items []entity.Line, invoiceDiscountPct decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range items {
		subtotal = subtotal.Add(lineSubtotal(l))
	}

	discountFactor := decimal.NewFromInt(1).Sub(invoiceDiscountPct.Div(hundred))
	discounted := subtotal.Mul(discountFactor)

	tax := decimal.Zero
	for _, l := range items {
		postDiscount := lineSubtotal(l).Mul(discountFactor)
		tax = tax.Add(postDiscount.Mul(l.TaxRatePct.Div(hundred)))
	}

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     discounted.Add(tax),
	}
}
