package billing_test

import (
	"testing"

	"github.com/babilsoft/babil-erp/internal/domain/billing"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithItems(status, saleType string, customerID *string, items ...*entity.DraftItem) *entity.Draft {
	dr := &entity.Draft{
		SaleType:   saleType,
		Status:     status,
		CustomerID: customerID,
		Items:      items,
		Currency:   entity.CurrencyIQD,
	}
	for _, it := range dr.Items {
		dr.Total = dr.Total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return dr
}

func item(qty, price string) *entity.DraftItem {
	return &entity.DraftItem{Line: entity.Line{
		Kind: entity.LineKindProduct, ItemID: "p1", Quantity: d(qty), UnitPrice: d(price),
	}}
}

func TestFinalizeViolations_EmptyDraft(t *testing.T) {
	dr := draftWithItems(entity.DraftStatusReady, entity.SaleTypeRetail, nil)

	violations := billing.FinalizeViolations(dr)

	require.Len(t, violations, 1)
	assert.Equal(t, "draft must have at least one item", violations[0])
}

func TestFinalizeViolations_WholesaleWithoutCustomer(t *testing.T) {
	dr := draftWithItems(entity.DraftStatusReady, entity.SaleTypeWholesale, nil, item("2", "1000"))

	violations := billing.FinalizeViolations(dr)

	require.Len(t, violations, 1)
	assert.Equal(t, "Jumla sales require a customer", violations[0])
}

func TestFinalizeViolations_CollectsAll(t *testing.T) {
	// wholesale without customer, zero quantity and negative price: every
	// violated rule must be reported, not just the first.
	dr := draftWithItems(entity.DraftStatusReady, entity.SaleTypeWholesale, nil,
		item("0", "1000"), item("1", "-5"))

	violations := billing.FinalizeViolations(dr)

	assert.Contains(t, violations, "Jumla sales require a customer")
	assert.Contains(t, violations, "item 1: quantity must be greater than zero")
	assert.Contains(t, violations, "item 2: unit price cannot be negative")
	assert.GreaterOrEqual(t, len(violations), 3)
}

func TestFinalizeViolations_TerminalStatuses(t *testing.T) {
	cust := "c1"
	for _, status := range []string{entity.DraftStatusFinalized, entity.DraftStatusCancelled} {
		dr := draftWithItems(status, entity.SaleTypeWholesale, &cust, item("1", "1000"))
		violations := billing.FinalizeViolations(dr)
		require.NotEmpty(t, violations, "status %s must block finalization", status)
	}
}

func TestFinalizeViolations_ValidDraft(t *testing.T) {
	cust := "c1"
	dr := draftWithItems(entity.DraftStatusReady, entity.SaleTypeWholesale, &cust, item("2", "750"))
	assert.Empty(t, billing.FinalizeViolations(dr))
}

func TestCanEdit(t *testing.T) {
	editable := []string{entity.DraftStatusCreated, entity.DraftStatusAutosaving, entity.DraftStatusReady}
	for _, s := range editable {
		assert.True(t, billing.CanEdit(&entity.Draft{Status: s}), s)
	}
	for _, s := range []string{entity.DraftStatusFinalizing, entity.DraftStatusFinalized, entity.DraftStatusCancelled} {
		assert.False(t, billing.CanEdit(&entity.Draft{Status: s}), s)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, billing.CanTransition(entity.DraftStatusCreated, entity.DraftStatusAutosaving))
	assert.True(t, billing.CanTransition(entity.DraftStatusReady, entity.DraftStatusFinalizing))
	assert.True(t, billing.CanTransition(entity.DraftStatusFinalizing, entity.DraftStatusFinalized))
	// FINALIZING may fall back to READY when stock apply fails
	assert.True(t, billing.CanTransition(entity.DraftStatusFinalizing, entity.DraftStatusReady))

	// terminal states have no exits
	for _, from := range []string{entity.DraftStatusFinalized, entity.DraftStatusCancelled} {
		for _, to := range []string{entity.DraftStatusCreated, entity.DraftStatusAutosaving,
			entity.DraftStatusReady, entity.DraftStatusFinalizing, entity.DraftStatusFinalized, entity.DraftStatusCancelled} {
			assert.False(t, billing.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
