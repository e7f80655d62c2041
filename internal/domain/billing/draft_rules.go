package billing

import (
	"fmt"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// draftTransitions is the allowed transition table of the draft lifecycle:
// CREATED → AUTOSAVING ⇄ READY → FINALIZING → FINALIZED, with CANCELLED
// reachable from any editable state. Terminal states have no exits.
var draftTransitions = map[string][]string{
	entity.DraftStatusCreated:    {entity.DraftStatusAutosaving, entity.DraftStatusReady, entity.DraftStatusFinalizing, entity.DraftStatusCancelled},
	entity.DraftStatusAutosaving: {entity.DraftStatusAutosaving, entity.DraftStatusReady, entity.DraftStatusFinalizing, entity.DraftStatusCancelled},
	entity.DraftStatusReady:      {entity.DraftStatusAutosaving, entity.DraftStatusReady, entity.DraftStatusFinalizing, entity.DraftStatusCancelled},
	entity.DraftStatusFinalizing: {entity.DraftStatusReady, entity.DraftStatusFinalized},
	entity.DraftStatusFinalized:  {},
	entity.DraftStatusCancelled:  {},
}

// CanTransition reports whether a draft may move from one status to another.
func CanTransition(from, to string) bool {
	for _, t := range draftTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CanEdit reports whether the draft still accepts mutations (autosave).
func CanEdit(d *entity.Draft) bool {
	switch d.Status {
	case entity.DraftStatusCreated, entity.DraftStatusAutosaving, entity.DraftStatusReady:
		return true
	}
	return false
}

// FinalizeViolations returns every rule the draft violates for finalization,
// not just the first: the UI needs the complete list. An empty slice means
// the draft can be finalized.
func FinalizeViolations(d *entity.Draft) []string {
	var violations []string

	switch d.Status {
	case entity.DraftStatusFinalized:
		violations = append(violations, "draft is already finalized")
	case entity.DraftStatusCancelled:
		violations = append(violations, "draft is cancelled")
	}

	if len(d.Items) == 0 {
		violations = append(violations, "draft must have at least one item")
	}
	if d.SaleType == entity.SaleTypeWholesale && d.CustomerID == nil {
		violations = append(violations, "Jumla sales require a customer")
	}
	for i, item := range d.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			violations = append(violations, fmt.Sprintf("item %d: quantity must be greater than zero", i+1))
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			violations = append(violations, fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
	}
	if len(d.Items) > 0 && !d.Total.GreaterThan(decimal.Zero) {
		violations = append(violations, "total must be greater than zero")
	}

	return violations
}
