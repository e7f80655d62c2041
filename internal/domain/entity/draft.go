package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft lifecycle statuses. FINALIZED and CANCELLED are terminal; FINALIZING
// is a soft lock held while a finalization transaction is in flight.
const (
	DraftStatusCreated    = "CREATED"
	DraftStatusAutosaving = "AUTOSAVING"
	DraftStatusReady      = "READY"
	DraftStatusFinalizing = "FINALIZING"
	DraftStatusFinalized  = "FINALIZED"
	DraftStatusCancelled  = "CANCELLED"
)

// Sale types: jumla (wholesale, requires a customer) and mufrad (retail,
// customer optional).
const (
	SaleTypeWholesale = "wholesale"
	SaleTypeRetail    = "retail"
)

// Draft is a mutable work-in-progress order. It is the only mutable stage of
// the order lifecycle; finalizing converts it into an immutable Sale+Invoice.
type Draft struct {
	ID            string
	SaleType      string // wholesale | retail
	Status        string
	CustomerID    *string
	Currency      string // IQD | USD
	Items         []*DraftItem
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Discount      decimal.Decimal // invoice-level discount percentage
	Total         decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	Notes         string
	CreatedBy     string
	SaleID        *string // set once finalized
	InvoiceID     *string // set once finalized
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DraftItem is a line owned exclusively by its Draft (replaced as a unit on
// every autosave).
type DraftItem struct {
	ID      string
	DraftID string
	Line
	LineTotal decimal.Decimal
	SortOrder int
}
