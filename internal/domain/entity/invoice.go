package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceStatusDraft         = "DRAFT"
	InvoiceStatusPartiallyPaid = "PARTIALLY_PAID"
	InvoiceStatusPaid          = "PAID"
	InvoiceStatusCancelled     = "CANCELLED"
)

// Invoice is the customer-facing financial document, correlated 1:1 with a
// Sale when generated from the sales flow. Invariant: AmountDue equals
// Total minus AmountPaid after every mutation.
type Invoice struct {
	ID            string
	SaleID        *string
	CustomerID    *string
	InvoiceNumber string // <customerOrPrefix>-<YYYY-MM-DD>-<RANDOM6>
	Status        string
	Currency      string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	AmountDue     decimal.Decimal
	DueDate       *time.Time
	PaidAt        *time.Time
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsFinalized reports whether the invoice has financial impact (stock was
// deducted and customer debt applied). DRAFT and CANCELLED invoices have none.
func (i *Invoice) IsFinalized() bool {
	return i.Status != InvoiceStatusDraft && i.Status != InvoiceStatusCancelled
}

// InvoiceItem mirrors SaleItem, owned by its Invoice and replaced wholesale
// on reconciliation.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	Line
	LineTotal decimal.Decimal
	SortOrder int
}
