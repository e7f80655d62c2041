package dto

import (
	"time"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LineItemRequest one order line as sent by the client. Kind is explicit:
// "product" or "motorcycle". A zero unit_price means "use the catalog price".
type LineItemRequest struct {
	Kind        string          `json:"kind"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name,omitempty"` // reconciliation keeps the caller's snapshot

	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	TaxRatePct  decimal.Decimal `json:"tax_rate_pct"`
}

// CreateDraftRequest body for POST /api/drafts.
type CreateDraftRequest struct {
	SaleType   string            `json:"sale_type"` // wholesale | retail
	CustomerID *string           `json:"customer_id,omitempty"`
	Currency   string            `json:"currency,omitempty"` // empty: inferred from the lines
	Items      []LineItemRequest `json:"items"`
	Discount   decimal.Decimal   `json:"discount"`
	Notes      string            `json:"notes,omitempty"`
}

// UpdateDraftRequest body for PUT /api/drafts/:id: one autosave, a full
// replace of items and editable header fields.
type UpdateDraftRequest struct {
	CustomerID *string           `json:"customer_id,omitempty"`
	Items      []LineItemRequest `json:"items"`
	Discount   decimal.Decimal   `json:"discount"`
	Notes      string            `json:"notes,omitempty"`
	MarkReady  bool              `json:"mark_ready"`
}

// FinalizeDraftRequest body for POST /api/drafts/:id/finalize.
type FinalizeDraftRequest struct {
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	InvoiceNumber string          `json:"invoice_number,omitempty"` // generated when empty
	Notes         string          `json:"notes,omitempty"`
}

// FinalizeDraftResponse links the created pair back to the caller.
type FinalizeDraftResponse struct {
	SaleID    string `json:"sale_id"`
	InvoiceID string `json:"invoice_id"`
}

// DraftItemResponse one draft line in responses.
type DraftItemResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	TaxRatePct  decimal.Decimal `json:"tax_rate_pct"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// DraftResponse a draft with its items.
type DraftResponse struct {
	ID            string              `json:"id"`
	SaleType      string              `json:"sale_type"`
	Status        string              `json:"status"`
	CustomerID    *string             `json:"customer_id,omitempty"`
	Currency      string              `json:"currency"`
	Items         []DraftItemResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	Notes         string              `json:"notes,omitempty"`
	SaleID        *string             `json:"sale_id,omitempty"`
	InvoiceID     *string             `json:"invoice_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToDraftResponse maps the entity.
func ToDraftResponse(d *entity.Draft) *DraftResponse {
	if d == nil {
		return nil
	}
	items := make([]DraftItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, DraftItemResponse{
			ID: it.ID, Kind: it.Kind, ItemID: it.ItemID, Name: it.Name,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
			DiscountPct: it.DiscountPct, TaxRatePct: it.TaxRatePct,
			LineTotal: it.LineTotal,
		})
	}
	return &DraftResponse{
		ID: d.ID, SaleType: d.SaleType, Status: d.Status,
		CustomerID: d.CustomerID, Currency: d.Currency, Items: items,
		Subtotal: d.Subtotal, TaxAmount: d.TaxAmount, Discount: d.Discount,
		Total: d.Total, PaymentMethod: d.PaymentMethod, AmountPaid: d.AmountPaid,
		Notes: d.Notes, SaleID: d.SaleID, InvoiceID: d.InvoiceID,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// ReconcileInvoiceRequest body for PUT /api/invoices/:id. Totals are always
// recomputed server-side from the items; only amount_paid is taken as-is.
type ReconcileInvoiceRequest struct {
	CustomerID *string           `json:"customer_id,omitempty"` // nil keeps the original
	Currency   string            `json:"currency,omitempty"`    // empty keeps the original
	Items      []LineItemRequest `json:"items"`
	Discount   decimal.Decimal   `json:"discount"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	Status     *string           `json:"status,omitempty"` // PAID | PARTIALLY_PAID only
	DueDate    *time.Time        `json:"due_date,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
}

// InvoiceItemResponse one invoice line in responses.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	TaxRatePct  decimal.Decimal `json:"tax_rate_pct"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse invoice with detail for GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	SaleID        *string               `json:"sale_id,omitempty"`
	CustomerID    *string               `json:"customer_id,omitempty"`
	InvoiceNumber string                `json:"invoice_number"`
	Status        string                `json:"status"`
	Currency      string                `json:"currency"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	AmountDue     decimal.Decimal       `json:"amount_due"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ToInvoiceResponse maps the entity with its items.
func ToInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := make([]InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, InvoiceItemResponse{
			ID: it.ID, Kind: it.Kind, ItemID: it.ItemID, Name: it.Name,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
			DiscountPct: it.DiscountPct, TaxRatePct: it.TaxRatePct,
			LineTotal: it.LineTotal,
		})
	}
	return &InvoiceResponse{
		ID: inv.ID, SaleID: inv.SaleID, CustomerID: inv.CustomerID,
		InvoiceNumber: inv.InvoiceNumber, Status: inv.Status, Currency: inv.Currency,
		Subtotal: inv.Subtotal, TaxAmount: inv.TaxAmount, Discount: inv.Discount,
		Total: inv.Total, AmountPaid: inv.AmountPaid, AmountDue: inv.AmountDue,
		DueDate: inv.DueDate, PaidAt: inv.PaidAt, Notes: inv.Notes, Items: out,
		CreatedAt: inv.CreatedAt, UpdatedAt: inv.UpdatedAt,
	}
}

// RecordPaymentRequest body for POST /api/payments. Both amounts may be
// present; each is validated against its own outstanding balance.
type RecordPaymentRequest struct {
	CustomerID  string          `json:"customer_id"`
	AmountIQD   decimal.Decimal `json:"amount_iqd"`
	AmountUSD   decimal.Decimal `json:"amount_usd"`
	Method      string          `json:"method"`
	Description string          `json:"description,omitempty"`
}

// RecordPaymentResponse the created ledger row and companion invoice.
type RecordPaymentResponse struct {
	BalanceID string `json:"balance_id"`
	InvoiceID string `json:"invoice_id"`
}

// StockMovementResponse one audit row in movement history.
type StockMovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	InvoiceID    string          `json:"invoice_id,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Notes        string          `json:"notes,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToStockMovementResponse maps the entity.
func ToStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID: m.ID, ProductID: m.ProductID, InvoiceID: m.InvoiceID, Type: m.Type,
		Quantity: m.Quantity, BalanceAfter: m.BalanceAfter, Notes: m.Notes,
		CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt,
	}
}
