package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/babilsoft/babil-erp/internal/application/dto"
	"github.com/babilsoft/babil-erp/internal/application/sales"
)

// InvoiceHandler handles finalized invoice reads and reconciliation
// (protected).
type InvoiceHandler struct {
	queries   *sales.InvoiceQueries
	reconcile *sales.ReconcileInvoiceUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(queries *sales.InvoiceQueries, reconcile *sales.ReconcileInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{queries: queries, reconcile: reconcile}
}

// GetByID returns the invoice with its items.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	inv, items, err := h.queries.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToInvoiceResponse(inv, items))
}

// Movements returns the stock audit rows the invoice produced.
// GET /api/invoices/:id/movements
func (h *InvoiceHandler) Movements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	ms, err := h.queries.Movements(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.ToStockMovementResponse(m))
	}
	return c.JSON(out)
}

// Reconcile edits a finalized invoice: the original stock and debt impact is
// fully reversed, then the new one applied, atomically.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Reconcile(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	var in dto.ReconcileInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	items := make([]sales.ReconcileItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.ReconcileItem{
			Kind: it.Kind, ItemID: it.ItemID, Name: it.Name,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
			DiscountPct: it.DiscountPct, TaxRatePct: it.TaxRatePct,
		})
	}
	inv, invItems, err := h.reconcile.Reconcile(c.Context(), userID, sales.ReconcileInput{
		InvoiceID:  id,
		CustomerID: in.CustomerID,
		Currency:   in.Currency,
		Items:      items,
		Discount:   in.Discount,
		AmountPaid: in.AmountPaid,
		Status:     in.Status,
		DueDate:    in.DueDate,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToInvoiceResponse(inv, invItems))
}
