package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/babilsoft/babil-erp/internal/application/dto"
	"github.com/babilsoft/babil-erp/internal/application/sales"
)

// DraftHandler handles the mutable stage of the order lifecycle (protected).
type DraftHandler struct {
	drafts   *sales.DraftUseCase
	finalize *sales.FinalizeDraftUseCase
}

// NewDraftHandler builds the handler.
func NewDraftHandler(drafts *sales.DraftUseCase, finalize *sales.FinalizeDraftUseCase) *DraftHandler {
	return &DraftHandler{drafts: drafts, finalize: finalize}
}

func toItemInputs(items []dto.LineItemRequest) []sales.DraftItemInput {
	out := make([]sales.DraftItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, sales.DraftItemInput{
			Kind: it.Kind, ItemID: it.ItemID,
			Quantity: it.Quantity, UnitPrice: it.UnitPrice,
			DiscountPct: it.DiscountPct, TaxRatePct: it.TaxRatePct,
		})
	}
	return out
}

// Create opens a new draft.
// POST /api/drafts
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	draft, err := h.drafts.Create(c.Context(), userID, sales.CreateDraftInput{
		SaleType:   in.SaleType,
		CustomerID: in.CustomerID,
		Currency:   in.Currency,
		Items:      toItemInputs(in.Items),
		Discount:   in.Discount,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDraftResponse(draft))
}

// Update is one autosave: a full replace of items and editable header fields.
// PUT /api/drafts/:id
func (h *DraftHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	var in dto.UpdateDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	draft, err := h.drafts.Update(c.Context(), sales.UpdateDraftInput{
		DraftID:    id,
		CustomerID: in.CustomerID,
		Items:      toItemInputs(in.Items),
		Discount:   in.Discount,
		Notes:      in.Notes,
		MarkReady:  in.MarkReady,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDraftResponse(draft))
}

// GetByID returns a draft with its items.
// GET /api/drafts/:id
func (h *DraftHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	draft, err := h.drafts.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDraftResponse(draft))
}

// List pages drafts by status.
// GET /api/drafts?status=READY
func (h *DraftHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status query required"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad pagination"})
	}
	page.DefaultPage()
	drafts, err := h.drafts.ListByStatus(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, dto.ToDraftResponse(d))
	}
	return c.JSON(out)
}

// Cancel moves an editable draft to CANCELLED.
// POST /api/drafts/:id/cancel
func (h *DraftHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	if err := h.drafts.Cancel(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finalize converts a draft into a Sale+Invoice pair, deducting stock and
// applying debt in one transaction.
// POST /api/drafts/:id/finalize
func (h *DraftHandler) Finalize(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	var in dto.FinalizeDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	res, err := h.finalize.Finalize(c.Context(), userID, sales.FinalizeInput{
		DraftID:       id,
		PaymentMethod: in.PaymentMethod,
		AmountPaid:    in.AmountPaid,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FinalizeDraftResponse{
		SaleID:    res.SaleID,
		InvoiceID: res.InvoiceID,
	})
}
