package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/babilsoft/babil-erp/internal/application/dto"
	"github.com/babilsoft/babil-erp/internal/application/sales"
)

// PaymentHandler handles customer debt payments (protected).
type PaymentHandler struct {
	uc *sales.RecordPaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *sales.RecordPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create records a payment against a customer's outstanding debt. Overpayment
// in either currency is rejected before anything is written.
// POST /api/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	if in.CustomerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id required"})
	}
	res, err := h.uc.Record(c.Context(), userID, sales.PaymentInput{
		CustomerID:  in.CustomerID,
		AmountIQD:   in.AmountIQD,
		AmountUSD:   in.AmountUSD,
		Method:      in.Method,
		Description: in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordPaymentResponse{
		BalanceID: res.BalanceID,
		InvoiceID: res.InvoiceID,
	})
}
