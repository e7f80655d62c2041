package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/babilsoft/babil-erp/internal/application/catalog"
	"github.com/babilsoft/babil-erp/internal/application/dto"
)

// MotorcycleHandler handles the motorcycle catalog (protected).
type MotorcycleHandler struct {
	uc *catalog.CatalogUseCase
}

// NewMotorcycleHandler builds the handler.
func NewMotorcycleHandler(uc *catalog.CatalogUseCase) *MotorcycleHandler {
	return &MotorcycleHandler{uc: uc}
}

// Create registers a motorcycle.
// POST /api/motorcycles
func (h *MotorcycleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMotorcycleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	out, err := h.uc.CreateMotorcycle(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update changes the motorcycle's catalog fields.
// PUT /api/motorcycles/:id
func (h *MotorcycleHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	var in dto.UpdateMotorcycleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	out, err := h.uc.UpdateMotorcycle(id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns one motorcycle.
// GET /api/motorcycles/:id
func (h *MotorcycleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id required"})
	}
	out, err := h.uc.GetMotorcycle(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List pages the motorcycle catalog.
// GET /api/motorcycles
func (h *MotorcycleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bad pagination"})
	}
	page.DefaultPage()
	out, err := h.uc.ListMotorcycles(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
