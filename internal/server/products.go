package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/internal/records"
)

// ProductHandler handles HTTP requests for product records.
type ProductHandler struct {
	svc    *records.ProductService
	logger zerolog.Logger
}

func NewProductHandler(svc *records.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

// List GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("http.products.list_failed")
		return internalError(c, "error fetching products")
	}
	return c.JSON(records.Result{Success: true, Data: list})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	return respond(c, h.svc.Get(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// Create POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in records.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(records.Result{Success: false, Error: "error creating product"})
	}
	return respond(c, h.svc.Create(c.UserContext(), in), fiber.StatusCreated)
}

// Update PATCH /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var patch records.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(records.Result{Success: false, Error: "error updating product"})
	}
	return respond(c, h.svc.Update(c.UserContext(), c.Params("id"), patch), fiber.StatusOK)
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	return respond(c, h.svc.Delete(c.UserContext(), c.Params("id")), fiber.StatusOK)
}
