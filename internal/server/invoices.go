package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/internal/records"
)

// InvoiceHandler handles HTTP requests for invoice records.
type InvoiceHandler struct {
	svc    *records.InvoiceService
	logger zerolog.Logger
}

func NewInvoiceHandler(svc *records.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, logger: logger}
}

// List GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("http.invoices.list_failed")
		return internalError(c, "error fetching invoices")
	}
	return c.JSON(records.Result{Success: true, Data: list})
}

// Get GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	return respond(c, h.svc.Get(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// Create POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in records.InvoiceInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(records.Result{Success: false, Error: "error creating invoice"})
	}
	return respond(c, h.svc.Create(c.UserContext(), in), fiber.StatusCreated)
}

// Update PATCH /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var patch records.InvoicePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(records.Result{Success: false, Error: "error updating invoice"})
	}
	return respond(c, h.svc.Update(c.UserContext(), c.Params("id"), patch), fiber.StatusOK)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	return respond(c, h.svc.Delete(c.UserContext(), c.Params("id")), fiber.StatusOK)
}
