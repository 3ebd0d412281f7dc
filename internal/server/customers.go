package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/internal/records"
)

// CustomerHandler handles HTTP requests for customer records.
type CustomerHandler struct {
	svc    *records.CustomerService
	logger zerolog.Logger
}

func NewCustomerHandler(svc *records.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, logger: logger}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("http.customers.list_failed")
		return internalError(c, "error fetching customers")
	}
	return c.JSON(records.Result{Success: true, Data: list})
}

// Get GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	return respond(c, h.svc.Get(c.UserContext(), c.Params("id")), fiber.StatusOK)
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in records.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(records.Result{Success: false, Error: "error creating customer"})
	}
	return respond(c, h.svc.Create(c.UserContext(), in), fiber.StatusCreated)
}

// Update PATCH /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var patch records.CustomerPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(records.Result{Success: false, Error: "error updating customer"})
	}
	return respond(c, h.svc.Update(c.UserContext(), c.Params("id"), patch), fiber.StatusOK)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	return respond(c, h.svc.Delete(c.UserContext(), c.Params("id")), fiber.StatusOK)
}
