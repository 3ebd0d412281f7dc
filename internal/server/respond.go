// Package server exposes the HTTP surface: document upload, record CRUD,
// workbook export and a health probe.
package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nmercado/docledger/internal/records"
)

// respond writes a record-operation result with the matching status code.
// Operations report failures as messages rather than typed errors, so the
// status is derived from the message shape.
func respond(c *fiber.Ctx, res records.Result, okStatus int) error {
	if res.Success {
		return c.Status(okStatus).JSON(res)
	}
	status := fiber.StatusInternalServerError
	if strings.HasSuffix(res.Error, "not found") {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(res)
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(records.Result{Success: false, Error: msg})
}
