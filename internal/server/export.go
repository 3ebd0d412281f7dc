package server

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/internal/export"
)

// ExportHandler serves XLSX downloads of the record collections.
type ExportHandler struct {
	svc    *export.Service
	logger zerolog.Logger
}

func NewExportHandler(svc *export.Service, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger}
}

// Records GET /api/export/records.xlsx
func (h *ExportHandler) Records(c *fiber.Ctx) error {
	data, err := h.svc.ExportRecordsXLSX(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("http.export.failed")
		return internalError(c, "error exporting records")
	}

	filename := fmt.Sprintf("records_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
