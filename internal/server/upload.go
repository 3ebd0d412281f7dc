package server

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/pipeline"
)

// Ingestor runs the document pipeline for one upload.
type Ingestor interface {
	Run(ctx context.Context, up pipeline.Upload) pipeline.Result
}

// UploadHandler accepts multipart document uploads.
type UploadHandler struct {
	ingestor Ingestor
	logger   zerolog.Logger
}

func NewUploadHandler(ingestor Ingestor, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{ingestor: ingestor, logger: logger}
}

// Upload POST /api/upload
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   common.ErrEmptyInput.Error(),
		})
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error().Str("filename", fh.Filename).Err(err).Msg("upload.open_failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "error reading uploaded file",
		})
	}
	content, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		h.logger.Error().Str("filename", fh.Filename).Err(err).Msg("upload.read_failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "error reading uploaded file",
		})
	}

	res := h.ingestor.Run(c.UserContext(), pipeline.Upload{
		Filename: fh.Filename,
		Content:  content,
	})
	if !res.Success {
		return c.Status(uploadStatus(res.Err)).JSON(fiber.Map{
			"success": false,
			"error":   res.Err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": res.Message,
	})
}

// uploadStatus maps pipeline failures onto status codes: caller mistakes are
// 400, everything downstream is 500.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrEmptyInput), errors.Is(err, common.ErrUnsupportedFileType):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
