// Package pipeline turns an uploaded file into zero or more persisted
// Product/Customer/Invoice records: intake → normalize → extract → sanitize
// and validate → bulk persist. Stages run strictly sequentially, fail closed,
// and never retry; every error surfaces as one human-readable message.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/nmercado/docledger/constants"
	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/entity"
	"github.com/nmercado/docledger/internal/extract"
)

// Upload is the intake unit: one named file with its content.
type Upload struct {
	Filename string
	Content  []byte
}

// Result summarizes a pipeline run. Err carries the first failure; callers
// convert it to the outward {success:false, error:<message>} shape. There is
// no per-record detail.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Inserter interfaces are the slice of the storage gateway the pipeline
// needs; the pgx repositories satisfy them.

type ProductInserter interface {
	BulkInsert(ctx context.Context, ps []*entity.Product) (int, error)
}

type CustomerInserter interface {
	BulkInsert(ctx context.Context, cs []*entity.Customer) (int, error)
}

type InvoiceInserter interface {
	BulkInsert(ctx context.Context, invs []*entity.Invoice) (int, error)
}

// Renderer prints tabular markup to a paginated document.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, outPath string) error
}

// Config controls normalization behavior.
type Config struct {
	// UploadDir is where normalized temporary files are written.
	UploadDir string
	// RenderSpreadsheets selects the spreadsheet variant: false serializes
	// rows to a JSON text dump, true prints them to PDF via the Renderer.
	RenderSpreadsheets bool
}

// Pipeline orchestrates one ingestion per call; it holds no per-request state.
type Pipeline struct {
	extractor extract.DocumentExtractor
	products  ProductInserter
	customers CustomerInserter
	invoices  InvoiceInserter
	renderer  Renderer
	cfg       Config
	logger    zerolog.Logger
}

func New(
	extractor extract.DocumentExtractor,
	products ProductInserter,
	customers CustomerInserter,
	invoices InvoiceInserter,
	renderer Renderer,
	cfg Config,
	logger zerolog.Logger,
) *Pipeline {
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./tmp"
	}
	return &Pipeline{
		extractor: extractor,
		products:  products,
		customers: customers,
		invoices:  invoices,
		renderer:  renderer,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run executes the full pipeline for one upload.
func (p *Pipeline) Run(ctx context.Context, up Upload) Result {
	start := time.Now()

	// Stage 1: intake.
	if len(up.Content) == 0 {
		return fail(common.ErrEmptyInput)
	}

	ext := filepath.Ext(up.Filename)
	format := constants.MapExtToFormat(ext)
	if format == "" {
		p.logger.Warn().Str("filename", up.Filename).Msg("ingest.unsupported_extension")
		return fail(fmt.Errorf("%w: %s", common.ErrUnsupportedFileType, constants.NormalizeExt(ext)))
	}

	// Stage 2: normalization.
	norm, err := p.normalize(ctx, up, format)
	if err != nil {
		return fail(err)
	}
	defer norm.cleanup()

	p.logger.Info().
		Str("filename", up.Filename).
		Str("format", string(format)).
		Str("path", norm.path).
		Msg("ingest.normalized")

	// Stage 3: extraction. Single request/response, no retry.
	raw, err := p.extractor.ExtractDocument(ctx, extract.Request{
		FilePath: norm.path,
		MIMEType: norm.mimeType,
		Prompt:   extract.BuildExtractionPrompt(),
	})
	if err != nil {
		return fail(fmt.Errorf("%w: %s", common.ErrExtractionFailed, err.Error()))
	}

	// Stage 4: sanitization and validation.
	batch, err := extract.DecodeBatch(raw, p.logger)
	if err != nil {
		return fail(fmt.Errorf("%w: %s", common.ErrExtractionFailed, err.Error()))
	}

	// Stage 5: persistence.
	np, ni, nc, err := p.persist(ctx, batch)
	if err != nil {
		return fail(err)
	}

	msg := fmt.Sprintf("file processed successfully: %d products, %d invoices, %d customers", np, ni, nc)
	p.logger.Info().
		Str("filename", up.Filename).
		Int("products", np).
		Int("invoices", ni).
		Int("customers", nc).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("ingest.ok")
	return Result{Success: true, Message: msg}
}

func fail(err error) Result {
	return Result{Success: false, Err: err}
}
