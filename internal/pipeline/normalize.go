package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nmercado/docledger/constants"
	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/sheet"
)

// normalized is the Stage 2 output: a temporary file ready for extraction.
// cleanup removes it and is safe to call on every exit path.
type normalized struct {
	path     string
	mimeType string
	cleanup  func()
}

// normalize dispatches on format. Spreadsheets are parsed and either
// re-serialized as a JSON text dump or printed to PDF through the renderer;
// everything else is written to a temporary path as-is.
func (p *Pipeline) normalize(ctx context.Context, up Upload, format constants.FileFormat) (normalized, error) {
	if err := os.MkdirAll(p.cfg.UploadDir, 0o755); err != nil {
		return normalized{}, common.WrapError(err, "create upload dir")
	}

	if format == constants.SPREADSHEET {
		return p.normalizeSpreadsheet(ctx, up)
	}

	// Document/text/image input goes to a temporary path unchanged. The name
	// carries a fresh UUID: concurrent uploads of the same filename must not
	// share a path, or one request's cleanup deletes the other's input.
	ext := constants.NormalizeExt(filepath.Ext(up.Filename))
	path := filepath.Join(p.cfg.UploadDir, fmt.Sprintf("upload_%s.%s", uuid.New(), ext))
	if err := os.WriteFile(path, up.Content, 0o644); err != nil {
		return normalized{}, common.WrapError(err, "write upload")
	}
	return normalized{
		path:     path,
		mimeType: constants.MIMEForExt(ext),
		cleanup:  removeFn(path),
	}, nil
}

func (p *Pipeline) normalizeSpreadsheet(ctx context.Context, up Upload) (normalized, error) {
	rows, err := sheet.ParseRows(up.Content)
	if err != nil {
		return normalized{}, fmt.Errorf("%w: parse spreadsheet: %s", common.ErrUnsupportedFileType, err.Error())
	}

	if p.cfg.RenderSpreadsheets {
		// Render variant: rows → HTML table → headless-browser PDF. The
		// browser process is scoped to this call and released on every exit.
		path := filepath.Join(p.cfg.UploadDir, fmt.Sprintf("converted_%s.pdf", uuid.New()))
		if err := p.renderer.RenderHTMLToPDF(ctx, sheet.RowsToHTML(rows), path); err != nil {
			return normalized{}, fmt.Errorf("%w: %s", common.ErrRenderingFailed, err.Error())
		}
		return normalized{path: path, mimeType: "application/pdf", cleanup: removeFn(path)}, nil
	}

	// Text variant: rows → JSON dump submitted for direct text extraction.
	dump, err := sheet.RowsToJSON(rows)
	if err != nil {
		return normalized{}, common.WrapError(err, "serialize spreadsheet rows")
	}
	path := filepath.Join(p.cfg.UploadDir, fmt.Sprintf("converted_%s.txt", uuid.New()))
	if err := os.WriteFile(path, dump, 0o644); err != nil {
		return normalized{}, common.WrapError(err, "write spreadsheet dump")
	}
	return normalized{path: path, mimeType: "text/plain", cleanup: removeFn(path)}, nil
}

func removeFn(path string) func() {
	return func() { _ = os.Remove(path) }
}
