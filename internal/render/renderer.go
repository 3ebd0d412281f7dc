// Package render converts tabular markup into a paginated PDF through a
// headless browser. Each render launches a fresh browser process scoped to
// the request; the process and its temporary input are released on every exit
// path, success or failure.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Renderer prints HTML to PDF via a headless Chromium/Chrome binary.
type Renderer struct {
	chromeBin string
	runner    Runner
	logger    zerolog.Logger
}

func NewRenderer(chromeBin string, runner Runner, logger zerolog.Logger) *Renderer {
	if chromeBin == "" {
		chromeBin = "chromium"
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Renderer{chromeBin: chromeBin, runner: runner, logger: logger}
}

// RenderHTMLToPDF writes html to a scratch file and prints it to outPath.
// The scratch file is always removed; the browser process ends with the call
// (CommandContext kills it if the request context is canceled).
func (r *Renderer) RenderHTMLToPDF(ctx context.Context, html string, outPath string) error {
	tmpDir, err := os.MkdirTemp("", "docledger-render-*")
	if err != nil {
		return fmt.Errorf("render: scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.logger.Warn().Err(rmErr).Str("dir", tmpDir).Msg("render.scratch_cleanup_failed")
		}
	}()

	in := filepath.Join(tmpDir, "page.html")
	if err := os.WriteFile(in, []byte(html), 0o644); err != nil {
		return fmt.Errorf("render: write page: %w", err)
	}

	_, errb, err := r.runner.Run(ctx, r.chromeBin,
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--print-to-pdf="+outPath,
		"file://"+in,
	)
	if err != nil {
		return fmt.Errorf("render: headless print failed: %w (%s)", err, truncate(string(errb), 512))
	}

	if st, statErr := os.Stat(outPath); statErr != nil || st.Size() == 0 {
		return fmt.Errorf("render: no output produced at %s", outPath)
	}

	r.logger.Info().Str("out", outPath).Msg("render.pdf.ok")
	return nil
}
