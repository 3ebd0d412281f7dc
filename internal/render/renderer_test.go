package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	name   string
	args   []string
	stderr []byte
	err    error
	// onRun lets a test produce the output file the way the browser would.
	onRun func(args []string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	if f.onRun != nil {
		f.onRun(args)
	}
	return nil, f.stderr, f.err
}

func outPathFromArgs(args []string) string {
	for _, a := range args {
		if strings.HasPrefix(a, "--print-to-pdf=") {
			return strings.TrimPrefix(a, "--print-to-pdf=")
		}
	}
	return ""
}

func TestRenderHTMLToPDF(t *testing.T) {
	runner := &fakeRunner{}
	runner.onRun = func(args []string) {
		out := outPathFromArgs(args)
		require.NotEmpty(t, out)
		require.NoError(t, os.WriteFile(out, []byte("%PDF-1.4"), 0o644))
	}
	r := NewRenderer("chromium", runner, zerolog.Nop())

	out := filepath.Join(t.TempDir(), "out.pdf")
	err := r.RenderHTMLToPDF(context.Background(), "<table></table>", out)
	require.NoError(t, err)

	assert.Equal(t, "chromium", runner.name)
	assert.Contains(t, runner.args, "--headless")
	assert.Contains(t, runner.args, "--print-to-pdf="+out)
	// Input page is passed as a file URL.
	assert.True(t, strings.HasPrefix(runner.args[len(runner.args)-1], "file://"))
}

func TestRenderHTMLToPDFRunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("cannot open display")}
	r := NewRenderer("", runner, zerolog.Nop())

	err := r.RenderHTMLToPDF(context.Background(), "<p>x</p>", filepath.Join(t.TempDir(), "out.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open display")
	assert.Equal(t, "chromium", runner.name)
}

func TestRenderHTMLToPDFNoOutput(t *testing.T) {
	// Runner succeeds but never writes the file.
	r := NewRenderer("chromium", &fakeRunner{}, zerolog.Nop())

	err := r.RenderHTMLToPDF(context.Background(), "<p>x</p>", filepath.Join(t.TempDir(), "out.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output produced")
}
