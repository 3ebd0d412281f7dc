package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/pipeline"
)

type fakeIngestor struct {
	res    pipeline.Result
	calls  int
	upload pipeline.Upload
}

func (f *fakeIngestor) Run(_ context.Context, up pipeline.Upload) pipeline.Result {
	f.calls++
	f.upload = up
	return f.res
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func newUploadApp(ing Ingestor) *fiber.App {
	app := fiber.New()
	h := NewUploadHandler(ing, zerolog.Nop())
	app.Post("/api/upload", h.Upload)
	return app
}

func TestUploadSuccess(t *testing.T) {
	ing := &fakeIngestor{res: pipeline.Result{
		Success: true,
		Message: "file processed successfully: 1 products, 0 invoices, 0 customers",
	}}
	app := newUploadApp(ing)

	resp, err := app.Test(uploadRequest(t, "invoice.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "file processed successfully")

	assert.Equal(t, 1, ing.calls)
	assert.Equal(t, "invoice.pdf", ing.upload.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), ing.upload.Content)
}

func TestUploadMissingFile(t *testing.T) {
	ing := &fakeIngestor{}
	app := newUploadApp(ing)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, common.ErrEmptyInput.Error(), body["error"])
	assert.Zero(t, ing.calls)
}

func TestUploadPipelineFailureStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unsupported type", fmt.Errorf("%w: .docx", common.ErrUnsupportedFileType), http.StatusBadRequest},
		{"extraction failed", fmt.Errorf("%w: model unavailable", common.ErrExtractionFailed), http.StatusInternalServerError},
		{"persistence failed", fmt.Errorf("%w: connection reset", common.ErrPersistenceFailed), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := &fakeIngestor{res: pipeline.Result{Success: false, Err: tt.err}}
			app := newUploadApp(ing)

			resp, err := app.Test(uploadRequest(t, "doc.pdf", []byte("x")))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}
