package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nmercado/docledger/internal/common"
	"github.com/nmercado/docledger/internal/entity"
	"github.com/nmercado/docledger/internal/extract"
)

type fakeExtractor struct {
	response string
	err      error
	calls    int
	lastReq  extract.Request
	// onExtract, when set, runs before returning; tests use it to interleave
	// a second pipeline run while this extraction is in flight.
	onExtract func(req extract.Request)
}

func (f *fakeExtractor) ExtractDocument(_ context.Context, req extract.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.onExtract != nil {
		f.onExtract(req)
	}
	return f.response, f.err
}

type fakeProductInserter struct {
	inserted []*entity.Product
	err      error
	calls    int
}

func (f *fakeProductInserter) BulkInsert(_ context.Context, ps []*entity.Product) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = append(f.inserted, ps...)
	return len(ps), nil
}

type fakeCustomerInserter struct {
	inserted []*entity.Customer
	calls    int
}

func (f *fakeCustomerInserter) BulkInsert(_ context.Context, cs []*entity.Customer) (int, error) {
	f.calls++
	f.inserted = append(f.inserted, cs...)
	return len(cs), nil
}

type fakeInvoiceInserter struct {
	inserted []*entity.Invoice
	calls    int
}

func (f *fakeInvoiceInserter) BulkInsert(_ context.Context, invs []*entity.Invoice) (int, error) {
	f.calls++
	f.inserted = append(f.inserted, invs...)
	return len(invs), nil
}

type fakeRenderer struct {
	err   error
	calls int
	html  string
	out   string
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html, outPath string) error {
	f.calls++
	f.html = html
	f.out = outPath
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.4"), 0o644)
}

type fixture struct {
	pipe      *Pipeline
	extractor *fakeExtractor
	products  *fakeProductInserter
	customers *fakeCustomerInserter
	invoices  *fakeInvoiceInserter
	renderer  *fakeRenderer
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	if cfg.UploadDir == "" {
		cfg.UploadDir = t.TempDir()
	}
	f := &fixture{
		extractor: &fakeExtractor{},
		products:  &fakeProductInserter{},
		customers: &fakeCustomerInserter{},
		invoices:  &fakeInvoiceInserter{},
		renderer:  &fakeRenderer{},
	}
	f.pipe = New(f.extractor, f.products, f.customers, f.invoices, f.renderer, cfg, zerolog.Nop())
	return f
}

func spreadsheetBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Desk"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRunEmptyInput(t *testing.T) {
	fx := newFixture(t, Config{})
	res := fx.pipe.Run(context.Background(), Upload{Filename: "inv.pdf"})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrEmptyInput)
	assert.Zero(t, fx.extractor.calls)
}

func TestRunUnsupportedExtension(t *testing.T) {
	fx := newFixture(t, Config{})
	res := fx.pipe.Run(context.Background(), Upload{Filename: "report.docx", Content: []byte("x")})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrUnsupportedFileType)
	assert.Zero(t, fx.extractor.calls)
	assert.Zero(t, fx.products.calls)
}

func TestRunDocumentHappyPath(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.extractor.response = "```json\n" + `{
		"products":[{"name":"Desk","quantity":2,"unitPrice":100,"tax":10}],
		"invoices":[{"serialNumber":"INV-1","customerName":"Ana","productName":"Desk","quantity":2,"tax":10,"totalAmount":210,"date":"2024-03-01"}],
		"customers":[{"customerName":"Ana","phoneNumber":"555","totalPurchaseAmt":210}]
	}` + "\n```"

	res := fx.pipe.Run(context.Background(), Upload{Filename: "invoice.pdf", Content: []byte("%PDF-1.4")})
	require.True(t, res.Success, "err: %v", res.Err)
	assert.Equal(t, "file processed successfully: 1 products, 1 invoices, 1 customers", res.Message)

	assert.Equal(t, "application/pdf", fx.extractor.lastReq.MIMEType)
	assert.NotEmpty(t, fx.extractor.lastReq.Prompt)

	require.Len(t, fx.products.inserted, 1)
	// priceWithTax falls back to unitPrice + tax when the model omits it.
	assert.Equal(t, "110", fx.products.inserted[0].PriceWithTax.String())
	require.Len(t, fx.invoices.inserted, 1)
	assert.Equal(t, 2024, fx.invoices.inserted[0].Date.Year())
	require.Len(t, fx.customers.inserted, 1)
}

func TestRunCleansUpNormalizedFile(t *testing.T) {
	dir := t.TempDir()
	fx := newFixture(t, Config{UploadDir: dir})
	fx.extractor.response = `{"products":[],"invoices":[],"customers":[]}`

	res := fx.pipe.Run(context.Background(), Upload{Filename: "note.txt", Content: []byte("hello")})
	require.True(t, res.Success)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunExtractionFailure(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.extractor.err = errors.New("model unavailable")

	res := fx.pipe.Run(context.Background(), Upload{Filename: "invoice.png", Content: []byte("png")})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrExtractionFailed)
	assert.Zero(t, fx.products.calls)
	assert.Zero(t, fx.customers.calls)
}

func TestRunWhitespaceResponse(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.extractor.response = "   \n```\n```\n"

	res := fx.pipe.Run(context.Background(), Upload{Filename: "invoice.jpg", Content: []byte("jpg")})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrExtractionFailed)
	assert.Zero(t, fx.products.calls)
}

func TestRunInvalidGroupDoesNotBlockOthers(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.extractor.response = `{"products":{"bad":"shape"},"customers":[{"customerName":"Ana"}]}`

	res := fx.pipe.Run(context.Background(), Upload{Filename: "invoice.pdf", Content: []byte("pdf")})
	require.True(t, res.Success, "err: %v", res.Err)
	assert.Zero(t, fx.products.calls)
	assert.Equal(t, 1, fx.customers.calls)
	assert.Equal(t, "file processed successfully: 0 products, 0 invoices, 1 customers", res.Message)
}

func TestRunPersistenceFailureStopsLaterGroups(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.products.err = errors.New("connection reset")
	fx.extractor.response = `{"products":[{"name":"Desk"}],"customers":[{"customerName":"Ana"}]}`

	res := fx.pipe.Run(context.Background(), Upload{Filename: "invoice.pdf", Content: []byte("pdf")})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrPersistenceFailed)
	assert.Equal(t, 1, fx.products.calls)
	assert.Zero(t, fx.customers.calls)
}

func TestRunSpreadsheetTextVariant(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.extractor.response = `{"products":[],"invoices":[],"customers":[]}`

	res := fx.pipe.Run(context.Background(), Upload{Filename: "records.xlsx", Content: spreadsheetBytes(t)})
	require.True(t, res.Success, "err: %v", res.Err)
	assert.Equal(t, "text/plain", fx.extractor.lastReq.MIMEType)
	assert.Zero(t, fx.renderer.calls)
}

func TestRunSpreadsheetRenderVariant(t *testing.T) {
	fx := newFixture(t, Config{RenderSpreadsheets: true})
	fx.extractor.response = `{"products":[],"invoices":[],"customers":[]}`

	res := fx.pipe.Run(context.Background(), Upload{Filename: "records.xlsx", Content: spreadsheetBytes(t)})
	require.True(t, res.Success, "err: %v", res.Err)
	assert.Equal(t, 1, fx.renderer.calls)
	assert.Contains(t, fx.renderer.html, "<table>")
	assert.Equal(t, "application/pdf", fx.extractor.lastReq.MIMEType)
}

func TestRunSpreadsheetRenderFailure(t *testing.T) {
	fx := newFixture(t, Config{RenderSpreadsheets: true})
	fx.renderer.err = errors.New("chromium exited 1")

	res := fx.pipe.Run(context.Background(), Upload{Filename: "records.xlsx", Content: spreadsheetBytes(t)})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrRenderingFailed)
	assert.Zero(t, fx.extractor.calls)
}

func TestRunSameFilenameOverlappingRequests(t *testing.T) {
	fx := newFixture(t, Config{})
	fx.extractor.response = `{"products":[],"invoices":[],"customers":[]}`

	// While the first upload's extraction is pending, a second upload with the
	// same filename runs to completion, including its cleanup. The first
	// request's normalized file must survive with its own bytes.
	interleaved := false
	fx.extractor.onExtract = func(req extract.Request) {
		if interleaved {
			return
		}
		interleaved = true

		second := fx.pipe.Run(context.Background(), Upload{
			Filename: "invoice.txt",
			Content:  []byte("second upload"),
		})
		require.True(t, second.Success, "err: %v", second.Err)

		data, err := os.ReadFile(req.FilePath)
		require.NoError(t, err, "first request's normalized file was removed")
		assert.Equal(t, "first upload", string(data))
	}

	res := fx.pipe.Run(context.Background(), Upload{
		Filename: "invoice.txt",
		Content:  []byte("first upload"),
	})
	require.True(t, res.Success, "err: %v", res.Err)
	assert.True(t, interleaved)
}

func TestRunCorruptSpreadsheet(t *testing.T) {
	fx := newFixture(t, Config{})
	res := fx.pipe.Run(context.Background(), Upload{Filename: "records.xlsx", Content: []byte("not a workbook")})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, common.ErrUnsupportedFileType)
}
