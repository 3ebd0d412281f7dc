package extract

import "context"

// Request describes one document submitted to the extraction service.
type Request struct {
	FilePath string // normalized temporary file
	MIMEType string
	Prompt   string // fixed schema prompt, see BuildExtractionPrompt
}

// DocumentExtractor is the interface the ingestion pipeline depends on.
// Implementations return the raw response text; the caller sanitizes and
// decodes it. A single request/response, no retry.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, req Request) (string, error)
}

// ProductRecord is one product as described by the extraction service.
// Every field is nullable; the prompt instructs the model to default unknown
// strings to null and unknown numbers to 0.
type ProductRecord struct {
	ID           *string  `json:"id"`
	Name         *string  `json:"name"`
	Quantity     *float64 `json:"quantity"`
	UnitPrice    *float64 `json:"unitPrice"`
	Tax          *float64 `json:"tax"`
	PriceWithTax *float64 `json:"priceWithTax"`
}

// InvoiceRecord is one invoice as described by the extraction service.
type InvoiceRecord struct {
	ID           *string  `json:"id"`
	SerialNumber *string  `json:"serialNumber"`
	CustomerName *string  `json:"customerName"`
	ProductName  *string  `json:"productName"`
	Quantity     *float64 `json:"quantity"`
	Tax          *float64 `json:"tax"`
	TotalAmount  *float64 `json:"totalAmount"`
	Date         *string  `json:"date"` // ISO-8601 or null
}

// CustomerRecord is one customer as described by the extraction service.
type CustomerRecord struct {
	ID               *string  `json:"id"`
	CustomerName     *string  `json:"customerName"`
	PhoneNumber      *string  `json:"phoneNumber"`
	TotalPurchaseAmt *float64 `json:"totalPurchaseAmt"`
}

// Batch is the decoded extraction payload. Record groups the response omitted
// or mistyped are empty slices, never an error (lenient policy).
type Batch struct {
	Products  []ProductRecord
	Invoices  []InvoiceRecord
	Customers []CustomerRecord
}

// Empty reports whether the batch carries no records at all.
func (b Batch) Empty() bool {
	return len(b.Products) == 0 && len(b.Invoices) == 0 && len(b.Customers) == 0
}
