package extract

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// StripCodeFences removes markdown code-fence delimiters and surrounding
// whitespace from a model response. Fence-wrapped and bare JSON of equal
// content sanitize to the same text. Only leading and trailing fences are
// touched: backticks inside JSON string values are payload, not markup.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// rawBatch defers group decoding so a missing or mistyped group can be
// skipped without failing the whole payload.
type rawBatch struct {
	Products  json.RawMessage `json:"products"`
	Invoices  json.RawMessage `json:"invoices"`
	Customers json.RawMessage `json:"customers"`
}

// DecodeBatch sanitizes and parses a raw extraction response.
// It fails when the cleaned text is empty or not a JSON object. Record groups
// that are absent, null, non-array, or schema-invalid are treated as empty
// and skipped; the rest of the payload still proceeds (lenient policy).
func DecodeBatch(response string, logger zerolog.Logger) (Batch, error) {
	clean := StripCodeFences(response)
	if clean == "" {
		return Batch{}, errors.New("no data extracted from the document")
	}

	var raw rawBatch
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return Batch{}, errors.New("extracted data is not valid JSON")
	}

	var b Batch
	b.Products = decodeGroup[ProductRecord](raw.Products, ProductsGroupSchema(), "products", logger)
	b.Invoices = decodeGroup[InvoiceRecord](raw.Invoices, InvoicesGroupSchema(), "invoices", logger)
	b.Customers = decodeGroup[CustomerRecord](raw.Customers, CustomersGroupSchema(), "customers", logger)
	return b, nil
}

func decodeGroup[T any](raw json.RawMessage, schema map[string]any, name string, logger zerolog.Logger) []T {
	if len(raw) == 0 || string(raw) == "null" {
		logger.Warn().Str("group", name).Msg("extract.group_missing")
		return nil
	}
	if err := ValidateJSONAgainstSchema(schema, raw); err != nil {
		logger.Warn().Str("group", name).Err(err).Msg("extract.group_invalid")
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn().Str("group", name).Err(err).Msg("extract.group_decode_failed")
		return nil
	}
	return out
}
