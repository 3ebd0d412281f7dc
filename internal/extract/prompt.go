package extract

import "strings"

// BuildExtractionPrompt composes the fixed schema prompt submitted with every
// document. The schema property names are the extraction-side names
// (unitPrice, priceWithTax); the persistence layer remaps them onto the
// storage schema.
func BuildExtractionPrompt() string {
	parts := []string{
		"You are a business-document parser. Extract every product, invoice, and customer",
		"visible in the attached document and return ONLY a single JSON object of this exact shape:",
		"",
		`{`,
		`  "products": [`,
		`    {"id": "<string>", "name": "<string>", "quantity": <int>, "unitPrice": <float>, "tax": <float>, "priceWithTax": <float>}`,
		`  ],`,
		`  "invoices": [`,
		`    {"id": "<string>", "serialNumber": "<string>", "customerName": "<string>", "productName": "<string>", "quantity": <int>, "tax": <float>, "totalAmount": <float>, "date": "<string>"}`,
		`  ],`,
		`  "customers": [`,
		`    {"id": "<string>", "customerName": "<string>", "phoneNumber": "<string>", "totalPurchaseAmt": <float>}`,
		`  ]`,
		`}`,
		"",
		"Rules:",
		"- All three arrays must be present; use an empty array when the document has no such records.",
		"- When a string or id is unknown, use null. When a number is unknown, use 0.",
		"- Monetary values must be plain numbers rounded to 2 decimals with any currency symbols stripped.",
		"- Dates must be ISO-8601 (YYYY-MM-DD) or null.",
		"- Respond with only the JSON object. No prose, no markdown, no code fences.",
	}
	return strings.Join(parts, "\n")
}
