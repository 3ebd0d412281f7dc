package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Group JSON Schemas (draft 2020-12 subset) as generic maps. Each record group
// in the extraction payload is validated independently so one malformed group
// cannot sink the others.

func nullableProp(t string) map[string]any {
	return map[string]any{"type": []string{t, "null"}}
}

func groupSchema(props map[string]any) map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":       "object",
			"properties": props,
		},
	}
}

// ProductsGroupSchema describes the "products" array.
func ProductsGroupSchema() map[string]any {
	return groupSchema(map[string]any{
		"id":           nullableProp("string"),
		"name":         nullableProp("string"),
		"quantity":     nullableProp("number"),
		"unitPrice":    nullableProp("number"),
		"tax":          nullableProp("number"),
		"priceWithTax": nullableProp("number"),
	})
}

// InvoicesGroupSchema describes the "invoices" array.
func InvoicesGroupSchema() map[string]any {
	return groupSchema(map[string]any{
		"id":           nullableProp("string"),
		"serialNumber": nullableProp("string"),
		"customerName": nullableProp("string"),
		"productName":  nullableProp("string"),
		"quantity":     nullableProp("number"),
		"tax":          nullableProp("number"),
		"totalAmount":  nullableProp("number"),
		"date":         nullableProp("string"),
	})
}

// CustomersGroupSchema describes the "customers" array.
func CustomersGroupSchema() map[string]any {
	return groupSchema(map[string]any{
		"id":               nullableProp("string"),
		"customerName":     nullableProp("string"),
		"phoneNumber":      nullableProp("string"),
		"totalPurchaseAmt": nullableProp("number"),
	})
}

// ValidateJSONAgainstSchema validates data against schemaMap.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
