// Package sheet parses uploaded spreadsheets and re-serializes their rows for
// the two documented normalization variants: a JSON text dump for direct text
// extraction, and an HTML table for the headless-browser render path.
package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseRows reads the first sheet of an XLSX workbook into rows of cells.
func ParseRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// RowsToJSON serializes rows as a JSON dump: the first row is treated as the
// header, every following row becomes an object keyed by it. Short rows leave
// trailing columns empty.
func RowsToJSON(rows [][]string) ([]byte, error) {
	if len(rows) == 0 {
		return []byte("[]"), nil
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		obj := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" {
				h = fmt.Sprintf("column_%d", i+1)
			}
			if i < len(row) {
				obj[h] = row[i]
			} else {
				obj[h] = ""
			}
		}
		out = append(out, obj)
	}
	return json.MarshalIndent(out, "", "  ")
}

// RowsToHTML renders rows as a minimal HTML table for printing. Cell text is
// escaped.
func RowsToHTML(rows [][]string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("table{border-collapse:collapse;font-family:sans-serif;font-size:12px}")
	b.WriteString("td,th{border:1px solid #999;padding:4px 8px}")
	b.WriteString("</style></head><body><table>")
	for i, row := range rows {
		b.WriteString("<tr>")
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		for _, cell := range row {
			b.WriteString("<" + tag + ">")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</" + tag + ">")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")
	return b.String()
}
