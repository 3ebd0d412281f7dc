package sheet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseRows(t *testing.T) {
	content := workbookBytes(t, [][]any{
		{"Name", "Quantity", "Price"},
		{"Desk", 2, 100.5},
		{"Chair", 4, 25},
	})

	rows, err := ParseRows(content)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Quantity", "Price"}, rows[0])
	assert.Equal(t, "Desk", rows[1][0])
	assert.Equal(t, "4", rows[2][1])
}

func TestParseRowsRejectsGarbage(t *testing.T) {
	_, err := ParseRows([]byte("definitely not a workbook"))
	require.Error(t, err)
}

func TestRowsToJSON(t *testing.T) {
	rows := [][]string{
		{"Name", "", "Price"},
		{"Desk", "blue", "100"},
		{"Chair"},
	}

	out, err := RowsToJSON(rows)
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Desk", decoded[0]["Name"])
	// Empty header cells get positional names.
	assert.Equal(t, "blue", decoded[0]["column_2"])
	// Short rows leave trailing columns empty.
	assert.Equal(t, "", decoded[1]["Price"])
}

func TestRowsToJSONEmpty(t *testing.T) {
	out, err := RowsToJSON(nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(out))
}

func TestRowsToHTMLEscapes(t *testing.T) {
	out := RowsToHTML([][]string{
		{"Name"},
		{"<script>alert(1)</script>"},
	})
	assert.Contains(t, out, "<th>Name</th>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}
