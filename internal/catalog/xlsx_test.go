package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"brand", "product_name", "size_label", "sku"},
		{"Acme", "Widget", "12 ct", "A-1"},
		{"Jamieson", "Vitamin D"},
	})

	recs, err := ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Widget", recs[0].ProductName)
	assert.Equal(t, "A-1", recs[0].Extra["sku"])
	assert.Equal(t, "Vitamin D", recs[1].ProductName)
	assert.Empty(t, recs[1].SizeLabel)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	src := createTestXLSX(t, [][]string{
		{"brand", "product_name", "notes"},
		{"Acme", "Widget", "comma, \"quote\""},
	})
	recs, err := ReadFile(src)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteFile(out, recs))

	back, err := ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, recs, back)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open xlsx")
}
