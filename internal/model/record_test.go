package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogRecord_SetGet(t *testing.T) {
	r := &CatalogRecord{}
	r.Set(ColBrand, "Nature's Way")
	r.Set("upc", "033674")

	assert.Equal(t, "Nature's Way", r.Brand)
	assert.Equal(t, "Nature's Way", r.Get(ColBrand))
	assert.Equal(t, "033674", r.Get("upc"))
	assert.Equal(t, map[string]string{"upc": "033674"}, r.Extra)
}

func TestCatalogRecord_KnownColumnsIgnoreCase(t *testing.T) {
	r := NewRecordFromRow([]string{"Brand", "Product_Name", "SKU"}, []string{"Acme", "Widget", "A-1"})
	r.CanonicalProductURL = "https://acme.com/widget"

	assert.Equal(t, "Acme", r.Brand)
	assert.Equal(t, "Widget", r.Get("PRODUCT_NAME"))
	assert.Equal(t, map[string]string{"SKU": "A-1"}, r.Extra)
	assert.Equal(t, []string{"Brand", "Product_Name", "SKU", ColCanonicalProductURL}, r.Keys())
}

func TestNewRecordFromRow_PadsShortRows(t *testing.T) {
	header := []string{ColBrand, ColProductName, ColNotes}
	r := NewRecordFromRow(header, []string{"Acme"})

	assert.Equal(t, "Acme", r.Brand)
	assert.Empty(t, r.ProductName)
	assert.Empty(t, r.Notes)
	assert.Equal(t, header, r.Keys())
}

func TestCatalogRecord_Keys(t *testing.T) {
	t.Run("header order plus populated known columns", func(t *testing.T) {
		r := NewRecordFromRow([]string{"upc", ColBrand, ColProductName}, []string{"1", "Acme", "Widget"})
		r.CanonicalProductURL = "https://acme.com/widget"

		assert.Equal(t, []string{"upc", ColBrand, ColProductName, ColCanonicalProductURL}, r.Keys())
	})

	t.Run("default columns without a header", func(t *testing.T) {
		r := &CatalogRecord{Brand: "Acme", Extra: map[string]string{"zeta": "z", "alpha": "a"}}
		keys := r.Keys()

		assert.Equal(t, DefaultColumns, keys[:len(DefaultColumns)])
		assert.Equal(t, []string{"alpha", "zeta"}, keys[len(DefaultColumns):])
	})
}

func TestCatalogRecord_AppendNote(t *testing.T) {
	tests := []struct {
		name  string
		prior string
		note  string
		want  string
	}{
		{name: "empty notes", prior: "", note: "enriched", want: "enriched"},
		{name: "keeps prior notes", prior: "checked by hand", note: "no_match", want: "checked by hand; no_match"},
		{name: "blank note ignored", prior: "x", note: "  ", want: "x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := &CatalogRecord{Notes: tc.prior}
			r.AppendNote(tc.note)
			assert.Equal(t, tc.want, r.Notes)
		})
	}
}

func TestCatalogRecord_Clone(t *testing.T) {
	r := &CatalogRecord{Brand: "Acme", Extra: map[string]string{"upc": "1"}}
	c := r.Clone()
	c.Extra["upc"] = "2"
	c.Brand = "Other"

	assert.Equal(t, "1", r.Extra["upc"])
	assert.Equal(t, "Acme", r.Brand)
}
