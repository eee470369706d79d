package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/catalog-resolver/internal/model"
)

func TestBuildQueries_NaturesWay(t *testing.T) {
	rec := &model.CatalogRecord{
		Brand:       "Nature's Way",
		ProductName: "Vitamin C 1000mg",
		SizeLabel:   "120 ct",
		BrandDomain: "natureswaycanada.ca",
	}

	queries := BuildQueries(rec)
	require.Len(t, queries, 3)
	assert.Equal(t, "Nature's Way Vitamin C 1000mg 120 ct site:natureswaycanada.ca", queries[0])
	assert.Contains(t, queries[0], "site:natureswaycanada.ca")
	assert.Equal(t, "Nature's Way Vitamin C 1000mg", queries[1])
	assert.Equal(t, "Nature's Way Vitamin C 1000mg reviews", queries[2])
}

func TestBuildQueries(t *testing.T) {
	tests := []struct {
		name string
		rec  model.CatalogRecord
		want []string
	}{
		{
			name: "all fields",
			rec:  model.CatalogRecord{Brand: "Jamieson", ProductName: "Omega-3", VariantGeneric: "Fish Oil", SizeLabel: "200 ct", BrandDomain: "jamiesonvitamins.com"},
			want: []string{
				"Jamieson Omega-3 Fish Oil 200 ct site:jamiesonvitamins.com",
				"Jamieson Omega-3 Fish Oil",
				"Jamieson Omega-3 reviews",
			},
		},
		{
			name: "no domain",
			rec:  model.CatalogRecord{Brand: "Acme", ProductName: "Widget", SizeLabel: "12 ct"},
			want: []string{"Acme Widget 12 ct", "Acme Widget", "Acme Widget reviews"},
		},
		{
			name: "extra whitespace collapsed",
			rec:  model.CatalogRecord{Brand: "  Acme ", ProductName: "Big   Widget"},
			want: []string{"Acme Big Widget", "Acme Big Widget", "Acme Big Widget reviews"},
		},
		{
			name: "empty identity",
			rec:  model.CatalogRecord{},
			want: nil,
		},
		{
			name: "domain only",
			rec:  model.CatalogRecord{BrandDomain: "x.ca", SizeLabel: "12 ct"},
			want: nil,
		},
		{
			name: "blank brand and product",
			rec:  model.CatalogRecord{Brand: "  ", ProductName: "\t"},
			want: nil,
		},
		{
			name: "product only",
			rec:  model.CatalogRecord{ProductName: "Widget"},
			want: []string{"Widget", "Widget", "Widget reviews"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BuildQueries(&tc.rec))
		})
	}
}
