package search

import (
	"strings"

	"github.com/sells-group/catalog-resolver/internal/model"
)

// BuildQueries returns the search queries for a record, most specific first:
// the full identity restricted to the brand's own site, the identity without
// size or site, and a reviews query. Empty fields are omitted. A record with
// neither brand nor product name gets no queries.
func BuildQueries(rec *model.CatalogRecord) []string {
	if joinNonEmpty(rec.Brand, rec.ProductName) == "" {
		return nil
	}

	specific := joinNonEmpty(rec.Brand, rec.ProductName, rec.VariantGeneric, rec.SizeLabel)
	if domain := strings.TrimSpace(rec.BrandDomain); domain != "" {
		specific = joinNonEmpty(specific, "site:"+domain)
	}

	candidates := []string{
		specific,
		joinNonEmpty(rec.Brand, rec.ProductName, rec.VariantGeneric),
		joinNonEmpty(rec.Brand, rec.ProductName, "reviews"),
	}

	queries := make([]string, 0, len(candidates))
	for _, q := range candidates {
		if q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
