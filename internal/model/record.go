package model

import (
	"sort"
	"strings"
)

// Catalog column names.
const (
	ColBrand               = "brand"
	ColProductName         = "product_name"
	ColCategory            = "category"
	ColForm                = "form"
	ColVariantGeneric      = "variant_generic"
	ColSizeLabel           = "size_label"
	ColBrandDomain         = "brand_domain"
	ColSourcePriority      = "source_priority"
	ColCanonicalProductURL = "canonical_product_url"
	ColReviewURL1          = "review_url_1"
	ColReviewURL2          = "review_url_2"
	ColLastVerifiedUTC     = "last_verified_utc"
	ColNotes               = "notes"
)

// DefaultColumns is the column order used when writing an empty catalog or a
// record that was not read from a file.
var DefaultColumns = []string{
	ColBrand,
	ColProductName,
	ColCategory,
	ColForm,
	ColVariantGeneric,
	ColSizeLabel,
	ColBrandDomain,
	ColSourcePriority,
	ColCanonicalProductURL,
	ColReviewURL1,
	ColReviewURL2,
	ColLastVerifiedUTC,
	ColNotes,
}

// RequiredColumns must be present in a catalog header.
var RequiredColumns = []string{ColBrand, ColProductName}

// CatalogRecord is one product identity row of the catalog.
type CatalogRecord struct {
	Brand               string `json:"brand"`
	ProductName         string `json:"product_name"`
	Category            string `json:"category,omitempty"`
	Form                string `json:"form,omitempty"`
	VariantGeneric      string `json:"variant_generic,omitempty"`
	SizeLabel           string `json:"size_label,omitempty"`
	BrandDomain         string `json:"brand_domain,omitempty"`
	SourcePriority      string `json:"source_priority,omitempty"`
	CanonicalProductURL string `json:"canonical_product_url,omitempty"`
	ReviewURL1          string `json:"review_url_1,omitempty"`
	ReviewURL2          string `json:"review_url_2,omitempty"`
	LastVerifiedUTC     string `json:"last_verified_utc,omitempty"`
	Notes               string `json:"notes,omitempty"`

	// Extra holds columns outside the known schema, keyed by header name.
	Extra map[string]string `json:"extra,omitempty"`

	// columns is the header order the record was read with.
	columns []string
}

// NewRecordFromRow builds a record from a header and a row of equal length.
func NewRecordFromRow(header, row []string) *CatalogRecord {
	r := &CatalogRecord{columns: header}
	for i, col := range header {
		var v string
		if i < len(row) {
			v = row[i]
		}
		r.Set(col, v)
	}
	return r
}

// field returns a pointer to the named known field, or nil. Known column
// names match case-insensitively.
func (r *CatalogRecord) field(col string) *string {
	switch strings.ToLower(strings.TrimSpace(col)) {
	case ColBrand:
		return &r.Brand
	case ColProductName:
		return &r.ProductName
	case ColCategory:
		return &r.Category
	case ColForm:
		return &r.Form
	case ColVariantGeneric:
		return &r.VariantGeneric
	case ColSizeLabel:
		return &r.SizeLabel
	case ColBrandDomain:
		return &r.BrandDomain
	case ColSourcePriority:
		return &r.SourcePriority
	case ColCanonicalProductURL:
		return &r.CanonicalProductURL
	case ColReviewURL1:
		return &r.ReviewURL1
	case ColReviewURL2:
		return &r.ReviewURL2
	case ColLastVerifiedUTC:
		return &r.LastVerifiedUTC
	case ColNotes:
		return &r.Notes
	}
	return nil
}

// Get returns the value of a column, known or extra.
func (r *CatalogRecord) Get(col string) string {
	if f := r.field(col); f != nil {
		return *f
	}
	return r.Extra[col]
}

// Set assigns a column value, routing unknown columns to Extra.
func (r *CatalogRecord) Set(col, value string) {
	if f := r.field(col); f != nil {
		*f = value
		return
	}
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[col] = value
}

// Keys returns the record's column order: the header it was read with, in its
// original spelling, plus any known column that was populated but is missing
// from that header.
// Records not read from a file use DefaultColumns followed by sorted extras.
func (r *CatalogRecord) Keys() []string {
	if r.columns == nil {
		keys := append([]string(nil), DefaultColumns...)
		return append(keys, sortedKeys(r.Extra)...)
	}

	keys := append([]string(nil), r.columns...)
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[strings.ToLower(k)] = true
	}
	for _, col := range DefaultColumns {
		if !seen[col] && r.Get(col) != "" {
			keys = append(keys, col)
		}
	}
	return keys
}

// SetColumns overrides the header order used by Keys.
func (r *CatalogRecord) SetColumns(cols []string) {
	r.columns = cols
}

// Clone returns a deep copy of the record.
func (r *CatalogRecord) Clone() *CatalogRecord {
	c := *r
	if r.Extra != nil {
		c.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			c.Extra[k] = v
		}
	}
	return &c
}

// AppendNote adds an entry to Notes without replacing earlier entries.
func (r *CatalogRecord) AppendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if strings.TrimSpace(r.Notes) == "" {
		r.Notes = note
		return
	}
	r.Notes = r.Notes + "; " + note
}

// HasCanonicalURL reports whether the record already has a product URL.
func (r *CatalogRecord) HasCanonicalURL() bool {
	return strings.TrimSpace(r.CanonicalProductURL) != ""
}

// Label is a short human-readable identity for logs.
func (r *CatalogRecord) Label() string {
	return strings.TrimSpace(r.Brand + " " + r.ProductName)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
