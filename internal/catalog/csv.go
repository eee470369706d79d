// Package catalog reads and writes the product catalog as delimited text or
// as an xlsx workbook.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/catalog-resolver/internal/model"
)

// Options configures the delimited-text codec.
type Options struct {
	Delimiter rune // default ','
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Read parses a header-delimited catalog. Quoted fields may contain the
// delimiter, doubled quotes and newlines. Rows shorter than the header are
// padded with empty fields.
func Read(r io.Reader, opts Options) ([]*model.CatalogRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = opts.delimiter()
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read rows")
	}
	return fromRows(rows)
}

// Write emits records with the column order of the first record, followed by
// any column a later record populated, or model.DefaultColumns when there are
// no records.
func Write(w io.Writer, records []*model.CatalogRecord, opts Options) error {
	header := headerFor(records)

	writer := csv.NewWriter(w)
	writer.Comma = opts.delimiter()

	if err := writer.Write(header); err != nil {
		return eris.Wrap(err, "catalog: write header")
	}
	for i, rec := range records {
		if err := writer.Write(toRow(header, rec)); err != nil {
			return eris.Wrapf(err, "catalog: write row %d", i+1)
		}
	}

	writer.Flush()
	return eris.Wrap(writer.Error(), "catalog: flush")
}

// fromRows turns raw rows (header first) into records. Shared by the text
// and xlsx readers.
func fromRows(rows [][]string) ([]*model.CatalogRecord, error) {
	if len(rows) == 0 {
		return nil, eris.New("catalog: missing header row")
	}

	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	header, err := normalizeHeader(rows[0], width)
	if err != nil {
		return nil, err
	}

	records := make([]*model.CatalogRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		records = append(records, model.NewRecordFromRow(header, row))
	}
	return records, nil
}

// normalizeHeader trims names, strips a UTF-8 BOM, names blank or surplus
// columns column_<n>, and checks the required columns. Names compare
// case-insensitively; the original spelling is kept.
func normalizeHeader(raw []string, width int) ([]string, error) {
	header := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		var name string
		if i < len(raw) {
			name = strings.TrimSpace(raw[i])
		}
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, eris.Errorf("catalog: duplicate column %q", name)
		}
		seen[key] = true
		header[i] = name
	}

	for _, req := range model.RequiredColumns {
		if !seen[req] {
			return nil, eris.Errorf("catalog: missing required column %q", req)
		}
	}
	return header, nil
}

// headerFor returns the union of the records' column orders, first-seen order.
func headerFor(records []*model.CatalogRecord) []string {
	if len(records) == 0 {
		return model.DefaultColumns
	}

	header := records[0].Keys()
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[col] = true
	}
	for _, rec := range records[1:] {
		for _, col := range rec.Keys() {
			if !seen[col] {
				seen[col] = true
				header = append(header, col)
			}
		}
	}
	return header
}

func toRow(header []string, rec *model.CatalogRecord) []string {
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = rec.Get(col)
	}
	return row
}
