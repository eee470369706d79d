package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/catalog-resolver/internal/model"
)

// IsXLSX reports whether path names an xlsx workbook.
func IsXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// optionsFor picks the delimiter from the file extension.
func optionsFor(path string) Options {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return Options{Delimiter: '\t'}
	}
	return Options{}
}

// ReadFile reads a catalog from disk, dispatching on the file extension.
func ReadFile(path string) ([]*model.CatalogRecord, error) {
	if IsXLSX(path) {
		return ReadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open input")
	}
	defer f.Close() //nolint:errcheck

	return Read(f, optionsFor(path))
}

// WriteFile writes a catalog to disk. Delimited output goes through a temp
// file in the same directory and is renamed into place.
func WriteFile(path string, records []*model.CatalogRecord) error {
	if IsXLSX(path) {
		return WriteXLSX(path, records)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "catalog: create temp output")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "catalog: chmod temp output")
	}

	if err := Write(tmp, records, optionsFor(path)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "catalog: close temp output")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return eris.Wrap(err, "catalog: rename output")
	}
	return nil
}
