package catalog

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/catalog-resolver/internal/model"
)

const xlsxSheetName = "catalog"

// ReadXLSX reads the first sheet of a workbook as a catalog.
func ReadXLSX(path string) ([]*model.CatalogRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("catalog: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return fromRows(rows)
}

// WriteXLSX writes records to a single-sheet workbook, every cell as a string.
func WriteXLSX(path string, records []*model.CatalogRecord) error {
	header := headerFor(records)

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(xlsxSheetName)
	if err != nil {
		return eris.Wrap(err, "catalog: add xlsx sheet")
	}

	addRow(sheet, header)
	for _, rec := range records {
		addRow(sheet, toRow(header, rec))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "catalog: save xlsx")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
