package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"catalog-converter/models"
)

// XLSXReader parses an Excel export via excelize. Only the first sheet is
// read; the first row is the header.
type XLSXReader struct{}

// Read parses the file at path into a Table.
func (r *XLSXReader) Read(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: open xlsx %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("source: xlsx %q has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("source: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("source: xlsx %q has no header row", path)
	}

	return buildTable(rows[0], rows[1:])
}
