package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"catalog-converter/models"
)

// CSVReader parses a CSV export. The first row is the header; quoted cells
// may contain embedded delimiters and newlines.
type CSVReader struct {
	// Comma overrides the field delimiter; zero value means ','.
	Comma rune
}

// Read parses the file at path into a Table.
func (r *CSVReader) Read(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open csv %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}
	// Column counts vary between export revisions; let rows be ragged.
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("source: parse csv %q: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("source: csv %q has no header row", path)
	}

	return buildTable(stripBOM(rows[0]), rows[1:])
}

// stripBOM removes a UTF-8 byte order mark from the first header cell.
// Exports saved on Windows frequently carry one.
func stripBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}
	return header
}

func trimBOM(s string) string {
	const bom = "\ufeff"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}
