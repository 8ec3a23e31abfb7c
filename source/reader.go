package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"catalog-converter/models"
)

// Reader parses one tabular source file into a Table.
type Reader interface {
	Read(path string) (*models.Table, error)
}

// ForPath picks a Reader by file extension. CSV is the default for unknown
// extensions since deployments export either .csv or .xlsx. delimiter
// applies to CSV sources only; zero means ','.
func ForPath(path string, delimiter rune) Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return &XLSXReader{}
	default:
		return &CSVReader{Comma: delimiter}
	}
}

// buildTable assembles a Table from a raw header row and data rows.
// Header cells are trimmed; rows shorter than the header leave the missing
// columns absent from the record rather than filling in empty strings.
func buildTable(header []string, rows [][]string) (*models.Table, error) {
	columns := make([]string, 0, len(header))
	for _, h := range header {
		columns = append(columns, strings.TrimSpace(h))
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("source: empty header row")
	}

	table := &models.Table{Columns: columns}
	for i, row := range rows {
		cells := make(map[string]string, len(columns))
		empty := true
		for j, col := range columns {
			if j >= len(row) {
				break
			}
			cells[col] = row[j]
			if strings.TrimSpace(row[j]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.Records = append(table.Records, models.NewRawRecord(i, cells))
	}
	return table, nil
}
