package models

import (
	"strconv"
	"strings"
)

// RawRecord is one row of the source table, keyed by trimmed header name.
// It lives only for the duration of a single build pass.
type RawRecord struct {
	Index int // zero-based row position, header excluded
	cells map[string]string
}

// NewRawRecord builds a RawRecord from a cell map. Keys are expected to be
// trimmed column names; values are kept verbatim.
func NewRawRecord(index int, cells map[string]string) RawRecord {
	return RawRecord{Index: index, cells: cells}
}

// Value returns the raw cell for col and whether it holds an actual value.
// Missing columns, blank cells and spreadsheet placeholders ("nan", "#N/A",
// dashes) all count as not-a-value — distinct from a cell containing "0".
func (r RawRecord) Value(col string) (string, bool) {
	raw, ok := r.cells[col]
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	switch strings.ToLower(trimmed) {
	case "nan", "none", "null", "#n/a", "#н/д", "-", "—":
		return "", false
	}
	return trimmed, true
}

// Text returns the trimmed cell value, or "" for a not-a-value cell.
func (r RawRecord) Text(col string) string {
	v, _ := r.Value(col)
	return v
}

// Int returns the cell coerced to an integer. Floats are truncated;
// unparseable or not-a-value cells yield 0.
func (r RawRecord) Int(col string) int {
	return int(r.Float(col))
}

// Float returns the cell coerced to a float64, tolerating comma decimal
// separators and embedded spaces. Unparseable or not-a-value cells yield 0.
func (r RawRecord) Float(col string) float64 {
	v, ok := r.Value(col)
	if !ok {
		return 0
	}
	v = strings.ReplaceAll(v, ",", ".")
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, "\u00a0", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// Table is a parsed source file: the ordered header plus all data rows.
type Table struct {
	Columns []string
	Records []RawRecord
}

// HasColumn reports whether the header contains the given column name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
