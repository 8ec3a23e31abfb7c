package source

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestXLSXReader(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"Наименование", "Остаток", "Цена"},
		{"Дисплей iPhone 11", 5, 3500},
		{"Чехол силиконовый", 0, 250},
	})

	table, err := (&XLSXReader{}).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(table.Records) != 2 {
		t.Fatalf("records = %d; want 2", len(table.Records))
	}
	first := table.Records[0]
	if first.Text("Наименование") != "Дисплей iPhone 11" {
		t.Errorf("name = %q", first.Text("Наименование"))
	}
	if first.Int("Остаток") != 5 {
		t.Errorf("stock = %d; want 5", first.Int("Остаток"))
	}
	if first.Float("Цена") != 3500 {
		t.Errorf("price = %v; want 3500", first.Float("Цена"))
	}
}

func TestXLSXReaderMissingFile(t *testing.T) {
	if _, err := (&XLSXReader{}).Read(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
}
