package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"datascope/internal/errors"
	"datascope/internal/ingest"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.Bytes()
}

func TestReadAsCSV_RoundTrip(t *testing.T) {
	raw := workbookBytes(t, [][]interface{}{
		{"name", "age"},
		{"Alice", 30},
		{"Bob", 25},
	})

	csvBytes, err := ReadAsCSV(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadAsCSV: %v", err)
	}
	text := string(csvBytes)
	if !strings.HasPrefix(text, "name,age\n") {
		t.Errorf("csv = %q, want header name,age", text)
	}

	// The converted text flows through the normal ingest path.
	ds, err := ingest.Parse("book.csv", csvBytes)
	if err != nil {
		t.Fatalf("Parse of converted sheet: %v", err)
	}
	if ds.RowCount != 2 || ds.ColumnCount() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", ds.RowCount, ds.ColumnCount())
	}
	age, _ := ds.Column("age")
	if !age.IsNumeric() {
		t.Error("age should classify numeric after conversion")
	}
}

func TestReadAsCSV_RaggedRowsSquared(t *testing.T) {
	raw := workbookBytes(t, [][]interface{}{
		{"a", "b", "c"},
		{"1"}, // trailing cells empty
	})

	csvBytes, err := ReadAsCSV(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadAsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvBytes)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := strings.Count(lines[1], ","); got != 2 {
		t.Errorf("second line %q has %d commas, want 2", lines[1], got)
	}
}

func TestReadAsCSV_NotASpreadsheet(t *testing.T) {
	_, err := ReadAsCSV(strings.NewReader("plain,csv\n1,2\n"))
	if !errors.IsCode(err, errors.CodeParseError) {
		t.Errorf("error = %v, want PARSE_ERROR", err)
	}
}
