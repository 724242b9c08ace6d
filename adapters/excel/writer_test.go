package excel

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"godrv/domain/randvar"
)

func TestWriteSnapshotRoundTrip(t *testing.T) {
	coin, err := randvar.New([]float64{0, 1}, []float64{0.25, 0.75})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	die, err := randvar.Uniform([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshots.xlsx")
	if err := WriteSnapshot(path, map[string]*randvar.Variable{"coin": coin, "die": die}); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected one sheet per variable, got %v", sheets)
	}

	header, err := f.GetCellValue("coin", "A1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "outcome" {
		t.Fatalf("expected outcome header, got %q", header)
	}
	prob, err := f.GetCellValue("coin", "B3")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if prob != "0.75" {
		t.Fatalf("expected probability 0.75 in second data row, got %q", prob)
	}
}
