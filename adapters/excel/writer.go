// Package excel exports distribution snapshots as workbooks, the
// spreadsheet face of the display collaborator.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"godrv/domain/randvar"
)

// WriteSnapshot writes the outcome/probability pairs of each named
// variable to its own sheet of a new workbook at path.
func WriteSnapshot(path string, variables map[string]*randvar.Variable) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, v := range variables {
		sheet := name
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename default sheet: %w", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}

		if err := f.SetCellValue(sheet, "A1", "outcome"); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, "B1", "probability"); err != nil {
			return err
		}
		for i, pt := range v.Snapshot() {
			row := i + 2
			if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), pt.Outcome); err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pt.Probability); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}
