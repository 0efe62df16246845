package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX renders the table as a single-sheet workbook, for people who
// want to eyeball the cleaned dataset outside the service.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	const sheet = "Drugs"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("write header %s: %w", col, err)
		}
	}
	for r, row := range t.Rows {
		for i, col := range t.Columns {
			if row[col] == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, row[col]); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}
