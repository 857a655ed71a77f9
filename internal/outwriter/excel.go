package outwriter

import (
	"fmt"

	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/schema"
	"github.com/xuri/excelize/v2"
)

// ExcelWriter fills section rows into a pre-existing workbook template.
// The workbook is loaded once, mutated in memory, and saved once by Save.
type ExcelWriter struct {
	file *excelize.File
	path string
}

// OpenExcel opens the workbook template and verifies the target sheet.
func OpenExcel(path string) (*ExcelWriter, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %q (missing or corrupt): %w", path, err)
	}
	if idx, err := f.GetSheetIndex(contract.ExcelSheetName); err != nil || idx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("workbook %q has no %q sheet", path, contract.ExcelSheetName)
	}
	return &ExcelWriter{file: f, path: path}, nil
}

// WriteSection writes the section's rows starting at its fixed cell anchor.
// Cells keep their native types so numbers land as numbers.
func (w *ExcelWriter) WriteSection(sec *schema.Section) error {
	startCol, err := excelize.ColumnNameToNumber(sec.CellCol)
	if err != nil {
		return fmt.Errorf("bad column anchor %q: %w", sec.CellCol, err)
	}
	for r, row := range sec.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(startCol+c, sec.CellRow+r)
			if err != nil {
				return fmt.Errorf("bad cell coordinates for %s: %w", sec.Name, err)
			}
			if err := w.file.SetCellValue(contract.ExcelSheetName, cell, value); err != nil {
				return fmt.Errorf("cannot write cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// Save writes the workbook back to its original path and releases it.
func (w *ExcelWriter) Save() error {
	defer func() { _ = w.file.Close() }()
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", w.path, err)
	}
	return nil
}

// Close releases the workbook without saving.
func (w *ExcelWriter) Close() error {
	return w.file.Close()
}
