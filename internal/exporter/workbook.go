package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"edupipe/internal/errors"
)

// Sheet is one worksheet of an output workbook. Rows hold cell values in
// row-major order; the first row is conventionally a header.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// WriteWorkbook writes the given sheets to an xlsx workbook at path.
// Sheets are created in order; the first sheet becomes the active one.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return errors.NewValidationError("workbook requires at least one sheet", nil)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create workbook directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			// Rename the default sheet instead of creating a new one
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return errors.NewStorageError("failed to rename workbook sheet", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return errors.NewStorageError("failed to create workbook sheet", err)
			}
		}

		for rowIdx, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return errors.NewStorageError("failed to compute cell coordinates", err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return errors.NewStorageError("failed to write workbook row", err).
					WithContext("sheet", sheet.Name).
					WithContext("row", rowIdx+1)
			}
		}
	}

	idx, err := f.GetSheetIndex(sheets[0].Name)
	if err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).
			WithContext("path", path)
	}

	slog.Info("Wrote workbook",
		slog.String("path", path),
		slog.Int("sheet_count", len(sheets)))

	return nil
}
