package analysis

import (
	"fmt"

	"edupipe/internal/errors"
	"edupipe/internal/exporter"
	"edupipe/pkg/contracts/domain"
)

// LoadStudents reads a cleaned student CSV from disk and parses every row
// into a typed record. The file must carry the processed header.
func LoadStudents(path string) ([]domain.StudentRecord, error) {
	header, rows, err := exporter.ReadCSV(path)
	if err != nil {
		return nil, err
	}

	if len(header) < len(domain.CleanHeader) {
		return nil, errors.NewParsingError(
			fmt.Sprintf("expected %d columns in %s, got %d", len(domain.CleanHeader), path, len(header)), nil)
	}

	records := make([]domain.StudentRecord, 0, len(rows))
	for i, row := range rows {
		record, err := domain.StudentRecordFromRow(row)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("row %d of %s", i+2, path), err)
		}
		records = append(records, record)
	}

	return records, nil
}
