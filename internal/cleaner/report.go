package cleaner

import (
	"encoding/json"
	"os"
	"path/filepath"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// WriteReport writes a cleaning report to a JSON file.
func WriteReport(path string, report *domain.CleaningReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for cleaning report", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create cleaning report file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return errors.NewStorageError("failed to encode cleaning report to JSON", err)
	}

	return nil
}
