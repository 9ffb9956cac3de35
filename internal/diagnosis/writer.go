package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// WriteJSON writes a diagnosis report to a JSON file.
func (d *Diagnoser) WriteJSON(ctx context.Context, path string, report *domain.DiagnosisReport) error {
	d.logger.InfoContext(ctx, "writing diagnosis report to JSON",
		slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create diagnosis JSON file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return errors.NewStorageError("failed to encode diagnosis report to JSON", err)
	}

	return nil
}

// FormatText renders a human-readable view of a diagnosis report.
func FormatText(report *domain.DiagnosisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s\n", report.Source)
	fmt.Fprintf(&b, "Rows: %d  Columns: %d\n\n", report.RowCount, report.ColumnCount)

	for _, col := range report.Columns {
		fmt.Fprintf(&b, "%-20s type=%-7s missing=%d (%.1f%%) unique=%d",
			col.Column, col.Type, col.MissingCount, col.MissingPercent, col.UniqueCount)
		if col.Mean != nil {
			fmt.Fprintf(&b, " min=%.2f max=%.2f mean=%.2f median=%.2f",
				*col.Min, *col.Max, *col.Mean, *col.Median)
		}
		if col.OutlierCount != nil && *col.OutlierCount > 0 {
			fmt.Fprintf(&b, " outliers=%d", *col.OutlierCount)
		}
		b.WriteByte('\n')
	}

	if audit := report.QuizAudit; audit != nil {
		fmt.Fprintf(&b, "\n%s format audit: %d of %d values are not plain numbers\n",
			audit.Column, audit.NonNumericCount, audit.TotalRows)
		if len(audit.Examples) > 0 {
			fmt.Fprintf(&b, "  examples: %s\n", strings.Join(audit.Examples, ", "))
		}
		fmt.Fprintf(&b, "  range %.1f to %.1f, mean %.1f, median %.1f\n",
			audit.Min, audit.Max, audit.Mean, audit.Median)
	}

	return b.String()
}
