package analysis

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"edupipe/internal/errors"
	"edupipe/internal/exporter"
	"edupipe/pkg/contracts/domain"
)

var summaryHeader = []string{
	"column", "count", "mean", "std", "min", "q1", "median", "q3", "max", "skewness", "kurtosis",
}

// WriteCSV writes the per-column statistics table to a CSV file.
func (a *Analyzer) WriteCSV(ctx context.Context, path string, report *domain.AnalysisReport) error {
	a.logger.InfoContext(ctx, "writing summary statistics to CSV",
		slog.String("path", path),
		slog.Int("column_count", len(report.Columns)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create summary CSV file", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(summaryHeader); err != nil {
		return errors.NewStorageError("failed to write summary CSV header", err)
	}

	for _, col := range report.Columns {
		if err := writer.Write(summaryRow(col)); err != nil {
			return errors.NewStorageError("failed to write summary CSV row", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the full analysis report, including correlations and
// group aggregates, to a JSON file.
func (a *Analyzer) WriteJSON(ctx context.Context, path string, report *domain.AnalysisReport) error {
	a.logger.InfoContext(ctx, "writing analysis report to JSON",
		slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create summary JSON file", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return errors.NewStorageError("failed to encode analysis report to JSON", err)
	}

	return nil
}

// WriteWorkbook writes the report to a three-sheet xlsx workbook with
// statistics, correlations and group aggregates.
func (a *Analyzer) WriteWorkbook(ctx context.Context, path string, report *domain.AnalysisReport) error {
	a.logger.InfoContext(ctx, "writing analysis workbook",
		slog.String("path", path))

	sheets := []exporter.Sheet{
		{Name: "Statistics", Rows: statisticsRows(report)},
		{Name: "Correlations", Rows: correlationRows(report)},
		{Name: "Groups", Rows: groupRows(report)},
	}
	return exporter.WriteWorkbook(path, sheets)
}

func summaryRow(col domain.ColumnSummary) []string {
	return []string{
		col.Column,
		strconv.Itoa(col.Count),
		formatStat(col.Mean),
		formatStat(col.StdDev),
		formatStat(col.Min),
		formatStat(col.Q1),
		formatStat(col.Median),
		formatStat(col.Q3),
		formatStat(col.Max),
		formatStat(float64(col.Skewness)),
		formatStat(float64(col.Kurtosis)),
	}
}

// formatStat renders a statistic for CSV output; undefined values become
// empty cells, as pandas writes them.
func formatStat(v float64) string {
	if !domain.Stat(v).Defined() {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func statisticsRows(report *domain.AnalysisReport) [][]interface{} {
	rows := [][]interface{}{toCells(summaryHeader)}
	for _, col := range report.Columns {
		rows = append(rows, []interface{}{
			col.Column, col.Count, col.Mean, col.StdDev,
			col.Min, col.Q1, col.Median, col.Q3, col.Max,
			statCell(col.Skewness), statCell(col.Kurtosis),
		})
	}
	return rows
}

func correlationRows(report *domain.AnalysisReport) [][]interface{} {
	header := append([]string{""}, report.CorrColumns...)
	rows := [][]interface{}{toCells(header)}
	for i, name := range report.CorrColumns {
		row := make([]interface{}, 0, len(report.CorrColumns)+1)
		row = append(row, name)
		for _, v := range report.Correlations[i] {
			row = append(row, statCell(v))
		}
		rows = append(rows, row)
	}
	return rows
}

// statCell converts a statistic to a workbook cell value. Undefined values
// become empty cells; excelize cannot store NaN in a sheet.
func statCell(v domain.Stat) interface{} {
	if !v.Defined() {
		return nil
	}
	return float64(v)
}

func groupRows(report *domain.AnalysisReport) [][]interface{} {
	rows := [][]interface{}{toCells([]string{
		"group_by", "group", "count", "mean_engagement", "mean_performance", "completion_rate",
	})}
	for _, g := range report.Groups {
		rows = append(rows, []interface{}{
			g.GroupBy, g.Group, g.Count,
			g.MeanEngagement, g.MeanPerformance, g.CompletionRate,
		})
	}
	return rows
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// FormatText renders a short human-readable view of the report for stdout.
func FormatText(report *domain.AnalysisReport) string {
	out := fmt.Sprintf("Analyzed %d records across %d numeric columns\n",
		report.RowCount, len(report.Columns))
	for _, col := range report.Columns {
		out += fmt.Sprintf("  %-20s mean=%.2f std=%.2f min=%.2f median=%.2f max=%.2f\n",
			col.Column, col.Mean, col.StdDev, col.Min, col.Median, col.Max)
	}
	return out
}
