package diagnosis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// maxAuditExamples caps how many offending values the format audit keeps.
const maxAuditExamples = 5

// Diagnoser profiles student CSV files.
type Diagnoser struct {
	logger *slog.Logger
}

// New creates a diagnoser. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Diagnoser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnoser{logger: logger}
}

// Diagnose loads a CSV file and profiles every column.
func (d *Diagnoser) Diagnose(ctx context.Context, path string) (*domain.DiagnosisReport, error) {
	d.logger.InfoContext(ctx, "diagnosing CSV file", slog.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewNotFoundError(path)
	}
	defer file.Close()

	df := dataframe.ReadCSV(file,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read %s", path), df.Err)
	}
	if df.Nrow() == 0 {
		return nil, errors.NewValidationError(fmt.Sprintf("%s holds no data rows", path), nil)
	}

	report := &domain.DiagnosisReport{
		Source:      path,
		RowCount:    df.Nrow(),
		ColumnCount: df.Ncol(),
		GeneratedAt: time.Now().UTC(),
	}

	types := df.Types()
	for i, name := range df.Names() {
		report.Columns = append(report.Columns, diagnoseColumn(name, types[i], df.Col(name).Records(), df.Nrow()))
		if name == "quiz_participation" {
			audit := auditFormats(name, df.Col(name).Records())
			report.QuizAudit = &audit
		}
	}

	d.logger.InfoContext(ctx, "diagnosis complete",
		slog.Int("rows", report.RowCount),
		slog.Int("columns", report.ColumnCount))

	return report, nil
}

// diagnoseColumn profiles one column from its raw string records.
func diagnoseColumn(name string, colType series.Type, records []string, rowCount int) domain.ColumnDiagnosis {
	diag := domain.ColumnDiagnosis{
		Column: name,
		Type:   string(colType),
	}

	unique := make(map[string]bool)
	var numeric []float64
	for _, rec := range records {
		if isMissing(rec) {
			diag.MissingCount++
			continue
		}
		unique[rec] = true
		if v, err := strconv.ParseFloat(strings.TrimSpace(rec), 64); err == nil {
			numeric = append(numeric, v)
		}
	}
	diag.UniqueCount = len(unique)
	diag.MissingPercent = 100 * float64(diag.MissingCount) / float64(rowCount)

	if colType == series.Float || colType == series.Int {
		if len(numeric) > 0 {
			sorted := append([]float64{}, numeric...)
			sort.Float64s(sorted)

			diag.Min = ptr(sorted[0])
			diag.Max = ptr(sorted[len(sorted)-1])
			diag.Mean = ptr(stat.Mean(numeric, nil))
			diag.Median = ptr(stat.Quantile(0.5, stat.LinInterp, sorted, nil))
			diag.OutlierCount = ptr(countOutliers(sorted))
		}
	}

	return diag
}

// countOutliers counts values outside the 1.5 IQR fences of a sorted sample.
func countOutliers(sorted []float64) int {
	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	count := 0
	for _, v := range sorted {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

// auditFormats reports how many values in a nominally numeric column do not
// parse as plain numbers, with a sample of the offenders.
func auditFormats(name string, records []string) domain.FormatAudit {
	audit := domain.FormatAudit{
		Column:    name,
		TotalRows: len(records),
	}

	var numeric []float64
	for _, rec := range records {
		if isMissing(rec) {
			continue
		}
		trimmed := strings.TrimSpace(rec)
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			numeric = append(numeric, v)
			continue
		}
		audit.NonNumericCount++
		if len(audit.Examples) < maxAuditExamples {
			audit.Examples = append(audit.Examples, trimmed)
		}
		// Salvage percent-suffixed values for the range statistics
		if v, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64); err == nil {
			numeric = append(numeric, v)
		}
	}

	if len(numeric) > 0 {
		sorted := append([]float64{}, numeric...)
		sort.Float64s(sorted)
		audit.Min = sorted[0]
		audit.Max = sorted[len(sorted)-1]
		audit.Mean = stat.Mean(numeric, nil)
		audit.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	}

	return audit
}

// isMissing reports whether a raw cell represents a missing value. Gota
// reads empty numeric cells back as "NaN".
func isMissing(rec string) bool {
	trimmed := strings.TrimSpace(rec)
	return trimmed == "" || trimmed == "NaN"
}

func ptr[T any](v T) *T {
	return &v
}
