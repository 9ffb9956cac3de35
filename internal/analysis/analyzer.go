package analysis

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// numericColumn pairs a column name with its accessor on a cleaned record.
type numericColumn struct {
	name string
	get  func(domain.StudentRecord) float64
}

// numericColumns lists the columns the analyzer describes and correlates,
// in report order.
var numericColumns = []numericColumn{
	{"age", func(r domain.StudentRecord) float64 { return float64(r.Age) }},
	{"study_hours", func(r domain.StudentRecord) float64 { return r.StudyHours }},
	{"quiz_participation", func(r domain.StudentRecord) float64 { return r.QuizParticipation }},
	{"past_performance", func(r domain.StudentRecord) float64 { return r.PastPerformance }},
	{"study_hours_norm", func(r domain.StudentRecord) float64 { return r.StudyHoursNorm }},
	{"engagement", func(r domain.StudentRecord) float64 { return r.Engagement }},
}

// Analyzer computes descriptive statistics, correlations and group
// aggregates over cleaned student records.
type Analyzer struct {
	logger *slog.Logger
}

// New creates an analyzer. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze builds the full analysis report for a set of cleaned records.
func (a *Analyzer) Analyze(ctx context.Context, records []domain.StudentRecord) (*domain.AnalysisReport, error) {
	a.logger.InfoContext(ctx, "analyzing student records",
		slog.Int("record_count", len(records)))

	if len(records) == 0 {
		return nil, errors.NewValidationError("no records to analyze", nil)
	}

	report := &domain.AnalysisReport{
		RowCount:    len(records),
		Columns:     a.describeColumns(records),
		Groups:      a.groupAggregates(records),
		GeneratedAt: time.Now().UTC(),
	}
	report.CorrColumns, report.Correlations = a.correlationMatrix(records)

	a.logger.InfoContext(ctx, "analysis complete",
		slog.Int("columns", len(report.Columns)),
		slog.Int("groups", len(report.Groups)))

	return report, nil
}

// describeColumns computes the five-number summary plus mean, standard
// deviation and shape statistics for every numeric column.
func (a *Analyzer) describeColumns(records []domain.StudentRecord) []domain.ColumnSummary {
	summaries := make([]domain.ColumnSummary, 0, len(numericColumns))
	for _, col := range numericColumns {
		values := columnValues(records, col.get)
		summaries = append(summaries, describe(col.name, values))
	}
	return summaries
}

// describe computes descriptive statistics for one sorted copy of a column.
func describe(name string, values []float64) domain.ColumnSummary {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	summary := domain.ColumnSummary{
		Column: name,
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.LinInterp, sorted, nil),
		Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.LinInterp, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	if len(values) > 1 {
		summary.StdDev = stat.StdDev(values, nil)
		// NaN for constant columns; the Stat type carries that as null
		summary.Skewness = domain.Stat(stat.Skew(values, nil))
		summary.Kurtosis = domain.Stat(stat.ExKurtosis(values, nil))
	}
	return summary
}

// correlationMatrix computes pairwise Pearson correlations between the
// numeric columns. The matrix is symmetric with a unit diagonal. A pair
// involving a zero-variance column has no defined correlation; the cell
// stays NaN and serializes as null.
func (a *Analyzer) correlationMatrix(records []domain.StudentRecord) ([]string, [][]domain.Stat) {
	names := make([]string, len(numericColumns))
	columns := make([][]float64, len(numericColumns))
	for i, col := range numericColumns {
		names[i] = col.name
		columns[i] = columnValues(records, col.get)
	}

	matrix := make([][]domain.Stat, len(columns))
	for i := range columns {
		matrix[i] = make([]domain.Stat, len(columns))
		for j := range columns {
			if i == j {
				matrix[i][j] = 1
				continue
			}
			if j < i {
				matrix[i][j] = matrix[j][i]
				continue
			}
			matrix[i][j] = domain.Stat(stat.Correlation(columns[i], columns[j], nil))
		}
	}
	return names, matrix
}

// groupAggregates computes per-category means and completion rates for the
// gender, age_bucket and course_completion groupings.
func (a *Analyzer) groupAggregates(records []domain.StudentRecord) []domain.GroupSummary {
	groupings := []struct {
		name string
		key  func(domain.StudentRecord) string
	}{
		{"gender", func(r domain.StudentRecord) string { return string(r.Gender) }},
		{"age_bucket", func(r domain.StudentRecord) string { return r.AgeBucket }},
		{"course_completion", func(r domain.StudentRecord) string { return strconv.FormatBool(r.CourseCompletion) }},
	}

	var summaries []domain.GroupSummary
	for _, g := range groupings {
		byKey := make(map[string][]domain.StudentRecord)
		for _, r := range records {
			byKey[g.key(r)] = append(byKey[g.key(r)], r)
		}

		keys := make([]string, 0, len(byKey))
		for k := range byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			members := byKey[k]
			summaries = append(summaries, domain.GroupSummary{
				GroupBy:         g.name,
				Group:           k,
				Count:           len(members),
				MeanEngagement:  meanOf(members, func(r domain.StudentRecord) float64 { return r.Engagement }),
				MeanPerformance: meanOf(members, func(r domain.StudentRecord) float64 { return r.PastPerformance }),
				CompletionRate:  completionRate(members),
			})
		}
	}
	return summaries
}

func columnValues(records []domain.StudentRecord, get func(domain.StudentRecord) float64) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = get(r)
	}
	return values
}

func meanOf(records []domain.StudentRecord, get func(domain.StudentRecord) float64) float64 {
	return stat.Mean(columnValues(records, get), nil)
}

func completionRate(records []domain.StudentRecord) float64 {
	completed := 0
	for _, r := range records {
		if r.CourseCompletion {
			completed++
		}
	}
	return float64(completed) / float64(len(records))
}
