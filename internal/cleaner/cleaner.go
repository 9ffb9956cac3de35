package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"

	"edupipe/internal/errors"
	"edupipe/pkg/contracts/domain"
)

// Config holds cleaning options
type Config struct {
	// Upper fence for study_hours is Q3 + IQRMultiplier*IQR
	IQRMultiplier float64
	// EmailDomain is used when rebuilding missing emails from student ids
	EmailDomain string
	// AuditEntries keeps per-cell entries in the cleaning report
	AuditEntries bool
}

// DefaultConfig returns the standard cleaning configuration
func DefaultConfig() Config {
	return Config{
		IQRMultiplier: 2.0,
		EmailDomain:   "student.ncirl.ie",
		AuditEntries:  true,
	}
}

// Cleaner repairs raw student records into validated processed records
type Cleaner struct {
	cfg      Config
	logger   *slog.Logger
	validate *validator.Validate
}

// New creates a cleaner with the given configuration
func New(logger *slog.Logger, cfg Config) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.IQRMultiplier <= 0 {
		cfg.IQRMultiplier = 2.0
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "student.ncirl.ie"
	}

	return &Cleaner{
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// working is a row mid-clean: identity fields as strings, numerics as
// float64 with NaN marking missing values.
type working struct {
	studentID  string
	firstName  string
	lastName   string
	gender     string
	email      string
	age        float64
	studyHours float64
	quiz       float64
	perf       float64
	completion bool
}

// Clean runs the full pass sequence over the raw table and returns the
// processed records together with an audit report. The sequence is
// idempotent: feeding the output back in yields an identical table.
func (c *Cleaner) Clean(ctx context.Context, raws []domain.RawRecord) ([]domain.StudentRecord, *domain.CleaningReport, error) {
	c.logger.InfoContext(ctx, "cleaning student records",
		slog.Int("input_rows", len(raws)))

	report := &domain.CleaningReport{
		InputRows:   len(raws),
		Operations:  make(map[domain.CleaningOp]int),
		GeneratedAt: time.Now().UTC(),
	}

	if len(raws) == 0 {
		return nil, nil, errors.NewValidationError("no input rows to clean", nil)
	}

	deduped := c.removeDuplicates(raws, report)
	rows := c.coerceTypes(deduped, report)
	rows = c.imputeMissing(rows, report)
	c.correctAnomalies(rows, report)
	records := c.derive(rows)

	for i := range records {
		if err := c.validate.Struct(&records[i]); err != nil {
			return nil, nil, errors.NewValidationError("cleaned record failed validation", err).
				WithContext("student_id", records[i].StudentID)
		}
	}

	report.OutputRows = len(records)

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("output_rows", len(records)),
		slog.Int("duplicates_removed", report.Operations[domain.OpDuplicateRemoved]),
		slog.Int("values_imputed", report.Operations[domain.OpValueImputed]),
		slog.Int("values_clipped", report.Operations[domain.OpValueClipped]))

	return records, report, nil
}

// removeDuplicates drops exact full-row duplicates, keeping the first
func (c *Cleaner) removeDuplicates(raws []domain.RawRecord, report *domain.CleaningReport) []domain.RawRecord {
	seen := make(map[domain.RawRecord]bool, len(raws))
	out := make([]domain.RawRecord, 0, len(raws))

	for _, r := range raws {
		if seen[r] {
			c.record(report, domain.CleaningEntry{
				StudentID: r.StudentID,
				Operation: domain.OpDuplicateRemoved,
				Reason:    "exact duplicate row",
			})
			continue
		}
		seen[r] = true
		out = append(out, r)
	}

	return out
}

// coerceTypes parses every raw cell into its working type, counting cells
// that were readable but not in canonical form
func (c *Cleaner) coerceTypes(raws []domain.RawRecord, report *domain.CleaningReport) []working {
	rows := make([]working, 0, len(raws))

	for _, r := range raws {
		w := working{
			studentID: r.StudentID,
			firstName: r.FirstName,
			lastName:  r.LastName,
			gender:    r.Gender,
			email:     r.Email,
		}

		w.age = c.coerceCell(r.StudentID, "age", r.Age, false, report)
		w.studyHours = c.coerceCell(r.StudentID, "study_hours", r.StudyHours, false, report)
		w.quiz = c.coerceCell(r.StudentID, "quiz_participation", r.QuizParticipation, true, report)
		w.perf = c.coerceCell(r.StudentID, "past_performance", r.PastPerformance, true, report)

		value, coerced := coerceBool(r.CourseCompletion)
		w.completion = value
		if coerced {
			c.count(report, domain.OpValueCoerced)
		}

		rows = append(rows, w)
	}

	return rows
}

func (c *Cleaner) coerceCell(id, column, raw string, percent bool, report *domain.CleaningReport) float64 {
	value, coerced, _ := coerceNumeric(raw, percent)
	if coerced {
		c.record(report, domain.CleaningEntry{
			StudentID: id,
			Column:    column,
			Operation: domain.OpValueCoerced,
			Original:  raw,
			Repaired:  fmt.Sprintf("%g", value),
			Reason:    "non-canonical numeric format",
		})
	}
	return value
}

// imputeMissing fills NaN numerics with column medians, rebuilds emails from
// student ids, defaults missing genders and names, and drops rows that have
// neither a student id nor an email.
func (c *Cleaner) imputeMissing(rows []working, report *domain.CleaningReport) []working {
	kept := make([]working, 0, len(rows))
	for _, w := range rows {
		if w.studentID == "" && w.email == "" {
			c.record(report, domain.CleaningEntry{
				Operation: domain.OpRowDropped,
				Reason:    "both student_id and email missing",
			})
			continue
		}
		kept = append(kept, w)
	}

	medAge := median(collect(kept, func(w working) float64 { return w.age }))
	medHours := median(collect(kept, func(w working) float64 { return w.studyHours }))
	medQuiz := median(collect(kept, func(w working) float64 { return w.quiz }))
	medPerf := median(collect(kept, func(w working) float64 { return w.perf }))

	for i := range kept {
		w := &kept[i]

		if math.IsNaN(w.age) {
			w.age = math.Round(medAge)
			c.imputed(report, w.studentID, "age", w.age)
		}
		if math.IsNaN(w.studyHours) {
			w.studyHours = medHours
			c.imputed(report, w.studentID, "study_hours", w.studyHours)
		}
		if math.IsNaN(w.quiz) {
			w.quiz = medQuiz
			c.imputed(report, w.studentID, "quiz_participation", w.quiz)
		}
		if math.IsNaN(w.perf) {
			w.perf = medPerf
			c.imputed(report, w.studentID, "past_performance", w.perf)
		}

		if w.email == "" {
			w.email = domain.StudentEmail(w.studentID, c.cfg.EmailDomain)
			c.record(report, domain.CleaningEntry{
				StudentID: w.studentID,
				Column:    "email",
				Operation: domain.OpEmailRebuilt,
				Repaired:  w.email,
				Reason:    "missing email rebuilt from student_id",
			})
		}
		if w.gender == "" {
			w.gender = string(domain.GenderUnknown)
			c.count(report, domain.OpGenderDefaulted)
		}
		if w.firstName == "" {
			w.firstName = "Unknown"
			c.imputedText(report, w.studentID, "first_name")
		}
		if w.lastName == "" {
			w.lastName = "Unknown"
			c.imputedText(report, w.studentID, "last_name")
		}

		// Settle on output precision before clipping and derivation so a
		// second run over the written CSV sees exactly the same values.
		w.studyHours = round2(w.studyHours)
		w.quiz = round1(w.quiz)
		w.perf = round1(w.perf)
	}

	return kept
}

// correctAnomalies clips out-of-range values: study_hours to [0, Q3+k*IQR],
// the percentage columns to [0, 100]
func (c *Cleaner) correctAnomalies(rows []working, report *domain.CleaningReport) {
	hours := collect(rows, func(w working) float64 { return w.studyHours })
	q1 := quantile(hours, 0.25)
	q3 := quantile(hours, 0.75)
	upper := round2(q3 + c.cfg.IQRMultiplier*(q3-q1))

	for i := range rows {
		w := &rows[i]
		w.studyHours = c.clip(report, w.studentID, "study_hours", w.studyHours, 0, upper)
		w.quiz = c.clip(report, w.studentID, "quiz_participation", w.quiz, 0, 100)
		w.perf = c.clip(report, w.studentID, "past_performance", w.perf, 0, 100)
	}
}

func (c *Cleaner) clip(report *domain.CleaningReport, id, column string, v, lo, hi float64) float64 {
	clipped := v
	if clipped < lo {
		clipped = lo
	}
	if clipped > hi {
		clipped = hi
	}
	if clipped != v {
		c.record(report, domain.CleaningEntry{
			StudentID: id,
			Column:    column,
			Operation: domain.OpValueClipped,
			Original:  fmt.Sprintf("%g", v),
			Repaired:  fmt.Sprintf("%g", clipped),
			Reason:    fmt.Sprintf("outside [%g, %g]", lo, hi),
		})
	}
	return clipped
}

// derive computes the normalized study hours, the engagement score and the
// age bucket for every row
func (c *Cleaner) derive(rows []working) []domain.StudentRecord {
	hours := collect(rows, func(w working) float64 { return w.studyHours })
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range hours {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo

	records := make([]domain.StudentRecord, len(rows))
	for i, w := range rows {
		norm := 0.0
		if span > 0 {
			norm = (w.studyHours - lo) / span
		}

		records[i] = domain.StudentRecord{
			StudentID:         w.studentID,
			FirstName:         w.firstName,
			LastName:          w.lastName,
			Gender:            domain.Gender(w.gender),
			Email:             w.email,
			Age:               int(w.age),
			StudyHours:        w.studyHours,
			QuizParticipation: w.quiz,
			PastPerformance:   w.perf,
			CourseCompletion:  w.completion,
			StudyHoursNorm:    norm,
			Engagement:        0.6*norm + 0.4*w.quiz/100,
			AgeBucket:         domain.BucketAge(int(w.age)),
		}
	}

	return records
}

func (c *Cleaner) imputed(report *domain.CleaningReport, id, column string, value float64) {
	c.record(report, domain.CleaningEntry{
		StudentID: id,
		Column:    column,
		Operation: domain.OpValueImputed,
		Repaired:  fmt.Sprintf("%g", value),
		Reason:    "missing value filled with column median",
	})
}

func (c *Cleaner) imputedText(report *domain.CleaningReport, id, column string) {
	c.record(report, domain.CleaningEntry{
		StudentID: id,
		Column:    column,
		Operation: domain.OpValueImputed,
		Repaired:  "Unknown",
		Reason:    "missing name defaulted",
	})
}

func (c *Cleaner) count(report *domain.CleaningReport, op domain.CleaningOp) {
	report.Operations[op]++
}

func (c *Cleaner) record(report *domain.CleaningReport, entry domain.CleaningEntry) {
	report.Operations[entry.Operation]++
	if c.cfg.AuditEntries {
		report.Entries = append(report.Entries, entry)
	}
}

// collect gathers non-NaN values of one column
func collect(rows []working, get func(working) float64) []float64 {
	out := make([]float64, 0, len(rows))
	for _, w := range rows {
		if v := get(w); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// quantile returns the p-quantile of values with linear interpolation
func quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

func median(values []float64) float64 {
	return quantile(values, 0.5)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
