package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Stat is a float64 statistic that may be undefined. NaN and infinities
// marshal as JSON null, matching how pandas serializes an undefined
// correlation or skew instead of failing the whole report.
type Stat float64

// MarshalJSON renders undefined values as null
func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON reads null back as NaN
func (s *Stat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Stat(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// Defined reports whether the statistic holds a usable value
func (s Stat) Defined() bool {
	f := float64(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CleaningOp identifies a kind of repair the cleaner performed
type CleaningOp string

const (
	OpDuplicateRemoved CleaningOp = "duplicate_removed"
	OpValueImputed     CleaningOp = "value_imputed"
	OpValueClipped     CleaningOp = "value_clipped"
	OpValueCoerced     CleaningOp = "value_coerced"
	OpEmailRebuilt     CleaningOp = "email_rebuilt"
	OpGenderDefaulted  CleaningOp = "gender_defaulted"
	OpRowDropped       CleaningOp = "row_dropped"
)

// CleaningEntry is a single audit entry for one repaired cell or row
type CleaningEntry struct {
	StudentID string     `json:"student_id,omitempty"`
	Column    string     `json:"column,omitempty"`
	Operation CleaningOp `json:"operation"`
	Original  string     `json:"original,omitempty"`
	Repaired  string     `json:"repaired,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// CleaningReport summarises a cleaner run
type CleaningReport struct {
	InputRows   int                `json:"input_rows"`
	OutputRows  int                `json:"output_rows"`
	Operations  map[CleaningOp]int `json:"operations"`
	Entries     []CleaningEntry    `json:"entries,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// ColumnSummary holds descriptive statistics for one numeric column
type ColumnSummary struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Skewness Stat    `json:"skewness"`
	Kurtosis Stat    `json:"kurtosis"`
}

// GroupSummary holds aggregates for one category of a grouping column
type GroupSummary struct {
	GroupBy        string  `json:"group_by"`
	Group          string  `json:"group"`
	Count          int     `json:"count"`
	MeanEngagement float64 `json:"mean_engagement"`
	MeanPerformance float64 `json:"mean_performance"`
	CompletionRate float64 `json:"completion_rate"`
}

// AnalysisReport is the analyzer's full output contract
type AnalysisReport struct {
	RowCount     int             `json:"row_count"`
	Columns      []ColumnSummary `json:"columns"`
	Correlations [][]Stat        `json:"correlations"`
	CorrColumns  []string        `json:"correlation_columns"`
	Groups       []GroupSummary  `json:"groups"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// ColumnDiagnosis profiles one column of an arbitrary student CSV
type ColumnDiagnosis struct {
	Column         string  `json:"column"`
	Type           string  `json:"type"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
	UniqueCount    int     `json:"unique_count"`

	// Numeric columns only
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Mean         *float64 `json:"mean,omitempty"`
	Median       *float64 `json:"median,omitempty"`
	OutlierCount *int     `json:"outlier_count,omitempty"`
}

// FormatAudit reports non-numeric values found in a nominally numeric column
type FormatAudit struct {
	Column          string   `json:"column"`
	TotalRows       int      `json:"total_rows"`
	NonNumericCount int      `json:"non_numeric_count"`
	Examples        []string `json:"examples,omitempty"`
	Min             float64  `json:"min"`
	Max             float64  `json:"max"`
	Mean            float64  `json:"mean"`
	Median          float64  `json:"median"`
}

// DiagnosisReport is the diagnoser's full output contract
type DiagnosisReport struct {
	Source      string            `json:"source"`
	RowCount    int               `json:"row_count"`
	ColumnCount int               `json:"column_count"`
	Columns     []ColumnDiagnosis `json:"columns"`
	QuizAudit   *FormatAudit      `json:"quiz_audit,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}
