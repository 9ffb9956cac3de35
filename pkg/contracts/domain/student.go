package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Gender represents a student's recorded gender
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// Age bucket labels used by the cleaner and downstream reports
const (
	AgeBucket19To24 = "19-24"
	AgeBucket25To34 = "25-34"
	AgeBucket35To45 = "35-45"
	AgeBucket46Plus = "46+"
)

// RawHeader is the column order of the raw (generator output) CSV
var RawHeader = []string{
	"student_id",
	"first_name",
	"last_name",
	"gender",
	"email",
	"age",
	"study_hours",
	"quiz_participation",
	"past_performance",
	"course_completion",
}

// CleanHeader is the column order of the processed (cleaner output) CSV.
// It extends RawHeader with the derived columns.
var CleanHeader = append(append([]string{}, RawHeader...),
	"study_hours_norm",
	"engagement",
	"age_bucket",
)

// RawRecord is a single row of the raw CSV with every field kept as the
// literal string that was read. Messy values ("unknown", "85.3%", "Yes")
// survive here untouched; the cleaner owns their interpretation.
type RawRecord struct {
	StudentID         string `json:"student_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Gender            string `json:"gender"`
	Email             string `json:"email"`
	Age               string `json:"age"`
	StudyHours        string `json:"study_hours"`
	QuizParticipation string `json:"quiz_participation"`
	PastPerformance   string `json:"past_performance"`
	CourseCompletion  string `json:"course_completion"`
}

// Row returns the record as a CSV row in RawHeader order.
func (r RawRecord) Row() []string {
	return []string{
		r.StudentID,
		r.FirstName,
		r.LastName,
		r.Gender,
		r.Email,
		r.Age,
		r.StudyHours,
		r.QuizParticipation,
		r.PastPerformance,
		r.CourseCompletion,
	}
}

// RawRecordFromRow builds a RawRecord from a CSV row in RawHeader order.
// Short rows are padded with empty fields; extra columns are ignored so the
// cleaner can be re-run on its own output.
func RawRecordFromRow(row []string) RawRecord {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return RawRecord{
		StudentID:         get(0),
		FirstName:         get(1),
		LastName:          get(2),
		Gender:            get(3),
		Email:             get(4),
		Age:               get(5),
		StudyHours:        get(6),
		QuizParticipation: get(7),
		PastPerformance:   get(8),
		CourseCompletion:  get(9),
	}
}

// StudentRecord is a fully typed, cleaned student row. Every record the
// cleaner writes satisfies the validation tags.
type StudentRecord struct {
	StudentID         string  `json:"student_id" validate:"required"`
	FirstName         string  `json:"first_name" validate:"required"`
	LastName          string  `json:"last_name" validate:"required"`
	Gender            Gender  `json:"gender" validate:"required,oneof=Male Female Unknown"`
	Email             string  `json:"email" validate:"required,email"`
	Age               int     `json:"age" validate:"gte=19,lte=60"`
	StudyHours        float64 `json:"study_hours" validate:"gte=0"`
	QuizParticipation float64 `json:"quiz_participation" validate:"gte=0,lte=100"`
	PastPerformance   float64 `json:"past_performance" validate:"gte=0,lte=100"`
	CourseCompletion  bool    `json:"course_completion"`

	// Derived columns, recomputed on every cleaner run
	StudyHoursNorm float64 `json:"study_hours_norm" validate:"gte=0,lte=1"`
	Engagement     float64 `json:"engagement" validate:"gte=0,lte=1"`
	AgeBucket      string  `json:"age_bucket" validate:"required,oneof=19-24 25-34 35-45 46+"`
}

// Row returns the record as a CSV row in CleanHeader order. Numeric
// formatting is fixed-width so that parse/format round-trips are stable.
func (s StudentRecord) Row() []string {
	return []string{
		s.StudentID,
		s.FirstName,
		s.LastName,
		string(s.Gender),
		s.Email,
		strconv.Itoa(s.Age),
		strconv.FormatFloat(s.StudyHours, 'f', 2, 64),
		strconv.FormatFloat(s.QuizParticipation, 'f', 1, 64),
		strconv.FormatFloat(s.PastPerformance, 'f', 1, 64),
		strconv.FormatBool(s.CourseCompletion),
		strconv.FormatFloat(s.StudyHoursNorm, 'f', 4, 64),
		strconv.FormatFloat(s.Engagement, 'f', 4, 64),
		s.AgeBucket,
	}
}

// StudentRecordFromRow parses a CSV row in CleanHeader order.
func StudentRecordFromRow(row []string) (StudentRecord, error) {
	if len(row) < len(CleanHeader) {
		return StudentRecord{}, fmt.Errorf("expected %d columns, got %d", len(CleanHeader), len(row))
	}

	age, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil {
		return StudentRecord{}, fmt.Errorf("parse age %q: %w", row[5], err)
	}

	floats := make([]float64, 5)
	for i, idx := range []int{6, 7, 8, 10, 11} {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil {
			return StudentRecord{}, fmt.Errorf("parse %s %q: %w", CleanHeader[idx], row[idx], err)
		}
		floats[i] = v
	}

	completed, err := strconv.ParseBool(strings.TrimSpace(row[9]))
	if err != nil {
		return StudentRecord{}, fmt.Errorf("parse course_completion %q: %w", row[9], err)
	}

	return StudentRecord{
		StudentID:         strings.TrimSpace(row[0]),
		FirstName:         strings.TrimSpace(row[1]),
		LastName:          strings.TrimSpace(row[2]),
		Gender:            Gender(strings.TrimSpace(row[3])),
		Email:             strings.TrimSpace(row[4]),
		Age:               age,
		StudyHours:        floats[0],
		QuizParticipation: floats[1],
		PastPerformance:   floats[2],
		CourseCompletion:  completed,
		StudyHoursNorm:    floats[3],
		Engagement:        floats[4],
		AgeBucket:         strings.TrimSpace(row[12]),
	}, nil
}

// BucketAge maps an age to its categorical bucket.
func BucketAge(age int) string {
	switch {
	case age <= 24:
		return AgeBucket19To24
	case age <= 34:
		return AgeBucket25To34
	case age <= 45:
		return AgeBucket35To45
	default:
		return AgeBucket46Plus
	}
}

// StudentEmail derives the institutional email for a student id, e.g.
// "S007" with domain "student.ncirl.ie" becomes "x007@student.ncirl.ie".
// Non-digit characters in the id are ignored; ids without digits map to x000.
func StudentEmail(studentID, domain string) string {
	var digits strings.Builder
	for _, r := range studentID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	num := 0
	if digits.Len() > 0 {
		num, _ = strconv.Atoi(digits.String())
	}
	return fmt.Sprintf("x%03d@%s", num, domain)
}
