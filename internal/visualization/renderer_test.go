package visualization

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupipe/pkg/contracts/domain"
)

func testRecords() []domain.StudentRecord {
	specs := []struct {
		id        string
		gender    domain.Gender
		age       int
		hours     float64
		quiz      float64
		perf      float64
		completed bool
	}{
		{"S001", domain.GenderMale, 21, 2.5, 55, 48, false},
		{"S002", domain.GenderFemale, 23, 6.0, 72, 61, true},
		{"S003", domain.GenderMale, 27, 9.5, 81, 74, true},
		{"S004", domain.GenderFemale, 33, 12.0, 88, 69, true},
		{"S005", domain.GenderUnknown, 41, 15.5, 93, 83, false},
		{"S006", domain.GenderMale, 47, 18.0, 97, 91, true},
	}

	records := make([]domain.StudentRecord, 0, len(specs))
	for _, s := range specs {
		records = append(records, domain.StudentRecord{
			StudentID:         s.id,
			FirstName:         "Niamh",
			LastName:          "Kelly",
			Gender:            s.gender,
			Email:             domain.StudentEmail(s.id, "student.ncirl.ie"),
			Age:               s.age,
			StudyHours:        s.hours,
			QuizParticipation: s.quiz,
			PastPerformance:   s.perf,
			CourseCompletion:  s.completed,
			StudyHoursNorm:    s.hours / 20,
			Engagement:        0.6*(s.hours/20) + 0.4*(s.quiz/100),
			AgeBucket:         domain.BucketAge(s.age),
		})
	}
	return records
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderAll(t *testing.T) {
	renderer := New(DefaultConfig(), nil)
	outDir := t.TempDir()

	paths, err := renderer.RenderAll(context.Background(), testRecords(), outDir)
	require.NoError(t, err)
	// 5 fixed charts plus one histogram per numeric column
	require.Len(t, paths, 5+len(histogramColumns))

	for _, p := range paths {
		assertPNG(t, p)
	}

	assert.FileExists(t, filepath.Join(outDir, "scatter_hours_performance.png"))
	assert.FileExists(t, filepath.Join(outDir, "hist_quiz_participation.png"))
	assert.FileExists(t, filepath.Join(outDir, "stacked_gender_completion.png"))
}

func TestRenderAll_EmptyInput(t *testing.T) {
	renderer := New(DefaultConfig(), nil)

	_, err := renderer.RenderAll(context.Background(), nil, t.TempDir())
	assert.Error(t, err)
}

func TestScatterHoursPerformance(t *testing.T) {
	renderer := New(DefaultConfig(), nil)
	path := filepath.Join(t.TempDir(), "scatter.png")

	require.NoError(t, renderer.ScatterHoursPerformance(testRecords(), path))
	assertPNG(t, path)
}

func TestScatterHoursPerformance_SingleOutcome(t *testing.T) {
	renderer := New(DefaultConfig(), nil)
	records := testRecords()
	for i := range records {
		records[i].CourseCompletion = true
	}
	path := filepath.Join(t.TempDir(), "scatter.png")

	require.NoError(t, renderer.ScatterHoursPerformance(records, path))
	assertPNG(t, path)
}

func TestColumnHistogram(t *testing.T) {
	renderer := New(Config{WidthInches: 6, HeightInches: 4, HistogramBins: 5}, nil)
	path := filepath.Join(t.TempDir(), "hist.png")

	err := renderer.ColumnHistogram(testRecords(), "study_hours",
		func(r domain.StudentRecord) float64 { return r.StudyHours }, path)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestEngagementBars(t *testing.T) {
	renderer := New(DefaultConfig(), nil)
	path := filepath.Join(t.TempDir(), "bars.png")

	require.NoError(t, renderer.EngagementBars(testRecords(), path))
	assertPNG(t, path)
}

func TestBoxplots(t *testing.T) {
	renderer := New(DefaultConfig(), nil)
	path := filepath.Join(t.TempDir(), "box.png")

	require.NoError(t, renderer.Boxplots(testRecords(), path))
	assertPNG(t, path)
}

func TestStackedCompletion(t *testing.T) {
	renderer := New(DefaultConfig(), nil)
	path := filepath.Join(t.TempDir(), "stacked.png")

	err := renderer.StackedCompletion(testRecords(), "age_bucket",
		func(r domain.StudentRecord) string { return r.AgeBucket }, path)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestNew_Defaults(t *testing.T) {
	renderer := New(Config{}, nil)

	assert.Equal(t, 8.0, renderer.cfg.WidthInches)
	assert.Equal(t, 6.0, renderer.cfg.HeightInches)
	assert.Equal(t, 20, renderer.cfg.HistogramBins)
}
