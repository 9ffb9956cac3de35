package analysis

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"edupipe/pkg/contracts/domain"
)

func testRecord(id string, gender domain.Gender, age int, hours, quiz, perf float64, completed bool) domain.StudentRecord {
	return domain.StudentRecord{
		StudentID:         id,
		FirstName:         "Aoife",
		LastName:          "Byrne",
		Gender:            gender,
		Email:             domain.StudentEmail(id, "student.ncirl.ie"),
		Age:               age,
		StudyHours:        hours,
		QuizParticipation: quiz,
		PastPerformance:   perf,
		CourseCompletion:  completed,
		StudyHoursNorm:    hours / 10,
		Engagement:        0.6*(hours/10) + 0.4*(quiz/100),
		AgeBucket:         domain.BucketAge(age),
	}
}

func testRecords() []domain.StudentRecord {
	return []domain.StudentRecord{
		testRecord("S001", domain.GenderMale, 21, 2, 60, 20, true),
		testRecord("S002", domain.GenderMale, 23, 4, 70, 40, false),
		testRecord("S003", domain.GenderFemale, 28, 6, 80, 60, true),
		testRecord("S004", domain.GenderFemale, 40, 8, 90, 80, true),
	}
}

func TestAnalyze_ColumnStatistics(t *testing.T) {
	analyzer := New(nil)

	report, err := analyzer.Analyze(context.Background(), testRecords())
	require.NoError(t, err)
	require.Equal(t, 4, report.RowCount)

	byName := make(map[string]domain.ColumnSummary)
	for _, col := range report.Columns {
		byName[col.Column] = col
	}

	hours, ok := byName["study_hours"]
	require.True(t, ok)
	assert.Equal(t, 4, hours.Count)
	assert.InDelta(t, 5.0, hours.Mean, 1e-9)
	assert.InDelta(t, 2.0, hours.Min, 1e-9)
	assert.InDelta(t, 3.0, hours.Q1, 1e-9)
	assert.InDelta(t, 5.0, hours.Median, 1e-9)
	assert.InDelta(t, 7.0, hours.Q3, 1e-9)
	assert.InDelta(t, 8.0, hours.Max, 1e-9)
	assert.InDelta(t, 2.581988897, hours.StdDev, 1e-6)
	assert.InDelta(t, 0.0, float64(hours.Skewness), 1e-9)
}

func TestAnalyze_CorrelationMatrix(t *testing.T) {
	analyzer := New(nil)

	report, err := analyzer.Analyze(context.Background(), testRecords())
	require.NoError(t, err)
	require.Len(t, report.CorrColumns, len(report.Correlations))

	idx := make(map[string]int)
	for i, name := range report.CorrColumns {
		idx[name] = i
	}

	i, j := idx["study_hours"], idx["past_performance"]
	// past_performance is a linear function of study_hours in the fixture
	assert.InDelta(t, 1.0, float64(report.Correlations[i][j]), 1e-9)
	assert.InDelta(t, float64(report.Correlations[i][j]), float64(report.Correlations[j][i]), 1e-12)

	for k := range report.Correlations {
		assert.InDelta(t, 1.0, float64(report.Correlations[k][k]), 1e-12)
	}
}

func TestAnalyze_GroupAggregates(t *testing.T) {
	analyzer := New(nil)

	report, err := analyzer.Analyze(context.Background(), testRecords())
	require.NoError(t, err)

	find := func(groupBy, group string) *domain.GroupSummary {
		for i := range report.Groups {
			if report.Groups[i].GroupBy == groupBy && report.Groups[i].Group == group {
				return &report.Groups[i]
			}
		}
		return nil
	}

	male := find("gender", "Male")
	require.NotNil(t, male)
	assert.Equal(t, 2, male.Count)
	assert.InDelta(t, 0.5, male.CompletionRate, 1e-9)
	assert.InDelta(t, 30.0, male.MeanPerformance, 1e-9)

	completed := find("course_completion", "true")
	require.NotNil(t, completed)
	assert.Equal(t, 3, completed.Count)
	assert.InDelta(t, 1.0, completed.CompletionRate, 1e-9)

	bucket := find("age_bucket", domain.AgeBucket19To24)
	require.NotNil(t, bucket)
	assert.Equal(t, 2, bucket.Count)
}

func TestWriteOutputs_SingleRecord(t *testing.T) {
	analyzer := New(nil)
	ctx := context.Background()

	report, err := analyzer.Analyze(ctx, testRecords()[:1])
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, analyzer.WriteJSON(ctx, filepath.Join(dir, "summary.json"), report))
	require.NoError(t, analyzer.WriteCSV(ctx, filepath.Join(dir, "summary.csv"), report))
	require.NoError(t, analyzer.WriteWorkbook(ctx, filepath.Join(dir, "summary.xlsx"), report))

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)

	var decoded domain.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.RowCount)
}

func TestWriteOutputs_ConstantColumn(t *testing.T) {
	analyzer := New(nil)
	ctx := context.Background()

	// Identical study hours leave the column with zero variance, so its
	// correlations and skewness are undefined
	records := testRecords()
	for i := range records {
		records[i].StudyHours = 5
		records[i].StudyHoursNorm = 0.5
	}

	report, err := analyzer.Analyze(ctx, records)
	require.NoError(t, err)

	idx := -1
	for i, name := range report.CorrColumns {
		if name == "study_hours" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.False(t, report.Correlations[idx][(idx+1)%len(report.CorrColumns)].Defined())

	dir := t.TempDir()
	require.NoError(t, analyzer.WriteJSON(ctx, filepath.Join(dir, "summary.json"), report))
	require.NoError(t, analyzer.WriteCSV(ctx, filepath.Join(dir, "summary.csv"), report))
	require.NoError(t, analyzer.WriteWorkbook(ctx, filepath.Join(dir, "summary.xlsx"), report))

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)

	var decoded domain.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.Correlations[idx][(idx+1)%len(decoded.CorrColumns)].Defined())
	assert.InDelta(t, 1.0, float64(decoded.Correlations[idx][idx]), 1e-12)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	analyzer := New(nil)

	_, err := analyzer.Analyze(context.Background(), nil)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	analyzer := New(nil)
	ctx := context.Background()

	report, err := analyzer.Analyze(ctx, testRecords())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, analyzer.WriteCSV(ctx, path, report))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(report.Columns)+1)
	assert.Equal(t, summaryHeader, rows[0])
	assert.Equal(t, "age", rows[1][0])
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	analyzer := New(nil)
	ctx := context.Background()

	report, err := analyzer.Analyze(ctx, testRecords())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, analyzer.WriteJSON(ctx, path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.AnalysisReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.RowCount, decoded.RowCount)
	assert.Len(t, decoded.Columns, len(report.Columns))
	assert.Len(t, decoded.Groups, len(report.Groups))
}

func TestWriteWorkbook(t *testing.T) {
	analyzer := New(nil)
	ctx := context.Background()

	report, err := analyzer.Analyze(ctx, testRecords())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, analyzer.WriteWorkbook(ctx, path, report))

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()

	assert.ElementsMatch(t, []string{"Statistics", "Correlations", "Groups"}, book.GetSheetList())

	cell, err := book.GetCellValue("Statistics", "A2")
	require.NoError(t, err)
	assert.Equal(t, "age", cell)
}

func TestLoadStudents(t *testing.T) {
	records := testRecords()

	path := filepath.Join(t.TempDir(), "students_cleaned.csv")
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := csv.NewWriter(file)
	require.NoError(t, writer.Write(domain.CleanHeader))
	for _, r := range records {
		require.NoError(t, writer.Write(r.Row()))
	}
	writer.Flush()
	require.NoError(t, writer.Error())
	require.NoError(t, file.Close())

	loaded, err := LoadStudents(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(records))
	assert.Equal(t, records[0].StudentID, loaded[0].StudentID)
	assert.InDelta(t, records[2].StudyHours, loaded[2].StudyHours, 1e-9)
	assert.Equal(t, records[3].AgeBucket, loaded[3].AgeBucket)
}

func TestLoadStudents_MissingFile(t *testing.T) {
	_, err := LoadStudents(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
