package cleaner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edupipe/internal/generator"
	"edupipe/pkg/contracts/domain"
)

func generateRaw(t *testing.T, count int, contaminate bool) []domain.RawRecord {
	t.Helper()
	g := generator.New(nil, generator.Config{
		Count:       count,
		Seed:        123,
		EmailDomain: "student.ncirl.ie",
		Contaminate: contaminate,
	})
	records, err := g.Generate(context.Background())
	require.NoError(t, err)
	return records
}

func TestClean_NoMissingMandatoryFields(t *testing.T) {
	raws := generateRaw(t, 500, true)

	records, report, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	for _, r := range records {
		assert.NotEmpty(t, r.StudentID)
		assert.NotEmpty(t, r.FirstName)
		assert.NotEmpty(t, r.LastName)
		assert.NotEmpty(t, r.Email)
		assert.NotEmpty(t, r.AgeBucket)
		assert.Contains(t, []domain.Gender{domain.GenderMale, domain.GenderFemale, domain.GenderUnknown}, r.Gender)
	}

	assert.Equal(t, len(raws), report.InputRows)
	assert.Equal(t, len(records), report.OutputRows)
	assert.Positive(t, report.Operations[domain.OpValueImputed])
}

func TestClean_RangesAfterClipping(t *testing.T) {
	raws := generateRaw(t, 500, true)

	records, _, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.StudyHours, 0.0)
		assert.GreaterOrEqual(t, r.QuizParticipation, 0.0)
		assert.LessOrEqual(t, r.QuizParticipation, 100.0)
		assert.GreaterOrEqual(t, r.PastPerformance, 0.0)
		assert.LessOrEqual(t, r.PastPerformance, 100.0)
		assert.GreaterOrEqual(t, r.StudyHoursNorm, 0.0)
		assert.LessOrEqual(t, r.StudyHoursNorm, 1.0)
		assert.GreaterOrEqual(t, r.Engagement, 0.0)
		assert.LessOrEqual(t, r.Engagement, 1.0)
	}

	// The raw data contains 100+ hour outliers; the IQR fence must have
	// pulled the maximum well below them.
	for _, r := range records {
		assert.Less(t, r.StudyHours, 100.0)
	}
}

func TestClean_Idempotent(t *testing.T) {
	raws := generateRaw(t, 500, true)
	c := New(nil, DefaultConfig())

	first, _, err := c.Clean(context.Background(), raws)
	require.NoError(t, err)

	// Round-trip through the CSV representation, as re-running the cleaner
	// binary on its own output would.
	reparsed := make([]domain.RawRecord, len(first))
	for i, r := range first {
		reparsed[i] = domain.RawRecordFromRow(r.Row())
	}

	second, report, err := c.Clean(context.Background(), reparsed)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].Row(), second[i].Row(), "row %d (%s)", i, first[i].StudentID)
	}

	// Nothing left to repair on the second pass
	assert.Zero(t, report.Operations[domain.OpValueImputed])
	assert.Zero(t, report.Operations[domain.OpValueClipped])
	assert.Zero(t, report.Operations[domain.OpEmailRebuilt])
	assert.Zero(t, report.Operations[domain.OpDuplicateRemoved])
}

func TestClean_RemovesDuplicates(t *testing.T) {
	raws := generateRaw(t, 50, false)
	withDup := append(append([]domain.RawRecord{}, raws...), raws[0])

	records, report, err := New(nil, DefaultConfig()).Clean(context.Background(), withDup)
	require.NoError(t, err)

	assert.Len(t, records, len(raws))
	assert.Equal(t, 1, report.Operations[domain.OpDuplicateRemoved])
}

func TestClean_RebuildsEmail(t *testing.T) {
	raws := generateRaw(t, 20, false)
	raws[3].Email = ""

	records, report, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)

	assert.Equal(t, "x004@student.ncirl.ie", records[3].Email)
	assert.Equal(t, 1, report.Operations[domain.OpEmailRebuilt])
}

func TestClean_DefaultsGenderAndNames(t *testing.T) {
	raws := generateRaw(t, 20, false)
	raws[0].Gender = ""
	raws[1].FirstName = ""
	raws[2].LastName = ""

	records, report, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)

	assert.Equal(t, domain.GenderUnknown, records[0].Gender)
	assert.Equal(t, "Unknown", records[1].FirstName)
	assert.Equal(t, "Unknown", records[2].LastName)
	assert.Equal(t, 1, report.Operations[domain.OpGenderDefaulted])
}

func TestClean_DropsRowMissingBothIdentifiers(t *testing.T) {
	raws := generateRaw(t, 20, false)
	raws[5].StudentID = ""
	raws[5].Email = ""

	records, report, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)

	assert.Len(t, records, 19)
	assert.Equal(t, 1, report.Operations[domain.OpRowDropped])
}

func TestClean_ImputesWithMedian(t *testing.T) {
	raws := []domain.RawRecord{
		{StudentID: "S001", FirstName: "Aoife", LastName: "Byrne", Gender: "Female", Email: "x001@student.ncirl.ie", Age: "22", StudyHours: "8.00", QuizParticipation: "60.0", PastPerformance: "70", CourseCompletion: "true"},
		{StudentID: "S002", FirstName: "Liam", LastName: "Kelly", Gender: "Male", Email: "x002@student.ncirl.ie", Age: "23", StudyHours: "10.00", QuizParticipation: "80.0", PastPerformance: "75", CourseCompletion: "false"},
		{StudentID: "S003", FirstName: "Niamh", LastName: "Walsh", Gender: "Female", Email: "x003@student.ncirl.ie", Age: "24", StudyHours: "", QuizParticipation: "90.0", PastPerformance: "80", CourseCompletion: "true"},
	}

	records, _, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)

	// Median of 8 and 10
	assert.InDelta(t, 9.0, records[2].StudyHours, 1e-9)
}

func TestClean_AgeBuckets(t *testing.T) {
	raws := generateRaw(t, 10, false)
	raws[0].Age = "20"
	raws[1].Age = "27"
	raws[2].Age = "40"
	raws[3].Age = "48"

	records, _, err := New(nil, DefaultConfig()).Clean(context.Background(), raws)
	require.NoError(t, err)

	assert.Equal(t, domain.AgeBucket19To24, records[0].AgeBucket)
	assert.Equal(t, domain.AgeBucket25To34, records[1].AgeBucket)
	assert.Equal(t, domain.AgeBucket35To45, records[2].AgeBucket)
	assert.Equal(t, domain.AgeBucket46Plus, records[3].AgeBucket)
}

func TestClean_EmptyInput(t *testing.T) {
	_, _, err := New(nil, DefaultConfig()).Clean(context.Background(), nil)
	assert.Error(t, err)
}

func TestClean_AuditEntriesToggle(t *testing.T) {
	raws := generateRaw(t, 100, true)

	cfg := DefaultConfig()
	cfg.AuditEntries = false
	_, report, err := New(nil, cfg).Clean(context.Background(), raws)
	require.NoError(t, err)
	assert.Empty(t, report.Entries)

	cfg.AuditEntries = true
	_, report, err = New(nil, cfg).Clean(context.Background(), raws)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Entries)
}

func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3.0, median(values), 1e-9)
	assert.InDelta(t, 1.0, quantile(values, 0), 1e-9)
	assert.InDelta(t, 5.0, quantile(values, 1), 1e-9)
}
