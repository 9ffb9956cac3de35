package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsFrom(t *testing.T) {
	p := PathsFrom("/srv/edupipe")

	assert.Equal(t, "/srv/edupipe", p.BaseDir)
	assert.Equal(t, filepath.Join("/srv/edupipe", "data", "raw"), p.RawDir)
	assert.Equal(t, filepath.Join("/srv/edupipe", "data", "processed"), p.ProcessedDir)
	assert.Equal(t, filepath.Join("/srv/edupipe", "data", "reports", "charts"), p.ChartsDir)

	assert.Equal(t, filepath.Join(p.RawDir, "students_raw.csv"), p.RawCSV)
	assert.Equal(t, filepath.Join(p.ProcessedDir, "students_cleaned.csv"), p.CleanCSV)
	assert.Equal(t, filepath.Join(p.ReportsDir, "summary.xlsx"), p.SummaryXLSX)
	assert.Equal(t, filepath.Join(p.ReportsDir, "diagnosis.json"), p.DiagnosisJSON)
}

func TestGetPaths_BaseDirEnv(t *testing.T) {
	base := t.TempDir()
	t.Setenv("EDUPIPE_BASE_DIR", base)

	p, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, base, p.BaseDir)
}

func TestGetPaths_DefaultsToWorkingDir(t *testing.T) {
	t.Setenv("EDUPIPE_BASE_DIR", "")

	wd, err := os.Getwd()
	require.NoError(t, err)

	p, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, wd, p.BaseDir)
}

func TestEnsureDirectories(t *testing.T) {
	p := PathsFrom(t.TempDir())
	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.RawDir, p.ProcessedDir, p.ReportsDir, p.ChartsDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Re-running on existing directories must not fail
	require.NoError(t, p.EnsureDirectories())
}

func TestPathHelpers(t *testing.T) {
	p := PathsFrom("/base")

	assert.Equal(t, filepath.Join("/base", "data", "raw", "x.csv"), p.GetRawPath("x.csv"))
	assert.Equal(t, filepath.Join("/base", "data", "processed", "y.csv"), p.GetProcessedPath("y.csv"))
	assert.Equal(t, filepath.Join("/base", "data", "reports", "z.json"), p.GetReportPath("z.json"))
	assert.Equal(t, filepath.Join("/base", "data", "reports", "charts", "c.png"), p.GetChartPath("c.png"))
	assert.Equal(t, filepath.Join("/base", "logs", "cleaner.log"), p.GetLogPath("cleaner.log"))
}
