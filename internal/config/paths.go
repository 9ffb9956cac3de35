package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the pipeline.
type Paths struct {
	BaseDir      string
	DataDir      string
	RawDir       string
	ProcessedDir string
	ReportsDir   string
	ChartsDir    string
	LogsDir      string

	// Well-known hand-off and report files
	RawCSV             string
	CleanCSV           string
	CleaningReportJSON string
	SummaryCSV         string
	SummaryJSON        string
	SummaryXLSX        string
	DiagnosisJSON      string
}

// GetPaths returns the pipeline paths anchored at the base directory.
// The base directory is EDUPIPE_BASE_DIR when set, otherwise the current
// working directory, so that all stages invoked from the project root agree
// on where the hand-off CSV files live.
//
// Directory structure:
//
//	<base>/
//	  ├── data/
//	  │   ├── raw/           (generator output)
//	  │   ├── processed/     (cleaner output)
//	  │   └── reports/       (analysis, diagnosis and chart output)
//	  │       └── charts/
//	  └── logs/
func GetPaths() (*Paths, error) {
	base := os.Getenv("EDUPIPE_BASE_DIR")
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}
	return PathsFrom(base), nil
}

// PathsFrom builds the full path set for an explicit base directory.
// Tests use this to anchor the pipeline in a temporary directory.
func PathsFrom(base string) *Paths {
	dataDir := filepath.Join(base, "data")
	rawDir := filepath.Join(dataDir, "raw")
	processedDir := filepath.Join(dataDir, "processed")
	reportsDir := filepath.Join(dataDir, "reports")
	chartsDir := filepath.Join(reportsDir, "charts")

	return &Paths{
		BaseDir:      base,
		DataDir:      dataDir,
		RawDir:       rawDir,
		ProcessedDir: processedDir,
		ReportsDir:   reportsDir,
		ChartsDir:    chartsDir,
		LogsDir:      filepath.Join(base, "logs"),

		RawCSV:             filepath.Join(rawDir, "students_raw.csv"),
		CleanCSV:           filepath.Join(processedDir, "students_cleaned.csv"),
		CleaningReportJSON: filepath.Join(reportsDir, "cleaning_report.json"),
		SummaryCSV:         filepath.Join(reportsDir, "summary.csv"),
		SummaryJSON:        filepath.Join(reportsDir, "summary.json"),
		SummaryXLSX:        filepath.Join(reportsDir, "summary.xlsx"),
		DiagnosisJSON:      filepath.Join(reportsDir, "diagnosis.json"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DataDir,
		p.RawDir,
		p.ProcessedDir,
		p.ReportsDir,
		p.ChartsDir,
		p.LogsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetRawPath returns the full path for a file in the raw data directory
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath returns the full path for a file in the processed data directory
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetReportPath returns the full path for a file in the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetChartPath returns the full path for a chart image in the charts directory
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}

// GetLogPath returns the full path for a log file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
