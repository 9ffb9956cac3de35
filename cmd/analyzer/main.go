package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"edupipe/internal/analysis"
	"edupipe/internal/config"
	"edupipe/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "cleaned csv file path (defaults to data/processed/students_cleaned.csv)")
	outCSV := flag.String("csv", "", "summary csv path (defaults to data/reports/summary.csv)")
	outJSON := flag.String("json", "", "summary json path (defaults to data/reports/summary.json)")
	outXLSX := flag.String("xlsx", "", "summary workbook path (defaults to data/reports/summary.xlsx)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *in == "" {
		*in = paths.CleanCSV
	}
	if *outCSV == "" {
		*outCSV = paths.SummaryCSV
	}
	if *outJSON == "" {
		*outJSON = paths.SummaryJSON
	}
	if *outXLSX == "" {
		*outXLSX = paths.SummaryXLSX
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("analyzer.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "Starting analysis",
		slog.String("input_file", *in))

	records, err := analysis.LoadStudents(*in)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cleaned records",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	analyzer := analysis.New(logger)
	report, err := analyzer.Analyze(ctx, records)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, write := range []struct {
		path string
		fn   func() error
	}{
		{*outCSV, func() error { return analyzer.WriteCSV(ctx, *outCSV, report) }},
		{*outJSON, func() error { return analyzer.WriteJSON(ctx, *outJSON, report) }},
		{*outXLSX, func() error { return analyzer.WriteWorkbook(ctx, *outXLSX, report) }},
	} {
		if err := write.fn(); err != nil {
			logger.ErrorContext(ctx, "Failed to write analysis output",
				slog.String("path", write.path),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.InfoContext(ctx, "Analysis completed",
		slog.Int("record_count", report.RowCount),
		slog.String("summary_csv", *outCSV))

	fmt.Print(analysis.FormatText(report))
	fmt.Printf("Summary written to %s, %s and %s\n", *outCSV, *outJSON, *outXLSX)
}
