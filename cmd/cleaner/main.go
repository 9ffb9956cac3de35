package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"edupipe/internal/cleaner"
	"edupipe/internal/config"
	"edupipe/internal/exporter"
	"edupipe/internal/infrastructure"
	"edupipe/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "raw csv file path (defaults to data/raw/students_raw.csv)")
	out := flag.String("out", "", "cleaned csv file path (defaults to data/processed/students_cleaned.csv)")
	report := flag.String("report", "", "cleaning report json path (defaults to data/reports/cleaning_report.json)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *in == "" {
		*in = paths.RawCSV
	}
	if *out == "" {
		*out = paths.CleanCSV
	}
	if *report == "" {
		*report = paths.CleaningReportJSON
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
	cfg.Logging.FilePath = paths.GetLogPath("cleaner.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "Starting cleaning",
		slog.String("input_file", *in),
		slog.String("output_file", *out))

	_, rows, err := exporter.ReadCSV(*in)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read raw CSV",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	raws := make([]domain.RawRecord, len(rows))
	for i, row := range rows {
		raws[i] = domain.RawRecordFromRow(row)
	}

	c := cleaner.New(logger, cleaner.Config{
		IQRMultiplier: cfg.Cleaner.IQRMultiplier,
		EmailDomain:   cfg.Cleaner.EmailDomain,
		AuditEntries:  cfg.Cleaner.AuditEntries,
	})

	cleaned, cleaningReport, err := c.Clean(ctx, raws)
	if err != nil {
		logger.ErrorContext(ctx, "Cleaning failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	outRows := make([][]string, len(cleaned))
	for i, r := range cleaned {
		outRows[i] = r.Row()
	}

	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteCSV(*out, exporter.WriteOptions{
		Headers: domain.CleanHeader,
		Records: outRows,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to write cleaned CSV",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := cleaner.WriteReport(*report, cleaningReport); err != nil {
		logger.ErrorContext(ctx, "Failed to write cleaning report",
			slog.String("path", *report),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Cleaning completed",
		slog.Int("input_rows", cleaningReport.InputRows),
		slog.Int("output_rows", cleaningReport.OutputRows),
		slog.String("output_path", *out))

	fmt.Printf("Cleaned %d rows to %d records, report at %s\n",
		cleaningReport.InputRows, cleaningReport.OutputRows, *report)
}
