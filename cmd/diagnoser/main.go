package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"edupipe/internal/config"
	"edupipe/internal/diagnosis"
	"edupipe/internal/infrastructure"
)

func main() {
	in := flag.String("in", "", "csv file to profile (defaults to data/raw/students_raw.csv)")
	out := flag.String("out", "", "diagnosis json path (defaults to data/reports/diagnosis.json)")
	quiet := flag.Bool("quiet", false, "suppress the text report on stdout")
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
		*out = paths.DiagnosisJSON
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
	cfg.Logging.FilePath = paths.GetLogPath("diagnoser.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "Starting diagnosis",
		slog.String("input_file", *in),
		slog.String("output_file", *out))

	diagnoser := diagnosis.New(logger)
	report, err := diagnoser.Diagnose(ctx, *in)
	if err != nil {
		logger.ErrorContext(ctx, "Diagnosis failed",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := diagnoser.WriteJSON(ctx, *out, report); err != nil {
		logger.ErrorContext(ctx, "Failed to write diagnosis report",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Diagnosis completed",
		slog.Int("rows", report.RowCount),
		slog.Int("columns", report.ColumnCount),
		slog.String("output_path", *out))

	if !*quiet {
		fmt.Print(diagnosis.FormatText(report))
	}
	fmt.Printf("Diagnosis written to %s\n", *out)
}
