package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"edupipe/internal/analysis"
	"edupipe/internal/config"
	"edupipe/internal/infrastructure"
	"edupipe/internal/visualization"
)

func main() {
	in := flag.String("in", "", "cleaned csv file path (defaults to data/processed/students_cleaned.csv)")
	outDir := flag.String("outdir", "", "chart output directory (defaults to data/reports/charts)")
	bins := flag.Int("bins", 0, "histogram bin count (defaults to configured value)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *in == "" {
		*in = paths.CleanCSV
	}
	if *outDir == "" {
		*outDir = paths.ChartsDir
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
	cfg.Logging.FilePath = paths.GetLogPath("visualizer.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	chartCfg := visualization.Config{
		WidthInches:   cfg.Charts.WidthInches,
		HeightInches:  cfg.Charts.HeightInches,
		HistogramBins: cfg.Charts.HistogramBins,
	}
	if *bins > 0 {
		chartCfg.HistogramBins = *bins
	}

	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "Starting chart rendering",
		slog.String("input_file", *in),
		slog.String("output_dir", *outDir))

	records, err := analysis.LoadStudents(*in)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load cleaned records",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	renderer := visualization.New(chartCfg, logger)
	chartPaths, err := renderer.RenderAll(ctx, records, *outDir)
	if err != nil {
		logger.ErrorContext(ctx, "Chart rendering failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Chart rendering completed",
		slog.Int("chart_count", len(chartPaths)),
		slog.String("output_dir", *outDir))

	for _, p := range chartPaths {
		fmt.Printf("Rendered %s\n", filepath.Base(p))
	}
	fmt.Printf("Rendered %d charts to %s\n", len(chartPaths), *outDir)
}
