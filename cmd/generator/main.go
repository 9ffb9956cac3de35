package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"edupipe/internal/config"
	"edupipe/internal/exporter"
	"edupipe/internal/generator"
	"edupipe/internal/infrastructure"
	"edupipe/pkg/contracts/domain"
)

func main() {
	count := flag.Int("count", 0, "number of students to generate (defaults to configured count)")
	seed := flag.Int64("seed", 0, "random seed (defaults to configured seed)")
	out := flag.String("out", "", "output csv file path (defaults to data/raw/students_raw.csv)")
	contaminate := flag.Bool("contaminate", true, "apply the contamination passes (disable to emit tidy data)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = paths.RawCSV
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
	cfg.Logging.FilePath = paths.GetLogPath("generator.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	genCfg := resolveGeneratorConfig(cfg.Generator, setFlags, *count, *seed, *contaminate)

	ctx := infrastructure.WithTraceID(context.Background(), uuid.NewString())
	logger.InfoContext(ctx, "Starting student generation",
		slog.Int("count", genCfg.Count),
		slog.Int64("seed", genCfg.Seed),
		slog.Bool("contaminate", genCfg.Contaminate),
		slog.String("output_file", *out))

	records, err := generator.New(logger, genCfg).Generate(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}

	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteCSV(*out, exporter.WriteOptions{
		Headers: domain.RawHeader,
		Records: rows,
	}); err != nil {
		logger.ErrorContext(ctx, "Failed to write raw CSV",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Generation completed",
		slog.Int("record_count", len(records)),
		slog.String("output_path", *out))

	fmt.Printf("Generated %d students to %s\n", len(records), *out)
}

// resolveGeneratorConfig overlays explicitly passed flags onto the
// configured generation options. Only flags the user actually set take
// effect, so -seed 0 is selectable and -contaminate=true can re-enable
// contamination that the config file turned off.
func resolveGeneratorConfig(base config.GeneratorConfig, setFlags map[string]bool, count int, seed int64, contaminate bool) generator.Config {
	out := generator.Config{
		Count:       base.Count,
		Seed:        base.Seed,
		EmailDomain: base.EmailDomain,
		Contaminate: base.Contaminate,
	}
	if setFlags["count"] {
		out.Count = count
	}
	if setFlags["seed"] {
		out.Seed = seed
	}
	if setFlags["contaminate"] {
		out.Contaminate = contaminate
	}
	return out
}
