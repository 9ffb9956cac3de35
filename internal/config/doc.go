// Package config provides centralized configuration management for the
// student data pipeline. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values across the stage binaries.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern EDUPIPE_* for namespacing:
//
//	EDUPIPE_GENERATOR_COUNT=500
//	EDUPIPE_GENERATOR_SEED=123
//	EDUPIPE_LOGGING_LEVEL=info
//	EDUPIPE_BASE_DIR=/srv/edupipe
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which anchors all file system paths at a single base directory:
//
//	paths, err := config.GetPaths()
//	raw := paths.RawCSV
//	chart := paths.GetChartPath("quiz_participation_hist.png")
//
// Every stage binary resolves its default input and output files through
// Paths so the stages agree on where the CSV hand-off files live.
//
// # Usage
//
// Load configuration at stage startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
