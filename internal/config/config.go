package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator" envconfig:"GENERATOR"`
	Cleaner   CleanerConfig   `yaml:"cleaner" envconfig:"CLEANER"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
}

// GeneratorConfig controls synthetic dataset generation.
// Defaults live in Default() so that unset fields can be told apart from
// configured ones when layering file and environment sources.
type GeneratorConfig struct {
	Count       int    `yaml:"count" envconfig:"COUNT"`
	Seed        int64  `yaml:"seed" envconfig:"SEED"`
	EmailDomain string `yaml:"email_domain" envconfig:"EMAIL_DOMAIN"`
	Contaminate bool   `yaml:"contaminate" envconfig:"CONTAMINATE"`
}

// CleanerConfig controls imputation and outlier handling
type CleanerConfig struct {
	// Upper fence for study_hours is Q3 + IQRMultiplier*IQR
	IQRMultiplier float64 `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER"`
	EmailDomain   string  `yaml:"email_domain" envconfig:"EMAIL_DOMAIN"`
	// When true, per-cell audit entries are kept in the cleaning report
	AuditEntries bool `yaml:"audit_entries" envconfig:"AUDIT_ENTRIES"`
}

// ChartsConfig controls rendered chart dimensions
type ChartsConfig struct {
	WidthInches   float64 `yaml:"width_inches" envconfig:"WIDTH_INCHES"`
	HeightInches  float64 `yaml:"height_inches" envconfig:"HEIGHT_INCHES"`
	HistogramBins int     `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// Load layers configuration sources: code defaults, then the optional
// config.yaml, then explicit EDUPIPE_* environment variables. The struct
// carries no envconfig default tags, so envconfig only touches fields whose
// variable is actually set and file values survive the overlay.
func Load() (*Config, error) {
	cfg := *Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("EDUPIPE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays YAML file values onto cfg. Keys absent from the
// file leave the existing values untouched.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Generator.Count <= 0 {
		return fmt.Errorf("generator count must be positive, got %d", c.Generator.Count)
	}

	if c.Generator.EmailDomain == "" {
		return fmt.Errorf("generator email domain must not be empty")
	}

	if c.Cleaner.IQRMultiplier <= 0 {
		return fmt.Errorf("cleaner IQR multiplier must be positive, got %f", c.Cleaner.IQRMultiplier)
	}

	if c.Charts.HistogramBins <= 0 {
		return fmt.Errorf("histogram bins must be positive, got %d", c.Charts.HistogramBins)
	}

	// Always JSON format, always dual output
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "stdout" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/edupipe.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Count:       500,
			Seed:        123,
			EmailDomain: "student.ncirl.ie",
			Contaminate: true,
		},
		Cleaner: CleanerConfig{
			IQRMultiplier: 2.0,
			EmailDomain:   "student.ncirl.ie",
			AuditEntries:  true,
		},
		Charts: ChartsConfig{
			WidthInches:   8,
			HeightInches:  6,
			HistogramBins: 20,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/edupipe.log",
		},
	}
}
