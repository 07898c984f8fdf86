package config

import (
	"fmt"
	"os"
	"strconv"

	"gopbo/internal/cscv"
	"gopbo/internal/metric"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Database DatabaseConfig
	Input    InputConfig
}

// AnalysisConfig holds CSCV pipeline settings
type AnalysisConfig struct {
	Blocks          int    // S, number of time blocks
	Metric          string // "mean" or "sharpe"
	Workers         int    // parallel combination scorers; 0 = all cores
	MaxCombinations int    // resource-guard ceiling on C(S, S/2)
}

// DatabaseConfig holds the optional run-ledger connection
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// InputConfig holds the returns-matrix source
type InputConfig struct {
	FilePath string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Analysis: AnalysisConfig{
			Blocks:          envInt("PBO_BLOCKS", 8),
			Metric:          envString("PBO_METRIC", metric.NameSharpe),
			Workers:         envInt("PBO_WORKERS", 0),
			MaxCombinations: envInt("PBO_MAX_COMBINATIONS", cscv.DefaultMaxCombinations),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Input: InputConfig{
			FilePath: os.Getenv("PBO_INPUT"),
		},
	}
	cfg.Database.Enabled = cfg.Database.URL != ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants that do not depend on the data
func (c *Config) Validate() error {
	if c.Analysis.Blocks < 2 || c.Analysis.Blocks%2 != 0 {
		return fmt.Errorf("PBO_BLOCKS must be an even integer >= 2, got %d", c.Analysis.Blocks)
	}
	if c.Analysis.MaxCombinations < 1 {
		return fmt.Errorf("PBO_MAX_COMBINATIONS must be positive, got %d", c.Analysis.MaxCombinations)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("PBO_WORKERS must be >= 0, got %d", c.Analysis.Workers)
	}
	if _, err := metric.ByName(c.Analysis.Metric); err != nil {
		return err
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
