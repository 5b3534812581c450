package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all pipeline settings, populated from environment variables
// (and an optional .env file in the working directory).
type Config struct {
	RawDataDir   string
	ProcessedDir string
	OutputDir    string

	LogLevel  string
	LogFormat string

	// SQLitePath enables the processed-table snapshot when non-empty.
	SQLitePath string

	// PushgatewayURL enables the end-of-run metrics push when non-empty.
	PushgatewayURL string
}

// Load reads configuration, applying defaults that mirror the original
// data/raw, data/processed, data/output layout.
func Load() (*Config, error) {
	// A missing .env file is not an error; plain environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		RawDataDir:     envOrDefault("RAW_DATA_DIR", "data/raw"),
		ProcessedDir:   envOrDefault("PROCESSED_DIR", "data/processed"),
		OutputDir:      envOrDefault("OUTPUT_DIR", "data/output"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}

	if c.RawDataDir == "" {
		return fmt.Errorf("RAW_DATA_DIR is required")
	}
	if c.ProcessedDir == "" {
		return fmt.Errorf("PROCESSED_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
