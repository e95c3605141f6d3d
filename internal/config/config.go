package config

import (
	"os"

	"cobranza/internal/logger"
)

type Config struct {
	// Source directories
	InvoicesDir    string
	ComplementsDir string

	// Manual reconciliation overrides (optional CSV)
	ManualCSV string

	// Output directory for generated workbooks
	OutputDir string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads configuration from environment variables. Directory settings
// are optional here because the report command accepts them as flags; flag
// values take precedence over the environment.
func Load() (*Config, error) {
	config := &Config{
		InvoicesDir:    getEnv("COBRANZA_INVOICES_DIR", ""),
		ComplementsDir: getEnv("COBRANZA_COMPLEMENTS_DIR", ""),
		ManualCSV:      getEnv("COBRANZA_MANUAL_CSV", "pagadas_manual.csv"),
		OutputDir:      getEnv("COBRANZA_OUTPUT_DIR", "."),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
