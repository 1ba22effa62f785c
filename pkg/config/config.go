package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// SSOT: every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Screening defaults (overridable per run via CLI flags)
	DataDir        string // per-instrument CSV snapshot directory
	SelectorConfig string // selector configuration document
	ReferenceFile  string // optional reference metadata CSV ("" = none)

	// Scheduling
	ScreenSchedule string // cron expression for the schedule command

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string // persisted report/log artifact ("" = console only)
}

// Load reads configuration from environment variables
// SSOT: this is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		DataDir:        getEnv("DATA_DIR", "./data/ETF"),
		SelectorConfig: getEnv("SELECTOR_CONFIG", "./configs.json"),
		ReferenceFile:  getEnv("REFERENCE_FILE", ""),

		ScreenSchedule: getEnv("SCREEN_SCHEDULE", "0 0 18 * * *"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
		LogFile:   getEnv("LOG_FILE", "select_results.log"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.SelectorConfig == "" {
		return fmt.Errorf("SELECTOR_CONFIG must not be empty")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
