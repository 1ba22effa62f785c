package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Make sure ambient variables from a developer shell don't leak in.
	for _, key := range []string{
		"PORT", "ENV", "DATA_DIR", "SELECTOR_CONFIG", "REFERENCE_FILE",
		"SCREEN_SCHEDULE", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("expected env=development, got %s", cfg.Env)
	}
	if cfg.DataDir != "./data/ETF" {
		t.Errorf("expected data dir ./data/ETF, got %s", cfg.DataDir)
	}
	if cfg.SelectorConfig != "./configs.json" {
		t.Errorf("expected selector config ./configs.json, got %s", cfg.SelectorConfig)
	}
	if cfg.LogFile != "select_results.log" {
		t.Errorf("expected log file select_results.log, got %s", cfg.LogFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("DATA_DIR", "/srv/data/etf")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REFERENCE_FILE", "/srv/data/etf_info.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("expected env=production, got %s", cfg.Env)
	}
	if cfg.DataDir != "/srv/data/etf" {
		t.Errorf("expected overridden data dir, got %s", cfg.DataDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.LogLevel)
	}
	if cfg.ReferenceFile != "/srv/data/etf_info.csv" {
		t.Errorf("expected reference file override, got %s", cfg.ReferenceFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad env", func(c *Config) { c.Env = "prod" }, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"empty selector config", func(c *Config) { c.SelectorConfig = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Env:            "development",
				DataDir:        "./data/ETF",
				SelectorConfig: "./configs.json",
			}
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
