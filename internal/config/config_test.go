package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, ":8080")
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Server.AllowedOrigins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Display.ChartWidth != 60 {
		t.Errorf("Display.ChartWidth = %v, want 60", cfg.Display.ChartWidth)
	}
	if cfg.Display.ChartHeight != 8 {
		t.Errorf("Display.ChartHeight = %v, want 8", cfg.Display.ChartHeight)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}

	// Database path should be empty by default
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path should be empty, got %q", cfg.Database.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name        string
		modify      func(c *Config)
		expectError bool
		errContains string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:        "empty server address",
			modify:      func(c *Config) { c.Server.Address = "" },
			expectError: true,
			errContains: "server.address",
		},
		{
			name:        "chart too narrow",
			modify:      func(c *Config) { c.Display.ChartWidth = 10 },
			expectError: true,
			errContains: "chart_width",
		},
		{
			name:        "chart too short",
			modify:      func(c *Config) { c.Display.ChartHeight = 1 },
			expectError: true,
			errContains: "chart_height",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.Log.Level = "verbose" },
			expectError: true,
			errContains: "log.level",
		},
		{
			name:   "uppercase log level",
			modify: func(c *Config) { c.Log.Level = "DEBUG" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Server.Address != ":8080" || cfg.Display.ChartWidth != 60 {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadFrom_EnvWithoutFile(t *testing.T) {
	t.Setenv("COACH_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("COACH_SERVER_ADDRESS", ":9090")
	t.Setenv("COACH_ATHLETE_DEFAULT_ID", "athlete-7")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("Database.Path = %q, want /tmp/env.db", cfg.Database.Path)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Athlete.DefaultID != "athlete-7" {
		t.Errorf("Athlete.DefaultID = %q, want athlete-7", cfg.Athlete.DefaultID)
	}
	if cfg.Display.ChartHeight != 8 {
		t.Errorf("Display.ChartHeight = %d, want default 8", cfg.Display.ChartHeight)
	}
}

func TestLoadFrom_DefaultsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"database": {"path": "/tmp/coach.db"}, "display": {"chart_width": 80}}`), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("COACH_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/coach.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Display.ChartWidth != 80 {
		t.Errorf("Display.ChartWidth = %d, want 80 from file", cfg.Display.ChartWidth)
	}
	if cfg.Display.ChartHeight != 8 {
		t.Errorf("Display.ChartHeight = %d, want default 8", cfg.Display.ChartHeight)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want default", cfg.Server.Address)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug from env", cfg.SlogLevel())
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Athlete.DefaultID = "athlete-1"
	cfg.Server.AllowedOrigins = []string{"http://a.example", "http://b.example"}

	if err := SaveTo(path, &cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.Athlete.DefaultID != "athlete-1" {
		t.Errorf("Athlete.DefaultID = %q", got.Athlete.DefaultID)
	}
	if len(got.Server.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", got.Server.AllowedOrigins)
	}
}
