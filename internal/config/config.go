package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Athlete  AthleteConfig  `json:"athlete" mapstructure:"athlete"`
	Display  DisplayConfig  `json:"display" mapstructure:"display"`
	Log      LogConfig      `json:"log" mapstructure:"log"`
}

// DatabaseConfig holds the SQLite location
type DatabaseConfig struct {
	Path string `json:"path" mapstructure:"path"` // empty means ~/.coach/data.db
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Address        string   `json:"address" mapstructure:"address"`
	AllowedOrigins []string `json:"allowed_origins" mapstructure:"allowed_origins"`
}

// AthleteConfig selects the athlete used when a command omits one
type AthleteConfig struct {
	DefaultID string `json:"default_id" mapstructure:"default_id"`
}

// DisplayConfig holds report rendering preferences
type DisplayConfig struct {
	ChartWidth  int `json:"chart_width" mapstructure:"chart_width"`
	ChartHeight int `json:"chart_height" mapstructure:"chart_height"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// EnvPrefix prefixes environment overrides, e.g. COACH_SERVER_ADDRESS
const EnvPrefix = "COACH"

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: []string{"*"},
		},
		Display: DisplayConfig{
			ChartWidth:  60,
			ChartHeight: 8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.coach/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration file at path. Missing values fall back to
// DefaultConfig and COACH_* environment variables override the file. A
// missing file is not an error: defaults and environment still apply.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register every key so env overrides apply to all of them
	defaults := DefaultConfig()
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("server.address", defaults.Server.Address)
	v.SetDefault("server.allowed_origins", defaults.Server.AllowedOrigins)
	v.SetDefault("athlete.default_id", defaults.Athlete.DefaultID)
	v.SetDefault("display.chart_width", defaults.Display.ChartWidth)
	v.SetDefault("display.chart_height", defaults.Display.ChartHeight)
	v.SetDefault("log.level", defaults.Log.Level)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to ~/.coach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration as JSON to path
func SaveTo(path string, cfg *Config) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	example.Database.Path = filepath.Join(dir, "data.db")
	example.Server.AllowedOrigins = []string{"http://localhost:3000"}

	return SaveTo(path, &example)
}

// Validate checks that config values are usable
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("server.address is required, e.g. \":8080\"")
	}
	if c.Display.ChartWidth < 20 {
		return fmt.Errorf("display.chart_width must be at least 20, got %d", c.Display.ChartWidth)
	}
	if c.Display.ChartHeight < 3 {
		return fmt.Errorf("display.chart_height must be at least 3, got %d", c.Display.ChartHeight)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", s)
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".coach"), nil
}
