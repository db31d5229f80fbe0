// Package config loads runtime settings: defaults, then an optional YAML
// file, then ABILITYCORE_* environment overrides. Variables may also come
// from a .env file loaded with LoadDotEnv.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings for the abilitycore binary.
type Config struct {
	// Content
	ContentDir string `yaml:"content_dir" env:"ABILITYCORE_CONTENT_DIR"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"ABILITYCORE_LOG_LEVEL"`   // debug, info, warn, error
	LogFormat string `yaml:"log_format" env:"ABILITYCORE_LOG_FORMAT"` // text or json

	// Front end
	Plain       bool `yaml:"plain" env:"ABILITYCORE_PLAIN"`
	HistorySize int  `yaml:"history_size" env:"ABILITYCORE_HISTORY_SIZE"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		ContentDir:  "content/demo",
		LogLevel:    "warn",
		LogFormat:   "text",
		HistorySize: 100,
	}
}

// Load builds the config from defaults, the YAML file at path and the
// environment, in that order. An empty path or a missing file leaves the
// defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv exports the variables of each existing file into the process
// environment. Missing files are skipped and variables already set win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv applies environment variables to target. Fields whose variable
// is unset keep their current value.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("config: content_dir is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: log_format %q must be text or json", c.LogFormat)
	}
	if c.HistorySize < 1 {
		return fmt.Errorf("config: history_size %d must be positive", c.HistorySize)
	}
	return nil
}

// NewLogger builds a logger writing to w with the configured format and level.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLogLevel(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
