package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tgienger/taskdash/internal/models"
)

// Theme names accepted in the config file
const (
	ThemeTokyoNight = "tokyo-night"
	ThemeGruvbox    = "gruvbox"
)

// Config holds user preferences read from config.yaml
type Config struct {
	Theme       string `yaml:"theme"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	Today       string `yaml:"today"` // pins "today" (YYYY-MM-DD), mostly for demos
	Seed        *bool  `yaml:"seed"`  // load the example tasks on startup (default true)
	RecentLimit int    `yaml:"recent_limit"`
}

// Default returns the built-in configuration
func Default() Config {
	seed := true
	return Config{
		Theme:       ThemeTokyoNight,
		LogLevel:    "info",
		Seed:        &seed,
		RecentLimit: 5,
	}
}

// DefaultPath returns the config file location
func DefaultPath() (string, error) {
	// Use XDG config directory or fallback to home directory
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "taskdash", "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error: the
// defaults are returned instead.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected so
// typos surface instead of being ignored.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field values
func (c Config) Validate() error {
	switch c.Theme {
	case ThemeTokyoNight, ThemeGruvbox:
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := models.ParseDate(c.Today); err != nil {
		return fmt.Errorf("today: %w", err)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit must not be negative, got %d", c.RecentLimit)
	}
	return nil
}

// SeedEnabled reports whether the example tasks should be loaded
func (c Config) SeedEnabled() bool {
	return c.Seed == nil || *c.Seed
}

// TodayOverride returns the pinned day, if any
func (c Config) TodayOverride() (models.Date, bool) {
	d, err := models.ParseDate(c.Today)
	if err != nil || d.IsZero() {
		return models.Date{}, false
	}
	return d, true
}

// ParseLevel maps a level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
