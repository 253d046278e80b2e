// Package config loads sfdash settings from an optional YAML file, a .env
// file and SFDASH_* environment variables, in that order of precedence
// (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultTimezone = "Asia/Seoul"

// Config holds every tunable the shell and the analysis core read at start.
type Config struct {
	ActiveLimit     int     `yaml:"active_limit"`
	Downsample      bool    `yaml:"downsample"`
	DisplayTimezone string  `yaml:"display_timezone"`
	SniffBytes      int     `yaml:"sniff_bytes"`
	NumericRatio    float64 `yaml:"numeric_ratio"`
	Markers         bool    `yaml:"markers"`
	LogFile         string  `yaml:"log_file"`
	LogLevel        string  `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ActiveLimit:     6,
		Downsample:      true,
		DisplayTimezone: defaultTimezone,
		SniffBytes:      32 * 1024,
		NumericRatio:    0.5,
		LogLevel:        "info",
	}
}

// DefaultPath is ~/.config/sfdash/config.yaml, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sfdash", "config.yaml")
}

// Load builds a Config. A missing file at path is not an error; a file that
// exists but does not parse is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load(".env")

	cfg.ActiveLimit = getenvInt("SFDASH_ACTIVE_LIMIT", cfg.ActiveLimit)
	cfg.Downsample = getenvBool("SFDASH_DOWNSAMPLE", cfg.Downsample)
	cfg.DisplayTimezone = getenv("SFDASH_TIMEZONE", cfg.DisplayTimezone)
	cfg.SniffBytes = getenvInt("SFDASH_SNIFF_BYTES", cfg.SniffBytes)
	cfg.NumericRatio = getenvFloat("SFDASH_NUMERIC_RATIO", cfg.NumericRatio)
	cfg.Markers = getenvBool("SFDASH_MARKERS", cfg.Markers)
	cfg.LogFile = getenv("SFDASH_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getenv("SFDASH_LOG_LEVEL", cfg.LogLevel)

	if cfg.ActiveLimit < 0 {
		cfg.ActiveLimit = 0
	}
	if cfg.SniffBytes <= 0 {
		cfg.SniffBytes = Default().SniffBytes
	}
	if cfg.NumericRatio <= 0 || cfg.NumericRatio > 1 {
		cfg.NumericRatio = Default().NumericRatio
	}
	return cfg, nil
}

// Location resolves DisplayTimezone. Hosts without tzdata get a fixed
// UTC+9 zone so timestamps still render the same way.
func (c Config) Location() *time.Location {
	name := strings.TrimSpace(c.DisplayTimezone)
	if name == "" {
		name = defaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
