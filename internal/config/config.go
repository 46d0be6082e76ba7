// Package config provides persistent configuration for the shaum CLI.
//
// Configuration is stored as JSON at ~/.config/shaum/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/IRedDragonICY/shaum/astro"
	"github.com/IRedDragonICY/shaum/i18n"
	"github.com/IRedDragonICY/shaum/rules"
)

const (
	configDirName  = "shaum"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "altitude",
	"adjustment", "madhab", "daud_strategy", "strict",
	"preset",
	"time_format", "locale",
	"cache_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
	Altitude     float64 `json:"altitude,omitempty"`
	Adjustment   *int    `json:"adjustment,omitempty"` // pointer so we can distinguish "not set" from 0
	Madhab       string  `json:"madhab,omitempty"`
	DaudStrategy string  `json:"daud_strategy,omitempty"`
	Strict       bool    `json:"strict,omitempty"`
	Preset       string  `json:"preset,omitempty"`
	TimeFormat   string  `json:"time_format,omitempty"` // "12h" or "24h"
	Locale       string  `json:"locale,omitempty"`      // "en" or "id"
	CacheDir     string  `json:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	adjustment := 0
	return Config{
		Adjustment:   &adjustment,
		Madhab:       "shafi",
		DaudStrategy: "skip",
		Preset:       "mabims",
		TimeFormat:   "24h",
		Locale:       "en",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
// If the file exists but is invalid JSON, it returns an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "altitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid altitude %q: must be a number (metres)", value)
		}
		c.Altitude = v
	case "adjustment":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid adjustment %q: must be an integer", value)
		}
		if v < -30 || v > 30 {
			return fmt.Errorf("invalid adjustment %q: must be between -30 and 30", value)
		}
		c.Adjustment = &v
	case "madhab":
		if _, ok := rules.MadhabByName(value); !ok {
			return fmt.Errorf("invalid madhab %q: must be shafi, hanafi, maliki or hanbali", value)
		}
		c.Madhab = value
	case "daud_strategy":
		if _, ok := rules.StrategyByName(value); !ok {
			return fmt.Errorf("invalid daud_strategy %q: must be skip or postpone", value)
		}
		c.DaudStrategy = value
	case "strict":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid strict %q: must be true or false", value)
		}
		c.Strict = v
	case "preset":
		if _, err := astro.PresetByName(value); err != nil {
			return err
		}
		c.Preset = value
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "locale":
		if !slices.Contains(i18n.Languages, value) {
			return fmt.Errorf("invalid locale %q: must be one of %s", value, strings.Join(i18n.Languages, ", "))
		}
		c.Locale = value
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "altitude":
		if c.Altitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Altitude, 'f', -1, 64), nil
	case "adjustment":
		if c.Adjustment == nil {
			return "", nil
		}
		return strconv.Itoa(*c.Adjustment), nil
	case "madhab":
		return c.Madhab, nil
	case "daud_strategy":
		return c.DaudStrategy, nil
	case "strict":
		if !c.Strict {
			return "", nil
		}
		return "true", nil
	case "preset":
		return c.Preset, nil
	case "time_format":
		return c.TimeFormat, nil
	case "locale":
		return c.Locale, nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// AdjustmentOrDefault returns the adjustment value, falling back to the given default.
func (c *Config) AdjustmentOrDefault(def int) int {
	if c.Adjustment != nil {
		return *c.Adjustment
	}
	return def
}

// MadhabValue resolves the configured madhab, defaulting to Shafi.
func (c *Config) MadhabValue() rules.Madhab {
	m, _ := rules.MadhabByName(c.Madhab)
	return m
}

// StrategyValue resolves the configured Daud strategy, defaulting to Skip.
func (c *Config) StrategyValue() rules.DaudStrategy {
	s, _ := rules.StrategyByName(c.DaudStrategy)
	return s
}

// PresetValue resolves the configured calculation preset, defaulting to
// MABIMS.
func (c *Config) PresetValue() astro.PrayerParams {
	if c.Preset == "" {
		return astro.MABIMS()
	}
	p, err := astro.PresetByName(c.Preset)
	if err != nil {
		return astro.MABIMS()
	}
	return p
}
