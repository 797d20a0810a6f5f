// Package daemon ties the pieces together: configuration, the periodic
// recurrence trigger, and server lifecycle.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the daemon configuration, loaded from
// ~/.centavo/config.toml when present.
type Config struct {
	API       APIConfig       `toml:"api"`
	Store     StoreConfig     `toml:"store"`
	Recurring RecurringConfig `toml:"recurring"`
	Log       LogConfig       `toml:"log"`
}

// APIConfig configures the HTTP server.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// StoreConfig configures the SQLite store.
type StoreConfig struct {
	Path string `toml:"path"` // data directory
}

// RecurringConfig configures the periodic expansion trigger.
type RecurringConfig struct {
	Enabled       bool   `toml:"enabled"`
	RunAt         string `toml:"run_at"`         // local HH:MM, once per day
	RetryAttempts uint   `toml:"retry_attempts"` // per cycle, on store failure
	RetryDelay    string `toml:"retry_delay"`    // Go duration string
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// DefaultConfig returns the defaults used when no config file exists.
// The recurrence run fires daily at 00:05, shortly after the day rolls
// over, matching the administrative expectation that "yesterday is done".
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    3000,
			Metrics: true,
		},
		Store: StoreConfig{
			Path: defaultDataDir(),
		},
		Recurring: RecurringConfig{
			Enabled:       true,
			RunAt:         "00:05",
			RetryAttempts: 3,
			RetryDelay:    "30s",
		},
		Log: LogConfig{
			Level: "INFO",
			JSON:  false,
		},
	}
}

// LoadConfig reads the toml file at path over the defaults. A missing
// file is not an error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, _, err := ParseRunAt(cfg.Recurring.RunAt); err != nil {
		return cfg, err
	}
	if _, err := time.ParseDuration(cfg.Recurring.RetryDelay); err != nil {
		return cfg, fmt.Errorf("recurring.retry_delay: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath is ~/.centavo/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".centavo", "config.toml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".centavo", "data")
}

// ParseRunAt parses a local "HH:MM" run time.
func ParseRunAt(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("run_at %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("run_at %q: bad hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("run_at %q: bad minute", s)
	}
	return hour, minute, nil
}

// RetryDelayDuration returns the parsed retry delay, falling back to the
// default when the config value is malformed.
func (c RecurringConfig) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
