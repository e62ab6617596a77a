// Package config loads the synergy configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/scoring"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/services/deadline"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file
const (
	EnvConfigPath = "SYNERGY_CONFIG"
	EnvDBDriver   = "SYNERGY_DB_DRIVER"
	EnvDBDSN      = "SYNERGY_DB_DSN"
	EnvHTTPAddr   = "SYNERGY_HTTP_ADDR"
	EnvLogLevel   = "SYNERGY_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig  `yaml:"database"`
	Server   ServerConfig    `yaml:"server"`
	Sweep    SweepConfig     `yaml:"sweep"`
	Logging  LoggingConfig   `yaml:"logging"`
	Scoring  scoring.Config  `yaml:"scoring"`
	Risk     risk.Config     `yaml:"risk"`
	Deadline deadline.Config `yaml:"deadline"`
	Graph    GraphConfig     `yaml:"graph"`
}

// DatabaseConfig selects the storage backend. An empty sqlite DSN means ~/.synergy/synergy.db.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	ReadTimeout    Duration `yaml:"read_timeout"`
	WriteTimeout   Duration `yaml:"write_timeout"`
	RequestTimeout Duration `yaml:"request_timeout"`
}

// SweepConfig configures the periodic deadline sweep run by the daemon
type SweepConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Interval   Duration `yaml:"interval"`
	RunOnStart bool     `yaml:"run_on_start"`
}

// LoggingConfig configures the slog handler
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // empty means ~/.synergy/logs/synergy.log, "-" means stderr
}

// GraphConfig configures dependency graph maintenance
type GraphConfig struct {
	DetectCycles bool `yaml:"detect_cycles"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			ReadTimeout:    Duration{10 * time.Second},
			WriteTimeout:   Duration{30 * time.Second},
			RequestTimeout: Duration{15 * time.Second},
		},
		Sweep: SweepConfig{
			Enabled:    true,
			Interval:   Duration{time.Hour},
			RunOnStart: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Scoring:  scoring.DefaultConfig(),
		Risk:     risk.DefaultConfig(),
		Deadline: deadline.DefaultConfig(),
		Graph:    GraphConfig{DetectCycles: true},
	}
}

// Load loads config from SYNERGY_CONFIG or the user's config directory.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the config file at path. Keys missing from the file keep
// their default values; a missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg.applyEnv()
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks the parts of the config that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return errors.New("database.dsn is required for postgres")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Sweep.Enabled && c.Sweep.Interval.Duration < time.Second {
		return fmt.Errorf("sweep.interval %s is too short", c.Sweep.Interval)
	}
	if err := c.Scoring.Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Risk.Validate(); err != nil {
		return fmt.Errorf("risk: %w", err)
	}
	if err := c.Deadline.Validate(); err != nil {
		return fmt.Errorf("deadline: %w", err)
	}
	return nil
}

// Path returns the path to the config file
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "synergy", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "synergy", "config.yaml"), nil
}

// applyDefaults fills values a file set to empty
func (c *Config) applyDefaults() {
	def := Default()
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.ReadTimeout.Duration <= 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout.Duration <= 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if c.Server.RequestTimeout.Duration <= 0 {
		c.Server.RequestTimeout = def.Server.RequestTimeout
	}
	if c.Sweep.Interval.Duration <= 0 {
		c.Sweep.Interval = def.Sweep.Interval
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}

// applyEnv applies the SYNERGY_* overrides
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}
