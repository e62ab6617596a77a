package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvDBDriver, EnvDBDSN, EnvHTTPAddr, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.Sweep.Interval.Duration != time.Hour {
		t.Errorf("Sweep.Interval = %s, want 1h", cfg.Sweep.Interval)
	}
	if !cfg.Graph.DetectCycles {
		t.Error("Graph.DetectCycles should default to true")
	}
	if cfg.Scoring.Weights.Urgency != 0.35 {
		t.Errorf("Scoring.Weights.Urgency = %v, want 0.35", cfg.Scoring.Weights.Urgency)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
database:
  driver: postgres
  dsn: postgres://localhost/synergy
server:
  addr: ":9090"
sweep:
  interval: 15m
graph:
  detect_cycles: false
deadline:
  cooldown_hours:
    critical: 2
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://localhost/synergy" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %s, want :9090", cfg.Server.Addr)
	}
	if cfg.Sweep.Interval.Duration != 15*time.Minute {
		t.Errorf("Sweep.Interval = %s, want 15m", cfg.Sweep.Interval)
	}
	if cfg.Graph.DetectCycles {
		t.Error("Graph.DetectCycles should be false")
	}

	// Unspecified values should use defaults
	if cfg.Deadline.Cooldown(risk.LevelCritical) != 2*time.Hour {
		t.Errorf("critical cooldown = %s, want 2h", cfg.Deadline.Cooldown(risk.LevelCritical))
	}
	if cfg.Deadline.Cooldown(risk.LevelHigh) != 12*time.Hour {
		t.Errorf("high cooldown = %s, want 12h (default)", cfg.Deadline.Cooldown(risk.LevelHigh))
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %s, want 10s (default)", cfg.Server.ReadTimeout)
	}
	if !cfg.Sweep.RunOnStart {
		t.Error("Sweep.RunOnStart should keep its default")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "server:\n  addr: \":9090\"\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvHTTPAddr, "0.0.0.0:7000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDBDSN, filepath.Join(dir, "test.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:7000" {
		t.Errorf("Server.Addr = %s, want env override", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Database.DSN != filepath.Join(dir, "test.db") {
		t.Errorf("Database.DSN = %s", cfg.Database.DSN)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unclosed"},
		{"bad duration", "sweep:\n  interval: soon\n"},
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"postgres without dsn", "database:\n  driver: postgres\n"},
		{"negative cooldown", "deadline:\n  cooldown_hours:\n    high: -1\n"},
		{"unordered risk thresholds", "risk:\n  thresholds:\n    critical: 0.5\n    high: 0.7\n"},
		{"negative horizon", "risk:\n  horizon_days: -7\n"},
		{"zero max effort", "risk:\n  max_effort: 0\n"},
		{"zero weights", "scoring:\n  weights:\n    urgency: 0\n    effort: 0\n    dependency: 0\n    impact: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("LoadFrom() with %s should fail", tt.name)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	cfg := Default()
	cfg.Server.Addr = ":8181"
	cfg.Sweep.Interval = Duration{90 * time.Second}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	configPath := filepath.Join(tempDir, "synergy", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Config file not created at %s: %v", configPath, err)
	}
	if !containsLine(string(data), "interval: 1m30s") {
		t.Errorf("durations should be written as strings, got:\n%s", data)
	}

	cfg2, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if cfg2.Server.Addr != ":8181" {
		t.Errorf("Reloaded Server.Addr = %s, want :8181", cfg2.Server.Addr)
	}
	if cfg2.Sweep.Interval.Duration != 90*time.Second {
		t.Errorf("Reloaded Sweep.Interval = %s, want 1m30s", cfg2.Sweep.Interval)
	}
	if len(cfg2.Risk.Progress.Rules) != len(cfg.Risk.Progress.Rules) {
		t.Errorf("progress table did not round-trip: %d rules, want %d",
			len(cfg2.Risk.Progress.Rules), len(cfg.Risk.Progress.Rules))
	}
}

func containsLine(s, want string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}
