package deadline

import (
	"fmt"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

// Cooldowns is how many hours must pass before a task is warned about again,
// per risk level
type Cooldowns struct {
	Critical int `yaml:"critical"`
	High     int `yaml:"high"`
	Medium   int `yaml:"medium"`
	Low      int `yaml:"low"`
}

// Config holds the notification throttling rules.
type Config struct {
	CooldownHours Cooldowns `yaml:"cooldown_hours"`

	// MinLevel is the lowest risk level that produces notifications.
	MinLevel risk.Level `yaml:"min_level"`
}

// DefaultConfig returns the stock throttling rules.
func DefaultConfig() Config {
	return Config{
		CooldownHours: Cooldowns{Critical: 6, High: 12, Medium: 24, Low: 48},
		MinLevel:      risk.LevelMedium,
	}
}

// Cooldown returns the suppression window for level.
func (c Config) Cooldown(level risk.Level) time.Duration {
	var hours int
	switch level {
	case risk.LevelCritical:
		hours = c.CooldownHours.Critical
	case risk.LevelHigh:
		hours = c.CooldownHours.High
	case risk.LevelMedium:
		hours = c.CooldownHours.Medium
	default:
		hours = c.CooldownHours.Low
	}
	return time.Duration(hours) * time.Hour
}

// Validate rejects negative windows and unknown levels.
func (c Config) Validate() error {
	for name, h := range map[string]int{
		"critical": c.CooldownHours.Critical,
		"high":     c.CooldownHours.High,
		"medium":   c.CooldownHours.Medium,
		"low":      c.CooldownHours.Low,
	} {
		if h < 0 {
			return models.NewValidationError("deadline.cooldown_hours."+name, "must not be negative")
		}
	}
	if _, err := risk.ParseLevel(string(c.MinLevel)); err != nil {
		return fmt.Errorf("deadline.min_level: %w", err)
	}
	if c.MinLevel == risk.LevelLow {
		return models.NewValidationError("deadline.min_level", "low risk never notifies")
	}
	return nil
}
