// Package risk estimates task progress from status names and scores the
// risk of a task missing its due date.
package risk

import (
	"fmt"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Level is a qualitative deadline risk
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Levels lists every level from lowest to highest.
func Levels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh, LevelCritical}
}

func (l Level) rank() int {
	switch l {
	case LevelMedium:
		return 1
	case LevelHigh:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is as severe as other or more.
func (l Level) AtLeast(other Level) bool {
	return l.rank() >= other.rank()
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return l, nil
	}
	return "", models.NewValidationError("risk_level", fmt.Sprintf("unknown risk level %q", s))
}
