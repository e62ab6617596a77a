package risk

import (
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// ProgressRule maps a status keyword to a completion fraction
type ProgressRule struct {
	Keyword  string  `yaml:"keyword"`
	Progress float64 `yaml:"progress"`
}

// ProgressConfig is the ordered keyword table plus the fallbacks.
type ProgressConfig struct {
	Rules     []ProgressRule `yaml:"rules"`
	NoStatus  float64        `yaml:"no_status"`
	Unmatched float64        `yaml:"unmatched"`
}

// DefaultProgressConfig returns the stock status table.
// Order matters for substring matching: earlier rules win.
func DefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		Rules: []ProgressRule{
			{"to-do", 0.0},
			{"todo", 0.0},
			{"backlog", 0.0},
			{"planned", 0.1},
			{"in progress", 0.5},
			{"in-progress", 0.5},
			{"working", 0.5},
			{"active", 0.5},
			{"development", 0.4},
			{"testing", 0.7},
			{"review", 0.8},
			{"qa", 0.7},
			{"done", 1.0},
			{"completed", 1.0},
			{"finished", 1.0},
			{"closed", 1.0},
			{"deployed", 1.0},
		},
		NoStatus:  0.1,
		Unmatched: 0.2,
	}
}

// Estimator maps status names to progress fractions in [0,1].
type Estimator struct {
	cfg ProgressConfig
}

// NewEstimator copies cfg so later edits to the caller's table have no effect.
func NewEstimator(cfg ProgressConfig) *Estimator {
	rules := make([]ProgressRule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		rules[i] = ProgressRule{Keyword: strings.ToLower(r.Keyword), Progress: r.Progress}
	}
	cfg.Rules = rules
	return &Estimator{cfg: cfg}
}

// ForName returns the progress of a status name: exact match first, then the
// first rule whose keyword is a substring of the name, then Unmatched.
func (e *Estimator) ForName(name string) float64 {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range e.cfg.Rules {
		if name == r.Keyword {
			return r.Progress
		}
	}
	for _, r := range e.cfg.Rules {
		if strings.Contains(name, r.Keyword) {
			return r.Progress
		}
	}
	return e.cfg.Unmatched
}

// Progress returns the estimated progress of t.
func (e *Estimator) Progress(t *models.Task) float64 {
	if t.Status == nil {
		return e.cfg.NoStatus
	}
	return e.ForName(t.Status.Name)
}
