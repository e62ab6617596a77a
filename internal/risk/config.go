package risk

import (
	"errors"
	"fmt"
)

// Thresholds are the minimum risk scores of each level, checked high to low
type Thresholds struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
}

// Weights combine the three risk factors
type Weights struct {
	TimePressure float64 `yaml:"time_pressure"`
	ProgressGap  float64 `yaml:"progress_gap"`
	Effort       float64 `yaml:"effort"`
}

// ExpectedStep is a fallback expected progress for tasks at most MaxDays from due
type ExpectedStep struct {
	MaxDays  int     `yaml:"max_days"`
	Expected float64 `yaml:"expected"`
}

// Config holds the analyzer's constants.
type Config struct {
	Thresholds Thresholds `yaml:"thresholds"`
	Weights    Weights    `yaml:"weights"`

	// HorizonDays is the window over which time pressure rises from 0 to 1.
	HorizonDays int `yaml:"horizon_days"`

	// Tasks due within ImminentDays skip the weighted model.
	ImminentDays            int            `yaml:"imminent_days"`
	ImminentProgressCutoff  float64        `yaml:"imminent_progress_cutoff"`
	ImminentBehindScore     float64        `yaml:"imminent_behind_score"`
	ImminentOnTrackScore    float64        `yaml:"imminent_on_track_score"`
	ExpectedProgressCap     float64        `yaml:"expected_progress_cap"`
	SameDayExpectedProgress float64        `yaml:"same_day_expected_progress"`
	FallbackExpected        []ExpectedStep `yaml:"fallback_expected"`
	FallbackExpectedDefault float64        `yaml:"fallback_expected_default"`
	MaxEffort               int            `yaml:"max_effort"`

	Progress ProgressConfig `yaml:"progress"`
}

// DefaultConfig returns the stock analyzer configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{Critical: 0.8, High: 0.6, Medium: 0.4},
		Weights:    Weights{TimePressure: 0.4, ProgressGap: 0.4, Effort: 0.2},

		HorizonDays:             7,
		ImminentDays:            1,
		ImminentProgressCutoff:  0.8,
		ImminentBehindScore:     0.9,
		ImminentOnTrackScore:    0.3,
		ExpectedProgressCap:     0.9,
		SameDayExpectedProgress: 0.5,
		FallbackExpected: []ExpectedStep{
			{MaxDays: 3, Expected: 0.7},
			{MaxDays: 7, Expected: 0.5},
		},
		FallbackExpectedDefault: 0.3,
		MaxEffort:               5,

		Progress: DefaultProgressConfig(),
	}
}

// Validate rejects tables the analyzer cannot use
func (c Config) Validate() error {
	th := c.Thresholds
	if !(th.Critical >= th.High && th.High >= th.Medium) {
		return fmt.Errorf("risk thresholds must be descending, got critical=%.2f high=%.2f medium=%.2f",
			th.Critical, th.High, th.Medium)
	}
	if th.Medium < 0 || th.Critical > 1 {
		return fmt.Errorf("risk thresholds must lie in [0,1], got medium=%.2f critical=%.2f", th.Medium, th.Critical)
	}
	w := c.Weights
	if w.TimePressure < 0 || w.ProgressGap < 0 || w.Effort < 0 {
		return errors.New("risk weights must not be negative")
	}
	if w.TimePressure+w.ProgressGap+w.Effort == 0 {
		return errors.New("risk weights must not all be zero")
	}
	if c.HorizonDays < 0 {
		return fmt.Errorf("horizon_days must not be negative, got %d", c.HorizonDays)
	}
	if c.ImminentDays < 0 {
		return fmt.Errorf("imminent_days must not be negative, got %d", c.ImminentDays)
	}
	if c.MaxEffort < 1 {
		return fmt.Errorf("max_effort must be at least 1, got %d", c.MaxEffort)
	}
	for _, v := range []float64{c.ImminentProgressCutoff, c.ImminentBehindScore, c.ImminentOnTrackScore,
		c.ExpectedProgressCap, c.SameDayExpectedProgress, c.FallbackExpectedDefault} {
		if v < 0 || v > 1 {
			return fmt.Errorf("risk fractions must lie in [0,1], got %.2f", v)
		}
	}
	for _, r := range c.Progress.Rules {
		if r.Keyword == "" {
			return errors.New("progress rules need a keyword")
		}
		if r.Progress < 0 || r.Progress > 1 {
			return fmt.Errorf("progress for %q must lie in [0,1], got %.2f", r.Keyword, r.Progress)
		}
	}
	return nil
}
