package risk

import (
	"math"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Assessment is the risk of one task on one day
type Assessment struct {
	Score            float64 `json:"risk_score"`
	Level            Level   `json:"risk_level"`
	Progress         float64 `json:"progress_score"`
	ExpectedProgress float64 `json:"expected_progress"`
	DaysRemaining    *int    `json:"days_remaining"`
	Overdue          bool    `json:"overdue"`
}

// Analyzer combines progress, time remaining and effort into a risk score.
type Analyzer struct {
	cfg       Config
	estimator *Estimator
}

// NewAnalyzer creates an analyzer from cfg.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg, estimator: NewEstimator(cfg.Progress)}
}

// Progress returns the estimated progress of t.
func (a *Analyzer) Progress(t *models.Task) float64 {
	return a.estimator.Progress(t)
}

// Assess scores t as of today.
func (a *Analyzer) Assess(t *models.Task, today models.Date) Assessment {
	progress := a.estimator.Progress(t)
	if t.DueDate == nil {
		return Assessment{Score: 0, Level: LevelLow, Progress: progress}
	}

	days := today.DaysUntil(*t.DueDate)
	out := Assessment{Progress: progress, DaysRemaining: &days}

	if days < 0 {
		out.Score, out.Level, out.Overdue = 1.0, LevelCritical, true
		return out
	}

	if days <= a.cfg.ImminentDays {
		if progress < a.cfg.ImminentProgressCutoff {
			out.Score, out.Level = a.cfg.ImminentBehindScore, LevelCritical
		} else {
			out.Score, out.Level = a.cfg.ImminentOnTrackScore, LevelMedium
		}
		return out
	}

	out.ExpectedProgress = a.expectedProgress(t, today, days)
	gap := math.Max(0, out.ExpectedProgress-progress)
	pressure := 0.0
	if a.cfg.HorizonDays > 0 {
		pressure = math.Max(0, float64(a.cfg.HorizonDays-days)/float64(a.cfg.HorizonDays))
	}
	effort := float64(effortLevel(t.EffortScore)) / float64(a.maxEffort())

	w := a.cfg.Weights
	score := w.TimePressure*pressure + w.ProgressGap*gap + w.Effort*effort
	// the level comes from the unrounded score
	out.Level = a.Classify(score)
	out.Score = math.Round(score*100) / 100
	return out
}

// Classify maps a risk score to a level.
func (a *Analyzer) Classify(score float64) Level {
	th := a.cfg.Thresholds
	switch {
	case score >= th.Critical:
		return LevelCritical
	case score >= th.High:
		return LevelHigh
	case score >= th.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// expectedProgress is the share of the task's lifetime already elapsed,
// capped. Tasks without a creation time use the fallback ladder.
func (a *Analyzer) expectedProgress(t *models.Task, today models.Date, days int) float64 {
	if t.CreatedAt.IsZero() {
		for _, step := range a.cfg.FallbackExpected {
			if days <= step.MaxDays {
				return step.Expected
			}
		}
		return a.cfg.FallbackExpectedDefault
	}

	created := models.DateOf(t.CreatedAt)
	total := created.DaysUntil(*t.DueDate)
	if total <= 0 {
		return a.cfg.SameDayExpectedProgress
	}
	elapsed := created.DaysUntil(today)
	return math.Min(float64(elapsed)/float64(total), a.cfg.ExpectedProgressCap)
}

func (a *Analyzer) maxEffort() int {
	if a.cfg.MaxEffort <= 0 {
		return models.MaxLevel
	}
	return a.cfg.MaxEffort
}

func effortLevel(level int) int {
	if level == 0 {
		return models.DefaultLevel
	}
	return level
}
