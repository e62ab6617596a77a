package scoring

import (
	"math"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Component is one weighted sub-score of a breakdown
type Component struct {
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// Breakdown is the full priority computation for one task
type Breakdown struct {
	Urgency    Component `json:"urgency"`
	Effort     Component `json:"effort"`
	Dependency Component `json:"dependency"`
	Impact     Component `json:"impact"`
	Total      float64   `json:"total_score"`
	Label      string    `json:"priority_label"`
}

// Engine combines the calculators with the configured weights.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine creates an engine. A nil clock means time.Now.
func NewEngine(cfg Config, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	cfg = cfg.clone()
	cfg.Normalize()
	return &Engine{cfg: cfg, now: now}
}

// Weights returns a copy of the configured weights.
func (e *Engine) Weights() Weights {
	return e.cfg.Weights
}

// Today returns the engine's current UTC date.
func (e *Engine) Today() models.Date {
	return models.DateOf(e.now())
}

// Breakdown computes every sub-score and the weighted total for t.
func (e *Engine) Breakdown(t *models.Task) Breakdown {
	w := e.cfg.Weights
	b := Breakdown{
		Urgency:    component(e.cfg.Urgency(t.DueDate, e.Today()), w.Urgency),
		Effort:     component(e.cfg.Effort(levelOrDefault(t.EffortScore)), w.Effort),
		Dependency: component(e.cfg.Dependency(len(t.DependencyMap)), w.Dependency),
		Impact:     component(e.cfg.Impact(levelOrDefault(t.ImpactScore)), w.Impact),
	}
	total := b.Urgency.Value*w.Urgency +
		b.Effort.Value*w.Effort +
		b.Dependency.Value*w.Dependency +
		b.Impact.Value*w.Impact
	b.Total = round(total, 2)
	b.Label = e.Label(b.Total)
	return b
}

// Score returns the rounded priority score of t.
func (e *Engine) Score(t *models.Task) float64 {
	return e.Breakdown(t).Total
}

// Label maps a score to Urgent, High, Medium or Low.
func (e *Engine) Label(score float64) string {
	switch {
	case score >= e.cfg.Labels.Urgent:
		return models.PriorityUrgent
	case score >= e.cfg.Labels.High:
		return models.PriorityHigh
	case score >= e.cfg.Labels.Medium:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Apply writes the score and label onto t and reports whether either changed.
// Nothing else on t is touched.
func (e *Engine) Apply(t *models.Task) bool {
	score := e.Score(t)
	label := e.Label(score)
	changed := t.PriorityScore != score || t.Priority != label
	t.PriorityScore = score
	t.Priority = label
	return changed
}

func component(value, weight float64) Component {
	return Component{Value: value, Weight: weight, Weighted: round(value*weight, 4)}
}

// levelOrDefault treats an unset level as the default level 3.
func levelOrDefault(level int) int {
	if level == 0 {
		return models.DefaultLevel
	}
	return level
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
