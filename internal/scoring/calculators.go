package scoring

import (
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// Urgency scores how close due is to today. A nil due date scores
// NoDueDateScore, anything in the past scores OverdueScore.
func (c Config) Urgency(due *models.Date, today models.Date) float64 {
	if due == nil {
		return c.NoDueDateScore
	}
	days := today.DaysUntil(*due)
	if days < 0 {
		return c.OverdueScore
	}
	for _, b := range c.UrgencyBuckets {
		if days <= b.MaxDays {
			return b.Score
		}
	}
	return c.FarFutureScore
}

// Effort maps an effort level to a score. Easier work scores higher.
func (c Config) Effort(level int) float64 {
	if s, ok := c.EffortScores[level]; ok {
		return s
	}
	return c.UnknownEffortScore
}

// Dependency scores a task by how many other tasks it blocks.
func (c Config) Dependency(blockedCount int) float64 {
	for _, b := range c.DependencyBuckets {
		if blockedCount >= b.MinCount {
			return b.Score
		}
	}
	return 0
}

// Impact maps an impact level to a score.
func (c Config) Impact(level int) float64 {
	if s, ok := c.ImpactScores[level]; ok {
		return s
	}
	return c.UnknownImpactScore
}
