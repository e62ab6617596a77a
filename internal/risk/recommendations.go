package risk

import "github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"

// Recommendations returns follow-up actions for a task given its assessment.
func Recommendations(t *models.Task, a Assessment) []string {
	recs := []string{}

	if a.Level == LevelCritical {
		recs = append(recs,
			"Immediate action required - consider escalating or reassigning",
			"Schedule urgent team discussion about this task")
	}

	if a.Progress < 0.3 && a.DaysRemaining != nil && *a.DaysRemaining <= 3 {
		recs = append(recs,
			"Break task into smaller, actionable subtasks",
			"Consider pair programming or additional resources")
	}

	if t.EffortScore >= 4 {
		recs = append(recs, "Complex task - ensure clear requirements and milestones")
	}

	if t.AssignedTo == nil {
		recs = append(recs, "Assign task to a specific team member for accountability")
	}

	if len(t.BlockedBy) > 0 {
		recs = append(recs, "Review and resolve blocking dependencies first")
	}

	if a.Level.AtLeast(LevelHigh) && a.Progress < 0.5 {
		recs = append(recs,
			"Consider updating task status to reflect current progress",
			"Add progress update to project discussions")
	}

	return recs
}
