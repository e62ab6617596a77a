package models

import "time"

// Task is a unit of work inside a project.
//
// DependencyMap lists the tasks this task blocks. BlockedBy lists the tasks
// blocking this one. The two lists are kept reciprocal across all tasks of a
// project: B is in A.DependencyMap exactly when A is in B.BlockedBy.
type Task struct {
	ID            int       `json:"id"`
	ProjectID     int       `json:"project_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       *Date     `json:"due_date"`
	StatusID      *int      `json:"status_id"`
	Status        *Status   `json:"status,omitempty"`
	EffortScore   int       `json:"effort_score"`
	ImpactScore   int       `json:"impact_score"`
	DependencyMap []int     `json:"dependency_map"`
	BlockedBy     []int     `json:"blocked_by"`
	PriorityScore float64   `json:"priority_score"`
	Priority      string    `json:"priority"`
	AssignedTo    *int      `json:"assigned_to"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GetID lets the CLI print bare ids in quiet mode.
func (t *Task) GetID() int {
	return t.ID
}

// StatusName returns the name of the task's status, or "" when it has none.
func (t *Task) StatusName() string {
	if t.Status == nil {
		return ""
	}
	return t.Status.Name
}
