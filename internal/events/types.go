package events

import "time"

// EventType indicates what kind of engine activity occurred
type EventType string

const (
	EventPriorityChanged     EventType = "priority_changed"
	EventNotificationCreated EventType = "notification_created"
	EventSweepCompleted      EventType = "sweep_completed"
	EventPing                EventType = "ping"
)

// Event describes one engine change. ProjectID 0 means the event concerns every project.
type Event struct {
	Type       EventType `json:"type"`
	ProjectID  int       `json:"project_id,omitempty"`
	TaskID     int       `json:"task_id,omitempty"`
	Count      int       `json:"count,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"`
}

// Matches reports whether a subscriber filtering on projectID should see e.
func (e Event) Matches(projectID int) bool {
	return e.ProjectID == 0 || projectID == 0 || e.ProjectID == projectID
}
