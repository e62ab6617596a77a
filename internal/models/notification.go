package models

import "time"

// Notification is a message addressed to one user.
// TaskID and ProjectID are weak references: they become nil when the
// referenced row is deleted.
type Notification struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	IsRead         bool       `json:"is_read"`
	CreatedAt      time.Time  `json:"created_at"`
	NextReminderAt *time.Time `json:"next_reminder_at"`
	TaskID         *int       `json:"task_id"`
	ProjectID      *int       `json:"project_id"`
}

func (n *Notification) GetID() int {
	return n.ID
}

// NotificationStats summarizes a user's notifications
type NotificationStats struct {
	Total          int            `json:"total"`
	Unread         int            `json:"unread"`
	ByType         map[string]int `json:"by_type"`
	ByPriority     map[string]int `json:"by_priority"`
	RecentWeek     int            `json:"recent_week"`
	RecentMonth    int            `json:"recent_month"`
	UnreadDeadline int            `json:"unread_deadline_warnings"`
}
