package models

// ============================================================================
// PRIORITY LABELS
// ============================================================================

// Priority labels derived from the priority score
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// IsPriorityLabel reports whether s is one of the four priority labels.
func IsPriorityLabel(s string) bool {
	switch s {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ============================================================================
// EFFORT / IMPACT
// ============================================================================

// Effort and impact are 1..5 levels. A missing level is treated as 3.
const (
	MinLevel     = 1
	MaxLevel     = 5
	DefaultLevel = 3
)

// ============================================================================
// NOTIFICATION TYPES
// ============================================================================

const (
	NotificationTypeGeneral         = "general"
	NotificationTypeDeadlineWarning = "deadline_warning"
)

// DefaultStatusColor is used when a status is created without a color
const DefaultStatusColor = "#6B7280"
