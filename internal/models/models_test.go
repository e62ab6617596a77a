package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestValidationError_UnwrapsToErrValidation(t *testing.T) {
	err := NewValidationError("effort_score", "must be between 1 and 5")
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ValidationError should not match ErrNotFound")
	}
	if got := err.Error(); got != "effort_score: must be between 1 and 5" {
		t.Errorf("unexpected message %q", got)
	}
}

// ============================================================================
// Date Tests
// ============================================================================

func TestDate_DaysUntil(t *testing.T) {
	today := NewDate(2024, time.January, 10)
	tests := []struct {
		name string
		due  Date
		want int
	}{
		{"same day", NewDate(2024, time.January, 10), 0},
		{"tomorrow", NewDate(2024, time.January, 11), 1},
		{"yesterday", NewDate(2024, time.January, 9), -1},
		{"across month", NewDate(2024, time.February, 1), 22},
		{"across leap day", NewDate(2024, time.March, 1), 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := today.DaysUntil(tt.due); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateOf_UsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2024, time.May, 2, 5, 0, 0, 0, loc)
	if got := DateOf(ts).String(); got != "2024-05-01" {
		t.Errorf("DateOf() = %s, want 2024-05-01", got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/01/2024")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDate_JSON(t *testing.T) {
	var task struct {
		Due *Date `json:"due"`
	}
	if err := json.Unmarshal([]byte(`{"due":"2024-02-29"}`), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.Due == nil || task.Due.String() != "2024-02-29" {
		t.Fatalf("unexpected date %v", task.Due)
	}
	out, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"due":"2024-02-29"}` {
		t.Errorf("unexpected json %s", out)
	}
}

func TestIsPriorityLabel(t *testing.T) {
	for _, label := range []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !IsPriorityLabel(label) {
			t.Errorf("%s should be a priority label", label)
		}
	}
	if IsPriorityLabel("Critical") {
		t.Error("Critical is not a priority label")
	}
}
