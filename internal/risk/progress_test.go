package risk

import (
	"testing"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

func TestEstimator_ForName(t *testing.T) {
	t.Parallel()
	e := NewEstimator(DefaultProgressConfig())

	tests := []struct {
		name   string
		status string
		want   float64
	}{
		{"exact todo", "To-Do", 0.0},
		{"exact in progress", "In Progress", 0.5},
		{"exact qa", "QA", 0.7},
		{"exact done", "Done", 1.0},
		{"padded", "  review ", 0.8},
		{"substring review", "Code Review", 0.8},
		{"substring done", "Done (archived)", 1.0},
		{"first rule wins", "active review", 0.5},
		{"unknown", "Blocked", 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ForName(tt.status); got != tt.want {
				t.Errorf("ForName(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestEstimator_NoStatus(t *testing.T) {
	t.Parallel()
	e := NewEstimator(DefaultProgressConfig())
	if got := e.Progress(&models.Task{}); got != 0.1 {
		t.Errorf("Progress() without status = %v, want 0.1", got)
	}
	task := &models.Task{Status: &models.Status{Name: "Testing"}}
	if got := e.Progress(task); got != 0.7 {
		t.Errorf("Progress() = %v, want 0.7", got)
	}
}

func TestEstimator_CustomTable(t *testing.T) {
	t.Parallel()
	cfg := ProgressConfig{
		Rules:     []ProgressRule{{Keyword: "Shipped", Progress: 1}},
		NoStatus:  0,
		Unmatched: 0.25,
	}
	e := NewEstimator(cfg)
	if got := e.ForName("shipped to prod"); got != 1 {
		t.Errorf("ForName() = %v, want 1", got)
	}
	if got := e.ForName("todo"); got != 0.25 {
		t.Errorf("ForName() = %v, want 0.25", got)
	}
}

func TestIsDoneStatus(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"Done", "COMPLETED", "Finished work", "closed", "Deployed to prod"} {
		if !IsDoneStatus(name) {
			t.Errorf("%q should be a done status", name)
		}
	}
	for _, name := range []string{"To-Do", "In Progress", "Review", "Deploying"} {
		if IsDoneStatus(name) {
			t.Errorf("%q should not be a done status", name)
		}
	}
}
