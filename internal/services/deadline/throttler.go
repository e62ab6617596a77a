package deadline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/risk"
)

var titles = map[risk.Level]string{
	risk.LevelCritical: "URGENT: Task deadline at critical risk!",
	risk.LevelHigh:     "HIGH RISK: Task may miss deadline",
	risk.LevelMedium:   "ATTENTION: Task progress behind schedule",
}

// Throttler decides whether a risky task warrants a deadline warning and
// writes one notification per recipient when it does.
type Throttler struct {
	cfg Config
	now func() time.Time
}

// NewThrottler creates a throttler. A nil clock means time.Now.
func NewThrottler(cfg Config, now func() time.Time) *Throttler {
	if now == nil {
		now = time.Now
	}
	if cfg.MinLevel == "" {
		cfg.MinLevel = risk.LevelMedium
	}
	return &Throttler{cfg: cfg, now: now}
}

// ShouldNotify reports whether level is notifiable and no deadline warning for
// the task was created inside the level's cooldown window.
func (th *Throttler) ShouldNotify(ctx context.Context, repo database.NotificationReader, taskID int, level risk.Level) (bool, error) {
	if level == risk.LevelLow || !level.AtLeast(th.cfg.MinLevel) {
		return false, nil
	}
	since := th.now().UTC().Add(-th.cfg.Cooldown(level))
	recent, err := repo.FindRecentNotification(ctx, taskID, models.NotificationTypeDeadlineWarning, since)
	if err != nil {
		return false, err
	}
	if recent != nil {
		slog.Debug("deadline warning suppressed",
			"task_id", taskID,
			"risk_level", level,
			"last_notification_id", recent.ID)
		return false, nil
	}
	return true, nil
}

// Recipients returns the assignee, or every team member when the task is unassigned.
func (th *Throttler) Recipients(ctx context.Context, team database.TeamRepository, t *models.Task) ([]int, error) {
	if t.AssignedTo != nil {
		return []int{*t.AssignedTo}, nil
	}
	// ListMemberIDs is keyed by (project, user) so ids are already unique
	return team.ListMemberIDs(ctx, t.ProjectID)
}

// Notify writes deadline warnings for t when the throttle allows it and
// returns what was created. store should be transaction-bound.
func (th *Throttler) Notify(ctx context.Context, store database.DataStore, t *models.Task, projectName string, a risk.Assessment) ([]*models.Notification, error) {
	ok, err := th.ShouldNotify(ctx, store, t.ID, a.Level)
	if err != nil || !ok {
		return nil, err
	}

	recipients, err := th.Recipients(ctx, store, t)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		slog.Debug("no recipients for deadline warning", "task_id", t.ID, "project_id", t.ProjectID)
		return nil, nil
	}

	now := th.now().UTC()
	next := now.Add(th.cfg.Cooldown(a.Level))
	title, message := Render(t, projectName, a)

	created := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		n, err := store.CreateNotification(ctx, &models.Notification{
			UserID:         userID,
			Title:          title,
			Message:        message,
			Type:           models.NotificationTypeDeadlineWarning,
			Priority:       string(a.Level),
			CreatedAt:      now,
			NextReminderAt: &next,
			TaskID:         &t.ID,
			ProjectID:      &t.ProjectID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create deadline warning for user %d: %w", userID, err)
		}
		created = append(created, n)
	}
	return created, nil
}

// Render builds the title and body of a deadline warning.
func Render(t *models.Task, projectName string, a risk.Assessment) (string, string) {
	title, ok := titles[a.Level]
	if !ok {
		title = "Task deadline reminder"
	}

	days := 0
	if a.DaysRemaining != nil {
		days = *a.DaysRemaining
	}
	if projectName == "" {
		projectName = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task %q is at %s risk of missing its deadline.\n\n", t.Title, a.Level)
	fmt.Fprintf(&b, "Current Progress: %d%%\n", int(a.Progress*100))
	fmt.Fprintf(&b, "Deadline: %s\n", risk.DeadlinePhrase(days))
	fmt.Fprintf(&b, "Risk Score: %.0f%%\n", a.Score*100)
	fmt.Fprintf(&b, "Priority: %s\n\n", t.Priority)
	fmt.Fprintf(&b, "Project: %s", projectName)
	return title, b.String()
}
