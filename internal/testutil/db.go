package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/database"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	_ "modernc.org/sqlite"
)

// Now is the instant every fixture and FixedClock agree on.
var Now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Today is the calendar date of Now.
func Today() models.Date {
	return models.DateOf(Now)
}

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	return <-outC
}

// SetupTestDB creates an in-memory database with the production schema
func SetupTestDB(t *testing.T) *database.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// each pooled connection would otherwise open its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(context.Background(), db, database.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database.NewRepository(db, database.DialectSQLite)
}

// CreateTestUser creates an active user and returns its ID
func CreateTestUser(t *testing.T, repo database.DataStore, email string) int {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), &models.User{Email: email, Name: email, Active: true, CreatedAt: Now})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u.ID
}

// CreateTestProject creates a project with To-Do (default), In Progress and Done statuses
func CreateTestProject(t *testing.T, repo database.DataStore, name string) int {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), &models.Project{Name: name, Description: "Test description", CreatedAt: Now})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	CreateTestStatus(t, repo, p.ID, "To-Do", true)
	CreateTestStatus(t, repo, p.ID, "In Progress", false)
	CreateTestStatus(t, repo, p.ID, "Done", false)

	return p.ID
}

// CreateTestStatus creates a status at the end of the project's workflow and returns its ID
func CreateTestStatus(t *testing.T, repo database.DataStore, projectID int, name string, isDefault bool) int {
	t.Helper()
	existing, err := repo.ListStatuses(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Failed to list statuses: %v", err)
	}
	s, err := repo.CreateStatus(context.Background(), &models.Status{
		ProjectID: projectID,
		Name:      name,
		Color:     models.DefaultStatusColor,
		Position:  len(existing),
		IsDefault: isDefault,
	})
	if err != nil {
		t.Fatalf("Failed to create test status: %v", err)
	}
	return s.ID
}

// StatusID looks up a project's status by name
func StatusID(t *testing.T, repo database.DataStore, projectID int, name string) int {
	t.Helper()
	statuses, err := repo.ListStatuses(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Failed to list statuses: %v", err)
	}
	for _, s := range statuses {
		if s.Name == name {
			return s.ID
		}
	}
	t.Fatalf("status %q not found in project %d", name, projectID)
	return 0
}

// AddTestMember adds a user to a project team
func AddTestMember(t *testing.T, repo database.DataStore, projectID, userID int) {
	t.Helper()
	if err := repo.AddTeamMember(context.Background(), projectID, userID); err != nil {
		t.Fatalf("Failed to add team member: %v", err)
	}
}

// TaskOption customizes a fixture task before it is inserted
type TaskOption func(*models.Task)

// WithDueIn sets the due date relative to Today
func WithDueIn(days int) TaskOption {
	return func(t *models.Task) {
		d := Today().AddDays(days)
		t.DueDate = &d
	}
}

// WithStatus sets the status ID
func WithStatus(id int) TaskOption {
	return func(t *models.Task) { t.StatusID = &id }
}

// WithAssignee sets the assignee
func WithAssignee(id int) TaskOption {
	return func(t *models.Task) { t.AssignedTo = &id }
}

// WithScores sets effort and impact levels
func WithScores(effort, impact int) TaskOption {
	return func(t *models.Task) {
		t.EffortScore = effort
		t.ImpactScore = impact
	}
}

// WithCreatedAt overrides the creation timestamp
func WithCreatedAt(at time.Time) TaskOption {
	return func(t *models.Task) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

// CreateTestTask inserts a task directly through the repository and returns its ID.
// Edges are not mirrored; use the task service when reciprocity matters.
func CreateTestTask(t *testing.T, repo database.DataStore, projectID int, title string, opts ...TaskOption) int {
	t.Helper()
	task := &models.Task{
		ProjectID:   projectID,
		Title:       title,
		EffortScore: models.DefaultLevel,
		ImpactScore: models.DefaultLevel,
		Priority:    models.PriorityMedium,
		CreatedAt:   Now,
		UpdatedAt:   Now,
	}
	for _, opt := range opts {
		opt(task)
	}
	created, err := repo.CreateTask(context.Background(), task)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return created.ID
}
