package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := Migrate(context.Background(), db, DialectSQLite); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewRepository(db, DialectSQLite)
}

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func createTestUser(t *testing.T, repo *Repository, email string) *models.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), &models.User{Email: email, Name: email, Active: true})
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}

func createTestProject(t *testing.T, repo *Repository, name string) *models.Project {
	t.Helper()
	p, err := repo.CreateProject(context.Background(), &models.Project{Name: name, CreatedAt: testNow})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return p
}

func createTestStatus(t *testing.T, repo *Repository, projectID int, name string, isDefault bool) *models.Status {
	t.Helper()
	s, err := repo.CreateStatus(context.Background(), &models.Status{
		ProjectID: projectID, Name: name, Color: models.DefaultStatusColor, IsDefault: isDefault,
	})
	if err != nil {
		t.Fatalf("Failed to create status: %v", err)
	}
	return s
}

func createTestTask(t *testing.T, repo *Repository, task *models.Task) *models.Task {
	t.Helper()
	if task.EffortScore == 0 {
		task.EffortScore = models.DefaultLevel
	}
	if task.ImpactScore == 0 {
		task.ImpactScore = models.DefaultLevel
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt, task.UpdatedAt = testNow, testNow
	}
	created, err := repo.CreateTask(context.Background(), task)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return created
}

func datePtr(d models.Date) *models.Date { return &d }
