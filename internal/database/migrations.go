package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// schema is applied in order. {{pk}} expands to the dialect's id column.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		{{pk}},
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		{{pk}},
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_by INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS statuses (
		{{pk}},
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '#6B7280',
		position INTEGER NOT NULL DEFAULT 0,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (project_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		{{pk}},
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date TEXT,
		status_id INTEGER REFERENCES statuses(id) ON DELETE SET NULL,
		effort_score INTEGER NOT NULL DEFAULT 3,
		impact_score INTEGER NOT NULL DEFAULT 3,
		dependency_map TEXT NOT NULL DEFAULT '[]',
		blocked_by TEXT NOT NULL DEFAULT '[]',
		priority_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'Medium',
		assigned_to INTEGER REFERENCES users(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		{{pk}},
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'general',
		priority TEXT NOT NULL DEFAULT 'medium',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		next_reminder_at TEXT,
		task_id INTEGER REFERENCES tasks(id) ON DELETE SET NULL,
		project_id INTEGER REFERENCES projects(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_task_type ON notifications(task_id, type, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	for i, stmt := range schema {
		stmt = strings.ReplaceAll(stmt, "{{pk}}", dialect.primaryKey())
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
