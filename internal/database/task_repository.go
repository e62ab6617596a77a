package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/converters"
	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// ============================================================================
// Task Operations
// ============================================================================

// TaskRepo handles task persistence. Tasks are always loaded together with
// their status so progress can be estimated without a second lookup.
type TaskRepo struct {
	q conn
}

const taskSelect = `SELECT t.id, t.project_id, t.title, t.description, t.due_date, t.status_id,
	t.effort_score, t.impact_score, t.dependency_map, t.blocked_by,
	t.priority_score, t.priority, t.assigned_to, t.created_at, t.updated_at,
	s.id, s.project_id, s.name, s.description, s.color, s.position, s.is_default
	FROM tasks t
	LEFT JOIN statuses s ON s.id = t.status_id`

// CreateTask inserts t and returns the stored row.
func (r *TaskRepo) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	created := nowOr(t.CreatedAt)
	updated := nowOr(t.UpdatedAt)
	var id int
	err := r.q.queryRow(ctx,
		`INSERT INTO tasks (project_id, title, description, due_date, status_id,
			effort_score, impact_score, dependency_map, blocked_by,
			priority_score, priority, assigned_to, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		t.ProjectID, t.Title, t.Description, nullableDate(t.DueDate), nullableInt(t.StatusID),
		t.EffortScore, t.ImpactScore,
		converters.EncodeIDs(t.DependencyMap), converters.EncodeIDs(t.BlockedBy),
		t.PriorityScore, t.Priority, nullableInt(t.AssignedTo),
		formatTime(created), formatTime(updated),
	).Scan(&id)
	if err != nil {
		return nil, storageErr("create task", err)
	}
	return r.GetTask(ctx, id)
}

// GetTask returns a task by id.
func (r *TaskRepo) GetTask(ctx context.Context, id int) (*models.Task, error) {
	t, err := scanTask(r.q.queryRow(ctx, taskSelect+` WHERE t.id = ?`, id))
	if err != nil {
		return nil, lookupErr("task", id, err)
	}
	return t, nil
}

// ListTasksByProject returns every task of a project ordered by id.
func (r *TaskRepo) ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	return r.listTasks(ctx, "list project tasks",
		taskSelect+` WHERE t.project_id = ? ORDER BY t.id`, projectID)
}

// ListOpenTasksWithDeadline returns tasks with a due date whose status name
// contains none of doneKeywords. Tasks without a status are included.
func (r *TaskRepo) ListOpenTasksWithDeadline(ctx context.Context, doneKeywords []string) ([]*models.Task, error) {
	var b strings.Builder
	b.WriteString(taskSelect)
	b.WriteString(` WHERE t.due_date IS NOT NULL`)
	args := make([]any, 0, len(doneKeywords))
	if len(doneKeywords) > 0 {
		b.WriteString(` AND (s.id IS NULL OR (`)
		for i, kw := range doneKeywords {
			if i > 0 {
				b.WriteString(` AND `)
			}
			b.WriteString(`LOWER(s.name) NOT LIKE ?`)
			args = append(args, "%"+strings.ToLower(kw)+"%")
		}
		b.WriteString(`))`)
	}
	b.WriteString(` ORDER BY t.due_date, t.id`)
	return r.listTasks(ctx, "list open tasks", b.String(), args...)
}

// UpdateTask writes every mutable column of t.
func (r *TaskRepo) UpdateTask(ctx context.Context, t *models.Task) error {
	res, err := r.q.exec(ctx,
		`UPDATE tasks
		 SET title = ?, description = ?, due_date = ?, status_id = ?,
			effort_score = ?, impact_score = ?, dependency_map = ?, blocked_by = ?,
			priority_score = ?, priority = ?, assigned_to = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, nullableDate(t.DueDate), nullableInt(t.StatusID),
		t.EffortScore, t.ImpactScore,
		converters.EncodeIDs(t.DependencyMap), converters.EncodeIDs(t.BlockedBy),
		t.PriorityScore, t.Priority, nullableInt(t.AssignedTo), formatTime(nowOr(t.UpdatedAt)),
		t.ID,
	)
	if err != nil {
		return storageErr("update task", err)
	}
	return expectOneRow(res, "task", t.ID)
}

// UpdateTaskPriority writes only the derived priority fields.
func (r *TaskRepo) UpdateTaskPriority(ctx context.Context, id int, score float64, label string) error {
	res, err := r.q.exec(ctx,
		`UPDATE tasks SET priority_score = ?, priority = ? WHERE id = ?`,
		score, label, id)
	if err != nil {
		return storageErr("update task priority", err)
	}
	return expectOneRow(res, "task", id)
}

// DeleteTask removes a task. Notifications keep their rows with task_id cleared.
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	res, err := r.q.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete task", err)
	}
	return expectOneRow(res, "task", id)
}

func (r *TaskRepo) listTasks(ctx context.Context, op, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, storageErr("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t                    models.Task
		dueDate              sql.NullString
		statusID, assignedTo sql.NullInt64
		depMap, blockedBy    string
		createdAt, updatedAt string

		sID, sProjectID, sPosition sql.NullInt64
		sName, sDesc, sColor       sql.NullString
		sDefault                   sql.NullBool
	)
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &dueDate, &statusID,
		&t.EffortScore, &t.ImpactScore, &depMap, &blockedBy,
		&t.PriorityScore, &t.Priority, &assignedTo, &createdAt, &updatedAt,
		&sID, &sProjectID, &sName, &sDesc, &sColor, &sPosition, &sDefault,
	)
	if err != nil {
		return nil, err
	}

	if t.DueDate, err = nullStringToDate(dueDate); err != nil {
		return nil, err
	}
	t.StatusID = nullInt64ToPtr(statusID)
	t.AssignedTo = nullInt64ToPtr(assignedTo)
	if t.DependencyMap, err = converters.DecodeIDs(depMap); err != nil {
		return nil, err
	}
	if t.BlockedBy, err = converters.DecodeIDs(blockedBy); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if sID.Valid {
		t.Status = &models.Status{
			ID:          int(sID.Int64),
			ProjectID:   int(sProjectID.Int64),
			Name:        sName.String,
			Description: sDesc.String,
			Color:       sColor.String,
			Position:    int(sPosition.Int64),
			IsDefault:   sDefault.Bool,
		}
	}
	return &t, nil
}

func expectOneRow(res sql.Result, entity string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("read rows affected", err)
	}
	if n == 0 {
		return lookupErr(entity, id, sql.ErrNoRows)
	}
	return nil
}
