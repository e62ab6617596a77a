package database

import (
	"context"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// StatusRepo handles per-project workflow statuses
type StatusRepo struct {
	q conn
}

const statusColumns = `id, project_id, name, description, color, position, is_default`

// CreateStatus inserts s. When s is the default, every other status of the
// project loses its default flag first, so run it inside a transaction.
func (r *StatusRepo) CreateStatus(ctx context.Context, s *models.Status) (*models.Status, error) {
	if s.IsDefault {
		if err := r.clearDefault(ctx, s.ProjectID); err != nil {
			return nil, err
		}
	}
	var id int
	err := r.q.queryRow(ctx,
		`INSERT INTO statuses (project_id, name, description, color, position, is_default)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		s.ProjectID, s.Name, s.Description, s.Color, s.Position, s.IsDefault,
	).Scan(&id)
	if err != nil {
		return nil, storageErr("create status", err)
	}
	return r.GetStatus(ctx, id)
}

// SetDefaultStatus makes id the only default status of its project.
func (r *StatusRepo) SetDefaultStatus(ctx context.Context, projectID, id int) error {
	if err := r.clearDefault(ctx, projectID); err != nil {
		return err
	}
	if _, err := r.q.exec(ctx,
		`UPDATE statuses SET is_default = ? WHERE id = ? AND project_id = ?`,
		true, id, projectID); err != nil {
		return storageErr("set default status", err)
	}
	return nil
}

func (r *StatusRepo) clearDefault(ctx context.Context, projectID int) error {
	if _, err := r.q.exec(ctx,
		`UPDATE statuses SET is_default = ? WHERE project_id = ? AND is_default = ?`,
		false, projectID, true); err != nil {
		return storageErr("clear default status", err)
	}
	return nil
}

// GetStatus returns a status by id.
func (r *StatusRepo) GetStatus(ctx context.Context, id int) (*models.Status, error) {
	var s models.Status
	err := r.q.queryRow(ctx,
		`SELECT `+statusColumns+` FROM statuses WHERE id = ?`, id,
	).Scan(&s.ID, &s.ProjectID, &s.Name, &s.Description, &s.Color, &s.Position, &s.IsDefault)
	if err != nil {
		return nil, lookupErr("status", id, err)
	}
	return &s, nil
}

// ListStatuses returns a project's statuses ordered by position.
func (r *StatusRepo) ListStatuses(ctx context.Context, projectID int) ([]*models.Status, error) {
	rows, err := r.q.query(ctx,
		`SELECT `+statusColumns+` FROM statuses WHERE project_id = ? ORDER BY position, id`,
		projectID)
	if err != nil {
		return nil, storageErr("list statuses", err)
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		var s models.Status
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Description, &s.Color, &s.Position, &s.IsDefault); err != nil {
			return nil, storageErr("scan status", err)
		}
		statuses = append(statuses, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list statuses", err)
	}
	return statuses, nil
}

// GetDefaultStatus returns the project's default status, or nil when it has none.
func (r *StatusRepo) GetDefaultStatus(ctx context.Context, projectID int) (*models.Status, error) {
	statuses, err := r.ListStatuses(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		if s.IsDefault {
			return s, nil
		}
	}
	return nil, nil
}

// UpdateStatus overwrites every editable column of s. Making s the default
// clears the project's previous default, so run it inside a transaction.
func (r *StatusRepo) UpdateStatus(ctx context.Context, s *models.Status) error {
	if s.IsDefault {
		if err := r.clearDefault(ctx, s.ProjectID); err != nil {
			return err
		}
	}
	res, err := r.q.exec(ctx,
		`UPDATE statuses SET name = ?, description = ?, color = ?, position = ?, is_default = ?
		 WHERE id = ?`,
		s.Name, s.Description, s.Color, s.Position, s.IsDefault, s.ID)
	if err != nil {
		return storageErr("update status", err)
	}
	return expectOneRow(res, "status", s.ID)
}

// CountTasksWithStatus returns how many tasks are in status id.
func (r *StatusRepo) CountTasksWithStatus(ctx context.Context, id int) (int, error) {
	var n int
	if err := r.q.queryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status_id = ?`, id).Scan(&n); err != nil {
		return 0, storageErr("count tasks with status", err)
	}
	return n, nil
}

// DeleteStatus removes status id. Its tasks are left without a status.
func (r *StatusRepo) DeleteStatus(ctx context.Context, id int) error {
	if _, err := r.q.exec(ctx, `UPDATE tasks SET status_id = NULL WHERE status_id = ?`, id); err != nil {
		return storageErr("detach tasks from status", err)
	}
	res, err := r.q.exec(ctx, `DELETE FROM statuses WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete status", err)
	}
	return expectOneRow(res, "status", id)
}
