package database

import (
	"context"
	"database/sql"

	"github.com/shivaaganesh3/Odoo-x-Hackathon-IITM/internal/models"
)

// ProjectRepo handles project persistence
type ProjectRepo struct {
	q conn
}

const projectColumns = `id, name, description, created_by, created_at`

// CreateProject inserts p and returns the stored row.
func (r *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	created := nowOr(p.CreatedAt)
	var id int
	err := r.q.queryRow(ctx,
		`INSERT INTO projects (name, description, created_by, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		p.Name, p.Description, nullableInt(p.CreatedBy), formatTime(created),
	).Scan(&id)
	if err != nil {
		return nil, storageErr("create project", err)
	}
	return r.GetProject(ctx, id)
}

// GetProject returns a project by id.
func (r *ProjectRepo) GetProject(ctx context.Context, id int) (*models.Project, error) {
	p, err := scanProject(r.q.queryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, lookupErr("project", id, err)
	}
	return p, nil
}

// ListProjects returns every project ordered by id.
func (r *ProjectRepo) ListProjects(ctx context.Context) ([]*models.Project, error) {
	rows, err := r.q.query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, storageErr("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list projects", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p         models.Project
		createdBy sql.NullInt64
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &createdBy, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedBy = nullInt64ToPtr(createdBy)
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}

// ============================================================================
// Users
// ============================================================================

// UserRepo handles user persistence
type UserRepo struct {
	q conn
}

// CreateUser inserts u and returns the stored row.
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	var id int
	err := r.q.queryRow(ctx,
		`INSERT INTO users (email, name, active, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		u.Email, u.Name, u.Active, formatTime(nowOr(u.CreatedAt)),
	).Scan(&id)
	if err != nil {
		return nil, storageErr("create user", err)
	}
	return r.GetUser(ctx, id)
}

// GetUser returns a user by id.
func (r *UserRepo) GetUser(ctx context.Context, id int) (*models.User, error) {
	var (
		u         models.User
		createdAt string
	)
	err := r.q.queryRow(ctx,
		`SELECT id, email, name, active, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Active, &createdAt)
	if err != nil {
		return nil, lookupErr("user", id, err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, storageErr("parse user", err)
	}
	return &u, nil
}

// ============================================================================
// Team membership
// ============================================================================

// TeamRepo handles project membership
type TeamRepo struct {
	q conn
}

// AddTeamMember adds userID to projectID. Adding an existing member is a no-op.
func (r *TeamRepo) AddTeamMember(ctx context.Context, projectID, userID int) error {
	_, err := r.q.exec(ctx,
		`INSERT INTO team_members (project_id, user_id) VALUES (?, ?)
		 ON CONFLICT DO NOTHING`,
		projectID, userID)
	if err != nil {
		return storageErr("add team member", err)
	}
	return nil
}

// ListMemberIDs returns the user ids of a project's members, sorted.
func (r *TeamRepo) ListMemberIDs(ctx context.Context, projectID int) ([]int, error) {
	rows, err := r.q.query(ctx,
		`SELECT user_id FROM team_members WHERE project_id = ? ORDER BY user_id`, projectID)
	if err != nil {
		return nil, storageErr("list team members", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scan team member", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list team members", err)
	}
	return ids, nil
}

// IsTeamMember reports whether userID belongs to projectID.
func (r *TeamRepo) IsTeamMember(ctx context.Context, projectID, userID int) (bool, error) {
	var n int
	err := r.q.queryRow(ctx,
		`SELECT COUNT(*) FROM team_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID).Scan(&n)
	if err != nil {
		return false, storageErr("check team member", err)
	}
	return n > 0, nil
}

