package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*UserRepo
	*TeamRepo
	*StatusRepo
	*TaskRepo
	*NotificationRepo

	db      *sql.DB // nil when bound to a transaction
	dialect Dialect
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	r := bind(conn{db: db, dialect: dialect})
	r.db = db
	return r
}

func bind(c conn) *Repository {
	return &Repository{
		ProjectRepo:      &ProjectRepo{q: c},
		UserRepo:         &UserRepo{q: c},
		TeamRepo:         &TeamRepo{q: c},
		StatusRepo:       &StatusRepo{q: c},
		TaskRepo:         &TaskRepo{q: c},
		NotificationRepo: &NotificationRepo{q: c},
		dialect:          c.dialect,
	}
}

// Dialect reports the SQL dialect in use.
func (r *Repository) Dialect() Dialect {
	return r.dialect
}

// WithTx implements DataStore.
func (r *Repository) WithTx(ctx context.Context, fn func(tx DataStore) error) error {
	if r.db == nil {
		return fn(r)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(bind(conn{db: tx, dialect: r.dialect}))
	})
}
