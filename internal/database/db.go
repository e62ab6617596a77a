// Package database handles connections, migrations and repositories for the
// SQLite and Postgres backends.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DefaultSQLitePath returns ~/.synergy/synergy.db.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".synergy", "synergy.db"), nil
}

// InitDB opens the database for driver ("sqlite" or "postgres"), applies
// connection settings and runs migrations. An empty sqlite dsn uses
// DefaultSQLitePath.
func InitDB(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, dialect, err
	}

	if dialect == DialectSQLite {
		if dsn == "" {
			if dsn, err = DefaultSQLitePath(); err != nil {
				return nil, dialect, err
			}
		}
		if dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, dialect, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	} else if dsn == "" {
		return nil, dialect, fmt.Errorf("postgres driver requires a dsn")
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}

	closeOnErr := func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
	}

	if dialect == DialectSQLite {
		if err := applySQLitePragmas(ctx, db); err != nil {
			closeOnErr()
			return nil, dialect, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		closeOnErr()
		return nil, dialect, fmt.Errorf("database ping failed: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite benefits from a single writer connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := Migrate(ctx, db, dialect); err != nil {
		closeOnErr()
		return nil, dialect, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("database ready", "driver", dialect.DriverName())
	return db, dialect, nil
}

func applySQLitePragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []struct {
		stmt string
		desc string
	}{
		// required for ON DELETE CASCADE / SET NULL
		{"PRAGMA foreign_keys = ON", "enable foreign keys"},
		{"PRAGMA journal_mode = WAL", "enable WAL mode"},
		{"PRAGMA busy_timeout = 5000", "set busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p.stmt); err != nil {
			slog.Error("Failed to "+p.desc, "error", err)
			return fmt.Errorf("failed to %s: %w", p.desc, err)
		}
	}
	return nil
}
