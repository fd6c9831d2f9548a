package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/studydash/internal/apperrors"
)

// Supported values for the DB_TYPE setting
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Store is the durable row store for dashboard snapshots, deadlines and
// completed modules. Every method is a single statement.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects to the database and creates the schema if needed.
// For sqlite dsn is a file path, for postgres a connection URL.
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch dbType {
	case TypeSQLite, "":
		// Create data directory if it doesn't exist
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, apperrors.Storage("create data directory", err)
			}
		}
		db, err = sqlx.ConnectContext(ctx, "sqlite3", dsn)
		if err != nil {
			return nil, apperrors.Storage("connect sqlite", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case TypePostgres:
		db, err = sqlx.ConnectContext(ctx, "postgres", dsn)
		if err != nil {
			return nil, apperrors.Storage("connect postgres", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// SetClock replaces the time source used for last_updated stamps
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return apperrors.Storage("ping", s.db.PingContext(ctx))
}

func (s *Store) isPostgres() bool {
	return s.db.DriverName() == "postgres"
}

func (s *Store) timestamp() string {
	return s.now().Format(time.RFC3339)
}

// initializeSchema creates necessary tables if they don't exist
func (s *Store) initializeSchema(ctx context.Context) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.isPostgres() {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	tables := []struct {
		name string
		ddl  string
	}{
		{"dashboard_data", `
			CREATE TABLE IF NOT EXISTS dashboard_data (
				` + idColumn + `,
				student_id TEXT NOT NULL UNIQUE,
				gpa DOUBLE PRECISION,
				target_gpa DOUBLE PRECISION,
				target_end_date TEXT,
				avg_module_time INTEGER,
				target_module_time INTEGER,
				last_updated TEXT
			)`},
		{"deadlines", `
			CREATE TABLE IF NOT EXISTS deadlines (
				` + idColumn + `,
				student_id TEXT NOT NULL,
				deadline_type TEXT,
				module_name TEXT,
				deadline_date TEXT
			)`},
		{"completed_modules", `
			CREATE TABLE IF NOT EXISTS completed_modules (
				` + idColumn + `,
				student_id TEXT NOT NULL,
				module_id TEXT NOT NULL,
				completion_date TEXT,
				grade DOUBLE PRECISION,
				UNIQUE(student_id, module_id)
			)`},
	}

	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, t.ddl); err != nil {
			return apperrors.Storage("create "+t.name+" table", err)
		}
	}
	return nil
}
