package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
// Repositories depend on it so they can run inside a UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

type openOptions struct {
	schedule map[string]float64
}

// Option configures OpenDB.
type Option func(*openOptions)

// WithScheduleSeed sets the weekly hours written into an empty
// weekly_schedule table. Existing rows are never overwritten.
func WithScheduleSeed(hours map[string]float64) Option {
	return func(o *openOptions) {
		o.schedule = hours
	}
}

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// OpenDB opens the SQLite store at path, creating its directory if needed,
// and runs migrations. MemoryPath gives a database pinned to a single
// connection, since each in-memory connection would otherwise see its own
// empty database.
func OpenDB(path string, opts ...Option) (*sql.DB, error) {
	o := openOptions{schedule: DefaultScheduleSeed()}
	for _, opt := range opts {
		opt(&o)
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", p, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := seedWeeklySchedule(context.Background(), db, o.schedule); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding weekly schedule: %w", err)
	}
	return db, nil
}
