package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/loadline/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied
// and the default schedule seeded. The database is closed when the test completes.
func NewTestDB(t *testing.T, opts ...db.Option) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath, opts...)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
