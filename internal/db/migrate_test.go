package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, opts ...Option) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func scheduleRows(t *testing.T, db *sql.DB) map[string]float64 {
	t.Helper()
	rows, err := db.Query(`SELECT weekday, hours FROM weekly_schedule`)
	require.NoError(t, err)
	defer rows.Close()
	out := make(map[string]float64)
	for rows.Next() {
		var day string
		var hours float64
		require.NoError(t, rows.Scan(&day, &hours))
		out[day] = hours
	}
	require.NoError(t, rows.Err())
	return out
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"work_items", "relations", "weekly_schedule", "internal_estimates", "time_entries"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_work_items_assignee",
		"idx_work_items_due",
		"idx_relations_target",
		"idx_time_entries_spent_on",
		"idx_time_entries_item",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestOpenDB_SeedsDefaultSchedule(t *testing.T) {
	db := openTestDB(t)

	assert.Equal(t, DefaultScheduleSeed(), scheduleRows(t, db))
}

func TestOpenDB_CustomSeed(t *testing.T) {
	seed := DefaultScheduleSeed()
	seed["Friday"] = 4
	db := openTestDB(t, WithScheduleSeed(seed))

	assert.Equal(t, 4.0, scheduleRows(t, db)["Friday"])
}

func TestSeedWeeklySchedule_KeepsSavedSchedule(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`UPDATE weekly_schedule SET hours = 6 WHERE weekday = 'Monday'`)
	require.NoError(t, err)

	require.NoError(t, seedWeeklySchedule(context.Background(), db, DefaultScheduleSeed()))
	assert.Equal(t, 6.0, scheduleRows(t, db)["Monday"])
}

func TestMigrate_RejectsInvalidRows(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO work_items (id, done_ratio, updated_at) VALUES (1, 120, '2026-03-02T00:00:00Z')`)
	assert.Error(t, err, "done_ratio above 100")

	_, err = db.Exec(`UPDATE weekly_schedule SET hours = 25 WHERE weekday = 'Monday'`)
	assert.Error(t, err, "more than 24 hours in a day")

	_, err = db.Exec(`INSERT INTO weekly_schedule (weekday, hours) VALUES ('Funday', 1)`)
	assert.Error(t, err)
}

func TestMigrate_UpgradeAddsTimeEntryComment(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE time_entries (
		id         TEXT PRIMARY KEY,
		item_id    INTEGER NOT NULL,
		spent_on   TEXT NOT NULL,
		hours      REAL NOT NULL,
		created_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO time_entries (id, item_id, spent_on, hours, created_at)
		VALUES ('te-1', 7, '2026-03-02', 2.5, '2026-03-02T17:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var comment string
	var hours float64
	err = db.QueryRow(`SELECT comment, hours FROM time_entries WHERE id = 'te-1'`).Scan(&comment, &hours)
	require.NoError(t, err)
	assert.Equal(t, "", comment)
	assert.Equal(t, 2.5, hours)
}
