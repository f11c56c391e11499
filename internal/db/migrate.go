package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_items (
		id              INTEGER PRIMARY KEY,
		subject         TEXT NOT NULL DEFAULT '',
		start_date      TEXT,
		due_date        TEXT,
		estimated_hours REAL CHECK(estimated_hours IS NULL OR estimated_hours >= 0),
		spent_hours     REAL NOT NULL DEFAULT 0 CHECK(spent_hours >= 0),
		done_ratio      INTEGER NOT NULL DEFAULT 0 CHECK(done_ratio >= 0 AND done_ratio <= 100),
		closed_at       TEXT,
		assignee_id     INTEGER,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_assignee ON work_items(assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_due ON work_items(due_date)`,

	`CREATE TABLE IF NOT EXISTS relations (
		owner_item_id  INTEGER NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		target_item_id INTEGER NOT NULL,
		relation_type  TEXT NOT NULL,
		PRIMARY KEY (owner_item_id, target_item_id, relation_type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_relations_target ON relations(target_item_id)`,

	`CREATE TABLE IF NOT EXISTS weekly_schedule (
		weekday TEXT PRIMARY KEY
		        CHECK(weekday IN ('Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday')),
		hours   REAL NOT NULL CHECK(hours >= 0 AND hours <= 24)
	)`,

	`CREATE TABLE IF NOT EXISTS internal_estimates (
		item_id         INTEGER PRIMARY KEY,
		hours_remaining REAL NOT NULL CHECK(hours_remaining >= 0),
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id         TEXT PRIMARY KEY,
		item_id    INTEGER NOT NULL,
		spent_on   TEXT NOT NULL,
		hours      REAL NOT NULL CHECK(hours > 0 AND hours <= 24),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_spent_on ON time_entries(spent_on)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_item ON time_entries(item_id)`,
	`ALTER TABLE time_entries ADD COLUMN comment TEXT NOT NULL DEFAULT ''`,
}

// Migrate runs all schema migrations. Statements are idempotent, so it is
// safe to run on every start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE re-runs on an up-to-date schema.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// DefaultScheduleSeed is a Monday–Friday, eight-hour week.
func DefaultScheduleSeed() map[string]float64 {
	return map[string]float64{
		"Monday": 8, "Tuesday": 8, "Wednesday": 8, "Thursday": 8, "Friday": 8,
		"Saturday": 0, "Sunday": 0,
	}
}

// seedWeeklySchedule fills weekly_schedule when it is empty. A partially
// filled table is left alone so a saved schedule is never mixed with defaults.
func seedWeeklySchedule(ctx context.Context, db DBTX, hours map[string]float64) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weekly_schedule`).Scan(&n); err != nil {
		return fmt.Errorf("counting weekly_schedule rows: %w", err)
	}
	if n > 0 {
		return nil
	}
	for day, h := range hours {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO weekly_schedule (weekday, hours) VALUES (?, ?)`, day, h); err != nil {
			return fmt.Errorf("seeding %s: %w", day, err)
		}
	}
	return nil
}
