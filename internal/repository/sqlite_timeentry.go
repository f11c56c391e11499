package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
)

const timeEntryColumns = `id, item_id, spent_on, hours, comment, created_at`

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(db db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: db}
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO time_entries (`+timeEntryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ItemID, domain.FormatDate(e.SpentOn), e.Hours, e.Comment,
		e.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) ListByItem(ctx context.Context, itemID int) ([]*domain.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE item_id = ? ORDER BY spent_on, created_at`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing time entries by item: %w", err)
	}
	defer rows.Close()
	return scanTimeEntries(rows)
}

func (r *SQLiteTimeEntryRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timeEntryColumns+` FROM time_entries
		 WHERE spent_on >= ? AND spent_on <= ?
		 ORDER BY spent_on, item_id, created_at`,
		domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()
	return scanTimeEntries(rows)
}

func (r *SQLiteTimeEntryRepo) ActualTimeByDay(ctx context.Context, from, to time.Time) (domain.ActualTimeByDay, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, spent_on, SUM(hours) FROM time_entries
		 WHERE spent_on >= ? AND spent_on <= ?
		 GROUP BY item_id, spent_on`,
		domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, fmt.Errorf("summing time entries: %w", err)
	}
	defer rows.Close()

	out := make(domain.ActualTimeByDay)
	for rows.Next() {
		var itemID int
		var date string
		var hours float64
		if err := rows.Scan(&itemID, &date, &hours); err != nil {
			return nil, fmt.Errorf("scanning time summary: %w", err)
		}
		out.Add(itemID, date, hours)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time summary: %w", err)
	}
	return out, nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("time entry %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanTimeEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var spentOn, created string
		if err := rows.Scan(&e.ID, &e.ItemID, &spentOn, &e.Hours, &e.Comment, &created); err != nil {
			return nil, fmt.Errorf("scanning time entry: %w", err)
		}
		var err error
		if e.SpentOn, err = time.Parse(dateLayout, spentOn); err != nil {
			return nil, fmt.Errorf("parsing spent_on: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}
