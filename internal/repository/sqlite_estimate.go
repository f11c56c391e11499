package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
)

// SQLiteEstimateRepo implements EstimateRepo using a SQLite database.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(db db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: db}
}

func (r *SQLiteEstimateRepo) Set(ctx context.Context, itemID int, hoursRemaining float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO internal_estimates (item_id, hours_remaining, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET hours_remaining = excluded.hours_remaining, updated_at = excluded.updated_at`,
		itemID, hoursRemaining, nowUTC())
	if err != nil {
		return fmt.Errorf("setting estimate for item %d: %w", itemID, err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) Get(ctx context.Context, itemID int) (*domain.InternalEstimate, error) {
	var est domain.InternalEstimate
	var updated string
	err := r.db.QueryRowContext(ctx,
		`SELECT hours_remaining, updated_at FROM internal_estimates WHERE item_id = ?`, itemID).
		Scan(&est.HoursRemaining, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("estimate for item %d: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading estimate: %w", err)
	}
	if est.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &est, nil
}

func (r *SQLiteEstimateRepo) List(ctx context.Context) (domain.InternalEstimates, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, hours_remaining, updated_at FROM internal_estimates ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()

	out := make(domain.InternalEstimates)
	for rows.Next() {
		var id int
		var est domain.InternalEstimate
		var updated string
		if err := rows.Scan(&id, &est.HoursRemaining, &updated); err != nil {
			return nil, fmt.Errorf("scanning estimate: %w", err)
		}
		if est.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		out[id] = est
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimates: %w", err)
	}
	return out, nil
}

func (r *SQLiteEstimateRepo) Delete(ctx context.Context, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM internal_estimates WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("deleting estimate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("estimate for item %d: %w", itemID, ErrNotFound)
	}
	return nil
}
