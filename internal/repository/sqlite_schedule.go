package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
)

// SQLiteScheduleRepo stores the weekly schedule as one row per weekday.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(db db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: db}
}

func (r *SQLiteScheduleRepo) Get(ctx context.Context) (domain.WeeklySchedule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT weekday, hours FROM weekly_schedule`)
	if err != nil {
		return nil, fmt.Errorf("loading weekly schedule: %w", err)
	}
	defer rows.Close()

	s := make(domain.WeeklySchedule, 7)
	for rows.Next() {
		var day string
		var hours float64
		if err := rows.Scan(&day, &hours); err != nil {
			return nil, fmt.Errorf("scanning weekly schedule: %w", err)
		}
		s[day] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly schedule: %w", err)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("weekly schedule: %w", ErrNotFound)
	}
	return s, nil
}

// Save validates and writes all seven weekdays. Callers wanting atomicity
// run it inside a UnitOfWork.
func (r *SQLiteScheduleRepo) Save(ctx context.Context, s domain.WeeklySchedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, wd := range domain.Weekdays {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO weekly_schedule (weekday, hours) VALUES (?, ?)
			 ON CONFLICT(weekday) DO UPDATE SET hours = excluded.hours`,
			wd.String(), s[wd.String()])
		if err != nil {
			return fmt.Errorf("saving %s hours: %w", wd, err)
		}
	}
	return nil
}
