package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

// ItemFilter narrows WorkItemRepo.List. The zero value lists open items.
type ItemFilter struct {
	AssigneeID    *int
	IncludeClosed bool
}

type WorkItemRepo interface {
	// Upsert inserts or replaces an item together with the relations it owns.
	Upsert(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id int) (*domain.WorkItem, error)
	List(ctx context.Context, filter ItemFilter) ([]*domain.WorkItem, error)
	Delete(ctx context.Context, id int) error
}

type ScheduleRepo interface {
	Get(ctx context.Context) (domain.WeeklySchedule, error)
	Save(ctx context.Context, s domain.WeeklySchedule) error
}

type EstimateRepo interface {
	Set(ctx context.Context, itemID int, hoursRemaining float64) error
	Get(ctx context.Context, itemID int) (*domain.InternalEstimate, error)
	List(ctx context.Context) (domain.InternalEstimates, error)
	Delete(ctx context.Context, itemID int) error
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	ListByItem(ctx context.Context, itemID int) ([]*domain.TimeEntry, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.TimeEntry, error)
	// ActualTimeByDay sums logged hours per item and date over [from, to].
	ActualTimeByDay(ctx context.Context, from, to time.Time) (domain.ActualTimeByDay, error)
	Delete(ctx context.Context, id string) error
}
