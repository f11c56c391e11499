package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
	"github.com/google/uuid"
)

type timeLogService struct {
	entries   repository.TimeEntryRepo
	workItems repository.WorkItemRepo
	observer  UseCaseObserver
}

func NewTimeLogService(entries repository.TimeEntryRepo, workItems repository.WorkItemRepo, observers ...UseCaseObserver) TimeLogService {
	return &timeLogService{
		entries:   entries,
		workItems: workItems,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *timeLogService) LogTime(ctx context.Context, e *domain.TimeEntry) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": e.ItemID, "hours": e.Hours}
	defer func() { observe(ctx, s.observer, "log-time", startedAt, fields, &err) }()

	if e.Hours <= 0 || e.Hours > 24 {
		return fmt.Errorf("hours must be in (0, 24], got %v", e.Hours)
	}
	if e.SpentOn.IsZero() {
		return fmt.Errorf("spent_on is required")
	}
	if _, err = s.workItems.GetByID(ctx, e.ItemID); err != nil {
		return err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.SpentOn = domain.DateOf(e.SpentOn)
	e.CreatedAt = startedAt.Truncate(time.Second)
	return s.entries.Create(ctx, e)
}

func (s *timeLogService) ListByItem(ctx context.Context, itemID int) ([]*domain.TimeEntry, error) {
	return s.entries.ListByItem(ctx, itemID)
}

func (s *timeLogService) Delete(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}
