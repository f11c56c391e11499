package service

import (
	"context"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
)

type WorkItemService interface {
	GetByID(ctx context.Context, id int) (*domain.WorkItem, error)
	List(ctx context.Context, filter repository.ItemFilter) ([]*domain.WorkItem, error)
	Delete(ctx context.Context, id int) error
}

type ScheduleService interface {
	Get(ctx context.Context) (domain.WeeklySchedule, error)
	// Save replaces the stored schedule and drops cached flexibility scores.
	Save(ctx context.Context, s domain.WeeklySchedule) error
}

type EstimateService interface {
	Set(ctx context.Context, itemID int, hoursRemaining float64) error
	Clear(ctx context.Context, itemID int) error
	List(ctx context.Context) (domain.InternalEstimates, error)
}

type TimeLogService interface {
	app.LogTimeUseCase
	ListByItem(ctx context.Context, itemID int) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type ImportService interface {
	app.ImportFeedUseCase
}

type FlexibilityService interface {
	app.FlexibilityUseCase
}

type DependencyService interface {
	app.DependencyUseCase
}

type CapacityService interface {
	app.CapacityUseCase
	app.ForecastUseCase
}
