package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
)

type scheduleService struct {
	schedules repository.ScheduleRepo
	uow       db.UnitOfWork
	scores    *ScoreCache
	observer  UseCaseObserver
}

func NewScheduleService(schedules repository.ScheduleRepo, uow db.UnitOfWork, scores *ScoreCache, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		schedules: schedules,
		uow:       uow,
		scores:    scores,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Get(ctx context.Context) (domain.WeeklySchedule, error) {
	return s.schedules.Get(ctx)
}

func (s *scheduleService) Save(ctx context.Context, schedule domain.WeeklySchedule) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"weekly_hours": schedule.WeeklyHours()}
	defer func() { observe(ctx, s.observer, "save-schedule", startedAt, fields, &err) }()

	if err = schedule.Validate(); err != nil {
		return err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteScheduleRepo(tx).Save(ctx, schedule)
	})
	if err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}
	if s.scores != nil {
		s.scores.Invalidate()
	}
	return nil
}
