package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
	"github.com/alexanderramin/loadline/internal/scheduler"
)

const lateEpsilon = 1e-6

type capacityService struct {
	workItems repository.WorkItemRepo
	schedules repository.ScheduleRepo
	estimates repository.EstimateRepo
	entries   repository.TimeEntryRepo
	observer  UseCaseObserver
}

func NewCapacityService(
	workItems repository.WorkItemRepo,
	schedules repository.ScheduleRepo,
	estimates repository.EstimateRepo,
	entries repository.TimeEntryRepo,
	observers ...UseCaseObserver,
) CapacityService {
	return &capacityService{
		workItems: workItems,
		schedules: schedules,
		estimates: estimates,
		entries:   entries,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *capacityService) Capacity(ctx context.Context, req app.CapacityRequest) (resp *app.CapacityResponse, err error) {
	startedAt := time.Now().UTC()
	g := granularityOrDay(req.Granularity)
	fields := map[string]any{
		"start":       domain.FormatDate(req.Start),
		"end":         domain.FormatDate(req.End),
		"granularity": string(g),
	}
	defer func() { observe(ctx, s.observer, "capacity", startedAt, fields, &err) }()

	schedule, err := s.schedules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	items, err := s.workItems.List(ctx, repository.ItemFilter{AssigneeID: req.AssigneeID})
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}

	periods, err := scheduler.CalculateCapacityByZoom(derefItems(items), schedule, req.Start, req.End, g)
	if err != nil {
		return nil, capacityError(err)
	}

	resp = &app.CapacityResponse{Granularity: g, Periods: periods}
	for _, p := range periods {
		resp.TotalLoadHours += p.LoadHours
		resp.TotalCapacityHours += p.CapacityHours
	}
	fields["periods"] = len(periods)
	return resp, nil
}

func (s *capacityService) Forecast(ctx context.Context, req app.ForecastRequest) (resp *app.ForecastResponse, err error) {
	startedAt := time.Now().UTC()
	g := granularityOrDay(req.Granularity)
	fields := map[string]any{
		"start":       domain.FormatDate(req.Start),
		"end":         domain.FormatDate(req.End),
		"granularity": string(g),
	}
	defer func() { observe(ctx, s.observer, "forecast", startedAt, fields, &err) }()

	now := nowOr(req.Now)
	schedule, err := s.schedules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	all, err := s.workItems.List(ctx, repository.ItemFilter{IncludeClosed: true})
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}
	estimates, err := s.estimates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading internal estimates: %w", err)
	}

	var mine []*domain.WorkItem
	for _, w := range all {
		if !w.IsClosed() && assignedTo(w, req.AssigneeID) {
			mine = append(mine, w)
		}
	}
	byID := indexItems(all)

	in := scheduler.ForecastInput{
		Items:             derefItems(mine),
		Schedule:          schedule,
		Start:             req.Start,
		End:               req.End,
		InternalEstimates: estimates,
		SelfUserID:        req.AssigneeID,
		ItemMap:           byID,
	}
	if !req.SkipActuals {
		today := domain.DateOf(now)
		in.Today = &today
		if !today.Before(domain.DateOf(req.Start)) {
			actuals, err := s.entries.ActualTimeByDay(ctx, req.Start, today)
			if err != nil {
				return nil, fmt.Errorf("loading logged time: %w", err)
			}
			in.ActualTimeByDay = filterActuals(actuals, byID, req.AssigneeID)
		}
	}

	result, err := scheduler.Forecast(in)
	if err != nil {
		return nil, capacityError(err)
	}
	periods, err := scheduler.AggregateScheduled(result.Days, g)
	if err != nil {
		return nil, capacityError(err)
	}

	resp = &app.ForecastResponse{
		Granularity: g,
		Periods:     periods,
		Items:       forecastViews(result.Items, byID),
		Warnings:    unscheduledWarnings(mine, estimates),
	}
	fields["periods"] = len(periods)
	fields["items"] = len(resp.Items)
	return resp, nil
}

// filterActuals drops logged time on items known to belong to someone else.
func filterActuals(actuals domain.ActualTimeByDay, byID map[int]*domain.WorkItem, assignee *int) domain.ActualTimeByDay {
	if assignee == nil {
		return actuals
	}
	out := make(domain.ActualTimeByDay, len(actuals))
	for id, byDay := range actuals {
		if item, ok := byID[id]; ok && !assignedTo(item, assignee) {
			continue
		}
		out[id] = byDay
	}
	return out
}

func forecastViews(items []scheduler.ItemForecast, byID map[int]*domain.WorkItem) []app.ItemForecastView {
	views := make([]app.ItemForecastView, 0, len(items))
	for _, f := range items {
		v := app.ItemForecastView{ItemForecast: f}
		if item, ok := byID[f.ItemID]; ok {
			v.Subject = item.Subject
			v.DueDate = item.DueDate
		}
		switch {
		case f.Unscheduled > lateEpsilon:
			v.Late = true
		case f.FinishDate != nil && v.DueDate != nil && f.FinishDate.After(domain.DateOf(*v.DueDate)):
			v.Late = true
		}
		views = append(views, v)
	}
	return views
}

// unscheduledWarnings names open items the forecast had to skip.
func unscheduledWarnings(items []*domain.WorkItem, estimates domain.InternalEstimates) []string {
	var warnings []string
	for _, w := range items {
		_, overridden := estimates[w.ID]
		switch {
		case w.StartDate == nil:
			warnings = append(warnings, fmt.Sprintf("#%d %s: no start date, not scheduled", w.ID, w.Subject))
		case w.EstimatedHours == nil && !overridden:
			warnings = append(warnings, fmt.Sprintf("#%d %s: no estimate, not scheduled", w.ID, w.Subject))
		}
	}
	return warnings
}
