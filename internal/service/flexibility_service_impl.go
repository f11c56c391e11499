package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
)

type flexibilityService struct {
	workItems repository.WorkItemRepo
	schedules repository.ScheduleRepo
	scores    *ScoreCache
	observer  UseCaseObserver
}

func NewFlexibilityService(
	workItems repository.WorkItemRepo,
	schedules repository.ScheduleRepo,
	scores *ScoreCache,
	observers ...UseCaseObserver,
) FlexibilityService {
	if scores == nil {
		scores = NewScoreCache()
	}
	return &flexibilityService{
		workItems: workItems,
		schedules: schedules,
		scores:    scores,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *flexibilityService) Flexibility(ctx context.Context, req app.FlexibilityRequest) (resp *app.FlexibilityResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "flexibility", startedAt, fields, &err) }()

	now := nowOr(req.Now)
	schedule, err := s.schedules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	if err = schedule.Validate(); err != nil {
		return nil, &app.CapacityError{Code: app.CapacityErrInvalidSchedule, Message: err.Error(), Err: err}
	}
	items, err := s.workItems.List(ctx, repository.ItemFilter{AssigneeID: req.AssigneeID})
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}

	resp = &app.FlexibilityResponse{}
	for _, item := range items {
		score := s.scores.Score(item, schedule, now)
		if score == nil {
			resp.Unscored = append(resp.Unscored, item.ID)
			continue
		}
		resp.Items = append(resp.Items, app.FlexibilityView{
			ItemID:  item.ID,
			Subject: item.Subject,
			DueDate: item.DueDate,
			Score:   *score,
		})
	}
	sortByRisk(resp.Items)
	sort.Ints(resp.Unscored)

	fields["scored"] = len(resp.Items)
	fields["unscored"] = len(resp.Unscored)
	return resp, nil
}

var statusSeverity = map[domain.FlexibilityStatus]int{
	domain.FlexOverbooked: 0,
	domain.FlexAtRisk:     1,
	domain.FlexOnTrack:    2,
	domain.FlexCompleted:  3,
}

// sortByRisk orders views by status severity, then least slack, earliest due
// date and item id.
func sortByRisk(views []app.FlexibilityView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if sa, sb := statusSeverity[a.Score.Status], statusSeverity[b.Score.Status]; sa != sb {
			return sa < sb
		}
		if a.Score.RemainingPercent != b.Score.RemainingPercent {
			return a.Score.RemainingPercent < b.Score.RemainingPercent
		}
		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ItemID < b.ItemID
	})
}
