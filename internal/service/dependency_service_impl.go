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

type dependencyService struct {
	workItems repository.WorkItemRepo
	observer  UseCaseObserver
}

func NewDependencyService(workItems repository.WorkItemRepo, observers ...UseCaseObserver) DependencyService {
	return &dependencyService{workItems: workItems, observer: useCaseObserverOrNoop(observers)}
}

func (s *dependencyService) Dependencies(ctx context.Context, req app.DependencyRequest) (resp *app.DependencyResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"item_id": req.ItemID}
	defer func() { observe(ctx, s.observer, "dependencies", startedAt, fields, &err) }()

	all, err := s.workItems.List(ctx, repository.ItemFilter{IncludeClosed: true})
	if err != nil {
		return nil, fmt.Errorf("loading work items: %w", err)
	}
	byID := indexItems(all)
	item, ok := byID[req.ItemID]
	if !ok {
		return nil, fmt.Errorf("work item %d: %w", req.ItemID, repository.ErrNotFound)
	}

	graph := scheduler.BuildGraph(derefItems(all))
	visible := make(map[int]*domain.WorkItem, len(all))
	for _, w := range all {
		if assignedTo(w, req.AssigneeID) {
			visible[w.ID] = w
		}
	}

	resp = &app.DependencyResponse{
		Item:            item,
		Blockers:        graph.Blockers(item.ID, visible),
		Dependents:      graph.Dependents(item.ID, visible),
		DownstreamCount: graph.CountDownstream(item.ID),
	}
	fields["blockers"] = len(resp.Blockers)
	fields["dependents"] = len(resp.Dependents)
	return resp, nil
}
