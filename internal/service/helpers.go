package service

import (
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/scheduler"
)

// ScoreCache shares one flexibility memo between the flexibility and schedule
// services. Saving a schedule invalidates it.
type ScoreCache struct {
	mu    sync.Mutex
	cache *scheduler.FlexibilityCache
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{cache: scheduler.NewFlexibilityCache()}
}

func (c *ScoreCache) Score(item *domain.WorkItem, schedule domain.WeeklySchedule, now time.Time) *scheduler.FlexibilityScore {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Calculate(item, schedule, now)
}

func (c *ScoreCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Invalidate()
}

func (c *ScoreCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// nowOr returns the injected time or the current UTC time.
func nowOr(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now().UTC()
}

func derefItems(items []*domain.WorkItem) []domain.WorkItem {
	out := make([]domain.WorkItem, len(items))
	for i, w := range items {
		out[i] = *w
	}
	return out
}

func indexItems(items []*domain.WorkItem) map[int]*domain.WorkItem {
	m := make(map[int]*domain.WorkItem, len(items))
	for _, w := range items {
		m[w.ID] = w
	}
	return m
}

// assignedTo reports whether w belongs to assignee; a nil assignee matches all.
func assignedTo(w *domain.WorkItem, assignee *int) bool {
	if assignee == nil {
		return true
	}
	return w.AssigneeID != nil && *w.AssigneeID == *assignee
}

// capacityError maps engine contract violations to coded errors. Other errors
// pass through unchanged.
func capacityError(err error) error {
	var code app.CapacityErrorCode
	switch {
	case errors.Is(err, scheduler.ErrInvalidRange):
		code = app.CapacityErrInvalidRange
	case errors.Is(err, scheduler.ErrInvalidSchedule):
		code = app.CapacityErrInvalidSchedule
	case errors.Is(err, scheduler.ErrInvalidGranularity):
		code = app.CapacityErrInvalidGranularity
	default:
		return err
	}
	return &app.CapacityError{Code: code, Message: err.Error(), Err: err}
}

func granularityOrDay(g domain.Granularity) domain.Granularity {
	if g == "" {
		return domain.ZoomDay
	}
	return g
}
