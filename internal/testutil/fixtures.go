package testutil

import (
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/google/uuid"
)

// Work item options
type WorkItemOption func(*domain.WorkItem)

func WithSubject(s string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Subject = s
	}
}

// WithDates sets start and due dates.
func WithDates(start, due time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.StartDate = domain.DatePtr(start)
		w.DueDate = domain.DatePtr(due)
	}
}

func WithStartDate(d time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.StartDate = domain.DatePtr(d)
	}
}

func WithDueDate(d time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.DueDate = domain.DatePtr(d)
	}
}

func WithEstimate(hours float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.EstimatedHours = &hours
	}
}

func WithoutEstimate() WorkItemOption {
	return func(w *domain.WorkItem) {
		w.EstimatedHours = nil
	}
}

func WithProgress(spent float64, doneRatio int) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.SpentHours = spent
		w.DoneRatio = doneRatio
	}
}

func WithAssignee(id int) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.AssigneeID = &id
	}
}

func WithClosedAt(t time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.ClosedAt = &t
	}
}

// WithBlocks records that the item blocks each target.
func WithBlocks(targets ...int) WorkItemOption {
	return func(w *domain.WorkItem) {
		for _, t := range targets {
			w.Relations = append(w.Relations, domain.Relation{
				OwnerItemID: w.ID, TargetItemID: t, Type: domain.RelationBlocks,
			})
		}
	}
}

// WithRelation appends a raw relation record, owned or mirrored.
func WithRelation(owner, target int, typ domain.RelationType) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Relations = append(w.Relations, domain.Relation{OwnerItemID: owner, TargetItemID: target, Type: typ})
	}
}

// NewTestWorkItem builds an open item starting 2026-03-02 (a Monday), due the
// Friday of that week, with an 8 hour estimate.
func NewTestWorkItem(id int, opts ...WorkItemOption) *domain.WorkItem {
	start := domain.MustParseDate("2026-03-02")
	est := 8.0
	w := &domain.WorkItem{
		ID:             id,
		Subject:        "Test item",
		StartDate:      &start,
		DueDate:        domain.DatePtr(start.AddDate(0, 0, 4)),
		EstimatedHours: &est,
		UpdatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewTestTimeEntry builds a time entry with a fresh id.
func NewTestTimeEntry(itemID int, spentOn time.Time, hours float64) *domain.TimeEntry {
	return &domain.TimeEntry{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		SpentOn:   domain.DateOf(spentOn),
		Hours:     hours,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
