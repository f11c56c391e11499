package domain

import "time"

// Relation is a single relation record as delivered by the tracker feed.
// The feed repeats every logical relation on both endpoints, so each record
// belongs to exactly one OwnerItemID.
type Relation struct {
	OwnerItemID  int
	TargetItemID int
	Type         RelationType
}

type WorkItem struct {
	ID      int
	Subject string

	// Dates are calendar dates (UTC midnight).
	StartDate *time.Time
	DueDate   *time.Time

	// Progress
	EstimatedHours *float64
	SpentHours     float64
	DoneRatio      int

	ClosedAt   *time.Time
	AssigneeID *int
	Relations  []Relation

	UpdatedAt time.Time
}

// IsClosed reports whether the item is excluded from load and scheduling.
func (w *WorkItem) IsClosed() bool {
	return w.ClosedAt != nil
}

// HasEstimate reports whether the item carries a concrete hour estimate.
func (w *WorkItem) HasEstimate() bool {
	return w.EstimatedHours != nil
}

// OverBudget reports whether more time was spent than estimated.
func (w *WorkItem) OverBudget() bool {
	return w.EstimatedHours != nil && w.SpentHours > *w.EstimatedHours
}

// SameAssignee reports whether both items are assigned to the same user.
// Two unassigned items count as the same.
func (w *WorkItem) SameAssignee(other *WorkItem) bool {
	if w.AssigneeID == nil || other.AssigneeID == nil {
		return w.AssigneeID == nil && other.AssigneeID == nil
	}
	return *w.AssigneeID == *other.AssigneeID
}

// OwnedRelations returns the relation records whose owner is this item.
func (w *WorkItem) OwnedRelations() []Relation {
	var owned []Relation
	for _, r := range w.Relations {
		if r.OwnerItemID == w.ID {
			owned = append(owned, r)
		}
	}
	return owned
}

// InternalEstimate is a manual override of the hours of work remaining.
type InternalEstimate struct {
	HoursRemaining float64
	UpdatedAt      time.Time
}

// InternalEstimates maps item id to its manual remaining-hours override.
type InternalEstimates map[int]InternalEstimate

// ActualTimeByDay maps item id to hours logged per YYYY-MM-DD date.
type ActualTimeByDay map[int]map[string]float64

// Add accumulates hours for an item on a date.
func (a ActualTimeByDay) Add(itemID int, date string, hours float64) {
	byDay, ok := a[itemID]
	if !ok {
		byDay = make(map[string]float64)
		a[itemID] = byDay
	}
	byDay[date] += hours
}

// TimeEntry is a single logged block of real work.
type TimeEntry struct {
	ID        string
	ItemID    int
	SpentOn   time.Time
	Hours     float64
	Comment   string
	CreatedAt time.Time
}
