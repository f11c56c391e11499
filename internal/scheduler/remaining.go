package scheduler

import (
	"math"

	"github.com/alexanderramin/loadline/internal/domain"
)

// RemainingWork estimates the hours of work left on an item.
//
//   - done ratio 100 or more: nothing left.
//   - over budget (spent > estimated): spent time no longer says anything
//     useful, so remaining comes from the done ratio alone.
//   - done ratio 0 with time logged: estimated − spent, floored at 0.
//   - otherwise: estimated × (1 − ratio/100).
//
// Returns 0 for items without an estimate.
func RemainingWork(item *domain.WorkItem) float64 {
	if item.EstimatedHours == nil {
		return 0
	}
	est := *item.EstimatedHours
	ratio := item.DoneRatio
	switch {
	case ratio >= 100:
		return 0
	case item.OverBudget():
		return est * (1 - float64(ratio)/100)
	case ratio <= 0 && item.SpentHours > 0:
		return math.Max(est-item.SpentHours, 0)
	default:
		return est * (1 - float64(ratio)/100)
	}
}

// remainingForForecast prefers a manual override over the derived value.
// ok is false when the item has neither an override nor an estimate.
func remainingForForecast(item *domain.WorkItem, estimates domain.InternalEstimates) (hours float64, ok bool) {
	if est, found := estimates[item.ID]; found {
		return math.Max(est.HoursRemaining, 0), true
	}
	if !item.HasEstimate() {
		return 0, false
	}
	return RemainingWork(item), true
}
