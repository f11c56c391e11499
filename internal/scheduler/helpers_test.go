package scheduler

import (
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

// monday is 2026-03-02.
var monday = domain.MustParseDate("2026-03-02")

func day(offset int) time.Time {
	return domain.AddDays(monday, offset)
}

func makeItem(id int, start, due time.Time, estimate float64) domain.WorkItem {
	return domain.WorkItem{
		ID:             id,
		Subject:        "item",
		StartDate:      domain.DatePtr(start),
		DueDate:        domain.DatePtr(due),
		EstimatedHours: domain.Float64Ptr(estimate),
	}
}

func blocks(owner, target int) domain.Relation {
	return domain.Relation{OwnerItemID: owner, TargetItemID: target, Type: domain.RelationBlocks}
}

func loads(days []DailyCapacity) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.LoadHours
	}
	return out
}

func hoursFor(p PeriodCapacity, itemID int) float64 {
	var total float64
	for _, e := range p.Breakdown {
		if e.ItemID == itemID {
			total += e.Hours
		}
	}
	return total
}
