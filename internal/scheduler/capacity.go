package scheduler

import (
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

// DailyCapacity is the load placed on a single working day.
type DailyCapacity struct {
	Date          time.Time
	LoadHours     float64
	CapacityHours float64
	Percentage    int
	Status        domain.CapacityStatus
}

// BreakdownEntry is one item's share of a period's load.
type BreakdownEntry struct {
	ItemID     int
	Hours      float64
	IsSlippage bool
	IsActual   bool
}

// PeriodCapacity is load aggregated over a bucket of days. Breakdown is only
// filled by the scheduled forecast.
type PeriodCapacity struct {
	StartDate     time.Time
	EndDate       time.Time
	LoadHours     float64
	CapacityHours float64
	Percentage    int
	Status        domain.CapacityStatus
	Breakdown     []BreakdownEntry
}

// spread is an item's even daily share over its working days.
type spread struct {
	start, due time.Time
	perDay     float64
}

// evenSpreads returns the per-working-day share of every item that can carry
// load: open, with start date, due date and estimate.
func evenSpreads(items []domain.WorkItem, schedule domain.WeeklySchedule) []spread {
	var out []spread
	for i := range items {
		item := &items[i]
		if item.IsClosed() || item.StartDate == nil || item.DueDate == nil || item.EstimatedHours == nil {
			continue
		}
		start, due := domain.DateOf(*item.StartDate), domain.DateOf(*item.DueDate)
		if due.Before(start) {
			continue
		}
		days := WorkingDaysBetween(schedule, start, due)
		if days == 0 {
			continue
		}
		out = append(out, spread{start: start, due: due, perDay: *item.EstimatedHours / float64(days)})
	}
	return out
}

// CalculateDailyCapacity spreads each item's estimate evenly over the working
// days between its start and due dates and sums the shares per day. Every
// concurrent item contributes its full share, so a day can exceed 100%.
// Non-working days are left out of the result.
func CalculateDailyCapacity(items []domain.WorkItem, schedule domain.WeeklySchedule, start, end time.Time) ([]DailyCapacity, error) {
	start, end, err := validateRange(schedule, start, end)
	if err != nil {
		return nil, err
	}

	spreads := evenSpreads(items, schedule)
	var days []DailyCapacity
	eachDay(start, end, func(d time.Time) {
		capacity := schedule.HoursOn(d)
		if capacity <= 0 {
			return
		}
		var load float64
		for _, s := range spreads {
			if !d.Before(s.start) && !d.After(s.due) {
				load += s.perDay
			}
		}
		pct := percentOf(load, capacity)
		days = append(days, DailyCapacity{
			Date:          d,
			LoadHours:     load,
			CapacityHours: capacity,
			Percentage:    pct,
			Status:        CapacityStatusFor(pct),
		})
	})
	return days, nil
}

// CalculateCapacityByZoom computes the daily baseline and sums it into
// calendar buckets (Monday–Sunday weeks, months, quarters, years). Bucket
// bounds are clipped to [start, end]; buckets without working days are omitted.
func CalculateCapacityByZoom(items []domain.WorkItem, schedule domain.WeeklySchedule, start, end time.Time, g domain.Granularity) ([]PeriodCapacity, error) {
	if err := validateGranularity(g); err != nil {
		return nil, err
	}
	daily, err := CalculateDailyCapacity(items, schedule, start, end)
	if err != nil {
		return nil, err
	}
	periods := make([]PeriodCapacity, 0, len(daily))
	for _, d := range daily {
		periods = append(periods, PeriodCapacity{
			StartDate:     d.Date,
			EndDate:       d.Date,
			LoadHours:     d.LoadHours,
			CapacityHours: d.CapacityHours,
			Percentage:    d.Percentage,
			Status:        d.Status,
		})
	}
	if g == domain.ZoomDay {
		return periods, nil
	}
	return aggregate(periods, g, domain.DateOf(start), domain.DateOf(end)), nil
}

// AggregateScheduled merges a per-day scheduled forecast into buckets.
// Breakdown entries are merged per item, actual flag and slippage flag, in
// order of first appearance.
func AggregateScheduled(days []PeriodCapacity, g domain.Granularity) ([]PeriodCapacity, error) {
	if err := validateGranularity(g); err != nil {
		return nil, err
	}
	if g == domain.ZoomDay || len(days) == 0 {
		return days, nil
	}
	return aggregate(days, g, days[0].StartDate, days[len(days)-1].EndDate), nil
}

type breakdownKey struct {
	itemID   int
	actual   bool
	slippage bool
}

// aggregate groups day-level periods (already in date order) into buckets.
func aggregate(days []PeriodCapacity, g domain.Granularity, rangeStart, rangeEnd time.Time) []PeriodCapacity {
	var out []PeriodCapacity
	var cur *PeriodCapacity
	var index map[breakdownKey]int

	flush := func() {
		if cur == nil {
			return
		}
		cur.Percentage = percentOf(cur.LoadHours, cur.CapacityHours)
		cur.Status = CapacityStatusFor(cur.Percentage)
		out = append(out, *cur)
		cur = nil
	}

	for _, d := range days {
		bs := bucketStart(d.StartDate, g)
		if cur == nil || !bs.Equal(bucketStart(cur.StartDate, g)) {
			flush()
			cur = &PeriodCapacity{
				StartDate: maxDate(bs, rangeStart),
				EndDate:   minDate(bucketEnd(bs, g), rangeEnd),
			}
			index = make(map[breakdownKey]int)
		}
		cur.LoadHours += d.LoadHours
		cur.CapacityHours += d.CapacityHours
		for _, e := range d.Breakdown {
			k := breakdownKey{itemID: e.ItemID, actual: e.IsActual, slippage: e.IsSlippage}
			if i, ok := index[k]; ok {
				cur.Breakdown[i].Hours += e.Hours
				continue
			}
			index[k] = len(cur.Breakdown)
			cur.Breakdown = append(cur.Breakdown, e)
		}
	}
	flush()
	return out
}
