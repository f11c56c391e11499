package scheduler

import (
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

// Flexibility thresholds, in percent of slack.
const atRiskBelowPct = 20

// FlexibilityScore measures how much slack an item has before its due date:
// (available hours / remaining work − 1) × 100.
type FlexibilityScore struct {
	// InitialPercent is the slack the item was planned with: hours available
	// from its start date (or now) to its due date against the full estimate.
	InitialPercent int
	// RemainingPercent is the slack left from now against remaining work.
	RemainingPercent int
	Status           domain.FlexibilityStatus
	// DaysRemaining counts working days from now through the due date.
	DaysRemaining int
	// HoursRemaining is the scheduled working time from now through the due date.
	HoursRemaining float64
}

// CalculateFlexibility scores an item's schedule risk as of now.
// Returns nil when the item has no due date or no estimate.
func CalculateFlexibility(item *domain.WorkItem, schedule domain.WeeklySchedule, now time.Time) *FlexibilityScore {
	if item.DueDate == nil || item.EstimatedHours == nil {
		return nil
	}
	today := domain.DateOf(now)
	due := domain.DateOf(*item.DueDate)

	available := AvailableHours(schedule, today, due)
	score := &FlexibilityScore{
		InitialPercent: initialPercent(item, schedule, today, due),
		DaysRemaining:  WorkingDaysBetween(schedule, today, due),
		HoursRemaining: available,
	}

	if item.DoneRatio >= 100 {
		score.Status = domain.FlexCompleted
		return score
	}

	remaining := RemainingWork(item)
	if remaining <= 0 {
		score.Status = domain.FlexCompleted
		return score
	}

	score.RemainingPercent = roundPercent((available/remaining - 1) * 100)
	score.Status = flexibilityStatus(score.RemainingPercent)
	return score
}

func initialPercent(item *domain.WorkItem, schedule domain.WeeklySchedule, today, due time.Time) int {
	est := *item.EstimatedHours
	if est <= 0 {
		return 0
	}
	from := today
	if item.StartDate != nil {
		from = domain.DateOf(*item.StartDate)
	}
	return roundPercent((AvailableHours(schedule, from, due)/est - 1) * 100)
}

func flexibilityStatus(remainingPct int) domain.FlexibilityStatus {
	switch {
	case remainingPct < 0:
		return domain.FlexOverbooked
	case remainingPct < atRiskBelowPct:
		return domain.FlexAtRisk
	default:
		return domain.FlexOnTrack
	}
}

// FlexibilityCache memoises scores by item progress, schedule fingerprint and
// calendar day. Nothing expires on its own: callers must call Invalidate
// whenever the schedule configuration changes. Not safe for concurrent use.
type FlexibilityCache struct {
	entries map[flexKey]FlexibilityScore
	misses  map[flexKey]bool
}

type flexKey struct {
	itemID      int
	estimate    float64
	hasEstimate bool
	spent       float64
	doneRatio   int
	start       string
	due         string
	fingerprint string
	day         string
}

// NewFlexibilityCache creates an empty cache.
func NewFlexibilityCache() *FlexibilityCache {
	return &FlexibilityCache{
		entries: make(map[flexKey]FlexibilityScore),
		misses:  make(map[flexKey]bool),
	}
}

// Calculate returns the cached score for the item, computing it on a miss.
// Items without a score (nil result) are remembered too.
func (c *FlexibilityCache) Calculate(item *domain.WorkItem, schedule domain.WeeklySchedule, now time.Time) *FlexibilityScore {
	key := newFlexKey(item, schedule, now)
	if score, ok := c.entries[key]; ok {
		return &score
	}
	if c.misses[key] {
		return nil
	}
	score := CalculateFlexibility(item, schedule, now)
	if score == nil {
		c.misses[key] = true
		return nil
	}
	c.entries[key] = *score
	return score
}

// Invalidate drops every cached score.
func (c *FlexibilityCache) Invalidate() {
	c.entries = make(map[flexKey]FlexibilityScore)
	c.misses = make(map[flexKey]bool)
}

// Len reports the number of cached entries, including remembered nil results.
func (c *FlexibilityCache) Len() int {
	return len(c.entries) + len(c.misses)
}

func newFlexKey(item *domain.WorkItem, schedule domain.WeeklySchedule, now time.Time) flexKey {
	k := flexKey{
		itemID:      item.ID,
		hasEstimate: item.EstimatedHours != nil,
		spent:       item.SpentHours,
		doneRatio:   item.DoneRatio,
		fingerprint: schedule.Fingerprint(),
		day:         domain.FormatDate(domain.DateOf(now)),
	}
	if item.EstimatedHours != nil {
		k.estimate = *item.EstimatedHours
	}
	if item.StartDate != nil {
		k.start = domain.FormatDate(*item.StartDate)
	}
	if item.DueDate != nil {
		k.due = domain.FormatDate(*item.DueDate)
	}
	return k
}
