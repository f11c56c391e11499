package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

const (
	// DailyCapRatio is the share of a day's hours the forecast plans by
	// default, leaving room for meetings and interruptions.
	DailyCapRatio = 0.75
	// OverplanCapRatio applies to items due on the simulated day.
	OverplanCapRatio = 1.0

	hoursEpsilon = 1e-9
)

// ForecastInput is everything the scheduled forecast reads.
type ForecastInput struct {
	Items    []domain.WorkItem
	Schedule domain.WeeklySchedule
	Start    time.Time
	End      time.Time

	// Graph is built from Items and ItemMap when nil.
	Graph *DependencyGraph
	// InternalEstimates override derived remaining work per item.
	InternalEstimates domain.InternalEstimates
	// SelfUserID identifies the forecast owner for external-block detection.
	// When nil, an item blocks externally if a dependent has a different
	// assignee than the item itself.
	SelfUserID *int
	// ItemMap holds items outside Items (other users' or closed issues) used to
	// resolve blockers and dependents.
	ItemMap map[int]*domain.WorkItem
	// ActualTimeByDay holds logged hours used for days up to and including Today.
	ActualTimeByDay domain.ActualTimeByDay
	// Today enables hybrid reconciliation. When nil every day is predicted.
	Today *time.Time
}

// ItemForecast summarises what the simulation did with one item.
type ItemForecast struct {
	ItemID           int
	InitialRemaining float64
	PredictedHours   float64
	ActualHours      float64
	// Unscheduled is the work left when the range ended or the item passed
	// its due date.
	Unscheduled float64
	// FinishDate is the day remaining work reached zero, nil if it never did.
	FinishDate     *time.Time
	BlocksExternal bool
}

// ForecastResult is the per-day forecast plus per-item summaries (by item id).
type ForecastResult struct {
	Days  []PeriodCapacity
	Items []ItemForecast
}

// CalculateScheduledCapacity runs the greedy day-by-day forecast and returns
// one period per working day with its breakdown.
func CalculateScheduledCapacity(in ForecastInput) ([]PeriodCapacity, error) {
	res, err := Forecast(in)
	if err != nil {
		return nil, err
	}
	return res.Days, nil
}

// Forecast simulates a single worker allocating each working day's hours to
// competing items in chronological order.
//
// Each day plans DailyCapRatio of scheduled hours, or OverplanCapRatio for an
// item due that day. An item is eligible from its start date through its due
// date while it has remaining work and all its blockers are forecast-complete.
// A blocker counts as complete once the simulated day is past the blocker's
// due date, whether or not the simulation actually finished it: the forecast
// assumes blockers land on time.
//
// With Today set, earlier days show logged actuals only, Today shows actuals
// first and predicts the leftover capacity, and later days are predicted.
func Forecast(in ForecastInput) (*ForecastResult, error) {
	start, end, err := validateRange(in.Schedule, in.Start, in.End)
	if err != nil {
		return nil, err
	}
	sim := newSimulation(in)

	var days []PeriodCapacity
	eachDay(start, end, func(d time.Time) {
		capacity := in.Schedule.HoursOn(d)
		if capacity <= 0 {
			return
		}
		day := PeriodCapacity{StartDate: d, EndDate: d, CapacityHours: capacity}
		day.Breakdown = sim.runDay(d, capacity)
		for _, e := range day.Breakdown {
			day.LoadHours += e.Hours
		}
		day.Percentage = percentOf(day.LoadHours, capacity)
		day.Status = CapacityStatusFor(day.Percentage)
		days = append(days, day)
	})

	return &ForecastResult{Days: days, Items: sim.summaries()}, nil
}

// simItem is the mutable per-item state of a simulation.
type simItem struct {
	item      *domain.WorkItem
	start     time.Time
	due       *time.Time
	remaining float64
	key       priorityKey

	initial   float64
	predicted float64
	actual    float64
	finished  *time.Time
}

// simulation threads the per-item remaining work through the day loop.
type simulation struct {
	graph   *DependencyGraph
	lookup  map[int]*domain.WorkItem
	items   map[int]*simItem
	order   []*simItem
	actuals domain.ActualTimeByDay
	today   *time.Time
}

func newSimulation(in ForecastInput) *simulation {
	s := &simulation{
		lookup:  make(map[int]*domain.WorkItem, len(in.Items)+len(in.ItemMap)),
		items:   make(map[int]*simItem),
		actuals: in.ActualTimeByDay,
	}
	if in.Today != nil {
		t := domain.DateOf(*in.Today)
		s.today = &t
	}
	for id, item := range in.ItemMap {
		s.lookup[id] = item
	}
	for i := range in.Items {
		s.lookup[in.Items[i].ID] = &in.Items[i]
	}

	s.graph = in.Graph
	if s.graph == nil {
		all := make([]domain.WorkItem, 0, len(s.lookup))
		for _, item := range s.lookup {
			all = append(all, *item)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
		s.graph = BuildGraph(all)
	}

	for i := range in.Items {
		item := &in.Items[i]
		if item.IsClosed() || item.StartDate == nil {
			continue
		}
		remaining, ok := remainingForForecast(item, in.InternalEstimates)
		if !ok {
			continue
		}
		si := &simItem{
			item:      item,
			start:     domain.DateOf(*item.StartDate),
			remaining: remaining,
			initial:   remaining,
		}
		if item.DueDate != nil {
			si.due = domain.DatePtr(*item.DueDate)
		}
		si.key = priorityKey{
			BlocksExternal: s.blocksExternal(item, in.SelfUserID),
			DueDate:        si.due,
			ItemID:         item.ID,
		}
		s.items[item.ID] = si
		s.order = append(s.order, si)
	}
	CanonicalSort(s.order)
	return s
}

// blocksExternal reports whether item blocks an open item of another user.
func (s *simulation) blocksExternal(item *domain.WorkItem, selfUserID *int) bool {
	for _, id := range s.graph.Downstream(item.ID) {
		other, ok := s.lookup[id]
		if !ok || other.IsClosed() {
			continue
		}
		if selfUserID != nil {
			if other.AssigneeID != nil && *other.AssigneeID != *selfUserID {
				return true
			}
			continue
		}
		if !item.SameAssignee(other) {
			return true
		}
	}
	return false
}

// runDay produces the breakdown for one working day.
func (s *simulation) runDay(d time.Time, capacity float64) []BreakdownEntry {
	if s.today != nil && d.Before(*s.today) {
		entries, _ := s.recordActuals(d, false)
		return entries
	}
	var entries []BreakdownEntry
	var used float64
	if s.today != nil && d.Equal(*s.today) {
		entries, used = s.recordActuals(d, true)
	}
	return append(entries, s.predict(d, capacity, used)...)
}

// recordActuals turns logged hours for d into breakdown entries, ordered by
// item id. When consume is set the hours are taken off remaining work.
func (s *simulation) recordActuals(d time.Time, consume bool) ([]BreakdownEntry, float64) {
	date := domain.FormatDate(d)
	var ids []int
	for id, byDay := range s.actuals {
		if byDay[date] > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	var entries []BreakdownEntry
	var total float64
	for _, id := range ids {
		hours := s.actuals[id][date]
		total += hours
		entries = append(entries, BreakdownEntry{
			ItemID:     id,
			Hours:      hours,
			IsSlippage: s.slipped(id, d),
			IsActual:   true,
		})
		si, ok := s.items[id]
		if !ok {
			continue
		}
		si.actual += hours
		if consume {
			s.consume(si, hours, d)
		}
	}
	return entries, total
}

// predict fills the capacity left after used hours in priority order.
func (s *simulation) predict(d time.Time, capacity, used float64) []BreakdownEntry {
	var entries []BreakdownEntry
	for _, si := range s.order {
		if !s.eligible(si, d) {
			continue
		}
		ratio := DailyCapRatio
		if si.due != nil && !si.due.After(d) {
			ratio = OverplanCapRatio
		}
		avail := capacity*ratio - used
		if avail <= hoursEpsilon {
			continue
		}
		alloc := math.Min(avail, si.remaining)
		used += alloc
		si.predicted += alloc
		s.consume(si, alloc, d)
		entries = append(entries, BreakdownEntry{
			ItemID:     si.item.ID,
			Hours:      alloc,
			IsSlippage: s.slipped(si.item.ID, d),
		})
	}
	return entries
}

func (s *simulation) consume(si *simItem, hours float64, d time.Time) {
	if si.remaining <= hoursEpsilon {
		return
	}
	si.remaining = math.Max(si.remaining-hours, 0)
	if si.remaining <= hoursEpsilon {
		si.remaining = 0
		finished := d
		si.finished = &finished
	}
}

func (s *simulation) eligible(si *simItem, d time.Time) bool {
	if d.Before(si.start) || si.remaining <= hoursEpsilon {
		return false
	}
	if si.due != nil && d.After(*si.due) {
		return false
	}
	for _, up := range s.graph.Upstream(si.item.ID) {
		if !s.forecastComplete(up, d) {
			return false
		}
	}
	return true
}

// forecastComplete reports whether blocker id no longer holds work back on d.
// Closed blockers are done; dated blockers are assumed done once d is past
// their due date. An undated blocker that is itself simulated is done when
// its remaining work hits zero. Blockers the forecast knows nothing about do
// not block.
func (s *simulation) forecastComplete(id int, d time.Time) bool {
	blocker, ok := s.lookup[id]
	if !ok || blocker.IsClosed() {
		return true
	}
	if blocker.DueDate != nil {
		return d.After(domain.DateOf(*blocker.DueDate))
	}
	if si, ok := s.items[id]; ok {
		return si.remaining <= hoursEpsilon
	}
	return true
}

// slipped marks work landing on or after an item's due date.
func (s *simulation) slipped(id int, d time.Time) bool {
	item, ok := s.lookup[id]
	if !ok || item.DueDate == nil {
		return false
	}
	return !d.Before(domain.DateOf(*item.DueDate))
}

func (s *simulation) summaries() []ItemForecast {
	out := make([]ItemForecast, 0, len(s.items))
	for _, si := range s.items {
		out = append(out, ItemForecast{
			ItemID:           si.item.ID,
			InitialRemaining: si.initial,
			PredictedHours:   si.predicted,
			ActualHours:      si.actual,
			Unscheduled:      si.remaining,
			FinishDate:       si.finished,
			BlocksExternal:   si.key.BlocksExternal,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
