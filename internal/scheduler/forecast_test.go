package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastInput(items []domain.WorkItem) ForecastInput {
	return ForecastInput{
		Items:    items,
		Schedule: domain.DefaultWeeklySchedule(),
		Start:    day(0),
		End:      day(4),
	}
}

func TestForecast_RespectsDailyBuffer(t *testing.T) {
	in := forecastInput([]domain.WorkItem{makeItem(1, day(0), day(4), 12)})

	res, err := Forecast(in)
	require.NoError(t, err)
	require.Len(t, res.Days, 5)

	assert.Equal(t, 6.0, res.Days[0].LoadHours)
	assert.Equal(t, 75, res.Days[0].Percentage)
	assert.Equal(t, 8.0, res.Days[0].CapacityHours)
	assert.Equal(t, 6.0, res.Days[1].LoadHours)
	assert.Equal(t, 0.0, res.Days[2].LoadHours)

	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Items[0].FinishDate)
	assert.Equal(t, day(1), *res.Items[0].FinishDate)
	assert.Equal(t, 12.0, res.Items[0].PredictedHours)
	assert.Equal(t, 0.0, res.Items[0].Unscheduled)
}

func TestForecast_NeverExceedsCapacity(t *testing.T) {
	items := []domain.WorkItem{
		makeItem(1, day(0), day(4), 30),
		makeItem(2, day(0), day(2), 30),
		makeItem(3, day(1), day(4), 30),
	}
	in := forecastInput(items)
	in.End = day(11)

	res, err := Forecast(in)
	require.NoError(t, err)

	var scheduled float64
	for _, d := range res.Days {
		assert.LessOrEqual(t, d.LoadHours, d.CapacityHours)
		scheduled += d.LoadHours
	}
	var unscheduled float64
	for _, f := range res.Items {
		unscheduled += f.Unscheduled
	}
	assert.InDelta(t, 90.0, scheduled+unscheduled, 1e-9, "hours are conserved")
}

func TestForecast_SkipsNonWorkingDays(t *testing.T) {
	in := forecastInput([]domain.WorkItem{makeItem(1, day(4), day(7), 12)})
	in.Start, in.End = day(4), day(7)

	res, err := Forecast(in)
	require.NoError(t, err)
	require.Len(t, res.Days, 2)
	assert.Equal(t, day(4), res.Days[0].StartDate)
	assert.Equal(t, day(7), res.Days[1].StartDate)
}

func TestForecast_HardBlocking(t *testing.T) {
	a := makeItem(1, day(0), day(1), 4)
	a.Relations = []domain.Relation{blocks(1, 2)}
	b := makeItem(2, day(0), day(4), 4)

	res, err := Forecast(forecastInput([]domain.WorkItem{a, b}))
	require.NoError(t, err)

	assert.Equal(t, 4.0, hoursFor(res.Days[0], 1))
	assert.Equal(t, 0.0, hoursFor(res.Days[0], 2), "blocked while the blocker is not due")
	assert.Equal(t, 0.0, hoursFor(res.Days[1], 2), "still blocked on the blocker's due date")
	assert.Equal(t, 4.0, hoursFor(res.Days[2], 2))
}

func TestForecast_ClosedBlockerDoesNotBlock(t *testing.T) {
	closed := monday
	a := makeItem(1, day(0), day(3), 4)
	a.ClosedAt = &closed
	a.Relations = []domain.Relation{blocks(1, 2)}
	b := makeItem(2, day(0), day(4), 4)

	res, err := Forecast(forecastInput([]domain.WorkItem{a, b}))
	require.NoError(t, err)
	assert.Equal(t, 4.0, hoursFor(res.Days[0], 2))
}

func TestForecast_ExternalBlockersGoFirst(t *testing.T) {
	self := 1
	mine := makeItem(1, day(0), day(3), 10)
	mine.AssigneeID = domain.IntPtr(self)
	blocking := makeItem(2, day(0), day(4), 10)
	blocking.AssigneeID = domain.IntPtr(self)
	blocking.Relations = []domain.Relation{blocks(2, 3)}
	theirs := makeItem(3, day(5), day(11), 10)
	theirs.AssigneeID = domain.IntPtr(2)

	in := forecastInput([]domain.WorkItem{mine, blocking})
	in.SelfUserID = &self
	in.ItemMap = map[int]*domain.WorkItem{3: &theirs}

	res, err := Forecast(in)
	require.NoError(t, err)

	require.NotEmpty(t, res.Days[0].Breakdown)
	assert.Equal(t, 2, res.Days[0].Breakdown[0].ItemID)
	assert.Equal(t, 6.0, hoursFor(res.Days[0], 2))
	assert.Equal(t, 0.0, hoursFor(res.Days[0], 1))
	assert.Equal(t, 4.0, hoursFor(res.Days[1], 2))
	assert.Equal(t, 2.0, hoursFor(res.Days[1], 1))

	assert.True(t, res.Items[1].BlocksExternal)
	assert.False(t, res.Items[0].BlocksExternal)
}

func TestForecast_ExternalWithoutSelfUsesAssignee(t *testing.T) {
	blocking := makeItem(2, day(0), day(4), 10)
	blocking.AssigneeID = domain.IntPtr(1)
	blocking.Relations = []domain.Relation{blocks(2, 3)}
	other := makeItem(3, day(0), day(4), 10)
	other.AssigneeID = domain.IntPtr(5)
	early := makeItem(1, day(0), day(1), 10)
	early.AssigneeID = domain.IntPtr(1)

	res, err := Forecast(forecastInput([]domain.WorkItem{early, blocking, other}))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Days[0].Breakdown[0].ItemID)
}

func TestForecast_DueDateOrderThenID(t *testing.T) {
	items := []domain.WorkItem{
		makeItem(3, day(0), day(4), 2),
		makeItem(2, day(0), day(2), 2),
		makeItem(1, day(0), day(4), 2),
	}
	undated := makeItem(4, day(0), day(4), 2)
	undated.DueDate = nil
	items = append(items, undated)

	res, err := Forecast(forecastInput(items))
	require.NoError(t, err)

	var order []int
	for _, e := range res.Days[0].Breakdown {
		order = append(order, e.ItemID)
	}
	assert.Equal(t, []int{2, 1, 3}, order)
	assert.Equal(t, 2.0, hoursFor(res.Days[1], 4), "undated items sort last")
}

func TestForecast_OverplansOnDueDateAndFlagsSlippage(t *testing.T) {
	in := forecastInput([]domain.WorkItem{makeItem(1, day(0), day(0), 10)})

	res, err := Forecast(in)
	require.NoError(t, err)

	require.Len(t, res.Days[0].Breakdown, 1)
	entry := res.Days[0].Breakdown[0]
	assert.Equal(t, 8.0, entry.Hours)
	assert.True(t, entry.IsSlippage)
	assert.False(t, entry.IsActual)
	assert.Equal(t, 100, res.Days[0].Percentage)
	assert.Equal(t, domain.CapacityBusy, res.Days[0].Status)

	assert.Empty(t, res.Days[1].Breakdown, "nothing is allocated after the due date")
	assert.Equal(t, 2.0, res.Items[0].Unscheduled)
	assert.Nil(t, res.Items[0].FinishDate)
}

func TestForecast_HybridToday(t *testing.T) {
	in := forecastInput([]domain.WorkItem{makeItem(1, day(0), day(4), 8)})
	today := day(0).Add(14 * time.Hour)
	in.Today = &today
	in.ActualTimeByDay = domain.ActualTimeByDay{}
	in.ActualTimeByDay.Add(1, "2026-03-02", 2)

	res, err := Forecast(in)
	require.NoError(t, err)

	require.Len(t, res.Days[0].Breakdown, 2)
	actual, predicted := res.Days[0].Breakdown[0], res.Days[0].Breakdown[1]
	assert.True(t, actual.IsActual)
	assert.Equal(t, 2.0, actual.Hours)
	assert.False(t, predicted.IsActual)
	assert.Equal(t, 4.0, predicted.Hours)
	assert.Equal(t, 6.0, res.Days[0].LoadHours)

	assert.Equal(t, 2.0, hoursFor(res.Days[1], 1))
	assert.Equal(t, 2.0, res.Items[0].ActualHours)
	assert.Equal(t, 6.0, res.Items[0].PredictedHours)
}

func TestForecast_PastDaysShowActualsOnly(t *testing.T) {
	in := forecastInput([]domain.WorkItem{makeItem(1, day(0), day(4), 8)})
	today := day(2)
	in.Today = &today
	in.ActualTimeByDay = domain.ActualTimeByDay{}
	in.ActualTimeByDay.Add(1, "2026-03-02", 3)
	in.ActualTimeByDay.Add(9, "2026-03-03", 1)

	res, err := Forecast(in)
	require.NoError(t, err)

	require.Len(t, res.Days[0].Breakdown, 1)
	assert.True(t, res.Days[0].Breakdown[0].IsActual)
	assert.Equal(t, 3.0, res.Days[0].LoadHours)

	require.Len(t, res.Days[1].Breakdown, 1)
	assert.Equal(t, 9, res.Days[1].Breakdown[0].ItemID, "actuals for unscheduled items still count")

	assert.Equal(t, 6.0, hoursFor(res.Days[2], 1), "past actuals are already in spent time")
}

func TestForecast_InternalEstimateOverrides(t *testing.T) {
	in := forecastInput([]domain.WorkItem{makeItem(1, day(0), day(4), 40)})
	in.InternalEstimates = domain.InternalEstimates{1: {HoursRemaining: 3}}

	res, err := Forecast(in)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Days[0].LoadHours)
	assert.Equal(t, 0.0, res.Days[1].LoadHours)
}

func TestForecast_Errors(t *testing.T) {
	in := forecastInput(nil)
	in.Start, in.End = day(4), day(0)
	_, err := Forecast(in)
	assert.ErrorIs(t, err, ErrInvalidRange)

	in = forecastInput(nil)
	in.Schedule = domain.WeeklySchedule{"Monday": 8}
	_, err = CalculateScheduledCapacity(in)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestAggregateScheduled_MergesBreakdown(t *testing.T) {
	items := []domain.WorkItem{
		makeItem(1, day(0), day(4), 12),
		makeItem(2, day(7), day(8), 4),
	}
	in := forecastInput(items)
	in.End = day(13)

	days, err := CalculateScheduledCapacity(in)
	require.NoError(t, err)

	weeks, err := AggregateScheduled(days, domain.ZoomWeek)
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	require.Len(t, weeks[0].Breakdown, 1)
	assert.Equal(t, 12.0, weeks[0].Breakdown[0].Hours)
	assert.Equal(t, 40.0, weeks[0].CapacityHours)
	assert.Equal(t, 30, weeks[0].Percentage)
	assert.Equal(t, 4.0, hoursFor(weeks[1], 2))

	same, err := AggregateScheduled(days, domain.ZoomDay)
	require.NoError(t, err)
	assert.Equal(t, days, same)
}

func TestLessPriority(t *testing.T) {
	early, late := day(1), day(3)

	assert.True(t, lessPriority(priorityKey{BlocksExternal: true, DueDate: &late, ItemID: 9}, priorityKey{DueDate: &early, ItemID: 1}))
	assert.True(t, lessPriority(priorityKey{DueDate: &early, ItemID: 9}, priorityKey{DueDate: &late, ItemID: 1}))
	assert.True(t, lessPriority(priorityKey{DueDate: &late, ItemID: 9}, priorityKey{ItemID: 1}), "nil due date sorts last")
	assert.True(t, lessPriority(priorityKey{DueDate: &early, ItemID: 1}, priorityKey{DueDate: &early, ItemID: 2}))
	assert.False(t, lessPriority(priorityKey{ItemID: 2}, priorityKey{ItemID: 2}))
}
