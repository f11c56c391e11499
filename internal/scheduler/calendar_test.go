package scheduler

import (
	"testing"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAvailableHours_DefaultSchedule(t *testing.T) {
	schedule := domain.DefaultWeeklySchedule()

	assert.Equal(t, 40.0, AvailableHours(schedule, day(0), day(6)))
	assert.Equal(t, 8.0, AvailableHours(schedule, day(0), day(0)))
	assert.Equal(t, 0.0, AvailableHours(schedule, day(5), day(6)), "weekend has no hours")
	assert.Equal(t, 0.0, AvailableHours(schedule, day(3), day(1)), "reversed range is empty")
}

func TestWorkingDaysBetween(t *testing.T) {
	schedule := domain.DefaultWeeklySchedule()

	assert.Equal(t, 5, WorkingDaysBetween(schedule, day(0), day(6)))
	assert.Equal(t, 10, WorkingDaysBetween(schedule, day(0), day(13)))
	assert.Equal(t, 2, WorkingDaysBetween(schedule, day(4), day(7)), "Friday through Monday")
}

func TestCapacityStatusFor_Thresholds(t *testing.T) {
	tests := []struct {
		pct  int
		want domain.CapacityStatus
	}{
		{0, domain.CapacityAvailable},
		{50, domain.CapacityAvailable},
		{79, domain.CapacityAvailable},
		{80, domain.CapacityBusy},
		{100, domain.CapacityBusy},
		{101, domain.CapacityOverloaded},
		{150, domain.CapacityOverloaded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CapacityStatusFor(tt.pct), "pct=%d", tt.pct)
	}
}

func TestRoundPercent_HalfUp(t *testing.T) {
	assert.Equal(t, 1, roundPercent(0.5))
	assert.Equal(t, 0, roundPercent(-0.5))
	assert.Equal(t, -1, roundPercent(-0.6))
	assert.Equal(t, 14, roundPercent(14.28))
}

func TestPercentOf_ZeroCapacity(t *testing.T) {
	assert.Equal(t, 0, percentOf(10, 0))
	assert.Equal(t, 75, percentOf(6, 8))
}

func TestBucketStart(t *testing.T) {
	wed := day(2)
	sun := day(6)

	assert.Equal(t, monday, bucketStart(wed, domain.ZoomWeek))
	assert.Equal(t, monday, bucketStart(sun, domain.ZoomWeek), "weeks run Monday to Sunday")
	assert.Equal(t, domain.MustParseDate("2026-03-01"), bucketStart(wed, domain.ZoomMonth))
	assert.Equal(t, domain.MustParseDate("2026-01-01"), bucketStart(wed, domain.ZoomQuarter))
	assert.Equal(t, domain.MustParseDate("2026-01-01"), bucketStart(wed, domain.ZoomYear))
	assert.Equal(t, domain.MustParseDate("2026-03-31"), bucketEnd(domain.MustParseDate("2026-03-01"), domain.ZoomMonth))
	assert.Equal(t, domain.MustParseDate("2026-06-30"), bucketEnd(domain.MustParseDate("2026-04-01"), domain.ZoomQuarter))
}
