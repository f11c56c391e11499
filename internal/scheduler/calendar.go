package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
)

var (
	// ErrInvalidRange is returned when a date range ends before it starts.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidSchedule is returned for a weekly schedule that fails validation.
	ErrInvalidSchedule = errors.New("invalid weekly schedule")
	// ErrInvalidGranularity is returned for an unknown zoom level.
	ErrInvalidGranularity = errors.New("invalid granularity")
)

// validateRange normalises start/end to calendar dates and checks ordering
// and the schedule.
func validateRange(schedule domain.WeeklySchedule, start, end time.Time) (time.Time, time.Time, error) {
	if err := schedule.Validate(); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	s, e := domain.DateOf(start), domain.DateOf(end)
	if e.Before(s) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s is before start %s",
			ErrInvalidRange, domain.FormatDate(e), domain.FormatDate(s))
	}
	return s, e, nil
}

// eachDay calls fn for every calendar date in [start, end].
func eachDay(start, end time.Time, fn func(day time.Time)) {
	for d := domain.DateOf(start); !d.After(end); d = domain.AddDays(d, 1) {
		fn(d)
	}
}

// AvailableHours sums scheduled hours for every date in [from, to].
// Returns 0 when to is before from.
func AvailableHours(schedule domain.WeeklySchedule, from, to time.Time) float64 {
	var total float64
	eachDay(domain.DateOf(from), domain.DateOf(to), func(d time.Time) {
		total += schedule.HoursOn(d)
	})
	return total
}

// WorkingDaysBetween counts dates in [from, to] with scheduled hours.
func WorkingDaysBetween(schedule domain.WeeklySchedule, from, to time.Time) int {
	var n int
	eachDay(domain.DateOf(from), domain.DateOf(to), func(d time.Time) {
		if schedule.IsWorkingDay(d) {
			n++
		}
	})
	return n
}

// roundPercent rounds half up, so -0.5 becomes 0 and 0.5 becomes 1.
func roundPercent(v float64) int {
	return int(math.Floor(v + 0.5))
}

// percentOf returns round(load/capacity*100), or 0 when there is no capacity.
func percentOf(load, capacity float64) int {
	if capacity <= 0 {
		return 0
	}
	return roundPercent(load / capacity * 100)
}

// CapacityStatusFor maps a load percentage onto a capacity status.
// 80 and 100 are both busy.
func CapacityStatusFor(percentage int) domain.CapacityStatus {
	switch {
	case percentage > 100:
		return domain.CapacityOverloaded
	case percentage >= 80:
		return domain.CapacityBusy
	default:
		return domain.CapacityAvailable
	}
}

// bucketStart returns the first calendar date of the bucket containing day.
func bucketStart(day time.Time, g domain.Granularity) time.Time {
	y, m, _ := day.Date()
	switch g {
	case domain.ZoomWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return domain.AddDays(day, -offset)
	case domain.ZoomMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case domain.ZoomQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
	case domain.ZoomYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// bucketEnd returns the last calendar date of the bucket starting at start.
func bucketEnd(start time.Time, g domain.Granularity) time.Time {
	switch g {
	case domain.ZoomWeek:
		return domain.AddDays(start, 6)
	case domain.ZoomMonth:
		return start.AddDate(0, 1, -1)
	case domain.ZoomQuarter:
		return start.AddDate(0, 3, -1)
	case domain.ZoomYear:
		return start.AddDate(1, 0, -1)
	default:
		return start
	}
}

func validateGranularity(g domain.Granularity) error {
	if !domain.ValidGranularities[g] {
		return fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	return nil
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
