package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekdays lists weekday names in Monday-first order, the order used for
// display and fingerprints.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeeklySchedule maps a weekday name ("Monday" … "Sunday") to the standard
// working hours for that day.
type WeeklySchedule map[string]float64

// DefaultWeeklySchedule is a Monday–Friday, eight-hour week.
func DefaultWeeklySchedule() WeeklySchedule {
	return WeeklySchedule{
		"Monday": 8, "Tuesday": 8, "Wednesday": 8, "Thursday": 8, "Friday": 8,
		"Saturday": 0, "Sunday": 0,
	}
}

// Validate checks that all seven weekdays are present under their canonical
// names, no other keys exist and every value is within [0, 24].
func (s WeeklySchedule) Validate() error {
	for _, wd := range Weekdays {
		h, ok := s[wd.String()]
		if !ok {
			return fmt.Errorf("weekly schedule is missing %s", wd)
		}
		if h < 0 {
			return fmt.Errorf("weekly schedule has negative hours for %s: %v", wd, h)
		}
		if h > 24 {
			return fmt.Errorf("weekly schedule has more than 24 hours for %s: %v", wd, h)
		}
	}
	for k := range s {
		if !isWeekdayName(k) {
			return fmt.Errorf("weekly schedule has unknown key %q", k)
		}
	}
	return nil
}

// isWeekdayName accepts only canonical names such as "Monday".
func isWeekdayName(k string) bool {
	for _, wd := range Weekdays {
		if k == wd.String() {
			return true
		}
	}
	return false
}

// HoursOn returns the scheduled working hours for t's weekday.
func (s WeeklySchedule) HoursOn(t time.Time) float64 {
	return s[t.Weekday().String()]
}

// IsWorkingDay reports whether t's weekday has any scheduled hours.
func (s WeeklySchedule) IsWorkingDay(t time.Time) bool {
	return s.HoursOn(t) > 0
}

// WeeklyHours sums the schedule over a full week.
func (s WeeklySchedule) WeeklyHours() float64 {
	var total float64
	for _, wd := range Weekdays {
		total += s[wd.String()]
	}
	return total
}

// Fingerprint returns a stable identity string for caching. Two schedules with
// the same hours produce the same fingerprint.
func (s WeeklySchedule) Fingerprint() string {
	parts := make([]string, 0, len(Weekdays))
	for _, wd := range Weekdays {
		parts = append(parts, wd.String()[:3]+"="+strconv.FormatFloat(s[wd.String()], 'f', -1, 64))
	}
	return strings.Join(parts, ",")
}

// Clone returns an independent copy of the schedule.
func (s WeeklySchedule) Clone() WeeklySchedule {
	c := make(WeeklySchedule, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// ParseWeekday accepts full or three-letter weekday names, case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, wd := range Weekdays {
		full := strings.ToLower(wd.String())
		if n == full || n == full[:3] {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}
