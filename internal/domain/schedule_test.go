package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklySchedule_DefaultIsValid(t *testing.T) {
	s := DefaultWeeklySchedule()
	require.NoError(t, s.Validate())
	assert.Equal(t, 40.0, s.WeeklyHours())
}

func TestWeeklySchedule_MissingWeekday(t *testing.T) {
	s := DefaultWeeklySchedule()
	delete(s, "Wednesday")
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wednesday")
}

func TestWeeklySchedule_NegativeHours(t *testing.T) {
	s := DefaultWeeklySchedule()
	s["Friday"] = -1
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestWeeklySchedule_UnknownKey(t *testing.T) {
	s := DefaultWeeklySchedule()
	s["Funday"] = 4
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Funday")
}

func TestWeeklySchedule_AliasKeyRejected(t *testing.T) {
	for _, key := range []string{"mon", "MONDAY", "Mon"} {
		s := DefaultWeeklySchedule()
		s[key] = 12
		err := s.Validate()
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), key)
	}
}

func TestWeeklySchedule_HoursOn(t *testing.T) {
	s := DefaultWeeklySchedule()
	monday := MustParseDate("2025-06-16")
	saturday := MustParseDate("2025-06-21")

	assert.Equal(t, 8.0, s.HoursOn(monday))
	assert.True(t, s.IsWorkingDay(monday))
	assert.Equal(t, 0.0, s.HoursOn(saturday))
	assert.False(t, s.IsWorkingDay(saturday))
}

func TestWeeklySchedule_FingerprintStable(t *testing.T) {
	a := DefaultWeeklySchedule()
	b := a.Clone()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, "Mon=8,Tue=8,Wed=8,Thu=8,Fri=8,Sat=0,Sun=0", a.Fingerprint())

	b["Friday"] = 4.5
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, 8.0, a["Friday"], "clone must not alias the original")
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"Monday": time.Monday,
		"mon":    time.Monday,
		" SUN ":  time.Sunday,
		"friday": time.Friday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("someday")
	require.Error(t, err)
}
