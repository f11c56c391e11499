package scheduler

import (
	"testing"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRemainingWork(t *testing.T) {
	tests := []struct {
		name     string
		estimate *float64
		spent    float64
		ratio    int
		want     float64
	}{
		{"no estimate", nil, 3, 0, 0},
		{"untouched", domain.Float64Ptr(10), 0, 0, 10},
		{"done ratio", domain.Float64Ptr(10), 2, 40, 6},
		{"finished", domain.Float64Ptr(10), 12, 100, 0},
		{"spent without ratio", domain.Float64Ptr(10), 4, 0, 6},
		{"spent beyond estimate without ratio", domain.Float64Ptr(10), 14, 0, 10},
		{"over budget uses ratio", domain.Float64Ptr(10), 14, 50, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &domain.WorkItem{ID: 1, EstimatedHours: tt.estimate, SpentHours: tt.spent, DoneRatio: tt.ratio}
			assert.InDelta(t, tt.want, RemainingWork(item), 1e-9)
		})
	}
}

func TestRemainingForForecast_InternalEstimateWins(t *testing.T) {
	item := &domain.WorkItem{ID: 7, EstimatedHours: domain.Float64Ptr(40)}
	estimates := domain.InternalEstimates{7: {HoursRemaining: 3}}

	hours, ok := remainingForForecast(item, estimates)
	assert.True(t, ok)
	assert.Equal(t, 3.0, hours)

	hours, ok = remainingForForecast(&domain.WorkItem{ID: 8}, estimates)
	assert.False(t, ok)
	assert.Equal(t, 0.0, hours)

	hours, ok = remainingForForecast(&domain.WorkItem{ID: 8}, domain.InternalEstimates{8: {HoursRemaining: 2}})
	assert.True(t, ok, "override applies without a tracker estimate")
	assert.Equal(t, 2.0, hours)
}
