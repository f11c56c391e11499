package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)

func TestIsClosed(t *testing.T) {
	w := &WorkItem{ID: 1}
	assert.False(t, w.IsClosed())
	w.ClosedAt = &testNow
	assert.True(t, w.IsClosed())
}

func TestOverBudget(t *testing.T) {
	cases := []struct {
		name     string
		est      *float64
		spent    float64
		expected bool
	}{
		{"no estimate", nil, 10, false},
		{"under", Float64Ptr(10), 5, false},
		{"exact", Float64Ptr(10), 10, false},
		{"over", Float64Ptr(10), 12, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := &WorkItem{EstimatedHours: tc.est, SpentHours: tc.spent}
			assert.Equal(t, tc.expected, w.OverBudget())
		})
	}
}

func TestSameAssignee(t *testing.T) {
	a := &WorkItem{AssigneeID: IntPtr(5)}
	b := &WorkItem{AssigneeID: IntPtr(5)}
	c := &WorkItem{AssigneeID: IntPtr(7)}
	none := &WorkItem{}

	assert.True(t, a.SameAssignee(b))
	assert.False(t, a.SameAssignee(c))
	assert.False(t, a.SameAssignee(none))
	assert.True(t, none.SameAssignee(&WorkItem{}))
}

func TestOwnedRelations_FiltersMirroredRecords(t *testing.T) {
	w := &WorkItem{
		ID: 1,
		Relations: []Relation{
			{OwnerItemID: 1, TargetItemID: 2, Type: RelationBlocks},
			{OwnerItemID: 3, TargetItemID: 1, Type: RelationBlocks},
		},
	}
	owned := w.OwnedRelations()
	require.Len(t, owned, 1)
	assert.Equal(t, 2, owned[0].TargetItemID)
}

func TestRelationType_Direction(t *testing.T) {
	assert.True(t, RelationBlocks.OwnerBlocksTarget())
	assert.True(t, RelationPrecedes.OwnerBlocksTarget())
	assert.True(t, RelationBlocked.OwnerWaitsOnTarget())
	assert.True(t, RelationFollows.OwnerWaitsOnTarget())

	for _, rt := range []RelationType{RelationRelates, RelationDuplicates, RelationCopiedTo, RelationFinishToStart} {
		assert.False(t, rt.OwnerBlocksTarget(), "%s", rt)
		assert.False(t, rt.OwnerWaitsOnTarget(), "%s", rt)
	}
}

func TestActualTimeByDay_Add(t *testing.T) {
	a := ActualTimeByDay{}
	a.Add(1, "2025-06-16", 1.5)
	a.Add(1, "2025-06-16", 0.5)
	a.Add(2, "2025-06-17", 3)

	assert.InDelta(t, 2.0, a[1]["2025-06-16"], 1e-9)
	assert.InDelta(t, 3.0, a[2]["2025-06-17"], 1e-9)
}

func TestDateOf_DropsClock(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	local := time.Date(2025, 6, 16, 1, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-16", FormatDate(DateOf(local)))
	assert.Equal(t, time.UTC, DateOf(local).Location())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("16/06/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}
