package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_SampleFeed(t *testing.T) {
	feed, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	items, err := Convert(feed, now)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, 101, first.ID)
	assert.Equal(t, domain.MustParseDate("2026-03-02"), *first.StartDate)
	assert.Equal(t, domain.MustParseDate("2026-03-06"), *first.DueDate)
	assert.Equal(t, 12.5, *first.EstimatedHours)
	assert.Equal(t, 7, *first.AssigneeID)
	assert.False(t, first.IsClosed())
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), first.UpdatedAt)
	assert.Equal(t, []domain.Relation{{OwnerItemID: 101, TargetItemID: 102, Type: domain.RelationBlocks}}, first.Relations)

	second := items[1]
	assert.True(t, second.IsClosed())
	assert.Nil(t, second.DueDate)
	assert.Nil(t, second.EstimatedHours)
	assert.Equal(t, now, second.UpdatedAt)
	assert.Empty(t, second.OwnedRelations(), "mirrored record belongs to 101")
}

func TestConvert_ClosedOnDateOnly(t *testing.T) {
	is := validIssue(1)
	is.ClosedOn = ptrStr("2026-03-05")

	items, err := Convert(&Feed{Issues: []IssueImport{is}}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, items[0].ClosedAt)
	assert.Equal(t, domain.MustParseDate("2026-03-05"), *items[0].ClosedAt)
}

func TestConvert_InvalidUpdatedOn(t *testing.T) {
	is := validIssue(1)
	is.UpdatedOn = ptrStr("last week")

	_, err := Convert(&Feed{Issues: []IssueImport{is}}, time.Now())
	assert.ErrorContains(t, err, "updated_on")
}

func TestConvert_InvalidDate(t *testing.T) {
	is := validIssue(1)
	is.DueDate = ptrStr("tomorrow")

	_, err := Convert(&Feed{Issues: []IssueImport{is}}, time.Now())
	assert.ErrorContains(t, err, "due_date")
}
