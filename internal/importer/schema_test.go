package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
  "issues": [
    {
      "id": 101,
      "subject": "Draft proposal",
      "start_date": "2026-03-02",
      "due_date": "2026-03-06",
      "estimated_hours": 12.5,
      "spent_hours": 2,
      "done_ratio": 10,
      "assigned_to": {"id": 7, "name": "Dana"},
      "updated_on": "2026-03-01T08:30:00Z",
      "relations": [
        {"id": 1, "issue_id": 101, "issue_to_id": 102, "relation_type": "blocks"}
      ]
    },
    {
      "id": 102,
      "subject": "Review proposal",
      "start_date": "2026-03-05",
      "due_date": null,
      "estimated_hours": null,
      "closed_on": "2026-03-09T10:00:00Z",
      "relations": [
        {"id": 1, "issue_id": 101, "issue_to_id": 102, "relation_type": "blocks"}
      ]
    }
  ],
  "total_count": 2
}`

func TestParseFeed_ReadsIssues(t *testing.T) {
	feed, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, feed.Issues, 2)

	first := feed.Issues[0]
	assert.Equal(t, 101, first.ID)
	assert.Equal(t, "Draft proposal", first.Subject)
	assert.Equal(t, "2026-03-02", *first.StartDate)
	assert.Equal(t, 12.5, *first.EstimatedHours)
	assert.Equal(t, 2.0, first.SpentHours)
	assert.Equal(t, 10, first.DoneRatio)
	assert.Equal(t, 7, *first.AssigneeID)
	require.Len(t, first.Relations, 1)
	assert.Equal(t, RelationImport{IssueID: 101, IssueToID: 102, RelationType: "blocks"}, first.Relations[0])

	second := feed.Issues[1]
	assert.Nil(t, second.DueDate, "null due date")
	assert.Nil(t, second.EstimatedHours)
	assert.Nil(t, second.AssigneeID)
	assert.Equal(t, "2026-03-09T10:00:00Z", *second.ClosedOn)
}

func TestParseFeed_Errors(t *testing.T) {
	_, err := ParseFeed([]byte(`{"issues": [`))
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = ParseFeed([]byte(`{"issues": {}}`))
	assert.ErrorContains(t, err, "must be an array")

	_, err = ParseFeed([]byte(`{}`))
	assert.Error(t, err)
}

func TestParseFeed_EmptyIssues(t *testing.T) {
	feed, err := ParseFeed([]byte(`{"issues": []}`))
	require.NoError(t, err)
	assert.Empty(t, feed.Issues)
}

func TestLoadFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleFeed), 0o644))

	feed, err := LoadFeed(path)
	require.NoError(t, err)
	assert.Len(t, feed.Issues, 2)

	_, err = LoadFeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "reading feed file")
}
