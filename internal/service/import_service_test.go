package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/repository"
	"github.com/alexanderramin/loadline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedJSON = `{
  "issues": [
    {
      "id": 101,
      "subject": "Draft proposal",
      "start_date": "2026-03-02",
      "due_date": "2026-03-06",
      "estimated_hours": 12,
      "spent_hours": 2,
      "done_ratio": 10,
      "assigned_to": {"id": 7},
      "relations": [
        {"issue_id": 101, "issue_to_id": 102, "relation_type": "blocks"}
      ]
    },
    {
      "id": 102,
      "subject": "Review proposal",
      "start_date": "2026-03-05",
      "due_date": "2026-03-10",
      "estimated_hours": 4,
      "assigned_to": {"id": 8},
      "relations": [
        {"issue_id": 101, "issue_to_id": 102, "relation_type": "blocks"}
      ]
    },
    {
      "id": 103,
      "subject": "Kickoff",
      "start_date": "2026-02-20",
      "estimated_hours": 1,
      "closed_on": "2026-02-21T10:00:00Z"
    }
  ]
}`

func TestImportFeedData_StoresItems(t *testing.T) {
	env := newTestEnv(t)
	rec := &recordingObserver{}
	svc := NewImportService(env.uow, rec)
	ctx := context.Background()

	res, err := svc.ImportFeedData(ctx, []byte(feedJSON))
	require.NoError(t, err)
	assert.Equal(t, &app.ImportResult{ItemCount: 3, ClosedCount: 1, RelationCount: 1}, res)

	item, err := env.workItems.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Draft proposal", item.Subject)
	require.Len(t, item.Relations, 1)
	assert.Equal(t, 102, item.Relations[0].TargetItemID)

	mirrored, err := env.workItems.GetByID(ctx, 102)
	require.NoError(t, err)
	assert.Empty(t, mirrored.Relations, "mirrored relation records are not stored twice")

	require.Len(t, rec.events, 1)
	assert.Equal(t, "import-feed", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
	assert.Equal(t, 3, rec.events[0].Fields["items"])
}

func TestImportFeedData_ReimportUpdates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow)
	ctx := context.Background()

	_, err := svc.ImportFeedData(ctx, []byte(feedJSON))
	require.NoError(t, err)
	_, err = svc.ImportFeedData(ctx, []byte(`{"issues":[{"id":101,"subject":"Draft v2","done_ratio":50}]}`))
	require.NoError(t, err)

	item, err := env.workItems.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", item.Subject)
	assert.Equal(t, 50, item.DoneRatio)
	assert.Empty(t, item.Relations)

	all, err := env.workItems.List(ctx, repository.ItemFilter{IncludeClosed: true})
	require.NoError(t, err)
	assert.Len(t, all, 3, "items missing from the feed are kept")
}

func TestImportFeedData_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow)

	_, err := svc.ImportFeedData(context.Background(), []byte(`{"issues": [`))

	var importErr *app.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, app.ImportErrInvalidFeed, importErr.Code)
}

func TestImportFeedData_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow)
	ctx := context.Background()

	feed := `{"issues":[
		{"id": 1, "start_date": "2026-03-10", "due_date": "2026-03-02"},
		{"id": 2, "done_ratio": 150}
	]}`
	_, err := svc.ImportFeedData(ctx, []byte(feed))

	var importErr *app.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, app.ImportErrValidationFailed, importErr.Code)
	assert.Len(t, importErr.Errors, 2)
	assert.Contains(t, err.Error(), "VALIDATION_FAILED")

	items, err := env.workItems.List(ctx, repository.ItemFilter{IncludeClosed: true})
	require.NoError(t, err)
	assert.Empty(t, items, "nothing stored when validation fails")
}

func TestImportFeed_FromFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow)
	path := filepath.Join(t.TempDir(), "issues.json")
	require.NoError(t, os.WriteFile(path, []byte(feedJSON), 0o600))

	res, err := svc.ImportFeed(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.ItemCount)

	_, err = svc.ImportFeed(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	var importErr *app.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, app.ImportErrInvalidFeed, importErr.Code)
}

func TestImportFeedData_RollbackOnWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Exec calls: #1 upsert 101, #2 clear its relations, #3 insert 101->102,
	// #4 upsert 102. Failing #4 must undo the first item as well.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 4,
		Err:    fmt.Errorf("injected upsert failure"),
	}
	svc := NewImportService(failUoW)

	_, err := svc.ImportFeedData(ctx, []byte(feedJSON))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected upsert failure")

	items, err := env.workItems.List(ctx, repository.ItemFilter{IncludeClosed: true})
	require.NoError(t, err)
	assert.Empty(t, items, "no items should exist after rollback")
}
