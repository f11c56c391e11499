package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/repository"
	"github.com/alexanderramin/loadline/internal/testutil"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
var monday = domain.MustParseDate("2026-03-02")

func day(n int) time.Time {
	return domain.AddDays(monday, n)
}

type testEnv struct {
	db        *sql.DB
	uow       db.UnitOfWork
	workItems *repository.SQLiteWorkItemRepo
	schedules *repository.SQLiteScheduleRepo
	estimates *repository.SQLiteEstimateRepo
	entries   *repository.SQLiteTimeEntryRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		workItems: repository.NewSQLiteWorkItemRepo(database),
		schedules: repository.NewSQLiteScheduleRepo(database),
		estimates: repository.NewSQLiteEstimateRepo(database),
		entries:   repository.NewSQLiteTimeEntryRepo(database),
	}
}

func (e *testEnv) seed(t *testing.T, items ...*domain.WorkItem) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, e.workItems.Upsert(context.Background(), item))
	}
}

func (e *testEnv) capacity(observers ...UseCaseObserver) CapacityService {
	return NewCapacityService(e.workItems, e.schedules, e.estimates, e.entries, observers...)
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
