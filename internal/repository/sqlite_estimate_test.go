package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/loadline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRepo_SetGetList(t *testing.T) {
	repo := NewSQLiteEstimateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, 5, 6))
	require.NoError(t, repo.Set(ctx, 5, 3.5))
	require.NoError(t, repo.Set(ctx, 9, 1))

	est, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, est.HoursRemaining)
	assert.False(t, est.UpdatedAt.IsZero())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1.0, all[9].HoursRemaining)
}

func TestEstimateRepo_Delete(t *testing.T) {
	repo := NewSQLiteEstimateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, 5, 6))
	require.NoError(t, repo.Delete(ctx, 5))

	_, err := repo.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 5), ErrNotFound)
}

func TestEstimateRepo_RejectsNegative(t *testing.T) {
	repo := NewSQLiteEstimateRepo(testutil.NewTestDB(t))

	assert.Error(t, repo.Set(context.Background(), 1, -1))
}
