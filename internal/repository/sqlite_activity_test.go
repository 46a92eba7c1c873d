package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/alexanderramin/steril/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activityBase = time.Date(2025, 1, 9, 8, 0, 0, 0, time.UTC)

func activityTestSetup(t *testing.T) *SQLiteActivityRepo {
	t.Helper()
	return NewSQLiteActivityRepo(testutil.NewTestDB(t))
}

func TestActivityRepo_CreateAssignsSeq(t *testing.T) {
	repo := activityTestSetup(t)
	ctx := context.Background()

	a := testutil.NewTestActivity(domain.StatusCompleted, activityBase)
	b := testutil.NewTestActivity(domain.StatusStopped, activityBase.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Positive(t, a.Seq)
	assert.Greater(t, b.Seq, a.Seq)
}

func TestActivityRepo_RoundTripsNullableTimestamps(t *testing.T) {
	repo := activityTestSetup(t)
	ctx := context.Background()

	full := testutil.NewTestActivity(domain.StatusCompleted, activityBase,
		testutil.WithStart(activityBase.Add(-5*time.Minute)), testutil.WithGenericTime(activityBase.Add(-time.Hour)))
	bare := testutil.NewTestActivity(domain.StatusCompleted, activityBase, testutil.WithoutTimestamps())
	require.NoError(t, repo.Create(ctx, full))
	require.NoError(t, repo.Create(ctx, bare))

	list, err := repo.ListByOwner(ctx, testutil.DefaultOwner)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got := list[0]
	require.NotNil(t, got.FinishedAt)
	require.NotNil(t, got.StartedAt)
	require.NotNil(t, got.At)
	assert.WithinDuration(t, activityBase, *got.FinishedAt, 0)
	assert.WithinDuration(t, activityBase.Add(-5*time.Minute), *got.StartedAt, 0)

	_, err = list[1].Timestamp()
	assert.ErrorIs(t, err, domain.ErrMissingTimestamp)
}

func TestActivityRepo_CreateIfAbsent(t *testing.T) {
	repo := activityTestSetup(t)
	ctx := context.Background()

	rec := testutil.NewTestActivity(domain.StatusCompleted, activityBase)
	inserted, err := repo.CreateIfAbsent(ctx, rec)
	require.NoError(t, err)
	assert.True(t, inserted)

	dup := *rec
	dup.Label = "changed"
	inserted, err = repo.CreateIfAbsent(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Nasi", list[0].Label)
}

func TestActivityRepo_Finish(t *testing.T) {
	repo := activityTestSetup(t)
	ctx := context.Background()

	rec := testutil.NewTestActivity(domain.StatusProcessing, activityBase)
	require.NoError(t, repo.Create(ctx, rec))

	require.NoError(t, repo.Finish(ctx, rec.ID, domain.StatusCompleted, activityBase.Add(5*time.Minute)))
	assert.ErrorIs(t, repo.Finish(ctx, rec.ID, domain.StatusStopped, activityBase), domain.ErrNotRunning)

	list, err := repo.ListByOwner(ctx, testutil.DefaultOwner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusCompleted, list[0].Status)
	at, err := list[0].Timestamp()
	require.NoError(t, err)
	assert.WithinDuration(t, activityBase.Add(5*time.Minute), at, 0)
}

func TestActivityRepo_ListRecent(t *testing.T) {
	repo := activityTestSetup(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		rec := testutil.NewTestActivity(domain.StatusCompleted, activityBase.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, rec))
		ids = append(ids, rec.ID)
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestActivity(domain.StatusCompleted, activityBase,
		testutil.WithActivityOwner("sari"))))

	recent, err := repo.ListRecent(ctx, testutil.DefaultOwner, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{ids[4], ids[3], ids[2]}, []string{recent[0].ID, recent[1].ID, recent[2].ID})

	none, err := repo.ListRecent(ctx, testutil.DefaultOwner, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestActivityRepo_CountByOwner(t *testing.T) {
	repo := activityTestSetup(t)
	ctx := context.Background()

	seed := []*domain.ActivityRecord{
		testutil.NewTestActivity(domain.StatusCompleted, activityBase, testutil.WithActivityOwner("sari")),
		testutil.NewTestActivity(domain.StatusCompleted, activityBase, testutil.WithActivityOwner("budi")),
		testutil.NewTestActivity(domain.StatusStopped, activityBase, testutil.WithActivityOwner("budi")),
		testutil.NewTestActivity(domain.StatusProcessing, activityBase, testutil.WithActivityOwner("budi")),
	}
	for _, rec := range seed {
		require.NoError(t, repo.Create(ctx, rec))
	}

	counts, err := repo.CountByOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, []OwnerCount{
		{Owner: "budi", Total: 3, Completed: 1, Stopped: 1, Processing: 1},
		{Owner: "sari", Total: 1, Completed: 1},
	}, counts)
}
