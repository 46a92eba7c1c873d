package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/alexanderramin/steril/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// Dashboards read activity history while the timer goroutine writes
// completions; readers must never see an error or a torn row.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	const writers, perWriter, readers = 4, 20, 4
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter+readers*perWriter)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				rec := testutil.NewTestActivity(domain.StatusCompleted, activityBase.Add(time.Duration(i)*time.Minute),
					testutil.WithActivityOwner(fmt.Sprintf("owner-%d", w)))
				if err := repo.Create(ctx, rec); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				list, err := repo.ListAll(ctx)
				if err != nil {
					errs <- err
					continue
				}
				for _, rec := range list {
					if rec.FinishedAt == nil {
						errs <- fmt.Errorf("activity %s read without finish time", rec.ID)
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	counts, err := repo.CountByOwner(ctx)
	require.NoError(t, err)
	require.Len(t, counts, writers)
	for _, c := range counts {
		assert.Equal(t, perWriter, c.Total, c.Owner)
	}
}
