package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/steril/internal/aggregate"
	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/repository"
	"github.com/alexanderramin/steril/internal/testutil"
)

var t0 = time.Date(2025, time.January, 9, 10, 0, 0, 0, time.UTC)

type harness struct {
	db         *sql.DB
	sessions   *repository.SQLiteSessionRepo
	activities *repository.SQLiteActivityRepo
	clock      *testutil.FakeClock
	observer   *recordingObserver
	svc        SterilizationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newHarnessWith(t, database, testutil.NewFakeClock(t0), testutil.NewTestUoW(database))
}

func newHarnessWith(t *testing.T, database *sql.DB, clock *testutil.FakeClock, uow db.UnitOfWork) *harness {
	t.Helper()
	h := &harness{
		db:         database,
		sessions:   repository.NewSQLiteSessionRepo(database),
		activities: repository.NewSQLiteActivityRepo(database),
		clock:      clock,
		observer:   &recordingObserver{},
	}
	h.svc = NewSterilizationService(h.sessions, uow, clock, time.Second, h.observer)
	t.Cleanup(h.svc.Close)
	return h
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func aggregateSummary(total, completed, stopped int) aggregate.Summary {
	return aggregate.Summary{Total: total, Completed: completed, Stopped: stopped}
}
