package timer_test

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/alexanderramin/steril/internal/testutil"
	"github.com/alexanderramin/steril/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, time.January, 9, 10, 0, 0, 0, time.UTC)

func newTimer(t *testing.T, opts ...timer.Option) (*timer.Timer, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(t0)
	tm := timer.New(clock, opts...)
	t.Cleanup(tm.Close)
	return tm, clock
}

func TestStart_RejectsInvalidDuration(t *testing.T) {
	tm, clock := newTimer(t)
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := tm.Start(m, "Nasi")
		assert.ErrorIs(t, err, domain.ErrInvalidDuration, "minutes=%v", m)
	}
	assert.Equal(t, 0, clock.ActiveTickers())
}

func TestStart_CreatesProcessingSession(t *testing.T) {
	tm, clock := newTimer(t, timer.WithOwner("budi"))
	s, err := tm.Start(2.5, "Ikan")
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "budi", s.Owner)
	assert.Equal(t, "Ikan", s.Label)
	assert.Equal(t, domain.StatusProcessing, s.Status)
	assert.Equal(t, t0, s.StartedAt)
	assert.Equal(t, int64(150_000), s.RemainingMs(t0))
	assert.Equal(t, 1, clock.ActiveTickers())
	assert.True(t, tm.Running())
}

func TestStart_RejectsSecondActiveSession(t *testing.T) {
	tm, _ := newTimer(t)
	first, err := tm.Start(5, "Ayam")
	require.NoError(t, err)

	got, err := tm.Start(3, "Nasi")
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyActive)
	assert.Equal(t, first.ID, got.ID)
}

func TestStart_AllowedAfterTerminal(t *testing.T) {
	tm, _ := newTimer(t)
	first, err := tm.Start(5, "Ayam")
	require.NoError(t, err)
	_, err = tm.Stop(first.ID)
	require.NoError(t, err)

	second, err := tm.Start(5, "Nasi")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTick_CompletesExactlyOnceAtZero(t *testing.T) {
	var fired atomic.Int32
	var last atomic.Value
	tm, clock := newTimer(t, timer.OnComplete(func(s domain.Session) {
		fired.Add(1)
		last.Store(s)
	}))

	s, err := tm.Start(5, "Ayam")
	require.NoError(t, err)

	almost := t0.Add(5*time.Minute - 500*time.Millisecond)
	tm.Tick(almost)
	snap, ok := tm.Snapshot()
	require.True(t, ok)
	assert.Equal(t, domain.StatusProcessing, snap.Status)
	assert.Equal(t, int64(500), snap.RemainingMs(almost))
	assert.Zero(t, fired.Load())

	after := t0.Add(5*time.Minute + time.Second)
	tm.Tick(after)
	tm.Tick(after.Add(time.Second))
	tm.Tick(after.Add(time.Minute))

	snap, _ = tm.Snapshot()
	assert.Equal(t, domain.StatusCompleted, snap.Status)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, s.ID, last.Load().(domain.Session).ID)
	assert.Equal(t, 0, clock.ActiveTickers(), "ticker must be released on completion")
	assert.False(t, tm.Running())
}

func TestTick_FiresAtExactZero(t *testing.T) {
	var fired atomic.Int32
	tm, _ := newTimer(t, timer.OnComplete(func(domain.Session) { fired.Add(1) }))
	_, err := tm.Start(1, "")
	require.NoError(t, err)

	tm.Tick(t0.Add(time.Minute - time.Millisecond))
	assert.Zero(t, fired.Load())
	tm.Tick(t0.Add(time.Minute))
	assert.Equal(t, int32(1), fired.Load())
}

func TestTick_RemainingIsMonotonic(t *testing.T) {
	tm, _ := newTimer(t)
	_, err := tm.Start(0.75, "Sayur")
	require.NoError(t, err)

	prev := int64(math.MaxInt64)
	for ms := int64(0); ms <= 60_000; ms += 250 {
		now := t0.Add(time.Duration(ms) * time.Millisecond)
		tm.Tick(now)
		snap, _ := tm.Snapshot()
		rem := snap.RemainingMs(now)
		assert.GreaterOrEqual(t, rem, int64(0))
		assert.LessOrEqual(t, rem, prev, "remaining grew at %dms", ms)
		prev = rem
	}
	assert.Zero(t, prev)
}

func TestTicker_DrivesCompletion(t *testing.T) {
	var fired atomic.Int32
	tm, clock := newTimer(t, timer.OnComplete(func(domain.Session) { fired.Add(1) }))
	_, err := tm.Start(5, "Ayam")
	require.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	clock.Advance(time.Second)
	clock.Advance(time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 0, clock.ActiveTickers())
}

func TestSyncFromAbsolute_NoDriftAcrossRecreation(t *testing.T) {
	clock := testutil.NewFakeClock(t0)
	first := timer.New(clock)
	seed, err := first.Start(10, "Daging")
	require.NoError(t, err)
	first.Close()
	assert.Equal(t, 0, clock.ActiveTickers(), "Close must release the ticker")

	for _, offset := range []time.Duration{
		90 * time.Second, 3*time.Minute + 250*time.Millisecond, 7 * time.Minute, 9*time.Minute + 59*time.Second,
	} {
		clock.Set(t0.Add(offset))
		view := timer.New(clock)
		got, err := view.SyncFromAbsolute(seed)
		require.NoError(t, err)

		now := clock.Now()
		want := (10*time.Minute - offset).Milliseconds()
		assert.InDelta(t, want, got.RemainingMs(now), 1000, "offset=%s", offset)
		assert.Equal(t, seed.StartedAt, got.StartedAt)
		assert.Equal(t, 1, clock.ActiveTickers())
		view.Close()
	}
}

func TestSyncFromAbsolute_ExpiredAnchorCompletesOnNextTick(t *testing.T) {
	var fired atomic.Int32
	tm, clock := newTimer(t, timer.OnComplete(func(domain.Session) { fired.Add(1) }))
	clock.Set(t0.Add(time.Hour))

	_, err := tm.SyncFromAbsolute(domain.Session{ID: "s1", DurationMinutes: 5, StartedAt: t0})
	require.NoError(t, err)
	tm.Tick(clock.Now())

	snap, _ := tm.Snapshot()
	assert.Equal(t, domain.StatusCompleted, snap.Status)
	assert.Equal(t, int32(1), fired.Load())
}

func TestTick_LateCompletionFinishesAtEndsAt(t *testing.T) {
	tm, clock := newTimer(t)
	clock.Set(t0.Add(72 * time.Hour))

	_, err := tm.SyncFromAbsolute(domain.Session{ID: "s1", DurationMinutes: 5, StartedAt: t0})
	require.NoError(t, err)
	tm.Tick(clock.Now())

	snap, _ := tm.Snapshot()
	assert.Equal(t, domain.StatusCompleted, snap.Status)
	require.NotNil(t, snap.FinishedAt)
	assert.Equal(t, t0.Add(5*time.Minute), *snap.FinishedAt)
	assert.Equal(t, int64(0), snap.RemainingMs(clock.Now()))
}

func TestSettle_AdoptsTerminalStateWithoutNotifying(t *testing.T) {
	var fired atomic.Int32
	tm, clock := newTimer(t,
		timer.OnComplete(func(domain.Session) { fired.Add(1) }),
		timer.OnStop(func(domain.Session) { fired.Add(1) }),
	)
	s, err := tm.Start(5, "Nasi")
	require.NoError(t, err)

	stoppedAt := t0.Add(2 * time.Minute)
	other := s
	other.ID = "another"
	other.Status = domain.StatusStopped
	other.FinishedAt = &stoppedAt
	assert.False(t, tm.Settle(other), "only the live session is settled")
	assert.False(t, tm.Settle(s), "a processing row settles nothing")

	stored := s
	stored.Status = domain.StatusStopped
	stored.FinishedAt = &stoppedAt
	require.True(t, tm.Settle(stored))

	snap, _ := tm.Snapshot()
	assert.Equal(t, domain.StatusStopped, snap.Status)
	assert.Equal(t, stoppedAt, *snap.FinishedAt)
	assert.Equal(t, 0, clock.ActiveTickers())
	assert.Zero(t, fired.Load())
	assert.False(t, tm.Settle(stored), "already terminal")

	_, err = tm.Start(3, "Ayam")
	assert.NoError(t, err)
}

func TestSyncFromAbsolute_SameSessionKeepsTicker(t *testing.T) {
	tm, clock := newTimer(t)
	s, err := tm.Start(5, "Buah")
	require.NoError(t, err)

	again, err := tm.SyncFromAbsolute(s)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, 1, clock.ActiveTickers())
}

func TestSyncFromAbsolute_FinishedSessionStaysFinished(t *testing.T) {
	var fired atomic.Int32
	tm, clock := newTimer(t, timer.OnComplete(func(domain.Session) { fired.Add(1) }))
	s, err := tm.Start(1, "Nasi")
	require.NoError(t, err)
	tm.Tick(t0.Add(time.Minute))
	require.Equal(t, int32(1), fired.Load())

	got, err := tm.SyncFromAbsolute(s)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	tm.Tick(t0.Add(2 * time.Minute))
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 0, clock.ActiveTickers())
}

func TestSyncFromAbsolute_Rejections(t *testing.T) {
	tm, _ := newTimer(t)
	s, err := tm.Start(5, "Buah")
	require.NoError(t, err)

	_, err = tm.SyncFromAbsolute(domain.Session{ID: "other", DurationMinutes: 5, StartedAt: t0})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyActive)

	_, err = tm.SyncFromAbsolute(domain.Session{ID: s.ID, DurationMinutes: 0, StartedAt: t0})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = tm.SyncFromAbsolute(domain.Session{ID: s.ID, DurationMinutes: 5})
	assert.ErrorIs(t, err, domain.ErrMissingTimestamp)

	finished := t0.Add(time.Minute)
	_, err = tm.SyncFromAbsolute(domain.Session{
		ID: "done", DurationMinutes: 5, StartedAt: t0,
		Status: domain.StatusStopped, FinishedAt: &finished,
	})
	assert.ErrorIs(t, err, domain.ErrNotRunning)
}

func TestStop_Twice(t *testing.T) {
	var stops atomic.Int32
	tm, clock := newTimer(t, timer.OnStop(func(domain.Session) { stops.Add(1) }))
	s, err := tm.Start(5, "Nasi")
	require.NoError(t, err)
	clock.Set(t0.Add(2 * time.Minute))

	stopped, err := tm.Stop(s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, stopped.Status)
	require.NotNil(t, stopped.FinishedAt)
	assert.Equal(t, t0.Add(2*time.Minute), *stopped.FinishedAt)
	assert.Equal(t, 0, clock.ActiveTickers())

	clock.Set(t0.Add(3 * time.Minute))
	again, err := tm.Stop(s.ID)
	assert.ErrorIs(t, err, domain.ErrNotRunning)
	assert.Equal(t, stopped, again, "second stop must not alter state")
	assert.Equal(t, int32(1), stops.Load())
}

func TestStop_FreezesDerivedValues(t *testing.T) {
	tm, clock := newTimer(t)
	s, err := tm.Start(5, "Nasi")
	require.NoError(t, err)
	clock.Set(t0.Add(2 * time.Minute))
	stopped, err := tm.Stop(s.ID)
	require.NoError(t, err)

	later := t0.Add(time.Hour)
	assert.Equal(t, int64(180_000), stopped.RemainingMs(later))
	assert.Equal(t, "dihentikan", stopped.RemainingLabel(later))
}

func TestStop_UnknownSession(t *testing.T) {
	tm, _ := newTimer(t)
	_, err := tm.Stop("missing")
	assert.ErrorIs(t, err, domain.ErrNotRunning)

	_, err = tm.Start(5, "Nasi")
	require.NoError(t, err)
	_, err = tm.Stop("someone-else")
	assert.ErrorIs(t, err, domain.ErrNotRunning)
}

func TestStop_AfterCompletion(t *testing.T) {
	tm, _ := newTimer(t)
	s, err := tm.Start(1, "Nasi")
	require.NoError(t, err)
	tm.Tick(t0.Add(2 * time.Minute))

	got, err := tm.Stop(s.ID)
	assert.ErrorIs(t, err, domain.ErrNotRunning)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestClose_ReleasesTickerAndRejectsStart(t *testing.T) {
	clock := testutil.NewFakeClock(t0)
	tm := timer.New(clock)
	_, err := tm.Start(5, "Nasi")
	require.NoError(t, err)

	tm.Close()
	tm.Close()
	assert.Equal(t, 0, clock.ActiveTickers())
	assert.False(t, tm.Running())

	_, err = tm.Start(5, "Nasi")
	assert.ErrorIs(t, err, timer.ErrClosed)

	snap, ok := tm.Snapshot()
	assert.True(t, ok)
	assert.Equal(t, domain.StatusProcessing, snap.Status)
}

func TestListener_MayReadSnapshot(t *testing.T) {
	var tm *timer.Timer
	seen := make(chan domain.SessionStatus, 1)
	clock := testutil.NewFakeClock(t0)
	tm = timer.New(clock, timer.OnComplete(func(domain.Session) {
		s, _ := tm.Snapshot()
		seen <- s.Status
	}))
	t.Cleanup(tm.Close)

	_, err := tm.Start(1, "")
	require.NoError(t, err)
	tm.Tick(t0.Add(time.Minute))

	select {
	case st := <-seen:
		assert.Equal(t, domain.StatusCompleted, st)
	case <-time.After(time.Second):
		t.Fatal("listener did not run")
	}
}

func TestRealClock_CompletesShortSession(t *testing.T) {
	done := make(chan domain.Session, 1)
	tm := timer.New(timer.RealClock(),
		timer.WithInterval(5*time.Millisecond),
		timer.OnComplete(func(s domain.Session) { done <- s }),
	)
	defer tm.Close()

	// 0.0005 minutes is 30ms.
	_, err := tm.Start(0.0005, "Nasi")
	require.NoError(t, err)

	select {
	case s := <-done:
		assert.Equal(t, domain.StatusCompleted, s.Status)
		assert.Equal(t, "selesai", s.RemainingLabel(time.Now()))
	case <-time.After(2 * time.Second):
		t.Fatal("session did not complete")
	}
	assert.False(t, tm.Running())
}
