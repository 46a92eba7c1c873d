// Package timer runs the countdown of a single sterilization session.
//
// A Timer never keeps a running counter: remaining time is always derived
// from the session's StartedAt and DurationMinutes against the clock, so a
// countdown can be torn down and re-hydrated with SyncFromAbsolute without
// drifting.
package timer

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/google/uuid"
)

// DefaultInterval is the tick granularity used when none is configured.
const DefaultInterval = time.Second

// ErrClosed is returned by operations on a disposed Timer.
var ErrClosed = errors.New("timer closed")

// Listener receives a snapshot of a session after a terminal transition.
type Listener func(domain.Session)

// Option configures a Timer.
type Option func(*Timer)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithOwner stamps sessions started by this timer with owner.
func WithOwner(owner string) Option {
	return func(t *Timer) { t.owner = owner }
}

// OnComplete registers the natural-completion listener.
func OnComplete(fn Listener) Option {
	return func(t *Timer) { t.onComplete = fn }
}

// OnStop registers the listener fired after a successful Stop.
func OnStop(fn Listener) Option {
	return func(t *Timer) { t.onStop = fn }
}

// Timer holds at most one live session and the ticker driving it.
//
// Listeners run on the goroutine that caused the transition and outside the
// timer's lock, so they may call Snapshot, Start or Stop. They must not call
// Close, which waits for the tick goroutine.
type Timer struct {
	clock      Clock
	interval   time.Duration
	owner      string
	onComplete Listener
	onStop     Listener

	mu      sync.Mutex
	session *domain.Session
	ticker  Ticker
	done    chan struct{}
	closed  bool
	wg      sync.WaitGroup
}

// New creates an idle Timer.
func New(clock Clock, opts ...Option) *Timer {
	if clock == nil {
		clock = RealClock()
	}
	t := &Timer{clock: clock, interval: DefaultInterval}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins a new session lasting minutes and acquires the ticker.
func (t *Timer) Start(minutes float64, label string) (domain.Session, error) {
	if !validMinutes(minutes) {
		return domain.Session{}, domain.ErrInvalidDuration
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.Session{}, ErrClosed
	}
	if t.activeLocked() {
		return clone(t.session), domain.ErrSessionAlreadyActive
	}

	now := t.clock.Now()
	t.session = &domain.Session{
		ID:              uuid.New().String(),
		Owner:           t.owner,
		Label:           label,
		DurationMinutes: minutes,
		StartedAt:       now,
		Status:          domain.StatusProcessing,
		CreatedAt:       now,
	}
	t.startTickingLocked()
	return clone(t.session), nil
}

// SyncFromAbsolute re-hydrates a countdown from a persisted session anchor.
// Syncing the session that is already live keeps its ticker, and syncing one
// this timer already finished keeps it finished. Syncing a different one
// while a session is processing is rejected.
func (t *Timer) SyncFromAbsolute(seed domain.Session) (domain.Session, error) {
	if !validMinutes(seed.DurationMinutes) {
		return domain.Session{}, domain.ErrInvalidDuration
	}
	if seed.StartedAt.IsZero() {
		return domain.Session{}, domain.ErrMissingTimestamp
	}
	if seed.Status == "" {
		seed.Status = domain.StatusProcessing
	}
	if seed.Status.IsTerminal() {
		return clone(&seed), domain.ErrNotRunning
	}
	if seed.ID == "" {
		seed.ID = uuid.New().String()
	}
	if seed.Owner == "" {
		seed.Owner = t.owner
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return domain.Session{}, ErrClosed
	}
	if t.activeLocked() {
		if t.session.ID != seed.ID {
			return clone(t.session), domain.ErrSessionAlreadyActive
		}
		return clone(t.session), nil
	}
	if t.session != nil && t.session.ID == seed.ID {
		// Already finished here; the store has not caught up yet.
		return clone(t.session), nil
	}

	seed.FinishedAt = nil
	t.session = &seed
	t.startTickingLocked()
	return clone(t.session), nil
}

// Stop moves the live session to stopped. An unknown or already terminal
// session yields domain.ErrNotRunning and leaves state untouched.
func (t *Timer) Stop(sessionID string) (domain.Session, error) {
	t.mu.Lock()
	s := t.session
	if s == nil || (sessionID != "" && s.ID != sessionID) {
		t.mu.Unlock()
		return domain.Session{}, domain.ErrNotRunning
	}
	if err := s.Finish(domain.StatusStopped, t.clock.Now()); err != nil {
		snap := clone(s)
		t.mu.Unlock()
		return snap, err
	}
	t.stopTickingLocked()
	snap := clone(s)
	listener := t.onStop
	t.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
	return snap, nil
}

// Tick recomputes the countdown at now and completes the session once the
// remaining time reaches zero. The finish time is the instant the countdown
// hit zero, even when the tick arrives late. It is a no-op for idle or
// terminal timers.
func (t *Timer) Tick(now time.Time) {
	t.mu.Lock()
	s := t.session
	if s == nil || s.Status != domain.StatusProcessing || s.Remaining(now) > 0 {
		t.mu.Unlock()
		return
	}
	if err := s.Finish(domain.StatusCompleted, minTime(now, s.EndsAt())); err != nil {
		t.mu.Unlock()
		return
	}
	t.stopTickingLocked()
	snap := clone(s)
	listener := t.onComplete
	t.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
}

// Settle adopts the terminal state another writer recorded for the live
// session. It releases the ticker without notifying listeners and reports
// whether anything changed.
func (t *Timer) Settle(stored domain.Session) bool {
	if !stored.Status.IsTerminal() || stored.FinishedAt == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.activeLocked() || t.session.ID != stored.ID {
		return false
	}
	if err := t.session.Finish(stored.Status, *stored.FinishedAt); err != nil {
		return false
	}
	t.stopTickingLocked()
	return true
}

// Snapshot returns a copy of the current session, if any.
func (t *Timer) Snapshot() (domain.Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return domain.Session{}, false
	}
	return clone(t.session), true
}

// Running reports whether a ticker is currently held.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// Close releases the ticker and waits for the tick goroutine to exit. The
// session snapshot stays readable. Close is idempotent.
func (t *Timer) Close() {
	t.mu.Lock()
	t.closed = true
	t.stopTickingLocked()
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Timer) activeLocked() bool {
	return t.session != nil && t.session.Status == domain.StatusProcessing
}

func (t *Timer) startTickingLocked() {
	t.stopTickingLocked()
	tk := t.clock.NewTicker(t.interval)
	done := make(chan struct{})
	t.ticker = tk
	t.done = done

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case <-done:
				return
			case now := <-tk.C():
				t.Tick(now)
			}
		}
	}()
}

func (t *Timer) stopTickingLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.done)
	t.ticker = nil
	t.done = nil
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func validMinutes(m float64) bool {
	return m > 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}

func clone(s *domain.Session) domain.Session {
	c := *s
	if s.FinishedAt != nil {
		f := *s.FinishedAt
		c.FinishedAt = &f
	}
	return c
}
