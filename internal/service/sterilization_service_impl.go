package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/alexanderramin/steril/internal/repository"
	"github.com/alexanderramin/steril/internal/timer"
)

// ErrServiceClosed is returned once Close has run.
var ErrServiceClosed = errors.New("sterilization service closed")

type sterilizationService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clock    timer.Clock
	interval time.Duration
	observer UseCaseObserver

	mu     sync.Mutex
	timers map[string]*timer.Timer
	closed bool
}

func NewSterilizationService(
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	clock timer.Clock,
	interval time.Duration,
	observers ...UseCaseObserver,
) SterilizationService {
	if clock == nil {
		clock = timer.RealClock()
	}
	return &sterilizationService{
		sessions: sessions,
		uow:      uow,
		clock:    clock,
		interval: interval,
		observer: useCaseObserverOrNoop(observers),
		timers:   make(map[string]*timer.Timer),
	}
}

func (s *sterilizationService) Start(ctx context.Context, owner string, minutes float64, label string) (sess *domain.Session, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner": owner, "minutes": minutes}
	defer func() {
		if sess != nil {
			fields["session"] = sess.ID
		}
		observe(ctx, s.observer, "start-session", startedAt, fields, err)
	}()

	if owner == "" {
		return nil, fmt.Errorf("owner is required")
	}
	if minutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	active, err := s.Resume(ctx, owner)
	if err != nil {
		return nil, err
	}
	if active != nil && active.Status == domain.StatusProcessing {
		return active, domain.ErrSessionAlreadyActive
	}

	tm, err := s.timerFor(owner)
	if err != nil {
		return nil, err
	}
	live, err := tm.Start(minutes, label)
	if err != nil {
		if errors.Is(err, domain.ErrSessionAlreadyActive) {
			return &live, err
		}
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSessionRepo(tx).Create(ctx, &live); err != nil {
			return err
		}
		rec := live.Activity()
		return repository.NewSQLiteActivityRepo(tx).Create(ctx, &rec)
	})
	if err != nil {
		// The countdown must not outlive a session the store never saw.
		s.dropTimer(owner, tm)
		if errors.Is(err, domain.ErrSessionAlreadyActive) {
			// Another process started a session between Resume and the insert.
			if winner, getErr := s.sessions.GetActive(ctx, owner); getErr == nil {
				return winner, err
			}
		}
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return &live, nil
}

func (s *sterilizationService) Resume(ctx context.Context, owner string) (*domain.Session, error) {
	stored, err := s.sessions.GetActive(ctx, owner)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.settleStale(ctx, owner)
	}
	if err != nil {
		return nil, fmt.Errorf("loading active session: %w", err)
	}

	tm, err := s.timerFor(owner)
	if err != nil {
		return nil, err
	}
	if _, err := tm.SyncFromAbsolute(*stored); err != nil {
		if !errors.Is(err, domain.ErrSessionAlreadyActive) {
			return nil, fmt.Errorf("resuming session %s: %w", stored.ID, err)
		}
		// The timer holds a countdown the store does not know about.
		s.dropTimer(owner, tm)
		if tm, err = s.timerFor(owner); err != nil {
			return nil, err
		}
		if _, err := tm.SyncFromAbsolute(*stored); err != nil {
			return nil, fmt.Errorf("resuming session %s: %w", stored.ID, err)
		}
	}

	// Catch up on a completion that happened while no timer was running.
	tm.Tick(s.clock.Now())

	live, _ := tm.Snapshot()
	return &live, nil
}

func (s *sterilizationService) Stop(ctx context.Context, owner, sessionID string) (sess *domain.Session, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner": owner, "session": sessionID}
	defer func() {
		observe(ctx, s.observer, "stop-session", startedAt, fields, err)
	}()

	live, err := s.Resume(ctx, owner)
	if err != nil {
		return nil, err
	}
	switch {
	case live == nil, sessionID != "" && live.ID != sessionID:
		return s.storedOrNil(ctx, owner, sessionID), domain.ErrNotRunning
	case live.Status != domain.StatusProcessing:
		// Resume observed the natural completion.
		return live, domain.ErrNotRunning
	}

	tm, err := s.timerFor(owner)
	if err != nil {
		return nil, err
	}
	stopped, err := tm.Stop(live.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotRunning) {
			return &stopped, err
		}
		return nil, err
	}

	if err := s.persistFinish(ctx, stopped); err != nil {
		return nil, fmt.Errorf("saving stopped session: %w", err)
	}
	return &stopped, nil
}

func (s *sterilizationService) Current(owner string) (*domain.Session, bool) {
	s.mu.Lock()
	tm, ok := s.timers[owner]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	snap, ok := tm.Snapshot()
	if !ok {
		return nil, false
	}
	return &snap, true
}

func (s *sterilizationService) Close() {
	s.mu.Lock()
	s.closed = true
	timers := make([]*timer.Timer, 0, len(s.timers))
	for _, tm := range s.timers {
		timers = append(timers, tm)
	}
	s.mu.Unlock()

	for _, tm := range timers {
		tm.Close()
	}
}

func (s *sterilizationService) timerFor(owner string) (*timer.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrServiceClosed
	}
	if tm, ok := s.timers[owner]; ok {
		return tm, nil
	}
	tm := timer.New(s.clock,
		timer.WithOwner(owner),
		timer.WithInterval(s.interval),
		timer.OnComplete(s.onComplete),
	)
	s.timers[owner] = tm
	return tm, nil
}

// settleStale reconciles the owner's timer when the store has no processing
// session: another process stopped or completed it, or the row is gone.
func (s *sterilizationService) settleStale(ctx context.Context, owner string) error {
	s.mu.Lock()
	tm, ok := s.timers[owner]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	snap, ok := tm.Snapshot()
	if !ok || snap.Status != domain.StatusProcessing {
		return nil
	}

	stored, err := s.sessions.GetByID(ctx, snap.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.dropTimer(owner, tm)
		return nil
	case err != nil:
		return fmt.Errorf("loading session %s: %w", snap.ID, err)
	}
	if !tm.Settle(*stored) {
		s.dropTimer(owner, tm)
	}
	return nil
}

func (s *sterilizationService) dropTimer(owner string, tm *timer.Timer) {
	s.mu.Lock()
	if s.timers[owner] == tm {
		delete(s.timers, owner)
	}
	s.mu.Unlock()
	tm.Close()
}

// onComplete runs on the timer's tick goroutine or inside Resume.
func (s *sterilizationService) onComplete(sess domain.Session) {
	ctx := context.Background()
	startedAt := time.Now()
	err := s.persistFinish(ctx, sess)
	if errors.Is(err, domain.ErrNotRunning) {
		// Already finished by another process sharing the store.
		err = nil
	}
	observe(ctx, s.observer, "complete-session", startedAt,
		map[string]any{"owner": sess.Owner, "session": sess.ID}, err)
}

func (s *sterilizationService) persistFinish(ctx context.Context, sess domain.Session) error {
	if sess.FinishedAt == nil {
		return fmt.Errorf("session %s has no finish time", sess.ID)
	}
	at := *sess.FinishedAt
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSessionRepo(tx).Finish(ctx, sess.ID, sess.Status, at); err != nil {
			return err
		}
		err := repository.NewSQLiteActivityRepo(tx).Finish(ctx, sess.ID, sess.Status, at)
		if errors.Is(err, domain.ErrNotRunning) {
			// History rows may be missing for sessions created before activities existed.
			return nil
		}
		return err
	})
}

func (s *sterilizationService) storedOrNil(ctx context.Context, owner, sessionID string) *domain.Session {
	if sessionID == "" {
		return nil
	}
	stored, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil || stored.Owner != owner {
		return nil
	}
	return stored
}
