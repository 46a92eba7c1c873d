package domain

import (
	"fmt"
	"time"
)

// Session is one timed sterilization run. StartedAt and DurationMinutes are the
// only source of truth for the countdown; every display value is derived from
// them and a reference instant.
type Session struct {
	ID              string
	Owner           string
	Label           string
	DurationMinutes float64
	StartedAt       time.Time
	Status          SessionStatus
	FinishedAt      *time.Time
	CreatedAt       time.Time
}

// Duration returns the planned run length.
func (s *Session) Duration() time.Duration {
	return time.Duration(s.DurationMinutes * float64(time.Minute))
}

// EndsAt returns the instant the countdown reaches zero.
func (s *Session) EndsAt() time.Time {
	return s.StartedAt.Add(s.Duration())
}

// reference clamps now to FinishedAt so derived values freeze once terminal.
func (s *Session) reference(now time.Time) time.Time {
	if s.FinishedAt != nil && now.After(*s.FinishedAt) {
		return *s.FinishedAt
	}
	return now
}

// Elapsed returns the time since StartedAt, never negative.
func (s *Session) Elapsed(now time.Time) time.Duration {
	d := s.reference(now).Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Remaining returns max(0, duration - elapsed).
func (s *Session) Remaining(now time.Time) time.Duration {
	r := s.Duration() - s.Elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

// ElapsedMs and RemainingMs expose the derived values in epoch-millisecond units.
func (s *Session) ElapsedMs(now time.Time) int64   { return s.Elapsed(now).Milliseconds() }
func (s *Session) RemainingMs(now time.Time) int64 { return s.Remaining(now).Milliseconds() }

// ProgressPercent returns elapsed/duration as a percentage clamped to [0, 100].
func (s *Session) ProgressPercent(now time.Time) float64 {
	total := s.Duration()
	if total <= 0 {
		return 0
	}
	pct := float64(s.Elapsed(now)) / float64(total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// RemainingLabel renders the countdown the way the appliance UI shows it.
func (s *Session) RemainingLabel(now time.Time) string {
	switch s.Status {
	case StatusCompleted:
		return "selesai"
	case StatusStopped:
		return "dihentikan"
	}
	return FormatRemaining(s.Remaining(now))
}

// FormatRemaining formats a remaining duration as "sisa {m} mnt {s} dtk",
// "sisa {s} dtk" under a minute, or "selesai" once nothing is left.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	mins := int64(remaining / time.Minute)
	secs := int64((remaining % time.Minute) / time.Second)
	if mins <= 0 && secs <= 0 {
		return "selesai"
	}
	if mins <= 0 {
		return fmt.Sprintf("sisa %d dtk", secs)
	}
	return fmt.Sprintf("sisa %d mnt %d dtk", mins, secs)
}

// Finish moves a processing session into a terminal status exactly once.
func (s *Session) Finish(status SessionStatus, at time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("cannot finish session with status %q", status)
	}
	if s.Status != StatusProcessing {
		return ErrNotRunning
	}
	s.Status = status
	s.FinishedAt = &at
	return nil
}

// Activity converts the session into the activity record counted by statistics.
func (s *Session) Activity() ActivityRecord {
	started := s.StartedAt
	rec := ActivityRecord{
		ID:        s.ID,
		Owner:     s.Owner,
		Label:     s.Label,
		Status:    s.Status,
		StartedAt: &started,
	}
	if s.FinishedAt != nil {
		finished := *s.FinishedAt
		rec.FinishedAt = &finished
	}
	return rec
}
