package testutil

import (
	"time"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/google/uuid"
)

// DefaultOwner is the owner assigned by fixtures unless overridden.
const DefaultOwner = "tester"

// Session options
type SessionOption func(*domain.Session)

func WithOwner(owner string) SessionOption {
	return func(s *domain.Session) { s.Owner = owner }
}

func WithLabel(label string) SessionOption {
	return func(s *domain.Session) { s.Label = label }
}

func WithStartedAt(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.StartedAt = t
		s.CreatedAt = t
	}
}

// WithFinished marks the session terminal at the given instant.
func WithFinished(status domain.SessionStatus, at time.Time) SessionOption {
	return func(s *domain.Session) {
		s.Status = status
		s.FinishedAt = &at
	}
}

// NewTestSession builds a processing session lasting minutes that started
// one minute before the current time.
func NewTestSession(minutes float64, opts ...SessionOption) *domain.Session {
	start := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
	s := &domain.Session{
		ID:              uuid.New().String(),
		Owner:           DefaultOwner,
		Label:           "Nasi",
		DurationMinutes: minutes,
		StartedAt:       start,
		Status:          domain.StatusProcessing,
		CreatedAt:       start,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activity options
type ActivityOption func(*domain.ActivityRecord)

func WithActivityOwner(owner string) ActivityOption {
	return func(r *domain.ActivityRecord) { r.Owner = owner }
}

func WithActivityLabel(label string) ActivityOption {
	return func(r *domain.ActivityRecord) { r.Label = label }
}

func WithStart(t time.Time) ActivityOption {
	return func(r *domain.ActivityRecord) { r.StartedAt = &t }
}

// WithGenericTime sets the fallback timestamp.
func WithGenericTime(t time.Time) ActivityOption {
	return func(r *domain.ActivityRecord) { r.At = &t }
}

// WithoutTimestamps clears every timestamp so the record cannot be bucketed.
func WithoutTimestamps() ActivityOption {
	return func(r *domain.ActivityRecord) {
		r.StartedAt = nil
		r.FinishedAt = nil
		r.At = nil
	}
}

// NewTestActivity builds a record with the given status. Terminal records
// carry a finish timestamp at `at`; processing ones a start timestamp.
func NewTestActivity(status domain.SessionStatus, at time.Time, opts ...ActivityOption) *domain.ActivityRecord {
	at = at.Truncate(time.Millisecond)
	r := &domain.ActivityRecord{
		ID:     uuid.New().String(),
		Owner:  DefaultOwner,
		Label:  "Nasi",
		Status: status,
	}
	if status.IsTerminal() {
		r.FinishedAt = &at
	} else {
		r.StartedAt = &at
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
