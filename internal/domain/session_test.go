package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)

func newProcessing(minutes float64) *Session {
	return &Session{ID: "s1", DurationMinutes: minutes, StartedAt: testNow, Status: StatusProcessing}
}

func TestSession_RemainingNeverNegative(t *testing.T) {
	s := newProcessing(5)
	assert.Equal(t, int64(5*60_000), s.RemainingMs(testNow))
	assert.Equal(t, int64(500), s.RemainingMs(testNow.Add(5*time.Minute-500*time.Millisecond)))
	assert.Equal(t, int64(0), s.RemainingMs(testNow.Add(5*time.Minute)))
	assert.Equal(t, int64(0), s.RemainingMs(testNow.Add(time.Hour)))
}

func TestSession_RemainingIsMonotonic(t *testing.T) {
	s := newProcessing(2.5)
	prev := s.RemainingMs(testNow.Add(-time.Second))
	for step := time.Duration(0); step <= 3*time.Minute; step += 7 * time.Second {
		cur := s.RemainingMs(testNow.Add(step))
		assert.LessOrEqual(t, cur, prev, "step=%s", step)
		prev = cur
	}
}

func TestSession_ElapsedBeforeStartIsZero(t *testing.T) {
	s := newProcessing(1)
	assert.Equal(t, time.Duration(0), s.Elapsed(testNow.Add(-time.Minute)))
	assert.Equal(t, int64(60_000), s.RemainingMs(testNow.Add(-time.Minute)))
}

func TestSession_DecimalDuration(t *testing.T) {
	s := newProcessing(0.5)
	assert.Equal(t, 30*time.Second, s.Duration())
	assert.Equal(t, testNow.Add(30*time.Second), s.EndsAt())
}

func TestSession_ProgressPercentClamped(t *testing.T) {
	s := newProcessing(10)
	assert.InDelta(t, 0, s.ProgressPercent(testNow.Add(-time.Minute)), 0.0001)
	assert.InDelta(t, 50, s.ProgressPercent(testNow.Add(5*time.Minute)), 0.0001)
	assert.InDelta(t, 100, s.ProgressPercent(testNow.Add(20*time.Minute)), 0.0001)

	zero := &Session{StartedAt: testNow}
	assert.Equal(t, float64(0), zero.ProgressPercent(testNow.Add(time.Minute)))
}

func TestSession_DerivedValuesFreezeWhenFinished(t *testing.T) {
	s := newProcessing(10)
	require.NoError(t, s.Finish(StatusStopped, testNow.Add(4*time.Minute)))

	later := testNow.Add(8 * time.Minute)
	assert.Equal(t, 6*time.Minute, s.Remaining(later))
	assert.Equal(t, 4*time.Minute, s.Elapsed(later))
	assert.InDelta(t, 40, s.ProgressPercent(later), 0.0001)
}

func TestSession_FinishOnlyOnce(t *testing.T) {
	s := newProcessing(1)
	require.NoError(t, s.Finish(StatusCompleted, testNow.Add(time.Minute)))
	assert.Equal(t, StatusCompleted, s.Status)

	err := s.Finish(StatusStopped, testNow.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Equal(t, StatusCompleted, s.Status, "terminal status must not change")
	assert.Equal(t, testNow.Add(time.Minute), *s.FinishedAt)
}

func TestSession_FinishRejectsProcessing(t *testing.T) {
	s := newProcessing(1)
	err := s.Finish(StatusProcessing, testNow)
	require.Error(t, err)
	assert.Equal(t, StatusProcessing, s.Status)
	assert.Nil(t, s.FinishedAt)
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{4*time.Minute + 59*time.Second, "sisa 4 mnt 59 dtk"},
		{time.Minute, "sisa 1 mnt 0 dtk"},
		{59 * time.Second, "sisa 59 dtk"},
		{1500 * time.Millisecond, "sisa 1 dtk"},
		{500 * time.Millisecond, "selesai"},
		{0, "selesai"},
		{-time.Second, "selesai"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRemaining(tc.remaining), "remaining=%s", tc.remaining)
	}
}

func TestSession_RemainingLabelByStatus(t *testing.T) {
	s := newProcessing(5)
	assert.Equal(t, "sisa 3 mnt 30 dtk", s.RemainingLabel(testNow.Add(90*time.Second)))

	s.Status = StatusCompleted
	assert.Equal(t, "selesai", s.RemainingLabel(testNow))

	s.Status = StatusStopped
	assert.Equal(t, "dihentikan", s.RemainingLabel(testNow))
}

func TestSession_Activity(t *testing.T) {
	s := newProcessing(5)
	s.Owner = "u1"
	s.Label = "Ayam"
	rec := s.Activity()
	assert.Equal(t, "s1", rec.ID)
	assert.Equal(t, StatusProcessing, rec.Status)
	require.NotNil(t, rec.StartedAt)
	assert.Nil(t, rec.FinishedAt)

	require.NoError(t, s.Finish(StatusCompleted, testNow.Add(5*time.Minute)))
	rec = s.Activity()
	require.NotNil(t, rec.FinishedAt)
	at, err := rec.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(5*time.Minute), at)
}
