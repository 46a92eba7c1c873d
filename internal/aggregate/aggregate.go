// Package aggregate groups activity records into fixed calendar buckets and
// computes summary totals for charts. Every function is pure: callers pass a
// snapshot of records and the reference instant.
package aggregate

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
)

// ErrUnknownFilter is returned for a status filter outside the supported set.
var ErrUnknownFilter = errors.New("unknown status filter")

// Result is the output of Aggregate.
type Result struct {
	Buckets []Bucket
	// Skipped counts records left out because they carry no usable timestamp.
	Skipped int
}

// Total returns the sum of all bucket counts.
func (r Result) Total() int {
	n := 0
	for _, b := range r.Buckets {
		n += b.Count
	}
	return n
}

// Max returns the largest bucket count, at least 1, for chart scaling.
func (r Result) Max() int {
	m := 1
	for _, b := range r.Buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// Aggregate counts records matching filter into the buckets of granularity g
// ending at now. Buckets are emitted even when empty.
func Aggregate(records []domain.ActivityRecord, g domain.Granularity, filter domain.StatusFilter, now time.Time) (Result, error) {
	if !validFilter(filter) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFilter, filter)
	}
	buckets, err := BuildBuckets(g, now)
	if err != nil {
		return Result{}, err
	}

	res := Result{Buckets: buckets}
	for _, rec := range records {
		at, err := rec.Timestamp()
		if err != nil {
			res.Skipped++
			continue
		}
		if !filter.Matches(rec.Status) {
			continue
		}
		for i := range res.Buckets {
			if res.Buckets[i].Contains(at) {
				res.Buckets[i].Count++
				break
			}
		}
	}
	return res, nil
}

func validFilter(f domain.StatusFilter) bool {
	switch f {
	case domain.FilterTotal, domain.FilterCompleted, domain.FilterStopped:
		return true
	}
	return false
}

// Summary holds terminal totals within a time range.
type Summary struct {
	Total     int
	Completed int
	Stopped   int
}

// Effectiveness returns EffectivenessPercent for the summary.
func (s Summary) Effectiveness() int {
	return EffectivenessPercent(s.Completed, s.Total)
}

// Summarize counts completed and stopped records whose timestamp lies in
// [start, end]. Processing records are never counted.
func Summarize(records []domain.ActivityRecord, start, end time.Time) Summary {
	var s Summary
	for _, rec := range records {
		at, err := rec.Timestamp()
		if err != nil || at.Before(start) || at.After(end) {
			continue
		}
		switch rec.Status {
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusStopped:
			s.Stopped++
		}
	}
	s.Total = s.Completed + s.Stopped
	return s
}

// EffectivenessPercent returns round-half-up(completed/total*100) clamped to
// [0, 100]. With no attempts at all it reports 100.
func EffectivenessPercent(completed, total int) int {
	if total <= 0 {
		return 100
	}
	if completed <= 0 {
		return 0
	}
	pct := (completed*200 + total) / (2 * total)
	if pct > 100 {
		return 100
	}
	return pct
}

// RangeWindow returns the current-period window used for summary totals: from
// the start of the period containing now up to now itself.
func RangeWindow(g domain.Granularity, now time.Time) (time.Time, time.Time, error) {
	switch g {
	case domain.GranularityDaily:
		return StartOfDay(now), now, nil
	case domain.GranularityWeekly:
		return StartOfWeek(now), now, nil
	case domain.GranularityMonthly:
		return StartOfMonth(now), now, nil
	case domain.GranularityFiveDaySegment:
		return StartOfSegment(now), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownGranularity, g)
	}
}
