package aggregate

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
)

// Window sizes per granularity.
const (
	DailyBuckets   = 7
	WeeklyBuckets  = 8
	MonthlyBuckets = 4
	SegmentBuckets = 6
)

// ErrUnknownGranularity is returned for a granularity outside the supported set.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Bucket is one fixed time window on a chart axis.
type Bucket struct {
	Key               string
	Label             string
	RangeStart        time.Time
	RangeEndInclusive time.Time
	Count             int

	// end is the exclusive upper bound; RangeEndInclusive is end minus 1ms.
	end time.Time
}

// Contains reports whether t falls inside the bucket.
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.RangeStart) && t.Before(b.end)
}

func newBucket(key, label string, start, end time.Time) Bucket {
	return Bucket{
		Key:               key,
		Label:             label,
		RangeStart:        start,
		RangeEndInclusive: end.Add(-time.Millisecond),
		end:               end,
	}
}

// BuildBuckets returns the empty, ordered, contiguous buckets covering the
// window that ends with the period containing now. Calendar boundaries use
// now's location.
func BuildBuckets(g domain.Granularity, now time.Time) ([]Bucket, error) {
	switch g {
	case domain.GranularityDaily:
		return dailyBuckets(now), nil
	case domain.GranularityWeekly:
		return weeklyBuckets(now), nil
	case domain.GranularityMonthly:
		return monthlyBuckets(now), nil
	case domain.GranularityFiveDaySegment:
		return segmentBuckets(now), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGranularity, g)
	}
}

func dailyBuckets(now time.Time) []Bucket {
	today := StartOfDay(now)
	out := make([]Bucket, 0, DailyBuckets)
	for i := DailyBuckets - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)
		out = append(out, newBucket(dayKey(start), dayLabel(start), start, end))
	}
	return out
}

func weeklyBuckets(now time.Time) []Bucket {
	monday := StartOfWeek(now)
	out := make([]Bucket, 0, WeeklyBuckets)
	for i := WeeklyBuckets - 1; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 7)
		last := start.AddDate(0, 0, 6)
		label := dayLabel(start) + " - " + dayLabel(last)
		out = append(out, newBucket(isoWeekKey(start), label, start, end))
	}
	return out
}

func monthlyBuckets(now time.Time) []Bucket {
	first := StartOfMonth(now)
	out := make([]Bucket, 0, MonthlyBuckets)
	for i := MonthlyBuckets - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		label := fmt.Sprintf("%s %d", MonthAbbr(start.Month()), start.Year())
		out = append(out, newBucket(monthKey(start), label, start, end))
	}
	return out
}

func segmentBuckets(now time.Time) []Bucket {
	month := StartOfMonth(now)
	nextMonth := month.AddDate(0, 1, 0)
	out := make([]Bucket, 0, SegmentBuckets)
	for seg := 0; seg < SegmentBuckets; seg++ {
		firstDay, lastDay := SegmentBounds(month, seg)
		start := time.Date(month.Year(), month.Month(), firstDay, 0, 0, 0, 0, month.Location())
		end := nextMonth
		if seg < SegmentBuckets-1 {
			end = time.Date(month.Year(), month.Month(), lastDay+1, 0, 0, 0, 0, month.Location())
		}
		label := fmt.Sprintf("%d–%d %s", firstDay, lastDay, MonthAbbr(month.Month()))
		out = append(out, newBucket(segmentKey(month, seg), label, start, end))
	}
	return out
}
