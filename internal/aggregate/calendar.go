package aggregate

import (
	"fmt"
	"time"
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// MonthAbbr returns the Indonesian three-letter abbreviation for m.
func MonthAbbr(m time.Month) string {
	return monthAbbr[m-1]
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns local midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns local midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// segmentStarts holds the first day of each five-day segment; the last one runs to month end.
var segmentStarts = [6]int{1, 6, 11, 16, 21, 26}

// SegmentOf returns the segment index (0..5) for a day of month.
func SegmentOf(day int) int {
	for i := len(segmentStarts) - 1; i >= 0; i-- {
		if day >= segmentStarts[i] {
			return i
		}
	}
	return 0
}

// SegmentBounds returns the first and last day of segment seg in t's month,
// clamping the last segment to the month's real length.
func SegmentBounds(t time.Time, seg int) (int, int) {
	first := segmentStarts[seg]
	if seg == len(segmentStarts)-1 {
		return first, DaysInMonth(t)
	}
	return first, segmentStarts[seg+1] - 1
}

// StartOfSegment returns local midnight of the first day of t's five-day segment.
func StartOfSegment(t time.Time) time.Time {
	first, _ := SegmentBounds(t, SegmentOf(t.Day()))
	return time.Date(t.Year(), t.Month(), first, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func segmentKey(t time.Time, seg int) string {
	return fmt.Sprintf("%s-S%d", monthKey(t), seg)
}

func dayLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), MonthAbbr(t.Month()))
}
