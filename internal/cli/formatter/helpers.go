package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanTimestamp renders t relative to now: "baru saja", "5 mnt lalu",
// "2 jam lalu", then an absolute local date.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "baru saja"
	case diff < time.Hour:
		return fmt.Sprintf("%d mnt lalu", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d jam lalu", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// HumanDate renders t as "02 Jan 2006 15:04" with Indonesian month names.
func HumanDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d %s", t.Day(), monthAbbr[t.Month()-1], t.Year(), t.Format("15:04"))
}

var monthAbbr = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// RecordTime renders an activity timestamp in loc, or "--" when missing.
func RecordTime(rec domain.ActivityRecord, loc *time.Location) string {
	at, err := rec.Timestamp()
	if err != nil {
		return Dim("--")
	}
	if loc != nil {
		at = at.In(loc)
	}
	return HumanDate(at)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes renders a duration in minutes, keeping one decimal for
// fractional values: "15 mnt", "0.5 mnt".
func FormatMinutes(min float64) string {
	if min <= 0 || math.IsNaN(min) {
		return "0 mnt"
	}
	if min == math.Trunc(min) {
		return fmt.Sprintf("%d mnt", int64(min))
	}
	return fmt.Sprintf("%.1f mnt", min)
}

// FormatPercent renders an effectiveness percentage with its color.
func FormatPercent(pct int) string {
	return EffectivenessStyle(pct).Render(fmt.Sprintf("%d%%", pct))
}
