package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steril/internal/domain"
)

const sessionProgressBarWidth = 24

// FoodTitle renders the emoji and label of the food a session label
// resolves to, keeping the operator's own wording.
func FoodTitle(label string) string {
	food := domain.MatchFood(label)
	text := strings.TrimSpace(label)
	if text == "" {
		text = food.Label
	}
	return food.Emoji + " " + text
}

// FormatSession renders a session card as of now. Times are shown in loc.
func FormatSession(sess *domain.Session, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder

	b.WriteString(Bold(FoodTitle(sess.Label)) + "  " + StatusPill(sess.Status) + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Durasi :"), FormatMinutes(sess.DurationMinutes)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Mulai  :"), HumanDate(sess.StartedAt.In(loc))))
	if sess.FinishedAt != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Akhir  :"), HumanDate(sess.FinishedAt.In(loc))))
	}
	b.WriteString("\n")
	b.WriteString(RenderProgress(sess.ProgressPercent(now)/100, sessionProgressBarWidth))
	b.WriteString("  " + StatusStyle(sess.Status).Render(sess.RemainingLabel(now)) + "\n")
	b.WriteString(Dim("ID " + sess.ID))

	return RenderBox("Sterilisasi", b.String())
}

// FormatNoSession is shown when the owner has nothing running.
func FormatNoSession() string {
	return Dim("Tidak ada sterilisasi yang berjalan.")
}
