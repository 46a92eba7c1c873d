package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/steril/internal/aggregate"
	"github.com/alexanderramin/steril/internal/app"
	"github.com/alexanderramin/steril/internal/domain"
)

const chartBarWidth = 30

var granularityTitles = map[domain.Granularity]string{
	domain.GranularityDaily:          "Harian",
	domain.GranularityWeekly:         "Mingguan",
	domain.GranularityMonthly:        "Bulanan",
	domain.GranularityFiveDaySegment: "Per 5 hari",
}

var filterTitles = map[domain.StatusFilter]string{
	domain.FilterTotal:     "total",
	domain.FilterCompleted: "berhasil",
	domain.FilterStopped:   "gagal",
}

// RenderChart renders one line per bucket: label, bar scaled to scale, count.
func RenderChart(buckets []aggregate.Bucket, scale int) string {
	labelWidth := 0
	for _, bk := range buckets {
		labelWidth = max(labelWidth, len([]rune(bk.Label)))
	}
	var b strings.Builder
	for _, bk := range buckets {
		pad := strings.Repeat(" ", labelWidth-len([]rune(bk.Label)))
		b.WriteString(fmt.Sprintf("%s%s  %s %d\n", StyleFg.Render(bk.Label), pad, RenderBar(bk.Count, scale, chartBarWidth), bk.Count))
	}
	return b.String()
}

// FormatSummary renders "Total 3 · Berhasil 2 · Gagal 1 · Efektivitas 67%".
func FormatSummary(s aggregate.Summary, effectiveness int) string {
	return fmt.Sprintf("%s %d %s %s %d %s %s %d %s %s %s",
		Dim("Total"), s.Total, Dim("·"),
		Dim("Berhasil"), s.Completed, Dim("·"),
		Dim("Gagal"), s.Stopped, Dim("·"),
		Dim("Efektivitas"), FormatPercent(effectiveness))
}

// FormatStats renders a stats response as a bucket chart plus the summary
// of the current period.
func FormatStats(resp *app.StatsResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s · %s", granularityTitles[resp.Granularity], filterTitles[resp.Filter])))
	b.WriteString("\n")
	b.WriteString(RenderChart(resp.Buckets, resp.MaxCount))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Periode ini (%s – %s)", HumanDate(resp.WindowStart), HumanDate(resp.WindowEnd))) + "\n")
	b.WriteString(FormatSummary(resp.Summary, resp.Effectiveness) + "\n")
	if resp.Skipped > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d aktivitas tanpa waktu tidak dihitung", resp.Skipped)) + "\n")
	}
	return RenderBox("Statistik", b.String())
}

// FormatDashboard renders the home screen: today's numbers, the live
// session, the monthly series and the latest history.
func FormatDashboard(resp *app.DashboardResponse, loc *time.Location) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		Dim("Aktivitas hari ini"), Bold(fmt.Sprint(resp.TodayCount)),
		Dim("Sedang berjalan"), Bold(fmt.Sprint(resp.ActiveCount)),
		Dim("Efektivitas"), FormatPercent(resp.Effectiveness)))

	if live := resp.Live; live != nil {
		b.WriteString("\n" + Header("Sedang berjalan") + "\n")
		b.WriteString(fmt.Sprintf("%s %s\n", Bold(live.Food.Emoji+" "+live.Session.Label), StatusPill(live.Session.Status)))
		b.WriteString(RenderProgress(live.ProgressPct/100, sessionProgressBarWidth) + "  " + live.RemainingLabel + "\n")
	}

	b.WriteString("\n" + Header("Bulanan") + "\n")
	maxCount := 1
	for _, bk := range resp.Monthly {
		maxCount = max(maxCount, bk.Count)
	}
	b.WriteString(RenderChart(resp.Monthly, maxCount))

	if len(resp.Recent) > 0 {
		b.WriteString("\n" + Header("Terakhir") + "\n")
		b.WriteString(FormatActivityTable(resp.Recent, loc))
	}
	return RenderBox("Beranda", b.String())
}

// FormatActivityTable renders activity records newest first as given.
func FormatActivityTable(recs []domain.ActivityRecord, loc *time.Location) string {
	headers := []string{"ID", "MAKANAN", "STATUS", "WAKTU"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			TruncID(r.ID),
			FoodTitle(r.Label),
			StatusPill(r.Status),
			RecordTime(r, loc),
		})
	}
	return RenderTable(headers, rows)
}

// FormatOverview renders per-owner totals and the segment series across
// every owner.
func FormatOverview(resp *app.OverviewResponse) string {
	var b strings.Builder

	headers := []string{"PENGGUNA", "TOTAL", "BERHASIL", "GAGAL", "PROSES", "EFEKTIVITAS"}
	rows := make([][]string, 0, len(resp.Owners))
	for _, o := range resp.Owners {
		rows = append(rows, []string{
			Bold(o.Owner),
			fmt.Sprint(o.Total),
			StyleGreen.Render(fmt.Sprint(o.Completed)),
			StyleRed.Render(fmt.Sprint(o.Stopped)),
			StyleYellow.Render(fmt.Sprint(o.Processing)),
			FormatPercent(o.Effectiveness),
		})
	}
	if len(rows) == 0 {
		b.WriteString(Dim("Belum ada aktivitas.") + "\n")
	} else {
		b.WriteString(RenderTable(headers, rows))
	}
	b.WriteString("\n" + FormatSummary(resp.Totals, resp.Effectiveness) + "\n")

	b.WriteString("\n" + Header("Per 5 hari") + "\n")
	maxCount := 1
	for _, bk := range resp.Segments {
		maxCount = max(maxCount, bk.Count)
	}
	b.WriteString(RenderChart(resp.Segments, maxCount))
	if resp.Skipped > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d aktivitas tanpa waktu tidak dihitung", resp.Skipped)) + "\n")
	}
	return RenderBox("Admin", b.String())
}
