package app

import (
	"time"

	"github.com/alexanderramin/steril/internal/aggregate"
	"github.com/alexanderramin/steril/internal/domain"
)

type StatsRequest struct {
	Owner       string
	Granularity domain.Granularity
	Filter      domain.StatusFilter
	Now         *time.Time
}

func NewStatsRequest(owner string) StatsRequest {
	return StatsRequest{
		Owner:       owner,
		Granularity: domain.GranularityDaily,
		Filter:      domain.FilterTotal,
	}
}

type StatsResponse struct {
	GeneratedAt   time.Time
	Granularity   domain.Granularity
	Filter        domain.StatusFilter
	Buckets       []aggregate.Bucket
	Skipped       int
	MaxCount      int
	WindowStart   time.Time
	WindowEnd     time.Time
	Summary       aggregate.Summary
	Effectiveness int
}

type DashboardRequest struct {
	Owner string
	Now   *time.Time
}

// LiveSession is a running or just-finished session with its derived
// countdown values at GeneratedAt.
type LiveSession struct {
	Session        domain.Session
	Food           domain.Food
	RemainingMs    int64
	ProgressPct    float64
	RemainingLabel string
}

type DashboardResponse struct {
	GeneratedAt   time.Time
	TodayCount    int
	ActiveCount   int
	Today         aggregate.Summary
	Effectiveness int
	Monthly       []aggregate.Bucket
	Live          *LiveSession
	Recent        []domain.ActivityRecord
}

type OverviewRequest struct {
	Now *time.Time
}

type OwnerSummary struct {
	Owner         string
	Total         int
	Completed     int
	Stopped       int
	Processing    int
	Effectiveness int
}

type OverviewResponse struct {
	GeneratedAt   time.Time
	Owners        []OwnerSummary
	Totals        aggregate.Summary
	Effectiveness int
	Segments      []aggregate.Bucket
	Skipped       int
}

type ImportResult struct {
	Read     int
	Imported int
	// Duplicates counts entries whose ID was already stored.
	Duplicates int
	// Untimed counts imported entries with no usable timestamp; they are
	// stored but never bucketed.
	Untimed int
}
