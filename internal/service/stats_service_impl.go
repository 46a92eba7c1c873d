package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/steril/internal/aggregate"
	"github.com/alexanderramin/steril/internal/app"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/alexanderramin/steril/internal/repository"
	"github.com/alexanderramin/steril/internal/timer"
)

// recentLimit is the number of history rows shown on the dashboard.
const recentLimit = 5

// LiveSessions resolves an owner's running session for the dashboard.
type LiveSessions interface {
	Resume(ctx context.Context, owner string) (*domain.Session, error)
}

type statsService struct {
	activities repository.ActivityRepo
	live       LiveSessions
	clock      timer.Clock
	loc        *time.Location
	observer   UseCaseObserver
}

// NewStatsService builds the statistics use cases. Calendar boundaries are
// computed in loc; live may be nil when no countdown should be shown.
func NewStatsService(
	activities repository.ActivityRepo,
	live LiveSessions,
	clock timer.Clock,
	loc *time.Location,
	observers ...UseCaseObserver,
) StatsService {
	if clock == nil {
		clock = timer.RealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &statsService{
		activities: activities,
		live:       live,
		clock:      clock,
		loc:        loc,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *statsService) now(req *time.Time) time.Time {
	if req != nil {
		return req.In(s.loc)
	}
	return s.clock.Now().In(s.loc)
}

// resume settles the owner's live session first, so a run that expired
// while nothing was ticking is counted as completed.
func (s *statsService) resume(ctx context.Context, owner string) (*domain.Session, error) {
	if s.live == nil {
		return nil, nil
	}
	live, err := s.live.Resume(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("resuming live session: %w", err)
	}
	return live, nil
}

func (s *statsService) GetStats(ctx context.Context, req app.StatsRequest) (resp *app.StatsResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner": req.Owner, "granularity": string(req.Granularity), "filter": string(req.Filter)}
	defer func() {
		if resp != nil {
			fields["skipped"] = resp.Skipped
		}
		observe(ctx, s.observer, "get-stats", startedAt, fields, err)
	}()

	if req.Owner == "" {
		return nil, fmt.Errorf("owner is required")
	}
	if _, err = s.resume(ctx, req.Owner); err != nil {
		return nil, err
	}
	now := s.now(req.Now)

	records, err := s.activities.ListByOwner(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	res, err := aggregate.Aggregate(records, req.Granularity, req.Filter, now)
	if err != nil {
		return nil, err
	}
	start, end, err := aggregate.RangeWindow(req.Granularity, now)
	if err != nil {
		return nil, err
	}
	summary := aggregate.Summarize(records, start, end)

	return &app.StatsResponse{
		GeneratedAt:   now,
		Granularity:   req.Granularity,
		Filter:        req.Filter,
		Buckets:       res.Buckets,
		Skipped:       res.Skipped,
		MaxCount:      res.Max(),
		WindowStart:   start,
		WindowEnd:     end,
		Summary:       summary,
		Effectiveness: summary.Effectiveness(),
	}, nil
}

func (s *statsService) GetDashboard(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "get-dashboard", startedAt, map[string]any{"owner": req.Owner}, err)
	}()

	if req.Owner == "" {
		return nil, fmt.Errorf("owner is required")
	}

	live, err := s.resume(ctx, req.Owner)
	if err != nil {
		return nil, err
	}

	now := s.now(req.Now)
	records, err := s.activities.ListByOwner(ctx, req.Owner)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	dayStart := aggregate.StartOfDay(now)
	resp = &app.DashboardResponse{
		GeneratedAt: now,
		Today:       aggregate.Summarize(records, dayStart, now),
	}
	resp.Effectiveness = resp.Today.Effectiveness()
	for _, rec := range records {
		if rec.Status == domain.StatusProcessing {
			resp.ActiveCount++
		}
		at, tsErr := rec.Timestamp()
		if tsErr == nil && !at.Before(dayStart) && !at.After(now) {
			resp.TodayCount++
		}
	}

	monthly, err := aggregate.Aggregate(records, domain.GranularityMonthly, domain.FilterTotal, now)
	if err != nil {
		return nil, err
	}
	resp.Monthly = monthly.Buckets

	if live != nil {
		resp.Live = &app.LiveSession{
			Session:        *live,
			Food:           domain.MatchFood(live.Label),
			RemainingMs:    live.RemainingMs(now),
			ProgressPct:    live.ProgressPercent(now),
			RemainingLabel: live.RemainingLabel(now),
		}
	}

	if resp.Recent, err = s.activities.ListRecent(ctx, req.Owner, recentLimit); err != nil {
		return nil, fmt.Errorf("loading recent activities: %w", err)
	}
	return resp, nil
}

func (s *statsService) GetOverview(ctx context.Context, req app.OverviewRequest) (resp *app.OverviewResponse, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "get-overview", startedAt, nil, err)
	}()

	now := s.now(req.Now)
	counts, err := s.activities.CountByOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting activities: %w", err)
	}
	if s.live != nil {
		resumed := false
		for _, c := range counts {
			if c.Processing == 0 {
				continue
			}
			if _, err = s.resume(ctx, c.Owner); err != nil {
				return nil, err
			}
			resumed = true
		}
		if resumed {
			if counts, err = s.activities.CountByOwner(ctx); err != nil {
				return nil, fmt.Errorf("counting activities: %w", err)
			}
		}
	}
	records, err := s.activities.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}

	resp = &app.OverviewResponse{GeneratedAt: now}
	for _, c := range counts {
		resp.Owners = append(resp.Owners, app.OwnerSummary{
			Owner:         c.Owner,
			Total:         c.Total,
			Completed:     c.Completed,
			Stopped:       c.Stopped,
			Processing:    c.Processing,
			Effectiveness: aggregate.EffectivenessPercent(c.Completed, c.Completed+c.Stopped),
		})
		resp.Totals.Completed += c.Completed
		resp.Totals.Stopped += c.Stopped
	}
	resp.Totals.Total = resp.Totals.Completed + resp.Totals.Stopped
	resp.Effectiveness = resp.Totals.Effectiveness()

	segments, err := aggregate.Aggregate(records, domain.GranularityFiveDaySegment, domain.FilterTotal, now)
	if err != nil {
		return nil, err
	}
	resp.Segments = segments.Buckets
	resp.Skipped = segments.Skipped
	return resp, nil
}
