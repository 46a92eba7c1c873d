package service

import (
	"context"
	"io"

	"github.com/alexanderramin/steril/internal/app"
	"github.com/alexanderramin/steril/internal/domain"
)

// SterilizationService owns the live countdown of every owner. It is created
// once per process and must be closed to release the timers' tickers.
type SterilizationService interface {
	Start(ctx context.Context, owner string, minutes float64, label string) (*domain.Session, error)
	// Resume re-hydrates the owner's processing session from the store and
	// ticks it once. It returns nil, nil when nothing is processing.
	Resume(ctx context.Context, owner string) (*domain.Session, error)
	// Stop stops the owner's processing session. sessionID may be empty to
	// mean "whatever is running". A terminal or unknown session yields
	// domain.ErrNotRunning together with the stored session when known.
	Stop(ctx context.Context, owner, sessionID string) (*domain.Session, error)
	// Current returns the owner's live snapshot without touching the store.
	Current(owner string) (*domain.Session, bool)
	Close()
}

type ActivityService interface {
	ListRecent(ctx context.Context, owner string, limit int) ([]domain.ActivityRecord, error)
	Import(ctx context.Context, owner string, r io.Reader) (*app.ImportResult, error)
}

type StatsService interface {
	GetStats(ctx context.Context, req app.StatsRequest) (*app.StatsResponse, error)
	GetDashboard(ctx context.Context, req app.DashboardRequest) (*app.DashboardResponse, error)
	GetOverview(ctx context.Context, req app.OverviewRequest) (*app.OverviewResponse, error)
}
