package app

import (
	"context"
	"io"

	"github.com/alexanderramin/steril/internal/domain"
)

type StartSessionUseCase interface {
	Start(ctx context.Context, owner string, minutes float64, label string) (*domain.Session, error)
}

type StopSessionUseCase interface {
	Stop(ctx context.Context, owner, sessionID string) (*domain.Session, error)
}

type StatsUseCase interface {
	GetStats(ctx context.Context, req StatsRequest) (*StatsResponse, error)
}

type DashboardUseCase interface {
	GetDashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type OverviewUseCase interface {
	GetOverview(ctx context.Context, req OverviewRequest) (*OverviewResponse, error)
}

type ImportActivitiesUseCase interface {
	Import(ctx context.Context, owner string, r io.Reader) (*ImportResult, error)
}
