package cli

import (
	"fmt"

	"github.com/alexanderramin/steril/internal/app"
)

func (a *App) startSessionUseCase() app.StartSessionUseCase {
	if a.StartSession != nil {
		return a.StartSession
	}
	return a.Sessions
}

func (a *App) stopSessionUseCase() app.StopSessionUseCase {
	if a.StopSession != nil {
		return a.StopSession
	}
	return a.Sessions
}

func (a *App) importActivitiesUseCase() app.ImportActivitiesUseCase {
	if a.ImportActivities != nil {
		return a.ImportActivities
	}
	return a.Activities
}

func (a *App) statsUseCase() app.StatsUseCase {
	if a.StatsQuery != nil {
		return a.StatsQuery
	}
	return a.Stats
}

func (a *App) dashboardUseCase() app.DashboardUseCase {
	if a.DashboardQuery != nil {
		return a.DashboardQuery
	}
	return a.Stats
}

func (a *App) overviewUseCase() app.OverviewUseCase {
	if a.OverviewQuery != nil {
		return a.OverviewQuery
	}
	return a.Stats
}

func (a *App) requireOwner() (string, error) {
	if a.Owner == "" {
		return "", fmt.Errorf("no owner configured (set STERIL_OWNER or pass --owner)")
	}
	return a.Owner, nil
}
