package cli

import (
	"time"

	"github.com/alexanderramin/steril/internal/app"
	"github.com/alexanderramin/steril/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sessions   service.SterilizationService
	Activities service.ActivityService
	Stats      service.StatsService

	// Optional use-case overrides. When nil, the services above are used.
	StartSession     app.StartSessionUseCase
	StopSession      app.StopSessionUseCase
	ImportActivities app.ImportActivitiesUseCase
	StatsQuery       app.StatsUseCase
	DashboardQuery   app.DashboardUseCase
	OverviewQuery    app.OverviewUseCase

	// Owner is the operator whose sessions commands act on. The --owner
	// flag overrides it.
	Owner        string
	Location     *time.Location
	TickInterval time.Duration

	// Now defaults to time.Now; tests pin it to a fake clock.
	Now func() time.Time

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "steril" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "steril",
		Short:         "Food sterilization timer and activity statistics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.Owner, "owner", a.Owner, "Operator the command acts on")

	root.AddCommand(
		newStartCmd(a),
		newStopCmd(a),
		newStatusCmd(a),
		newWatchCmd(a),
		newStatsCmd(a),
		newDashboardCmd(a),
		newAdminCmd(a),
		newActivityCmd(a),
	)

	return root
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
