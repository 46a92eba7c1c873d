package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/steril/internal/cli"
	"github.com/alexanderramin/steril/internal/config"
	"github.com/alexanderramin/steril/internal/db"
	"github.com/alexanderramin/steril/internal/logger"
	"github.com/alexanderramin/steril/internal/repository"
	"github.com/alexanderramin/steril/internal/service"
	"github.com/alexanderramin/steril/internal/timer"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		logger.Error("command failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.LogDir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", "path", cfg.DBPath)

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	observer := service.NewLogUseCaseObserver(logger.Logger)
	clock := timer.RealClock()
	sterilization := service.NewSterilizationService(sessionRepo, uow, clock, cfg.TickInterval, observer)
	defer sterilization.Close()

	app := &cli.App{
		Sessions:     sterilization,
		Activities:   service.NewActivityService(activityRepo, uow, observer),
		Stats:        service.NewStatsService(activityRepo, sterilization, clock, loc, observer),
		Owner:        cfg.Owner,
		Location:     loc,
		TickInterval: cfg.TickInterval,
		Now:          clock.Now,
	}

	// Prompts only make sense on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
