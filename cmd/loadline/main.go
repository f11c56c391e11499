package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/loadline/internal/cli"
	"github.com/alexanderramin/loadline/internal/config"
	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/repository"
	"github.com/alexanderramin/loadline/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The configured schedule only seeds a fresh database; afterwards the
	// stored schedule wins.
	database, err := db.OpenDB(cfg.DBPath, db.WithScheduleSeed(cfg.WeeklySchedule))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)
	estimateRepo := repository.NewSQLiteEstimateRepo(database)
	timeEntryRepo := repository.NewSQLiteTimeEntryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case observers: metrics always, slog lines on request.
	registry := prometheus.NewRegistry()
	observers := []service.UseCaseObserver{service.NewMetricsObserver(registry)}
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	observer := service.NewMultiObserver(observers...)

	// Scores are shared so schedule edits invalidate what flex reads.
	scores := service.NewScoreCache()

	// Wire services
	capacitySvc := service.NewCapacityService(workItemRepo, scheduleRepo, estimateRepo, timeEntryRepo, observer)
	timeLogSvc := service.NewTimeLogService(timeEntryRepo, workItemRepo, observer)
	importSvc := service.NewImportService(uow, observer)

	app := &cli.App{
		WorkItems:    service.NewWorkItemService(workItemRepo),
		Schedules:    service.NewScheduleService(scheduleRepo, uow, scores, observer),
		Estimates:    service.NewEstimateService(estimateRepo, workItemRepo),
		TimeLog:      timeLogSvc,
		Import:       importSvc,
		Flexibility:  service.NewFlexibilityService(workItemRepo, scheduleRepo, scores, observer),
		Dependencies: service.NewDependencyService(workItemRepo, observer),
		Capacity:     capacitySvc,

		ImportFeed: importSvc,
		LogTime:    timeLogSvc,
		Forecast:   capacitySvc,

		Config:  cfg,
		Metrics: registry,
	}

	// Detect interactive terminal for the pager and forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
