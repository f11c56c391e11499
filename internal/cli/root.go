package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/config"
	"github.com/alexanderramin/loadline/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	WorkItems    service.WorkItemService
	Schedules    service.ScheduleService
	Estimates    service.EstimateService
	TimeLog      service.TimeLogService
	Import       service.ImportService
	Flexibility  service.FlexibilityService
	Dependencies service.DependencyService
	Capacity     service.CapacityService

	// Use-case overrides; nil falls back to the services above.
	ImportFeed app.ImportFeedUseCase
	LogTime    app.LogTimeUseCase
	Forecast   app.ForecastUseCase

	Config *config.Config
	// Metrics is dumped after the command when --metrics is set.
	Metrics prometheus.Gatherer

	IsInteractive func() bool
	// Now defaults to the wall clock; tests pin it.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		a.Config = config.Default("")
	}
	return a.Config
}

// NewRootCmd creates the top-level "loadline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var dumpMetrics bool

	root := &cobra.Command{
		Use:           "loadline",
		Short:         "Workload forecasting for tracker issues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !dumpMetrics || app.Metrics == nil {
				return nil
			}
			return writeMetrics(cmd.ErrOrStderr(), app.Metrics)
		},
	}
	root.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "Print use-case metrics to stderr after the command")

	root.AddCommand(
		newImportCmd(app),
		newItemsCmd(app),
		newFlexCmd(app),
		newDepsCmd(app),
		newCapacityCmd(app),
		newForecastCmd(app),
		newScheduleCmd(app),
		newEstimateCmd(app),
		newLogCmd(app),
	)

	return root
}

// writeMetrics prints every gathered family in the Prometheus text format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
