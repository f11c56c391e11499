package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCapacityCmd(a *App) *cobra.Command {
	var rf rangeFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show the even-spread load baseline",
		Long: `Spread every open item's estimate evenly over the working days between
its start and due dates and compare the daily sum with the weekly schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, zoom, assignee := rf.resolve(cmd, a)
			resp, err := a.Capacity.Capacity(cmd.Context(), app.CapacityRequest{
				Start:       start,
				End:         end,
				Granularity: zoom,
				AssigneeID:  assignee,
			})
			if err != nil {
				return err
			}
			if asJSON {
				data, err := formatter.CapacityJSON(resp, a.interactive())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCapacity(resp))
			return nil
		},
	}
	addRangeFlags(cmd.Flags(), &rf, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func newForecastCmd(a *App) *cobra.Command {
	var rf rangeFlags
	var asJSON, interactive, noActuals bool

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Simulate day by day when open work gets done",
		Long: `Allocate each working day's hours to competing items in priority order:
items blocking someone else first, then earliest due date, then lowest id.
Each day plans 75% of its hours (100% for work due that day). Days before
today show logged time only; today shows logged time plus what still fits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && interactive {
				return fmt.Errorf("--json and --interactive cannot be combined")
			}
			if interactive && !a.interactive() {
				return fmt.Errorf("--interactive needs a terminal")
			}

			now := a.now()
			start, end, zoom, assignee := rf.resolve(cmd, a)
			resp, err := a.forecastUseCase().Forecast(cmd.Context(), app.ForecastRequest{
				Start:       start,
				End:         end,
				Granularity: zoom,
				AssigneeID:  assignee,
				Now:         &now,
				SkipActuals: noActuals,
			})
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				data, err := formatter.ForecastJSON(resp, a.interactive())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			case interactive:
				title := fmt.Sprintf("Forecast %s (%s)", formatter.PeriodLabel(start, end), formatAssignee(assignee))
				return runPager(title, formatter.FormatForecast(resp, now))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatForecast(resp, now))
			return nil
		},
	}
	addRangeFlags(cmd.Flags(), &rf, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the forecast in a scrollable pager")
	cmd.Flags().BoolVar(&noActuals, "no-actuals", false, "Ignore logged time and predict every day")

	return cmd
}
