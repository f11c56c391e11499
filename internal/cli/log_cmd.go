package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var on dateFlag
	var comment string

	cmd := &cobra.Command{
		Use:   "log <item> <hours>",
		Short: "Log time spent on an item",
		Long: `Record hours spent on an item. Logged time replaces predictions for past
days in the forecast and is consumed first on the current day.`,
		Example: `  loadline log 101 2.5
  loadline log #101 3h --date 2026-03-02 --comment "review"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			hours, err := parseHours(args[1])
			if err != nil {
				return err
			}
			spentOn := domain.DateOf(app.now())
			if on.t != nil {
				spentOn = *on.t
			}
			entry := &domain.TimeEntry{
				ItemID:  id,
				SpentOn: spentOn,
				Hours:   hours,
				Comment: comment,
			}
			if err := app.logTimeUseCase().LogTime(cmd.Context(), entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s for %s\n",
				formatter.Hours(hours), formatter.ItemRef(id), domain.FormatDate(entry.SpentOn))
			return nil
		},
	}
	cmd.Flags().Var(&on, "date", "Day the time was spent (default today)")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Optional note")

	cmd.AddCommand(
		newLogListCmd(app),
		newLogDeleteCmd(app),
	)
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <item>",
		Short: "List time logged on an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			entries, err := app.TimeLog.ListByItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeEntries(entries))
			return nil
		},
	}
}

func newLogDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.TimeLog.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted time entry %s\n", args[0])
			return nil
		},
	}
}
