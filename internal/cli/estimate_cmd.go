package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEstimateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Manage private remaining-work overrides",
		Long: `Internal estimates replace the remaining work the forecast derives from an
item's tracker estimate and progress. They are never sent to the tracker.`,
	}
	cmd.AddCommand(
		newEstimateSetCmd(app),
		newEstimateClearCmd(app),
		newEstimateListCmd(app),
	)
	return cmd
}

func newEstimateSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item> <hours>",
		Short: "Set the remaining hours for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			hours, err := parseHours(args[1])
			if err != nil {
				return err
			}
			if err := app.Estimates.Set(cmd.Context(), id, hours); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s remaining work set to %s\n", formatter.ItemRef(id), formatter.Hours(hours))
			return nil
		},
	}
}

func newEstimateClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <item>",
		Short: "Remove an item's override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			if err := app.Estimates.Clear(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s override cleared\n", formatter.ItemRef(id))
			return nil
		},
	}
}

func newEstimateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := app.Estimates.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEstimates(est))
			return nil
		},
	}
}
