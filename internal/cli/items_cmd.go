package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/alexanderramin/loadline/internal/repository"
	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	var assignee int
	var all, closed bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List imported work items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.WorkItems.List(cmd.Context(), repository.ItemFilter{
				AssigneeID:    resolveAssignee(cmd, app, assignee, all),
				IncludeClosed: closed,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItems(items, app.now()))
			return nil
		},
	}
	addAssigneeFlags(cmd.Flags(), &assignee, &all)
	cmd.Flags().BoolVar(&closed, "closed", false, "Include closed items")

	return cmd
}
