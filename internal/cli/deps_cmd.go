package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDepsCmd(a *App) *cobra.Command {
	var assignee int
	var all bool

	cmd := &cobra.Command{
		Use:   "deps <item>",
		Short: "Show what an item waits on and what waits on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			resp, err := a.Dependencies.Dependencies(cmd.Context(), app.DependencyRequest{
				ItemID:     id,
				AssigneeID: resolveAssignee(cmd, a, assignee, all),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDependencies(resp))
			return nil
		},
	}
	addAssigneeFlags(cmd.Flags(), &assignee, &all)

	return cmd
}
