package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFlexCmd(a *App) *cobra.Command {
	var assignee int
	var all, asJSON bool

	cmd := &cobra.Command{
		Use:   "flex",
		Short: "Score schedule slack per item, most at risk first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			resp, err := a.Flexibility.Flexibility(cmd.Context(), app.FlexibilityRequest{
				Now:        &now,
				AssigneeID: resolveAssignee(cmd, a, assignee, all),
			})
			if err != nil {
				return err
			}
			if asJSON {
				data, err := formatter.FlexibilityJSON(resp, a.interactive())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatFlexibility(resp, now))
			return nil
		},
	}
	addAssigneeFlags(cmd.Flags(), &assignee, &all)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}
