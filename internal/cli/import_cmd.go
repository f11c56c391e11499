package cli

import (
	"fmt"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a tracker issue feed (JSON)",
		Long: `Import a tracker issue export of the form {"issues": [...]}.

Issues are inserted or updated by id in a single transaction; a feed with any
invalid field is rejected as a whole. Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.importFeedUseCase().ImportFeed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
