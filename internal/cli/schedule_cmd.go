package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show or change the weekly working-hours schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSchedule(cmd, app)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the weekly schedule",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSchedule(cmd, app)
			},
		},
		newScheduleSetCmd(app),
		newScheduleEditCmd(app),
	)
	return cmd
}

func showSchedule(cmd *cobra.Command, app *App) error {
	s, err := app.Schedules.Get(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedule(s))
	return nil
}

func newScheduleSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <Day=hours>...",
		Short: "Change hours for one or more weekdays",
		Example: `  loadline schedule set Fri=4
  loadline schedule set Sat=0 Sun=0 Mon=7.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := app.Schedules.Get(cmd.Context())
			if err != nil {
				return err
			}
			updated, err := applyScheduleArgs(current, args)
			if err != nil {
				return err
			}
			if err := app.Schedules.Save(cmd.Context(), updated); err != nil {
				return err
			}
			return showSchedule(cmd, app)
		},
	}
}

// applyScheduleArgs returns a copy of s with each Day=hours pair applied.
func applyScheduleArgs(s domain.WeeklySchedule, args []string) (domain.WeeklySchedule, error) {
	out := s.Clone()
	for _, arg := range args {
		day, hours, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q: expected Day=hours", arg)
		}
		wd, err := domain.ParseWeekday(day)
		if err != nil {
			return nil, err
		}
		h, err := parseHours(hours)
		if err != nil {
			return nil, err
		}
		out[wd.String()] = h
	}
	return out, out.Validate()
}

func newScheduleEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the weekly schedule in a form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("schedule edit needs a terminal; use 'schedule set' instead")
			}
			current, err := app.Schedules.Get(cmd.Context())
			if err != nil {
				return err
			}
			fields := make(map[string]*string)
			if err := scheduleForm(current, fields).RunWithContext(cmd.Context()); err != nil {
				return err
			}
			updated, err := scheduleFromFields(fields)
			if err != nil {
				return err
			}
			if err := app.Schedules.Save(cmd.Context(), updated); err != nil {
				return err
			}
			return showSchedule(cmd, app)
		},
	}
}
