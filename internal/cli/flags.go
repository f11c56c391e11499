package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateFlag is a YYYY-MM-DD flag value. The zero value means "not set".
type dateFlag struct {
	t *time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if d.t == nil {
		return ""
	}
	return domain.FormatDate(*d.t)
}

func (d *dateFlag) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	d.t = &t
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// zoomFlag restricts values to the known granularities.
type zoomFlag struct {
	g domain.Granularity
}

var _ pflag.Value = (*zoomFlag)(nil)

func (z *zoomFlag) String() string { return string(z.g) }

func (z *zoomFlag) Set(s string) error {
	g := domain.Granularity(s)
	if !domain.ValidGranularities[g] {
		return fmt.Errorf("must be one of day, week, month, quarter, year")
	}
	z.g = g
	return nil
}

func (z *zoomFlag) Type() string { return "zoom" }

// rangeFlags are the --from/--to/--zoom/--assignee/--all flags shared by the
// capacity and forecast commands.
type rangeFlags struct {
	from     dateFlag
	to       dateFlag
	zoom     zoomFlag
	assignee int
	all      bool
}

func addRangeFlags(fs *pflag.FlagSet, rf *rangeFlags, withZoom bool) {
	fs.Var(&rf.from, "from", "First day of the range (default today)")
	fs.Var(&rf.to, "to", "Last day of the range (default from + forecast_days - 1)")
	if withZoom {
		fs.Var(&rf.zoom, "zoom", "Bucket size: day, week, month, quarter, year")
	}
	addAssigneeFlags(fs, &rf.assignee, &rf.all)
}

func addAssigneeFlags(fs *pflag.FlagSet, assignee *int, all *bool) {
	fs.IntVar(assignee, "assignee", 0, "Tracker user id (default self_user_id from config)")
	fs.BoolVar(all, "all", false, "Include every assignee")
}

// resolve fills defaults from the app clock and configuration.
func (rf *rangeFlags) resolve(cmd *cobra.Command, app *App) (start, end time.Time, zoom domain.Granularity, assignee *int) {
	cfg := app.config()
	start = domain.DateOf(app.now())
	if rf.from.t != nil {
		start = *rf.from.t
	}
	end = domain.AddDays(start, cfg.ForecastDays-1)
	if rf.to.t != nil {
		end = *rf.to.t
	}
	zoom = rf.zoom.g
	if zoom == "" {
		zoom = cfg.DefaultZoom
	}
	return start, end, zoom, resolveAssignee(cmd, app, rf.assignee, rf.all)
}

// resolveAssignee picks --assignee, then the configured self user, unless --all.
func resolveAssignee(cmd *cobra.Command, app *App, flagValue int, all bool) *int {
	if all {
		return nil
	}
	if cmd.Flags().Changed("assignee") {
		return &flagValue
	}
	return app.config().SelfUserID
}

func formatAssignee(id *int) string {
	if id == nil {
		return "everyone"
	}
	return "user " + strconv.Itoa(*id)
}
