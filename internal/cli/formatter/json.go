package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/scheduler"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// jsonDoc accumulates sjson writes and keeps the first error.
type jsonDoc struct {
	buf []byte
	err error
}

func newJSONDoc() *jsonDoc {
	return &jsonDoc{buf: []byte(`{}`)}
}

func (d *jsonDoc) set(path string, value any) {
	if d.err != nil {
		return
	}
	d.buf, d.err = sjson.SetBytes(d.buf, path, value)
}

// bytes returns the indented document, ANSI-colored when color is set.
func (d *jsonDoc) bytes(color bool) ([]byte, error) {
	if d.err != nil {
		return nil, fmt.Errorf("encoding json: %w", d.err)
	}
	out := pretty.Pretty(d.buf)
	if color {
		out = pretty.Color(out, nil)
	}
	return out, nil
}

func setDate(d *jsonDoc, path string, t *time.Time) {
	if t == nil {
		d.set(path, nil)
		return
	}
	d.set(path, domain.FormatDate(*t))
}

func setPeriods(d *jsonDoc, periods []scheduler.PeriodCapacity) {
	d.set("periods", []any{})
	for i, p := range periods {
		prefix := fmt.Sprintf("periods.%d.", i)
		d.set(prefix+"start", domain.FormatDate(p.StartDate))
		d.set(prefix+"end", domain.FormatDate(p.EndDate))
		d.set(prefix+"load_hours", p.LoadHours)
		d.set(prefix+"capacity_hours", p.CapacityHours)
		d.set(prefix+"percentage", p.Percentage)
		d.set(prefix+"status", string(p.Status))
		if p.Breakdown == nil {
			continue
		}
		d.set(prefix+"breakdown", []any{})
		for j, e := range p.Breakdown {
			ep := fmt.Sprintf("%sbreakdown.%d.", prefix, j)
			d.set(ep+"item_id", e.ItemID)
			d.set(ep+"hours", e.Hours)
			d.set(ep+"is_slippage", e.IsSlippage)
			d.set(ep+"is_actual", e.IsActual)
		}
	}
}

// CapacityJSON encodes the load baseline.
func CapacityJSON(resp *app.CapacityResponse, color bool) ([]byte, error) {
	d := newJSONDoc()
	d.set("granularity", string(resp.Granularity))
	d.set("total_load_hours", resp.TotalLoadHours)
	d.set("total_capacity_hours", resp.TotalCapacityHours)
	setPeriods(d, resp.Periods)
	return d.bytes(color)
}

// ForecastJSON encodes the scheduled forecast with per-item summaries.
func ForecastJSON(resp *app.ForecastResponse, color bool) ([]byte, error) {
	d := newJSONDoc()
	d.set("granularity", string(resp.Granularity))
	setPeriods(d, resp.Periods)

	d.set("items", []any{})
	for i, it := range resp.Items {
		prefix := fmt.Sprintf("items.%d.", i)
		d.set(prefix+"item_id", it.ItemID)
		d.set(prefix+"subject", it.Subject)
		setDate(d, prefix+"due_date", it.DueDate)
		d.set(prefix+"initial_remaining", it.InitialRemaining)
		d.set(prefix+"predicted_hours", it.PredictedHours)
		d.set(prefix+"actual_hours", it.ActualHours)
		d.set(prefix+"unscheduled_hours", it.Unscheduled)
		setDate(d, prefix+"finish_date", it.FinishDate)
		d.set(prefix+"blocks_external", it.BlocksExternal)
		d.set(prefix+"late", it.Late)
	}
	d.set("warnings", []any{})
	for i, w := range resp.Warnings {
		d.set(fmt.Sprintf("warnings.%d", i), w)
	}
	return d.bytes(color)
}

// FlexibilityJSON encodes flexibility scores in response order.
func FlexibilityJSON(resp *app.FlexibilityResponse, color bool) ([]byte, error) {
	d := newJSONDoc()
	d.set("items", []any{})
	for i, v := range resp.Items {
		prefix := fmt.Sprintf("items.%d.", i)
		d.set(prefix+"item_id", v.ItemID)
		d.set(prefix+"subject", v.Subject)
		setDate(d, prefix+"due_date", v.DueDate)
		d.set(prefix+"status", string(v.Score.Status))
		d.set(prefix+"remaining_percent", v.Score.RemainingPercent)
		d.set(prefix+"initial_percent", v.Score.InitialPercent)
		d.set(prefix+"days_remaining", v.Score.DaysRemaining)
		d.set(prefix+"hours_remaining", v.Score.HoursRemaining)
	}
	unscored := resp.Unscored
	if unscored == nil {
		unscored = []int{}
	}
	d.set("unscored", unscored)
	return d.bytes(color)
}
