package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/alexanderramin/loadline/internal/scheduler"
)

const loadBarWidth = 12

// FormatCapacity renders the even-spread load baseline as a table.
func FormatCapacity(resp *app.CapacityResponse) string {
	if len(resp.Periods) == 0 {
		return RenderBox("Capacity", Dim("No working days in range."))
	}

	headers := []string{"PERIOD", "LOAD", "CAPACITY", "UTILISATION", "STATUS"}
	rows := make([][]string, 0, len(resp.Periods))
	for _, p := range resp.Periods {
		rows = append(rows, []string{
			PeriodLabel(p.StartDate, p.EndDate),
			Hours(p.LoadHours),
			Hours(p.CapacityHours),
			RenderLoadBar(p.Percentage, p.Status, loadBarWidth),
			CapacityColor(p.Status).Render(string(p.Status)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, 1, 2))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total %s of %s scheduled (%s view)",
		Bold(Hours(resp.TotalLoadHours)), Hours(resp.TotalCapacityHours), resp.Granularity))
	return RenderBox("Capacity", b.String())
}

// FormatForecast renders the scheduled forecast: one block per period with
// its breakdown, then a per-item summary.
func FormatForecast(resp *app.ForecastResponse, now time.Time) string {
	subjects := make(map[int]string, len(resp.Items))
	for _, it := range resp.Items {
		subjects[it.ItemID] = it.Subject
	}

	var b strings.Builder
	if len(resp.Periods) == 0 {
		b.WriteString(Dim("No working days in range.") + "\n")
	}
	for _, p := range resp.Periods {
		b.WriteString(fmt.Sprintf("%s  %s / %s  %s\n",
			Bold(PeriodLabel(p.StartDate, p.EndDate)),
			Hours(p.LoadHours), Hours(p.CapacityHours),
			RenderLoadBar(p.Percentage, p.Status, loadBarWidth)))
		b.WriteString(formatBreakdown(p.Breakdown, subjects))
	}

	if len(resp.Items) > 0 {
		b.WriteString("\n" + Header("Items") + "\n")
		b.WriteString(formatForecastItems(resp.Items, now))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
		}
	}
	return RenderBox("Forecast", strings.TrimRight(b.String(), "\n"))
}

func formatBreakdown(entries []scheduler.BreakdownEntry, subjects map[int]string) string {
	if len(entries) == 0 {
		return Dim("    (free)") + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		line := fmt.Sprintf("    %-6s %6s  %s", ItemRef(e.ItemID), Hours(e.Hours), subjects[e.ItemID])
		var tags []string
		if e.IsActual {
			tags = append(tags, StyleBlue.Render("logged"))
		}
		if e.IsSlippage {
			tags = append(tags, StyleRed.Render("slipping"))
		}
		if len(tags) > 0 {
			line += "  " + strings.Join(tags, " ")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func formatForecastItems(items []app.ItemForecastView, now time.Time) string {
	headers := []string{"ITEM", "SUBJECT", "PLANNED", "LOGGED", "LEFT", "FINISH", "DUE"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		finish := Dim("--")
		if it.FinishDate != nil {
			finish = domain.FormatDate(*it.FinishDate)
		}
		left := Hours(it.Unscheduled)
		if it.Late {
			left = StyleRed.Render(left)
			finish = StyleRed.Render(finish)
		}
		rows = append(rows, []string{
			ItemRef(it.ItemID),
			it.Subject,
			Hours(it.PredictedHours),
			Hours(it.ActualHours),
			left,
			finish,
			DueCell(it.DueDate, now),
		})
	}
	return RenderTable(headers, rows, 2, 3, 4)
}
