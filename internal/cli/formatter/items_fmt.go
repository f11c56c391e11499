package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
	"github.com/alexanderramin/loadline/internal/domain"
)

// FormatItems renders stored work items.
func FormatItems(items []*domain.WorkItem, now time.Time) string {
	if len(items) == 0 {
		return Dim("No work items. Import a feed with `loadline import <file>`.") + "\n"
	}
	headers := []string{"ITEM", "SUBJECT", "START", "DUE", "ESTIMATE", "SPENT", "DONE", "ASSIGNEE"}
	rows := make([][]string, 0, len(items))
	for _, w := range items {
		start := Dim("--")
		if w.StartDate != nil {
			start = domain.FormatDate(*w.StartDate)
		}
		estimate := Dim("--")
		if w.EstimatedHours != nil {
			estimate = Hours(*w.EstimatedHours)
		}
		spent := Hours(w.SpentHours)
		if w.OverBudget() {
			spent = StyleRed.Render(spent)
		}
		assignee := Dim("--")
		if w.AssigneeID != nil {
			assignee = fmt.Sprintf("%d", *w.AssigneeID)
		}
		subject := w.Subject
		due := DueCell(w.DueDate, now)
		if w.IsClosed() {
			subject = Dim(subject + " (closed)")
			if w.DueDate != nil {
				due = Dim(domain.FormatDate(*w.DueDate))
			}
		}
		rows = append(rows, []string{
			ItemRef(w.ID), subject, start, due, estimate, spent,
			fmt.Sprintf("%d%%", w.DoneRatio), assignee,
		})
	}
	return RenderTable(headers, rows, 4, 5, 6)
}

// FormatSchedule renders the weekly schedule Monday first.
func FormatSchedule(s domain.WeeklySchedule) string {
	var b strings.Builder
	for _, wd := range domain.Weekdays {
		h := s[wd.String()]
		line := fmt.Sprintf("%-10s %6s", wd.String(), Hours(h))
		if h == 0 {
			line = Dim(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(StyleDim.Render(strings.Repeat("─", 17)) + "\n")
	b.WriteString(fmt.Sprintf("%-10s %6s", "Week", Bold(Hours(s.WeeklyHours()))))
	return RenderBox("Weekly schedule", b.String())
}

// FormatEstimates lists internal remaining-hours overrides by item id.
func FormatEstimates(est domain.InternalEstimates) string {
	if len(est) == 0 {
		return Dim("No internal estimates.") + "\n"
	}
	ids := make([]int, 0, len(est))
	for id := range est {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		e := est[id]
		rows = append(rows, []string{ItemRef(id), Hours(e.HoursRemaining), Dim(e.UpdatedAt.Format(time.RFC3339))})
	}
	return RenderTable([]string{"ITEM", "REMAINING", "UPDATED"}, rows, 1)
}

// FormatTimeEntries lists logged time for one item.
func FormatTimeEntries(entries []*domain.TimeEntry) string {
	if len(entries) == 0 {
		return Dim("No time logged.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	var total float64
	for _, e := range entries {
		total += e.Hours
		rows = append(rows, []string{domain.FormatDate(e.SpentOn), Hours(e.Hours), e.Comment, Dim(e.ID)})
	}
	return RenderTable([]string{"DATE", "HOURS", "COMMENT", "ID"}, rows, 1) +
		fmt.Sprintf("Total %s\n", Bold(Hours(total)))
}

// FormatImportResult summarises a feed import.
func FormatImportResult(res *app.ImportResult) string {
	return fmt.Sprintf("%s Imported %d items (%d closed, %d relations)\n",
		StyleGreen.Render("✔"), res.ItemCount, res.ClosedCount, res.RelationCount)
}
