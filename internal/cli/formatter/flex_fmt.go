package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/loadline/internal/app"
)

// FormatFlexibility renders flexibility scores, most at risk first.
func FormatFlexibility(resp *app.FlexibilityResponse, now time.Time) string {
	var b strings.Builder
	if len(resp.Items) == 0 {
		b.WriteString(Dim("No scored items.") + "\n")
	} else {
		headers := []string{"ITEM", "SUBJECT", "STATUS", "SLACK", "PLANNED", "DAYS", "HOURS", "DUE"}
		rows := make([][]string, 0, len(resp.Items))
		for _, v := range resp.Items {
			s := v.Score
			rows = append(rows, []string{
				ItemRef(v.ItemID),
				v.Subject,
				FlexIndicator(s.Status),
				FlexColor(s.Status).Render(fmt.Sprintf("%+d%%", s.RemainingPercent)),
				fmt.Sprintf("%+d%%", s.InitialPercent),
				fmt.Sprintf("%d", s.DaysRemaining),
				Hours(s.HoursRemaining),
				DueCell(v.DueDate, now),
			})
		}
		b.WriteString(RenderTable(headers, rows, 3, 4, 5, 6))
	}

	if len(resp.Unscored) > 0 {
		refs := make([]string, len(resp.Unscored))
		for i, id := range resp.Unscored {
			refs[i] = ItemRef(id)
		}
		b.WriteString("\n" + Dim("Not scored (no due date or estimate): "+strings.Join(refs, ", ")) + "\n")
	}
	return RenderBox("Flexibility", strings.TrimRight(b.String(), "\n"))
}
