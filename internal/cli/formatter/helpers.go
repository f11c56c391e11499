package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Hours formats an hour amount with at most one decimal: "6h", "2.5h".
func Hours(h float64) string {
	return strconv.FormatFloat(math.Round(h*10)/10, 'f', -1, 64) + "h"
}

// ItemRef renders an issue id as "#101".
func ItemRef(id int) string {
	return fmt.Sprintf("#%d", id)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := daysBetween(now, t)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueCell renders a due date with its distance from now, colored by urgency.
func DueCell(due *time.Time, now time.Time) string {
	if due == nil {
		return Dim("--")
	}
	date := domain.FormatDate(*due)
	switch days := daysBetween(now, *due); {
	case days <= 2:
		date = StyleRed.Render(date)
	case days <= 7:
		date = StyleYellow.Render(date)
	}
	return date + " " + Dim("("+RelativeDateFrom(*due, now)+")")
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(domain.DateOf(to).Sub(domain.DateOf(from)).Hours() / 24))
}

// PeriodLabel names a bucket: the date for a day, otherwise "start → end".
func PeriodLabel(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("Mon 2006-01-02")
	}
	return domain.FormatDate(start) + " → " + domain.FormatDate(end)
}
