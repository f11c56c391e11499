package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme using the formatter's Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateDayHours accepts a number of hours between 0 and 24.
func validateDayHours(s string) error {
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "h"), 64)
	if err != nil || math.IsNaN(h) {
		return fmt.Errorf("enter a number of hours")
	}
	if h < 0 || h > 24 {
		return fmt.Errorf("must be between 0 and 24")
	}
	return nil
}

// scheduleForm edits one input per weekday. Values are written to fields,
// keyed by weekday name, as the user typed them.
func scheduleForm(current domain.WeeklySchedule, fields map[string]*string) *huh.Form {
	inputs := make([]huh.Field, 0, len(domain.Weekdays))
	for _, wd := range domain.Weekdays {
		name := wd.String()
		v := strconv.FormatFloat(current[name], 'f', -1, 64)
		fields[name] = &v
		inputs = append(inputs, huh.NewInput().
			Title(name).
			Value(fields[name]).
			Validate(validateDayHours))
	}
	return huh.NewForm(
		huh.NewGroup(inputs...).Description("Working hours per weekday"),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// scheduleFromFields converts form values into a schedule.
func scheduleFromFields(fields map[string]*string) (domain.WeeklySchedule, error) {
	s := make(domain.WeeklySchedule, len(domain.Weekdays))
	for _, wd := range domain.Weekdays {
		raw, ok := fields[wd.String()]
		if !ok {
			return nil, fmt.Errorf("missing hours for %s", wd)
		}
		h, err := parseHours(*raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", wd, err)
		}
		s[wd.String()] = h
	}
	return s, s.Validate()
}
