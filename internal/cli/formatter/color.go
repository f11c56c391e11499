package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// FlexColor returns the style for a flexibility status.
func FlexColor(status domain.FlexibilityStatus) lipgloss.Style {
	switch status {
	case domain.FlexOverbooked:
		return StyleRed
	case domain.FlexAtRisk:
		return StyleYellow
	case domain.FlexOnTrack:
		return StyleGreen
	default:
		return StyleDim
	}
}

// FlexIndicator returns a colored status marker such as "● AT RISK".
func FlexIndicator(status domain.FlexibilityStatus) string {
	switch status {
	case domain.FlexOverbooked:
		return StyleRed.Render("● OVERBOOKED")
	case domain.FlexAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.FlexOnTrack:
		return StyleGreen.Render("● ON TRACK")
	case domain.FlexCompleted:
		return StyleDim.Render("✔ DONE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// CapacityColor returns the style for a load status.
func CapacityColor(status domain.CapacityStatus) lipgloss.Style {
	switch status {
	case domain.CapacityOverloaded:
		return StyleRed
	case domain.CapacityBusy:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
