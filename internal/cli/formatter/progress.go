package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadline/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	overBlock   = "▓"
)

// RenderLoadBar renders a load bar like [██████░░░░] 60%. Load past 100%
// fills the bar with the overload block. Colors follow the capacity status.
func RenderLoadBar(pct int, status domain.CapacityStatus, width int) string {
	if width < 2 {
		width = 2
	}
	p := max(pct, 0)
	filled := min(p*width/100, width)
	block := filledBlock
	if p > 100 {
		block = overBlock
	}
	bar := strings.Repeat(block, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %4d%%", CapacityColor(status).Render(bar), pct)
}
