package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/loadline/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagerContent(lines int) string {
	out := make([]string, lines)
	for i := range out {
		out[i] = fmt.Sprintf("line %02d", i+1)
	}
	return strings.Join(out, "\n")
}

func currentPager(t *testing.T, d *teatest.Driver) pagerModel {
	t.Helper()
	m, ok := d.Model.(pagerModel)
	require.True(t, ok)
	return m
}

func TestPager_EmptyUntilSized(t *testing.T) {
	d := teatest.New(t, newPagerModel("Forecast", pagerContent(3)))
	assert.Empty(t, d.View())
}

func TestPager_ScrollsAndQuits(t *testing.T) {
	d := teatest.New(t, newPagerModel("Forecast", pagerContent(40)), teatest.WithSize(80, 13))

	view := ansiPattern.ReplaceAllString(d.View(), "")
	assert.Contains(t, view, "FORECAST")
	assert.Contains(t, view, "line 01")
	assert.Contains(t, view, "[TOP]")
	assert.NotContains(t, view, "line 40")

	d.Press("down", "j")
	assert.Equal(t, 2, currentPager(t, d).vp.YOffset)

	d.Press("k")
	assert.Equal(t, 1, currentPager(t, d).vp.YOffset)

	for range 10 {
		d.Press("pgdown")
	}
	view = ansiPattern.ReplaceAllString(d.View(), "")
	assert.Contains(t, view, "line 40")
	assert.Contains(t, view, "[END]")
	assert.False(t, d.Quit)

	d.Press("q")
	assert.True(t, d.Quit)
}

func TestPager_EscQuits(t *testing.T) {
	d := teatest.New(t, newPagerModel("Forecast", pagerContent(5)), teatest.WithSize(80, 20))
	d.Press("esc")
	assert.True(t, d.Quit)
}
