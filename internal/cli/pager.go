package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/loadline/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel shows long command output in a scrollable viewport with a
// title line and a status bar.
type pagerModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
	quit    key.Binding
}

func newPagerModel(title, content string) pagerModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = pagerKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return pagerModel{
		title:   title,
		content: content,
		vp:      vp,
		quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Header and its rule, separator, status bar.
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-4, 1)
		if !m.ready {
			m.vp.SetContent(m.content)
			m.ready = true
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.vp.Width, 20)))
	bar := strings.Join([]string{
		scrollIndicator(m.vp),
		formatter.Dim("↑↓ j/k pgup/pgdn: scroll"),
		formatter.Dim("q: quit"),
	}, "  ")
	return formatter.Header(m.title) + "\n" + m.vp.View() + "\n" + sep + "\n" + bar
}

// pagerKeyMap scrolls with arrows, page keys and vi-style j/k.
func pagerKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// runPager blocks until the user leaves the pager.
func runPager(title, content string) error {
	_, err := tea.NewProgram(newPagerModel(title, content), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
