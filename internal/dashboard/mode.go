package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ksdash/internal/theme"
)

// Mode selects which pane is mounted. Exactly one is mounted at a time.
type Mode int

const (
	ModeVisualization Mode = iota
	ModeControls
)

var modes = []Mode{ModeVisualization, ModeControls}

func (m Mode) String() string {
	switch m {
	case ModeVisualization:
		return "Visualization"
	case ModeControls:
		return "Controls"
	}
	return "unknown"
}

func (m Mode) Icon() string {
	switch m {
	case ModeVisualization:
		return "≈"
	case ModeControls:
		return "⚙"
	}
	return "?"
}

func (m Mode) Label() string { return m.Icon() + " " + m.String() }

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeVisualization {
		return ModeControls
	}
	return ModeVisualization
}

func renderTabs(active Mode, t theme.Theme, width int) string {
	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Border(lipgloss.RoundedBorder(), true, true, false, true).
		BorderForeground(t.Accent).
		Padding(0, 2)
	idleTab := activeTab.
		Bold(false).
		Foreground(t.Muted).
		BorderForeground(t.Border)

	tabs := make([]string, 0, len(modes))
	for _, m := range modes {
		style := idleTab
		if m == active {
			style = activeTab
		}
		tabs = append(tabs, style.Render(m.Label()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	gap := width - lipgloss.Width(row)
	if gap < 0 {
		gap = 0
	}
	rule := lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", gap))
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, rule)
}
