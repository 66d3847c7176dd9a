// Package theme holds the colour schemes shared by the dashboard panes.
package theme

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	Ocean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#2a4a66"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	Cyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Border:  lipgloss.Color("#444466"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ff8800"),
		Error:   lipgloss.Color("#ff0000"),
	}

	Minimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#444444"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	Retro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#003300"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	All = []Theme{Ocean, Cyberpunk, Minimal, Retro}
)

// Get returns the named theme, falling back to Ocean.
func Get(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Ocean
}

// Next cycles to the theme after t.
func Next(t Theme) Theme {
	for i, c := range All {
		if c.Name == t.Name {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}

func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

func (t Theme) Title() lipgloss.Style  { return lipgloss.NewStyle().Bold(true).Foreground(t.Primary) }
func (t Theme) Label() lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Muted) }
func (t Theme) Value() lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Text) }
func (t Theme) Active() lipgloss.Style { return lipgloss.NewStyle().Bold(true).Foreground(t.Accent) }
func (t Theme) Danger() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Error) }
func (t Theme) Good() lipgloss.Style   { return lipgloss.NewStyle().Foreground(t.Success) }

func (t Theme) Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}
