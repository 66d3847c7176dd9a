package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Visualization key.Binding
	Controls      key.Binding
	Toggle        key.Binding
	Theme         key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Visualization: key.NewBinding(key.WithKeys("1", "v"), key.WithHelp("1/v", "visualization")),
		Controls:      key.NewBinding(key.WithKeys("2", "c"), key.WithHelp("2/c", "controls")),
		Toggle:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Theme:         key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpKeys merges the global bindings with those of the mounted pane.
type helpKeys struct {
	global KeyMap
	pane   help.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	out := []key.Binding{h.global.Toggle}
	if h.pane != nil {
		out = append(out, h.pane.ShortHelp()...)
	}
	return append(out, h.global.Help, h.global.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	out := [][]key.Binding{{
		h.global.Visualization, h.global.Controls, h.global.Toggle,
		h.global.Theme, h.global.Help, h.global.Quit,
	}}
	if h.pane != nil {
		out = append(out, h.pane.FullHelp()...)
	}
	return out
}
