package controls

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Dec    key.Binding
	Inc    key.Binding
	Edit   key.Binding
	Cancel key.Binding
	Preset key.Binding
	Reset  key.Binding
	Submit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Dec:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		Inc:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Preset: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "defaults")),
		Submit: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start run")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Dec, k.Inc, k.Edit, k.Preset, k.Submit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Dec, k.Inc},
		{k.Edit, k.Cancel, k.Preset, k.Reset, k.Submit},
	}
}
