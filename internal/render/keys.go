package render

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Play      key.Binding
	Prev      key.Binding
	Next      key.Binding
	PitchUp   key.Binding
	PitchDown key.Binding
	YawLeft   key.Binding
	YawRight  key.Binding
	RollLeft  key.Binding
	RollRight key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ResetView key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Prev:      key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev frame")),
		Next:      key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next frame")),
		PitchUp:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x/X", "pitch")),
		PitchDown: key.NewBinding(key.WithKeys("X")),
		YawLeft:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y/Y", "yaw")),
		YawRight:  key.NewBinding(key.WithKeys("Y")),
		RollLeft:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z/Z", "roll")),
		RollRight: key.NewBinding(key.WithKeys("Z")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
		ResetView: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Prev, k.Next, k.PitchUp, k.YawLeft, k.ZoomIn}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Prev, k.Next},
		{k.PitchUp, k.YawLeft, k.RollLeft, k.ZoomIn, k.ResetView},
	}
}
