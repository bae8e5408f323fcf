package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Roll    key.Binding
	Draw    key.Binding
	Up      key.Binding
	Down    key.Binding
	Capture key.Binding
	Rematch key.Binding
	LogUp   key.Binding
	LogDown key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Roll:    key.NewBinding(key.WithKeys("r", " "), key.WithHelp("r", "roll dice")),
		Draw:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw card")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous match")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next match")),
		Capture: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "capture match")),
		Rematch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		LogUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll log")),
		LogDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll log")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Roll, k.Draw, k.Capture, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Roll, k.Draw, k.Rematch},
		{k.Up, k.Down, k.Capture},
		{k.LogUp, k.LogDown, k.Help, k.Quit},
	}
}
