package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Restore key.Binding
	Remount key.Binding
	Flush   key.Binding
	Focus   key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Restore: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Remount: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "remount")),
		Flush:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "compile now")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scroll preview")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restore, k.Remount, k.Flush, k.Focus, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
