package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit  key.Binding
	Tab   key.Binding
	Enter key.Binding
	Scope key.Binding
	Prev  key.Binding
	Next  key.Binding
}

var Keys = KeyMap{
	Quit:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Scope: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "document")),
	Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/left", "prev page")),
	Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l/right", "next page")),
}
