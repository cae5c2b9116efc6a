package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
	Enter   key.Binding
	Add     key.Binding
	Delete  key.Binding
	Undo    key.Binding
	Edit    key.Binding
	Project key.Binding
	Today   key.Binding
	Prev    key.Binding
	Next    key.Binding
	ShowAll key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Logout  key.Binding
	Refresh key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/toggle")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete item")),
	Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit item")),
	Project: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project")),
	Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
	Prev:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous period")),
	Next:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next period")),
	ShowAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "show all projects")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Refresh: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh/sync")),
}
