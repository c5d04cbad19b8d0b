package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// View switching
	Dashboard key.Binding
	Cases     key.Binding
	Alerts    key.Binding
	Contacts  key.Binding
	Board     key.Binding

	// Case list
	FilterStage key.Binding
	CycleSort   key.Binding
	Export      key.Binding

	// Annotations
	NewNote    key.Binding
	NewTask    key.Binding
	ToggleTask key.Binding

	// Alerts
	Dismiss key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Cases: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "cases"),
		),
		Alerts: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "alerts"),
		),
		Contacts: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "contacts"),
		),
		Board: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "stage board"),
		),
		FilterStage: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle stage filter"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new task"),
		),
		ToggleTask: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle task"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss alert"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Dashboard, k.Cases, k.Alerts, k.Contacts, k.Board},
		{k.Search, k.FilterStage, k.CycleSort, k.Export},
		{k.NewNote, k.NewTask, k.ToggleTask, k.Dismiss},
	}
}
