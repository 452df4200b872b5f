package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the app responds to
type KeyMap struct {
	// Global
	Quit     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Page1    key.Binding
	Page2    key.Binding
	Page3    key.Binding
	Page4    key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Back  key.Binding
	Tab   key.Binding

	// Task actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
	Save   key.Binding

	// Filter bar
	FilterStatus   key.Binding
	FilterPriority key.Binding
	FilterCategory key.Binding
	FilterUser     key.Binding
	FilterDue      key.Binding
	ClearFilters   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev page"),
		),
		Page1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Page2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tasks")),
		Page3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "analytics")),
		Page4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),

		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "done"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),

		FilterStatus:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		FilterPriority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		FilterCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		FilterUser:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "user")),
		FilterDue:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "due")),
		ClearFilters:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Page1, k.Page2, k.Page3, k.Page4, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Page1, k.Page2, k.Page3, k.Page4, k.NextPage, k.PrevPage},
		{k.Up, k.Down, k.New, k.Edit, k.Delete, k.Toggle},
		{k.FilterStatus, k.FilterPriority, k.FilterCategory, k.FilterUser, k.FilterDue, k.ClearFilters},
		{k.Quit},
	}
}
