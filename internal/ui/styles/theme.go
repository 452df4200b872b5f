package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskdash/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),
}

// Gruvbox is the warm dark alternative
var Gruvbox = Theme{
	Name: "Gruvbox",

	Background:    lipgloss.Color("#282828"),
	Foreground:    lipgloss.Color("#ebdbb2"),
	ForegroundDim: lipgloss.Color("#928374"),

	Primary:   lipgloss.Color("#83a598"),
	Secondary: lipgloss.Color("#d3869b"),
	Accent:    lipgloss.Color("#8ec07c"),

	Success: lipgloss.Color("#b8bb26"),
	Warning: lipgloss.Color("#fabd2f"),
	Error:   lipgloss.Color("#fb4934"),
	Info:    lipgloss.Color("#83a598"),

	Border:      lipgloss.Color("#504945"),
	BorderFocus: lipgloss.Color("#83a598"),
	Selection:   lipgloss.Color("#3c3836"),
	Cursor:      lipgloss.Color("#ebdbb2"),
}

var themes = map[string]Theme{
	"tokyo-night": TokyoNight,
	"gruvbox":     Gruvbox,
}

// Current holds the active theme
var Current = TokyoNight

// Use makes the named theme current. Styles built earlier keep their colors.
func Use(name string) error {
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	Current = t
	return nil
}

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Page tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Filter bar
	FilterBar    lipgloss.Style
	FilterButton lipgloss.Style
	FilterActive lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Stat cards
	Card      lipgloss.Style
	CardValue lipgloss.Style
	CardLabel lipgloss.Style

	// Task item
	TaskDone lipgloss.Style
	Overdue  lipgloss.Style
	Tag      lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputError   lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Tab: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1).
			Bold(true),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		FilterButton: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		FilterActive: lipgloss.NewStyle().
			Foreground(t.Accent).
			Padding(0, 1).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(19),

		CardValue: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		CardLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		Overdue: lipgloss.NewStyle().
			Foreground(t.Error),

		Tag: lipgloss.NewStyle().
			Foreground(t.Secondary).
			MarginRight(1),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		InputError: lipgloss.NewStyle().
			Foreground(t.Error),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),
	}
}

// Priority returns the style for a priority badge
func Priority(p models.Priority) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch p {
	case models.PriorityHigh:
		return s.Foreground(Current.Error)
	case models.PriorityMedium:
		return s.Foreground(Current.Warning)
	case models.PriorityLow:
		return s.Foreground(Current.Success)
	}
	return s.Foreground(Current.ForegroundDim)
}
