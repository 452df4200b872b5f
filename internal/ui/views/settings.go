package views

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskdash/internal/filter"
	"github.com/tgienger/taskdash/internal/models"
	"github.com/tgienger/taskdash/internal/stats"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

// Settings sections
const (
	sectionMembers = iota
	sectionCategories
)

type labelItem struct {
	name  string
	count int
}

func (i labelItem) Title() string { return i.name }
func (i labelItem) Description() string {
	if i.count == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", i.count)
}
func (i labelItem) FilterValue() string { return i.name }

type labelDelegate struct {
	styles *styles.Styles
	width  int
	active *bool
}

func (d labelDelegate) Height() int                               { return 2 }
func (d labelDelegate) Spacing() int                              { return 0 }
func (d labelDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d labelDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(labelItem)
	if !ok {
		return
	}

	selected := index == m.Index() && *d.active
	width := max(d.width, 16)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(it.Title()), descStyle.Render(it.Description()))
}

// SettingsView manages the session's team member and category lists and
// shows project statistics. The lists start from the labels in use and are
// not written back to the tasks.
type SettingsView struct {
	deps Deps

	lists     [2]list.Model
	active    [2]bool
	delegates [2]*labelDelegate
	section   int

	adding   bool
	newLabel textinput.Model
	addErr   string

	width  int
	height int
}

// NewSettingsView creates a new settings view
func NewSettingsView(deps Deps) *SettingsView {
	tasks := deps.Store.State()

	newLabel := textinput.New()
	newLabel.CharLimit = 60

	v := &SettingsView{deps: deps, newLabel: newLabel}

	seeds := [2][]string{filter.AssignedUsers(tasks), filter.Categories(tasks)}
	titles := [2]string{"Team Members", "Categories"}
	for i := range v.lists {
		v.delegates[i] = &labelDelegate{styles: deps.Styles, width: 30, active: &v.active[i]}
		items := make([]list.Item, len(seeds[i]))
		for j, name := range seeds[i] {
			items[j] = labelItem{name: name}
		}
		l := list.New(items, v.delegates[i], 34, 12)
		l.Title = titles[i]
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		// Quitting is the app's decision, not the list's
		l.KeyMap.Quit.SetEnabled(false)
		l.KeyMap.ForceQuit.SetEnabled(false)
		l.Styles.Title = deps.Styles.Title
		v.lists[i] = l
	}
	v.active[sectionMembers] = true
	v.recount()
	return v
}

func (v *SettingsView) Init() tea.Cmd { return nil }

// Capturing reports whether the add prompt owns the keyboard
func (v *SettingsView) Capturing() bool { return v.adding }

// Members returns the session's team member names
func (v *SettingsView) Members() []string { return v.names(sectionMembers) }

// CategoryNames returns the session's category names
func (v *SettingsView) CategoryNames() []string { return v.names(sectionCategories) }

func (v *SettingsView) names(section int) []string {
	var out []string
	for _, it := range v.lists[section].Items() {
		out = append(out, it.(labelItem).name)
	}
	return out
}

// recount refreshes the per-label task counts from the store
func (v *SettingsView) recount() {
	tasks := v.deps.Store.State()
	perUser := stats.PerUser(tasks)
	perCategory := stats.CategoryCounts(tasks)
	for i := range v.lists {
		items := v.lists[i].Items()
		for j, it := range items {
			li := it.(labelItem)
			if i == sectionMembers {
				li.count = perUser[li.name].Total
			} else {
				li.count = perCategory[li.name]
			}
			items[j] = li
		}
		v.lists[i].SetItems(items)
	}
}

func (v *SettingsView) setSection(section int) {
	v.section = section
	for i := range v.active {
		v.active[i] = i == section
	}
}

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		colWidth := max(styles.ContentWidth(msg.Width)/2-4, 16)
		for i := range v.lists {
			v.delegates[i].width = colWidth
			v.lists[i].SetSize(colWidth+4, max(msg.Height-16, 6))
		}
		return v, nil

	case StateChanged:
		v.recount()
		return v, nil

	case tea.KeyMsg:
		if v.adding {
			return v.updateAdding(msg)
		}

		k := v.deps.Keys
		switch {
		case key.Matches(msg, k.Left):
			v.setSection(sectionMembers)
			return v, nil
		case key.Matches(msg, k.Right):
			v.setSection(sectionCategories)
			return v, nil
		case key.Matches(msg, k.New):
			v.adding = true
			v.addErr = ""
			v.newLabel.Reset()
			v.newLabel.Placeholder = "New member name"
			if v.section == sectionCategories {
				v.newLabel.Placeholder = "New category name"
			}
			v.newLabel.Focus()
			return v, textinput.Blink
		case key.Matches(msg, k.Delete):
			l := &v.lists[v.section]
			if len(l.Items()) > 0 {
				l.RemoveItem(l.Index())
				if l.Index() >= len(l.Items()) && len(l.Items()) > 0 {
					l.Select(len(l.Items()) - 1)
				}
			}
			return v, nil
		case key.Matches(msg, k.Quit), key.Matches(msg, k.Back):
			return v, nil
		}

		var cmd tea.Cmd
		v.lists[v.section], cmd = v.lists[v.section].Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *SettingsView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.deps.Keys
	switch {
	case key.Matches(msg, k.Back):
		v.adding = false
		v.newLabel.Blur()
		return v, nil

	case key.Matches(msg, k.Enter):
		name := models.CleanLabel(v.newLabel.Value())
		if name == "" {
			v.addErr = "name is required"
			return v, nil
		}
		if slices.Contains(v.names(v.section), name) {
			v.addErr = fmt.Sprintf("%q already exists", name)
			return v, nil
		}
		tasks := v.deps.Store.State()
		count := stats.CategoryCounts(tasks)[name]
		if v.section == sectionMembers {
			count = stats.PerUser(tasks)[name].Total
		}
		l := &v.lists[v.section]
		cmd := l.InsertItem(len(l.Items()), labelItem{name: name, count: count})
		v.adding = false
		v.addErr = ""
		v.newLabel.Blur()
		return v, cmd
	}

	var cmd tea.Cmd
	v.newLabel, cmd = v.newLabel.Update(msg)
	return v, cmd
}

func (v *SettingsView) View() string {
	s := v.deps.Styles
	tasks := v.deps.Store.State()
	summary := stats.Summarize(tasks, v.deps.Clock.Today())

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		v.lists[sectionMembers].View(),
		"  ",
		v.lists[sectionCategories].View(),
	)

	projectStats := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Project Statistics"),
		s.ListItem.Render(fmt.Sprintf("Total tasks:     %d", summary.Total)),
		s.ListItem.Render(fmt.Sprintf("Completed:       %d", summary.Completed)),
		s.ListItem.Render(fmt.Sprintf("Team members:    %d", len(v.lists[sectionMembers].Items()))),
		s.ListItem.Render(fmt.Sprintf("Categories:      %d", len(v.lists[sectionCategories].Items()))),
	)

	var b strings.Builder
	b.WriteString(s.Title.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(columns)
	b.WriteString("\n")

	if v.adding {
		b.WriteString(s.InputFocused.Width(clamp(styles.ContentWidth(v.width)-6, 20, 40)).Render(v.newLabel.View()))
		b.WriteString("\n")
		if v.addErr != "" {
			b.WriteString(s.InputError.Render(v.addErr))
			b.WriteString("\n")
		}
		b.WriteString(s.TitleMuted.Render("Enter: add • Esc: cancel"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(projectStats)
	b.WriteString("\n")
	b.WriteString(helpLine(s, "←/→", "section", "n", "add", "d", "remove"))
	return b.String()
}
