package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/taskdash/internal/clock"
	"github.com/tgienger/taskdash/internal/models"
	"github.com/tgienger/taskdash/internal/store"
	"github.com/tgienger/taskdash/internal/ui/keys"
	"github.com/tgienger/taskdash/internal/ui/styles"
	"github.com/tgienger/taskdash/internal/ui/views"
)

// Page is the currently active page
type Page int

const (
	PageDashboard Page = iota
	PageTasks
	PageAnalytics
	PageSettings
	pageCount
)

var pageNames = [...]string{"Dashboard", "Tasks", "Analytics", "Settings"}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return "Unknown"
	}
	return pageNames[p]
}

// page is what the app needs from each view
type page interface {
	tea.Model
	// Capturing is true while the view is reading text or a confirmation,
	// in which case global keys are passed through.
	Capturing() bool
}

// Options tune the app
type Options struct {
	RecentLimit int
}

type App struct {
	store       *store.Store
	keys        keys.KeyMap
	styles      *styles.Styles
	help        help.Model
	currentPage Page
	pages       [pageCount]page

	changes     chan struct{}
	unsubscribe func()

	width  int
	height int
}

// Creates a new application around st. Call Close when the program exits.
func NewApp(st *store.Store, clk clock.Clock, opts Options) *App {
	s := styles.NewStyles()
	deps := views.Deps{
		Store:       st,
		Clock:       clk,
		Styles:      s,
		Keys:        keys.DefaultKeyMap(),
		RecentLimit: opts.RecentLimit,
	}

	a := &App{
		store:   st,
		keys:    deps.Keys,
		styles:  s,
		help:    help.New(),
		changes: make(chan struct{}, 1),
	}
	a.pages = [pageCount]page{
		PageDashboard: views.NewDashboardView(deps),
		PageTasks:     views.NewTaskListView(deps),
		PageAnalytics: views.NewAnalyticsView(deps),
		PageSettings:  views.NewSettingsView(deps),
	}

	// Listeners run on whichever goroutine dispatched; hand off to the
	// bubbletea loop through the channel. One pending signal is enough since
	// views re-read the store.
	a.unsubscribe = st.Subscribe(func(models.TaskCollection) {
		select {
		case a.changes <- struct{}{}:
		default:
		}
	})
	return a
}

// Close detaches the app from the store
func (a *App) Close() {
	a.unsubscribe()
}

// CurrentPage returns the active page
func (a *App) CurrentPage() Page { return a.currentPage }

// Tasks returns the tasks page
func (a *App) Tasks() *views.TaskListView {
	return a.pages[PageTasks].(*views.TaskListView)
}

// Settings returns the settings page
func (a *App) Settings() *views.SettingsView {
	return a.pages[PageSettings].(*views.SettingsView)
}

// waitForChange blocks until the store signals a change
func (a *App) waitForChange() tea.Msg {
	<-a.changes
	return views.StateChanged{Revision: a.store.Revision()}
}

func (a *App) Init() tea.Cmd {
	return a.waitForChange
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = styles.ContentWidth(msg.Width)
		// Every page keeps its size, not just the visible one
		for _, p := range a.pages {
			p.Update(msg)
		}
		return a, nil

	case views.StateChanged:
		for _, p := range a.pages {
			p.Update(msg)
		}
		return a, a.waitForChange

	case tea.KeyMsg:
		current := a.pages[a.currentPage]
		if current.Capturing() {
			_, cmd := current.Update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Page1):
			a.currentPage = PageDashboard
			return a, nil
		case key.Matches(msg, a.keys.Page2):
			a.currentPage = PageTasks
			return a, nil
		case key.Matches(msg, a.keys.Page3):
			a.currentPage = PageAnalytics
			return a, nil
		case key.Matches(msg, a.keys.Page4):
			a.currentPage = PageSettings
			return a, nil
		case key.Matches(msg, a.keys.NextPage):
			a.currentPage = (a.currentPage + 1) % pageCount
			return a, nil
		case key.Matches(msg, a.keys.PrevPage):
			a.currentPage = (a.currentPage + pageCount - 1) % pageCount
			return a, nil
		}
	}

	_, cmd := a.pages[a.currentPage].Update(msg)
	return a, cmd
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.pages[a.currentPage].View())
	b.WriteString("\n")
	b.WriteString(a.styles.StatusBar.Render(a.help.View(a.keys)))
	return styles.CenterView(b.String(), a.width, a.height)
}

func (a *App) renderTabs() string {
	var tabs []string
	for p := PageDashboard; p < pageCount; p++ {
		label := " " + string(rune('1'+p)) + " " + p.String() + " "
		if p == a.currentPage {
			tabs = append(tabs, a.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(label))
		}
	}
	return strings.Join(tabs, "")
}
