package views

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskdash/internal/models"
	"github.com/tgienger/taskdash/internal/stats"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

// highPriorityLimit caps the dashboard's high-priority list
const highPriorityLimit = 5

// DashboardView shows the headline counts, recent tasks and open
// high-priority work
type DashboardView struct {
	deps   Deps
	width  int
	height int
}

// NewDashboardView creates a new dashboard view
func NewDashboardView(deps Deps) *DashboardView {
	return &DashboardView{deps: deps}
}

func (v *DashboardView) Init() tea.Cmd { return nil }

// Capturing reports whether the view wants every key. The dashboard never does.
func (v *DashboardView) Capturing() bool { return false }

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
	}
	return v, nil
}

func (v *DashboardView) View() string {
	s := v.deps.Styles
	tasks := v.deps.Store.State()
	today := v.deps.Clock.Today()
	summary := stats.Summarize(tasks, today)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderCard("Total Tasks", summary.Total),
		v.renderCard("Completed", summary.Completed),
		v.renderCard("Overdue", summary.Overdue),
		v.renderCard("Due Today", summary.DueToday),
	)

	var b strings.Builder
	b.WriteString(s.Title.Render("Dashboard"))
	b.WriteString(" ")
	b.WriteString(s.TitleMuted.Render(today.String()))
	b.WriteString("\n\n")
	b.WriteString(cards)
	b.WriteString("\n\n")

	b.WriteString(s.Title.Render("Recent Tasks"))
	b.WriteString("\n")
	b.WriteString(v.renderList(stats.Recent(tasks, v.deps.RecentLimit), "No tasks yet."))
	b.WriteString("\n")

	b.WriteString(s.Title.Render("High Priority"))
	b.WriteString("\n")
	urgent := stats.HighPriorityOpen(tasks)
	if len(urgent) > highPriorityLimit {
		urgent = urgent[:highPriorityLimit]
	}
	b.WriteString(v.renderList(urgent, "Nothing urgent."))

	return b.String()
}

func (v *DashboardView) renderCard(label string, value int) string {
	s := v.deps.Styles
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.CardValue.Render(strconv.Itoa(value)),
		s.CardLabel.Render(label),
	))
}

func (v *DashboardView) renderList(tasks models.TaskCollection, empty string) string {
	s := v.deps.Styles
	if len(tasks) == 0 {
		return s.ListItem.Render(s.TitleMuted.Render(empty))
	}

	width := max(styles.ContentWidth(v.width)-4, 20)
	var lines []string
	for _, t := range tasks {
		name := truncate(t.Name, width/2)
		if t.Completed {
			name = s.TaskDone.Render(name)
		}
		line := fmt.Sprintf("%s %s %s",
			styles.Priority(t.Priority).Render(fmt.Sprintf("%-6s", t.Priority)),
			name,
			s.TitleMuted.Render("· "+t.AssignedUser),
		)
		lines = append(lines, s.ListItem.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
