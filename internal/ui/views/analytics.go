package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskdash/internal/stats"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

// AnalyticsView renders the aggregate report with bar charts
type AnalyticsView struct {
	deps   Deps
	bar    progress.Model
	width  int
	height int
}

// NewAnalyticsView creates a new analytics view
func NewAnalyticsView(deps Deps) *AnalyticsView {
	bar := progress.New(
		progress.WithGradient(string(styles.Current.Primary), string(styles.Current.Secondary)),
		progress.WithoutPercentage(),
		progress.WithWidth(24),
	)
	return &AnalyticsView{deps: deps, bar: bar}
}

func (v *AnalyticsView) Init() tea.Cmd { return nil }

func (v *AnalyticsView) Capturing() bool { return false }

func (v *AnalyticsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.width = msg.Width
		v.height = msg.Height
		v.bar.Width = clamp(styles.ContentWidth(v.width)-40, 10, 30)
	}
	return v, nil
}

func (v *AnalyticsView) View() string {
	s := v.deps.Styles
	report := stats.Build(v.deps.Store.State(), v.deps.Clock.Today())

	card := func(label, value string) string {
		return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.CardValue.Render(value),
			s.CardLabel.Render(label),
		))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Completion Rate", strconv.Itoa(report.CompletionRate)+"%"),
		card("Categories", strconv.Itoa(report.TotalCategories)),
		card("Team Members", strconv.Itoa(report.TeamMembers)),
		card("Avg Tasks/User", strconv.Itoa(report.AverageTasksPerUser)),
	)

	var b strings.Builder
	b.WriteString(s.Title.Render("Analytics"))
	b.WriteString("\n\n")
	b.WriteString(cards)
	b.WriteString("\n\n")

	b.WriteString(s.Title.Render("Tasks by Category"))
	b.WriteString("\n")
	b.WriteString(v.renderBreakdown(report.Categories))
	b.WriteString("\n\n")

	b.WriteString(s.Title.Render("Tasks by Priority"))
	b.WriteString("\n")
	b.WriteString(v.renderBreakdown(report.Priorities))
	b.WriteString("\n\n")

	b.WriteString(s.Title.Render("Team Performance"))
	b.WriteString("\n")
	b.WriteString(v.renderTeam(report.Users))
	return b.String()
}

func (v *AnalyticsView) renderBreakdown(rows []stats.LabelCount) string {
	s := v.deps.Styles
	if len(rows) == 0 {
		return s.ListItem.Render(s.TitleMuted.Render("No data."))
	}
	var lines []string
	for _, r := range rows {
		lines = append(lines, s.ListItem.Render(fmt.Sprintf("%-14s %s %2d (%d%%)",
			truncate(r.Label, 14), v.bar.ViewAs(float64(r.Percent)/100), r.Count, r.Percent)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *AnalyticsView) renderTeam(rows []stats.UserRow) string {
	s := v.deps.Styles
	if len(rows) == 0 {
		return s.ListItem.Render(s.TitleMuted.Render("No team members."))
	}
	lines := []string{s.ListItem.Render(s.TitleMuted.Render(fmt.Sprintf("%-16s %5s %5s  %s", "Member", "Total", "Done", "Rate")))}
	for _, r := range rows {
		lines = append(lines, s.ListItem.Render(fmt.Sprintf("%-16s %5d %5d  %s %3d%%",
			truncate(r.User, 16), r.Total, r.Completed, v.bar.ViewAs(float64(r.Rate)/100), r.Rate)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
