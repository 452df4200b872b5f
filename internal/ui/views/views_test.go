package views

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskdash/internal/clock"
	"github.com/tgienger/taskdash/internal/filter"
	"github.com/tgienger/taskdash/internal/models"
	"github.com/tgienger/taskdash/internal/store"
	"github.com/tgienger/taskdash/internal/ui/keys"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

var today = models.MustParseDate("2025-08-20")

func newDeps() Deps {
	return Deps{
		Store: store.New(
			store.WithTasks(store.Seed()),
			store.WithIDGenerator(store.NewSequenceGenerator("t", 6)),
		),
		Clock:       clock.Fixed(today),
		Styles:      styles.NewStyles(),
		Keys:        keys.DefaultKeyMap(),
		RecentLimit: 5,
	}
}

func press(m tea.Model, input ...string) tea.Model {
	for _, k := range input {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func ids(tasks models.TaskCollection) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestTaskList_InitialState(t *testing.T) {
	v := NewTaskListView(newDeps())
	assert.Equal(t, filter.Default(), v.Filter())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(v.Visible()))
	assert.False(t, v.Capturing())
	assert.Contains(t, v.View(), "Implement user authentication")
}

func TestTaskList_NavigateAndToggle(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)

	press(v, "j", "j", "space")
	state := deps.Store.State()
	assert.True(t, state[2].Completed, "third task toggled")

	press(v, "k", "k", "k", "space")
	assert.True(t, deps.Store.State()[0].Completed)

	press(v, "space")
	assert.False(t, deps.Store.State()[0].Completed)
}

func TestTaskList_FilterCycling(t *testing.T) {
	v := NewTaskListView(newDeps())

	press(v, "s")
	assert.Equal(t, filter.StatusCompleted, v.Filter().Status)
	assert.Equal(t, []string{"2", "5"}, ids(v.Visible()))

	press(v, "s", "f")
	assert.Equal(t, filter.StatusIncomplete, v.Filter().Status)
	assert.Equal(t, filter.DueOverdue, v.Filter().DueDate)
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids(v.Visible()))

	press(v, "p")
	assert.Equal(t, "High", v.Filter().Priority)
	assert.Equal(t, []string{"1", "3", "6"}, ids(v.Visible()))

	press(v, "u")
	assert.Equal(t, "Alice Johnson", v.Filter().AssignedUser)
	assert.Equal(t, []string{"1"}, ids(v.Visible()))

	press(v, "c", "c")
	assert.Equal(t, "Design", v.Filter().Category)
	assert.Empty(t, v.Visible())
	assert.Contains(t, v.View(), "No tasks match")

	press(v, "r")
	assert.Equal(t, filter.Default(), v.Filter())
	assert.Len(t, v.Visible(), 6)
}

func TestTaskList_CursorClampsWhenListShrinks(t *testing.T) {
	v := NewTaskListView(newDeps())
	press(v, "j", "j", "j", "j", "j")
	assert.Equal(t, 5, v.cursor)

	press(v, "s")
	assert.Equal(t, 1, v.cursor)
}

func TestTaskList_DeleteConfirmation(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)

	press(v, "d")
	assert.True(t, v.Capturing())
	assert.Contains(t, v.View(), "Delete Task?")

	press(v, "n")
	assert.False(t, v.Capturing())
	assert.Equal(t, 6, deps.Store.Len())

	press(v, "d", "y")
	assert.Equal(t, 5, deps.Store.Len())
	assert.Equal(t, -1, models.IndexOf(deps.Store.State(), "1"))
	assert.Equal(t, []string{"2", "3", "4", "5", "6"}, ids(v.Visible()))
}

func TestTaskList_AddViaForm(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)

	press(v, "n")
	require.True(t, v.Capturing())
	assert.Equal(t, "Medium", v.inputs[fieldPriority].Value())
	assert.Equal(t, "2025-08-20", v.inputs[fieldAssignedOn].Value())

	press(v, "Triage bugs", "tab")
	v.inputs[fieldPriority].SetValue("high")
	v.inputs[fieldAssignedUser].SetValue("Dana")
	press(v, "ctrl+s")

	assert.False(t, v.Capturing())
	state := deps.Store.State()
	require.Len(t, state, 7)
	added := state[6]
	assert.Equal(t, "t7", added.ID)
	assert.Equal(t, "Triage bugs", added.Name)
	assert.Equal(t, models.PriorityHigh, added.Priority)
	assert.Equal(t, "Frontend", added.Category)
	assert.Equal(t, "Dana", added.AssignedUser)
	assert.Equal(t, today, added.AssignedOn)
	assert.False(t, added.Completed)
	assert.False(t, added.HasDueDate())
}

func TestTaskList_EmptyNameIsRejected(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)

	press(v, "n", "ctrl+s")
	assert.True(t, v.Capturing(), "form stays open")
	assert.Equal(t, models.ErrEmptyName.Error(), v.formErr)
	assert.Contains(t, v.View(), "task name is required")
	assert.Equal(t, 6, deps.Store.Len())
	assert.Equal(t, uint64(0), deps.Store.Revision())

	press(v, "esc")
	assert.False(t, v.Capturing())
	assert.Equal(t, 6, deps.Store.Len())
}

func TestTaskList_InvalidDateIsRejected(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)

	press(v, "n", "Plan sprint")
	v.inputs[fieldDueDate].SetValue("next week")
	press(v, "ctrl+s")
	assert.True(t, v.Capturing())
	assert.Contains(t, v.formErr, "due date")
	assert.Equal(t, 6, deps.Store.Len())
}

func TestTaskList_EditKeepsIdentity(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)

	press(v, "j", "e")
	require.True(t, v.Capturing())
	assert.Equal(t, "Design dashboard wireframes", v.inputs[fieldName].Value())

	v.inputs[fieldName].SetValue("Design dashboard v2")
	v.inputs[fieldPriority].SetValue("Low")
	press(v, "ctrl+s")

	state := deps.Store.State()
	require.Len(t, state, 6)
	assert.Equal(t, "2", state[1].ID)
	assert.Equal(t, "Design dashboard v2", state[1].Name)
	assert.Equal(t, models.PriorityLow, state[1].Priority)
	assert.True(t, state[1].Completed)
}

func TestTaskList_FormNavigation(t *testing.T) {
	v := NewTaskListView(newDeps())
	press(v, "n")
	assert.Equal(t, fieldName, v.editFocusIdx)

	press(v, "tab", "tab")
	assert.Equal(t, fieldCategory, v.editFocusIdx)

	v.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldPriority, v.editFocusIdx)

	press(v, "enter", "enter", "enter", "enter", "enter")
	assert.Equal(t, fieldSave, v.editFocusIdx)

	press(v, "tab")
	assert.Equal(t, fieldName, v.editFocusIdx)
}

func TestTaskList_RefreshesOnStateChanged(t *testing.T) {
	deps := newDeps()
	v := NewTaskListView(deps)
	press(v, "s")
	require.Equal(t, []string{"2", "5"}, ids(v.Visible()))

	deps.Store.Dispatch(store.ToggleComplete{ID: "1"})
	v.Update(StateChanged{Revision: deps.Store.Revision()})
	assert.Equal(t, []string{"1", "2", "5"}, ids(v.Visible()))
}

func TestDashboard_View(t *testing.T) {
	v := NewDashboardView(newDeps())
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	out := v.View()

	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "2025-08-20")
	assert.Contains(t, out, "Total Tasks")
	assert.Contains(t, out, "Client meeting preparation")
	assert.Contains(t, out, "High Priority")
	assert.False(t, v.Capturing())
}

func TestDashboard_HighPriorityCappedAtFive(t *testing.T) {
	var tasks models.TaskCollection
	for i := 1; i <= 7; i++ {
		tasks = append(tasks, models.Task{
			ID:           fmt.Sprint(i),
			Name:         fmt.Sprintf("urgent-%d", i),
			Priority:     models.PriorityHigh,
			Category:     "Backend",
			DueDate:      today,
			AssignedUser: "Alice Johnson",
			AssignedOn:   today,
		})
	}
	deps := newDeps()
	deps.Store = store.New(store.WithTasks(tasks))
	deps.RecentLimit = 0

	out := NewDashboardView(deps).View()
	assert.Equal(t, 5, strings.Count(out, "urgent-"))
	assert.Contains(t, out, "urgent-5")
	assert.NotContains(t, out, "urgent-6")
}

func TestAnalytics_View(t *testing.T) {
	deps := newDeps()
	v := NewAnalyticsView(deps)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := v.View()
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "Team Performance")
	assert.Contains(t, out, "Charlie Brown")

	deps.Store.Dispatch(store.ToggleComplete{ID: "3"})
	assert.Contains(t, v.View(), "50%")
}

func TestAnalytics_EmptyStore(t *testing.T) {
	deps := newDeps()
	deps.Store = store.New()
	out := NewAnalyticsView(deps).View()
	assert.Contains(t, out, "No data.")
	assert.Contains(t, out, "No team members.")
}

func TestSettings_SeededFromTasks(t *testing.T) {
	v := NewSettingsView(newDeps())
	assert.Equal(t, []string{"Alice Johnson", "Bob Smith", "Charlie Brown"}, v.Members())
	assert.Equal(t, []string{"Backend", "Design", "Testing", "Documentation", "Meeting"}, v.CategoryNames())
	assert.Contains(t, v.View(), "Project Statistics")
}

func TestSettings_AddAndRemove(t *testing.T) {
	deps := newDeps()
	v := NewSettingsView(deps)

	press(v, "n")
	assert.True(t, v.Capturing())
	press(v, "Dana", "enter")
	assert.False(t, v.Capturing())
	assert.Equal(t, []string{"Alice Johnson", "Bob Smith", "Charlie Brown", "Dana"}, v.Members())

	press(v, "n", "Bob Smith", "enter")
	assert.True(t, v.Capturing(), "duplicates are refused")
	assert.Contains(t, v.addErr, "already exists")
	press(v, "esc")

	press(v, "l", "d")
	assert.Equal(t, []string{"Design", "Testing", "Documentation", "Meeting"}, v.CategoryNames())

	// Session lists never touch the tasks
	assert.Equal(t, 6, deps.Store.Len())
	assert.Equal(t, uint64(0), deps.Store.Revision())
}

func TestSettings_NamesAreNormalized(t *testing.T) {
	v := NewSettingsView(newDeps())

	press(v, "n", "  Rene\u0301e ", "enter")
	assert.False(t, v.Capturing())
	assert.Contains(t, v.Members(), "Ren\u00e9e")
	assert.NotContains(t, v.Members(), "Rene\u0301e")

	press(v, "n", "Ren\u00e9e", "enter")
	assert.True(t, v.Capturing(), "composed and decomposed forms are the same name")
	assert.Contains(t, v.addErr, "already exists")
}

func TestSettings_EscOutsidePromptIsIgnored(t *testing.T) {
	v := NewSettingsView(newDeps())

	_, cmd := v.Update(keyMsg("esc"))
	assert.Nil(t, cmd)
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.Len(t, v.Members(), 3)
}
