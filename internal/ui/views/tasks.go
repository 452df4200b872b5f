package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskdash/internal/filter"
	"github.com/tgienger/taskdash/internal/models"
	"github.com/tgienger/taskdash/internal/store"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

// Form field indexes. fieldSave is the save button.
const (
	fieldName = iota
	fieldPriority
	fieldCategory
	fieldDueDate
	fieldAssignedUser
	fieldAssignedOn
	fieldSave
	fieldCount
)

var fieldLabels = [...]string{
	fieldName:         "Task name:",
	fieldPriority:     "Priority (High/Medium/Low):",
	fieldCategory:     "Category:",
	fieldDueDate:      "Due date (YYYY-MM-DD, optional):",
	fieldAssignedUser: "Assigned to:",
	fieldAssignedOn:   "Assigned on (YYYY-MM-DD):",
}

// DefaultCategories are offered as completions in the task form
var DefaultCategories = []string{"Frontend", "Backend", "Meeting", "Design", "Testing", "Documentation"}

// TaskListView shows the filterable task list and the add/edit form
type TaskListView struct {
	deps Deps

	width  int
	height int

	// Filter state lives here only; the store never sees it.
	spec    filter.Spec
	tasks   models.TaskCollection // filtered, in collection order
	cursor  int
	scrollY int

	// Task creation/editing
	editing      bool
	editingNew   bool
	editID       string
	inputs       []textinput.Model
	editFocusIdx int
	formErr      string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string
}

// NewTaskListView creates a new task list view
func NewTaskListView(deps Deps) *TaskListView {
	inputs := make([]textinput.Model, fieldSave)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 100
		inputs[i] = in
	}
	inputs[fieldName].Placeholder = "What needs doing?"
	inputs[fieldName].CharLimit = 200
	inputs[fieldPriority].Placeholder = "Medium"
	inputs[fieldPriority].ShowSuggestions = true
	inputs[fieldPriority].SetSuggestions([]string{"High", "Medium", "Low"})
	inputs[fieldCategory].Placeholder = "Frontend"
	inputs[fieldCategory].ShowSuggestions = true
	inputs[fieldDueDate].Placeholder = "2025-08-31"
	inputs[fieldDueDate].CharLimit = 10
	inputs[fieldAssignedUser].Placeholder = "Name"
	inputs[fieldAssignedUser].ShowSuggestions = true
	inputs[fieldAssignedOn].CharLimit = 10

	v := &TaskListView{
		deps:   deps,
		spec:   filter.Default(),
		inputs: inputs,
	}
	v.refresh()
	return v
}

func (v *TaskListView) Init() tea.Cmd { return nil }

// Capturing reports whether the form or a confirmation owns the keyboard
func (v *TaskListView) Capturing() bool {
	return v.editing || v.confirmingDelete
}

// Filter returns the active filter
func (v *TaskListView) Filter() filter.Spec { return v.spec }

// Visible returns the tasks currently shown
func (v *TaskListView) Visible() models.TaskCollection { return v.tasks }

// refresh re-derives the visible list from the store and keeps the cursor in range
func (v *TaskListView) refresh() {
	v.tasks = filter.Apply(v.deps.Store.State(), v.spec, v.deps.Clock.Today())
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
	v.ensureVisible()
}

func (v *TaskListView) selected() (models.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return models.Task{}, false
	}
	return v.tasks[v.cursor], true
}

func (v *TaskListView) dispatch(ev store.Event) {
	v.deps.Store.Dispatch(ev)
	v.refresh()
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		inputWidth := clamp(styles.ContentWidth(v.width)-10, 20, 50)
		for i := range v.inputs {
			v.inputs[i].Width = inputWidth
		}
		v.ensureVisible()
		return v, nil

	case StateChanged:
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.deps.Keys
	tasks := v.deps.Store.State()

	switch {
	case key.Matches(msg, k.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}

	case key.Matches(msg, k.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}

	case key.Matches(msg, k.Toggle):
		if t, ok := v.selected(); ok {
			v.dispatch(store.ToggleComplete{ID: t.ID})
		}

	case key.Matches(msg, k.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, k.Edit), key.Matches(msg, k.Enter):
		if t, ok := v.selected(); ok {
			v.startEditTask(t)
			return v, textinput.Blink
		}

	case key.Matches(msg, k.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Name
		}

	case key.Matches(msg, k.FilterStatus):
		v.spec.Status = filter.NextStatus(v.spec.Status, 1)
		v.refresh()

	case key.Matches(msg, k.FilterPriority):
		v.spec.Priority = filter.NextPriority(v.spec.Priority, 1)
		v.refresh()

	case key.Matches(msg, k.FilterCategory):
		v.spec.Category = filter.NextLabel(v.spec.Category, filter.Categories(tasks), 1)
		v.refresh()

	case key.Matches(msg, k.FilterUser):
		v.spec.AssignedUser = filter.NextLabel(v.spec.AssignedUser, filter.AssignedUsers(tasks), 1)
		v.refresh()

	case key.Matches(msg, k.FilterDue):
		v.spec.DueDate = filter.NextDueBucket(v.spec.DueDate, 1)
		v.refresh()

	case key.Matches(msg, k.ClearFilters):
		v.spec = filter.Default()
		v.refresh()
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		v.dispatch(store.DeleteTask{ID: v.deleteTargetID})
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := v.deps.Keys

	switch {
	case key.Matches(msg, k.Back):
		v.editing = false
		v.formErr = ""
		return v, nil

	case key.Matches(msg, k.Save):
		v.saveTask()
		return v, nil

	case key.Matches(msg, k.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + fieldCount - 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, k.Enter):
		// Enter on a field moves to the next one; on the button it saves
		if v.editFocusIdx == fieldSave {
			v.saveTask()
			return v, nil
		}
		v.editFocusIdx++
		v.updateEditFocus()
		return v, nil
	}

	if v.editFocusIdx == fieldSave {
		return v, nil
	}
	var cmd tea.Cmd
	v.inputs[v.editFocusIdx], cmd = v.inputs[v.editFocusIdx].Update(msg)
	return v, cmd
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

func (v *TaskListView) visibleItems() int {
	// Each task item is 2 lines (name + details)
	availableHeight := v.height - 14
	if v.height == 0 {
		availableHeight = 20
	}
	return max(availableHeight/2, 1)
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editID = ""
	v.fillForm(models.Draft{
		Priority:   string(models.PriorityMedium),
		Category:   DefaultCategories[0],
		AssignedOn: v.deps.Clock.Today().String(),
	})
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editID = task.ID
	v.fillForm(models.DraftFrom(task))
}

func (v *TaskListView) fillForm(d models.Draft) {
	tasks := v.deps.Store.State()
	categories := slices.Clone(DefaultCategories)
	for _, c := range filter.Categories(tasks) {
		if !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}
	v.inputs[fieldCategory].SetSuggestions(categories)
	v.inputs[fieldAssignedUser].SetSuggestions(filter.AssignedUsers(tasks))

	v.inputs[fieldName].SetValue(d.Name)
	v.inputs[fieldPriority].SetValue(d.Priority)
	v.inputs[fieldCategory].SetValue(d.Category)
	v.inputs[fieldDueDate].SetValue(d.DueDate)
	v.inputs[fieldAssignedUser].SetValue(d.AssignedUser)
	v.inputs[fieldAssignedOn].SetValue(d.AssignedOn)
	v.formErr = ""
	v.editFocusIdx = fieldName
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	for i := range v.inputs {
		if i == v.editFocusIdx {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
}

func (v *TaskListView) draft() models.Draft {
	return models.Draft{
		Name:         v.inputs[fieldName].Value(),
		Priority:     v.inputs[fieldPriority].Value(),
		Category:     v.inputs[fieldCategory].Value(),
		DueDate:      v.inputs[fieldDueDate].Value(),
		AssignedUser: v.inputs[fieldAssignedUser].Value(),
		AssignedOn:   v.inputs[fieldAssignedOn].Value(),
	}
}

// saveTask validates the form and dispatches; on error the form stays open
// and nothing is dispatched
func (v *TaskListView) saveTask() {
	today := v.deps.Clock.Today()
	d := v.draft()

	var (
		ev  store.Event
		err error
	)
	if v.editingNew {
		var task models.Task
		if task, err = d.Task(v.deps.Store.NewID(), today); err == nil {
			ev = store.AddTask{Task: task}
		}
	} else {
		existing := v.deps.Store.State()
		idx := models.IndexOf(existing, v.editID)
		if idx < 0 {
			// Deleted while the form was open
			v.editing = false
			return
		}
		var task models.Task
		if task, err = d.Apply(existing[idx], today); err == nil {
			ev = store.UpdateTask{Task: task}
		}
	}
	if err != nil {
		v.formErr = err.Error()
		return
	}

	v.editing = false
	v.formErr = ""
	v.dispatch(ev)
}

// View renders the view
func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *TaskListView) renderHeader() string {
	s := v.deps.Styles

	button := func(label, value string) string {
		style := s.FilterButton
		if value != "" && value != filter.All {
			style = s.FilterActive
		}
		return style.Render(label + ": " + value)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		button("Status", string(v.spec.Status)),
		button("Priority", v.spec.Priority),
		button("Category", v.spec.Category),
		button("User", v.spec.AssignedUser),
		button("Due", string(v.spec.DueDate)),
	)

	title := s.Title.Render("Tasks") + " " +
		s.TitleMuted.Render(fmt.Sprintf("%d of %d", len(v.tasks), v.deps.Store.Len()))

	return lipgloss.JoinVertical(lipgloss.Left, title, s.FilterBar.Render(bar))
}

func (v *TaskListView) renderTaskList() string {
	s := v.deps.Styles

	if len(v.tasks) == 0 {
		if v.spec.Active() > 0 {
			return s.TitleMuted.Render("No tasks match the filters. Press 'r' to reset.")
		}
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.tasks[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.deps.Styles
	width := max(styles.ContentWidth(v.width)-4, 20)
	today := v.deps.Clock.Today()

	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}
	name := truncate(task.Name, width-14)
	if task.Completed {
		name = s.TaskDone.Render(name)
	}
	titleLine := fmt.Sprintf("%s %s %s", check, styles.Priority(task.Priority).Render(string(task.Priority)), name)

	due := "no due date"
	if task.HasDueDate() {
		due = "due " + task.DueDate.String()
		if filter.BucketOf(task, today) == filter.DueOverdue && !task.Completed {
			due = s.Overdue.Render(due + " (overdue)")
		}
	}
	detailLine := s.Tag.Render(task.Category) + s.TitleMuted.Render(task.AssignedUser+" · ") + due

	style := s.ListItem
	if selected {
		style = s.ListSelected
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Width(width).Render(titleLine),
		style.Width(width).Render(detailLine),
	)
}

func (v *TaskListView) renderEditForm() string {
	s := v.deps.Styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "New Task"
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	rows := []string{s.Title.Render(formTitle), ""}
	for i := range v.inputs {
		style := s.Input
		if i == v.editFocusIdx {
			style = s.InputFocused
		}
		rows = append(rows, fieldLabels[i], style.Width(inputWidth).Render(v.inputs[i].View()))
	}

	btnStyle := s.Button
	if v.editFocusIdx == fieldSave {
		btnStyle = s.ButtonFocused
	}
	rows = append(rows, "", btnStyle.Render(" Save "))
	if v.formErr != "" {
		rows = append(rows, s.InputError.Render(v.formErr))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • →: accept suggestion • Ctrl+S: save • Esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TaskListView) renderHelp() string {
	return helpLine(v.deps.Styles,
		"space", "done",
		"n", "new",
		"e", "edit",
		"d", "del",
		"s/p/c/u/f", "filter",
		"r", "reset",
	)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.deps.Styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	return lipgloss.PlaceHorizontal(contentWidth, lipgloss.Center, content)
}
