package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskdash/internal/filter"
	"github.com/tgienger/taskdash/internal/models"
)

// ListOptions holds the filter flags for the list command.
type ListOptions struct {
	Status   string
	Priority string
	Category string
	User     string
	Due      string
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Filter string                `json:"filter"`
	Count  int                   `json:"count"`
	Total  int                   `json:"total"`
	Tasks  models.TaskCollection `json:"tasks"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks matching the given filters",
		Long: `List the session's tasks, keeping only those that match every filter.

Filters left at "all" are ignored. Due buckets are relative to today
(see --today): overdue, today, upcoming or none.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", filter.All, "completion status (all|completed|incomplete)")
	cmd.Flags().StringVar(&opts.Priority, "priority", filter.All, "priority (all|high|medium|low)")
	cmd.Flags().StringVar(&opts.Category, "category", filter.All, "category name")
	cmd.Flags().StringVar(&opts.User, "user", filter.All, "assigned user")
	cmd.Flags().StringVar(&opts.Due, "due", filter.All, "due date bucket (all|overdue|today|upcoming|none)")

	return cmd
}

// Spec converts the flags to a filter spec.
func (o *ListOptions) Spec() (filter.Spec, error) {
	spec := filter.Default()
	var err error

	if spec.Status, err = filter.ParseStatus(o.Status); err != nil {
		return filter.Spec{}, err
	}
	if spec.Priority, err = filter.ParsePriority(o.Priority); err != nil {
		return filter.Spec{}, err
	}
	if spec.DueDate, err = filter.ParseDueBucket(o.Due); err != nil {
		return filter.Spec{}, err
	}
	spec.Category = labelFlag(o.Category)
	spec.AssignedUser = labelFlag(o.User)
	return spec, nil
}

// labelFlag maps "" and any casing of "all" to filter.All; other labels
// match exactly
func labelFlag(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, filter.All) {
		return filter.All
	}
	return v
}

func runList(rootOpts *RootOptions, opts *ListOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	spec, err := opts.Spec()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
	}

	sess, err := newSession(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	all := sess.store.State()
	today := sess.clock.Today()
	tasks := filter.Apply(all, spec, today)
	sess.logger.Debug("listed tasks", "filter", spec.String(), "matched", len(tasks), "total", len(all))

	if formatter.JSON() {
		return formatter.Success(ListResult{
			Filter: spec.String(),
			Count:  len(tasks),
			Total:  len(all),
			Tasks:  tasks,
		})
	}
	return formatter.Text(renderTaskTable(tasks, len(all), spec, today))
}

func renderTaskTable(tasks models.TaskCollection, total int, spec filter.Spec, today models.Date) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("No tasks match (filter: %s)", spec)
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := t.DueDate.String()
		if due == "" {
			due = "-"
		} else if !t.Completed && filter.BucketOf(t, today) == filter.DueOverdue {
			due += " !"
		}
		rows = append(rows, []string{done, t.ID, t.Name, string(t.Priority), t.Category, due, t.AssignedUser})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "TASK", "PRIORITY", "CATEGORY", "DUE", "ASSIGNED").
		Rows(rows...)

	return fmt.Sprintf("%s\n%d of %d tasks (filter: %s)", tbl.Render(), len(tasks), total, spec)
}
