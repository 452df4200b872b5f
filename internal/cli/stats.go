package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tgienger/taskdash/internal/stats"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counts and analytics",
		Long: `Show the dashboard counts (total, completed, overdue, due today) and the
analytics report: completion rate and breakdowns by category, priority
and team member.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}
	return cmd
}

func runStats(rootOpts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	sess, err := newSession(rootOpts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer sess.Close()

	report := stats.Build(sess.store.State(), sess.clock.Today())
	formatter.VerboseLog("computed report for %d tasks as of %s", report.Dashboard.Total, report.Today)

	if formatter.JSON() {
		return formatter.Success(report)
	}
	return formatter.Text(renderReport(report))
}

func renderReport(r stats.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As of %s\n\n", r.Today)
	fmt.Fprintf(&b, "Total tasks:      %d\n", r.Dashboard.Total)
	fmt.Fprintf(&b, "Completed:        %d\n", r.Dashboard.Completed)
	fmt.Fprintf(&b, "Overdue:          %d\n", r.Dashboard.Overdue)
	fmt.Fprintf(&b, "Due today:        %d\n", r.Dashboard.DueToday)
	fmt.Fprintf(&b, "Completion rate:  %d%%\n", r.CompletionRate)
	fmt.Fprintf(&b, "Categories:       %d\n", r.TotalCategories)
	fmt.Fprintf(&b, "Team members:     %d\n", r.TeamMembers)
	fmt.Fprintf(&b, "Avg tasks/user:   %d\n", r.AverageTasksPerUser)

	breakdown := func(title string, rows []stats.LabelCount) {
		t := table.New().Border(lipgloss.NormalBorder()).Headers(title, "TASKS", "%")
		for _, row := range rows {
			t.Row(row.Label, strconv.Itoa(row.Count), strconv.Itoa(row.Percent)+"%")
		}
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	breakdown("CATEGORY", r.Categories)
	breakdown("PRIORITY", r.Priorities)

	team := table.New().Border(lipgloss.NormalBorder()).Headers("MEMBER", "TOTAL", "DONE", "RATE")
	for _, u := range r.Users {
		team.Row(u.User, strconv.Itoa(u.Total), strconv.Itoa(u.Completed), strconv.Itoa(u.Rate)+"%")
	}
	b.WriteString("\n")
	b.WriteString(team.Render())
	return b.String()
}
