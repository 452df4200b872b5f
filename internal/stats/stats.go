// Package stats computes read-only aggregates over a task collection.
//
// Every function is pure and recomputed on demand. An empty collection is a
// valid input and yields zero counts and 0% rates.
package stats

import (
	"math"
	"slices"

	"github.com/tgienger/taskdash/internal/filter"
	"github.com/tgienger/taskdash/internal/models"
)

// Percent returns round(part/whole*100), or 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// UserStats is the per-assignee task tally.
type UserStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Rate is the assignee's completion percentage.
func (u UserStats) Rate() int {
	return Percent(u.Completed, u.Total)
}

// CategoryCounts maps each category to its number of tasks.
func CategoryCounts(tasks models.TaskCollection) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Category]++
	}
	return counts
}

// PriorityCounts maps each priority to its number of tasks.
func PriorityCounts(tasks models.TaskCollection) map[models.Priority]int {
	counts := make(map[models.Priority]int)
	for _, t := range tasks {
		counts[t.Priority]++
	}
	return counts
}

// PerUser maps each assignee to their total and completed tasks.
func PerUser(tasks models.TaskCollection) map[string]UserStats {
	users := make(map[string]UserStats)
	for _, t := range tasks {
		u := users[t.AssignedUser]
		u.Total++
		if t.Completed {
			u.Completed++
		}
		users[t.AssignedUser] = u
	}
	return users
}

// CompletedCount counts completed tasks.
func CompletedCount(tasks models.TaskCollection) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// CompletionRate is the global completion percentage.
func CompletionRate(tasks models.TaskCollection) int {
	return Percent(CompletedCount(tasks), len(tasks))
}

// AverageTasksPerUser is round(total/distinct assignees), or 0 with no users.
func AverageTasksPerUser(tasks models.TaskCollection) int {
	users := len(PerUser(tasks))
	if users == 0 {
		return 0
	}
	return int(math.Round(float64(len(tasks)) / float64(users)))
}

// Dashboard holds the summary counts shown on the landing page.
type Dashboard struct {
	Total     int `json:"totalTasks"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	DueToday  int `json:"dueToday"`
}

// Summarize computes the dashboard counts. Overdue and DueToday only count
// incomplete tasks that have a due date.
func Summarize(tasks models.TaskCollection, today models.Date) Dashboard {
	d := Dashboard{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			d.Completed++
			continue
		}
		switch filter.BucketOf(t, today) {
		case filter.DueOverdue:
			d.Overdue++
		case filter.DueToday:
			d.DueToday++
		}
	}
	return d
}

// Recent returns up to n tasks ordered by AssignedOn, newest first. Ties
// keep collection order. The input is not reordered.
func Recent(tasks models.TaskCollection, n int) models.TaskCollection {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b models.Task) int {
		return b.AssignedOn.Compare(a.AssignedOn)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = models.TaskCollection{}
	}
	return sorted
}

// HighPriorityOpen returns the incomplete High priority tasks in collection order.
func HighPriorityOpen(tasks models.TaskCollection) models.TaskCollection {
	out := models.TaskCollection{}
	for _, t := range tasks {
		if t.Priority == models.PriorityHigh && !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// LabelCount is one row of an ordered breakdown.
type LabelCount struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// ByCategory lists category counts in first-appearance order.
func ByCategory(tasks models.TaskCollection) []LabelCount {
	counts := CategoryCounts(tasks)
	out := []LabelCount{}
	for _, c := range filter.Categories(tasks) {
		out = append(out, LabelCount{Label: c, Count: counts[c], Percent: Percent(counts[c], len(tasks))})
	}
	return out
}

// ByPriority lists priority counts in first-appearance order.
func ByPriority(tasks models.TaskCollection) []LabelCount {
	counts := PriorityCounts(tasks)
	seen := make(map[models.Priority]bool)
	out := []LabelCount{}
	for _, t := range tasks {
		if seen[t.Priority] {
			continue
		}
		seen[t.Priority] = true
		n := counts[t.Priority]
		out = append(out, LabelCount{Label: string(t.Priority), Count: n, Percent: Percent(n, len(tasks))})
	}
	return out
}

// UserRow is one row of the team performance table.
type UserRow struct {
	User string `json:"user"`
	UserStats
	Rate int `json:"rate"`
}

// ByUser lists per-assignee stats in first-appearance order.
func ByUser(tasks models.TaskCollection) []UserRow {
	users := PerUser(tasks)
	out := []UserRow{}
	for _, u := range filter.AssignedUsers(tasks) {
		s := users[u]
		out = append(out, UserRow{User: u, UserStats: s, Rate: s.Rate()})
	}
	return out
}
