// Package filter selects the tasks matching a set of user-chosen predicates.
//
// A Spec is transient view state: it is never stored alongside the tasks and
// every result is recomputed from the current collection.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tgienger/taskdash/internal/models"
)

// All disables a filter dimension. The empty string behaves the same way.
const All = "All"

// ErrInvalidValue is returned when a filter value cannot be parsed.
var ErrInvalidValue = errors.New("invalid filter value")

// Status filters on completion.
type Status string

const (
	StatusAll        Status = All
	StatusCompleted  Status = "Completed"
	StatusIncomplete Status = "Incomplete"
)

// Statuses lists the status values in cycling order.
var Statuses = []Status{StatusAll, StatusCompleted, StatusIncomplete}

// DueBucket classifies a due date relative to today.
type DueBucket string

const (
	DueAll       DueBucket = All
	DueOverdue   DueBucket = "Overdue"
	DueToday     DueBucket = "Today"
	DueUpcoming  DueBucket = "Upcoming"
	DueNoDueDate DueBucket = "No Due Date"
)

// DueBuckets lists the due-date values in cycling order.
var DueBuckets = []DueBucket{DueAll, DueOverdue, DueToday, DueUpcoming, DueNoDueDate}

// Spec is the set of active predicates. Every non-All field must match.
type Spec struct {
	Status       Status
	Priority     string // All or a models.Priority name
	Category     string
	AssignedUser string
	DueDate      DueBucket
}

// Default returns a spec with every dimension set to All.
func Default() Spec {
	return Spec{
		Status:       StatusAll,
		Priority:     All,
		Category:     All,
		AssignedUser: All,
		DueDate:      DueAll,
	}
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Apply returns the tasks matching spec, in their original order. The input
// is never modified and the result never aliases it.
func Apply(tasks models.TaskCollection, spec Spec, today models.Date) models.TaskCollection {
	out := make(models.TaskCollection, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, spec, today) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether t satisfies every active predicate of spec.
func Matches(t models.Task, spec Spec, today models.Date) bool {
	switch spec.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusIncomplete:
		if t.Completed {
			return false
		}
	}

	if !isAll(spec.Priority) && string(t.Priority) != spec.Priority {
		return false
	}
	if !isAll(spec.Category) && t.Category != spec.Category {
		return false
	}
	if !isAll(spec.AssignedUser) && t.AssignedUser != spec.AssignedUser {
		return false
	}

	if isAll(string(spec.DueDate)) {
		return true
	}
	return BucketOf(t, today) == spec.DueDate
}

// BucketOf classifies the task's due date against today. Tasks without a
// due date are always DueNoDueDate.
func BucketOf(t models.Task, today models.Date) DueBucket {
	if !t.HasDueDate() {
		return DueNoDueDate
	}
	switch c := t.DueDate.Compare(today); {
	case c < 0:
		return DueOverdue
	case c == 0:
		return DueToday
	default:
		return DueUpcoming
	}
}

// Active counts the dimensions that are not All.
func (s Spec) Active() int {
	n := 0
	for _, v := range []string{string(s.Status), s.Priority, s.Category, s.AssignedUser, string(s.DueDate)} {
		if !isAll(v) {
			n++
		}
	}
	return n
}

// String summarizes the active predicates, e.g. "status=Incomplete due=Overdue".
func (s Spec) String() string {
	var parts []string
	add := func(name, v string) {
		if !isAll(v) {
			parts = append(parts, name+"="+v)
		}
	}
	add("status", string(s.Status))
	add("priority", s.Priority)
	add("category", s.Category)
	add("user", s.AssignedUser)
	add("due", string(s.DueDate))
	if len(parts) == 0 {
		return All
	}
	return strings.Join(parts, " ")
}

// ParseStatus parses a status name case-insensitively. Empty means All.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusAll, nil
	}
	for _, v := range Statuses {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: status %q (want all, completed or incomplete)", ErrInvalidValue, s)
}

// ParseDueBucket parses a due-date bucket name case-insensitively. Besides
// the display names it accepts "none" and "no-due-date". Empty means All.
func ParseDueBucket(s string) (DueBucket, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DueAll, nil
	}
	switch strings.ToLower(s) {
	case "none", "no-due-date", "no_due_date", "nodue":
		return DueNoDueDate, nil
	}
	for _, v := range DueBuckets {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: due %q (want all, overdue, today, upcoming or none)", ErrInvalidValue, s)
}

// ParsePriority parses a priority filter value. Empty or "all" means All.
func ParsePriority(s string) (string, error) {
	s = strings.TrimSpace(s)
	if isAll(s) || strings.EqualFold(s, All) {
		return All, nil
	}
	p, ok := models.ParsePriority(s)
	if !ok {
		return "", fmt.Errorf("%w: priority %q (want all, low, medium or high)", ErrInvalidValue, s)
	}
	return string(p), nil
}
