package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyName       = errors.New("task name is required")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidDate     = errors.New("invalid date")
)

// Draft holds raw task form input before it becomes a Task
type Draft struct {
	Name         string
	Priority     string
	Category     string
	DueDate      string
	AssignedUser string
	AssignedOn   string
}

// DraftFrom pre-fills a draft with an existing task's fields
func DraftFrom(t Task) Draft {
	return Draft{
		Name:         t.Name,
		Priority:     string(t.Priority),
		Category:     t.Category,
		DueDate:      t.DueDate.String(),
		AssignedUser: t.AssignedUser,
		AssignedOn:   t.AssignedOn.String(),
	}
}

// Task validates the draft and builds an incomplete task with the given id.
// Labels are trimmed and NFC-normalized. An empty priority means Medium and
// an empty AssignedOn means today.
func (d Draft) Task(id string, today Date) (Task, error) {
	name := CleanLabel(d.Name)
	if name == "" {
		return Task{}, ErrEmptyName
	}

	priority := PriorityMedium
	if p := strings.TrimSpace(d.Priority); p != "" {
		parsed, ok := ParsePriority(p)
		if !ok {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, p)
		}
		priority = parsed
	}

	due, err := ParseDate(strings.TrimSpace(d.DueDate))
	if err != nil {
		return Task{}, fmt.Errorf("due date: %w", err)
	}

	assignedOn := today
	if s := strings.TrimSpace(d.AssignedOn); s != "" {
		if assignedOn, err = ParseDate(s); err != nil {
			return Task{}, fmt.Errorf("assigned on: %w", err)
		}
	}

	return Task{
		ID:           id,
		Name:         name,
		Priority:     priority,
		Category:     CleanLabel(d.Category),
		DueDate:      due,
		AssignedUser: CleanLabel(d.AssignedUser),
		AssignedOn:   assignedOn,
	}, nil
}

// Apply builds the replacement for an existing task, keeping its id and
// completion state.
func (d Draft) Apply(existing Task, today Date) (Task, error) {
	t, err := d.Task(existing.ID, today)
	if err != nil {
		return Task{}, err
	}
	t.Completed = existing.Completed
	return t, nil
}

// CleanLabel trims s and puts it in Unicode NFC form so equal-looking
// labels compare equal
func CleanLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
