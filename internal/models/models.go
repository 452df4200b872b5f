package models

import "strings"

// Priority is the urgency level of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority in display order (highest first)
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority matches a priority name case-insensitively
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether p is one of the three known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities: High=3, Medium=2, Low=1, unknown=0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task represents a single unit of work
type Task struct {
	ID           string   `json:"id"`
	Name         string   `json:"taskName"`
	Priority     Priority `json:"priority"`
	Category     string   `json:"category"`
	DueDate      Date     `json:"dueDate"` // zero value means no due date
	AssignedUser string   `json:"assignedUser"`
	AssignedOn   Date     `json:"assignedOn"`
	Completed    bool     `json:"completed"`
}

// HasDueDate reports whether the task carries a due date
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// TaskCollection is the ordered sequence of all tasks
type TaskCollection = []Task

// IndexOf returns the position of the task with the given id, or -1
func IndexOf(tasks TaskCollection, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
