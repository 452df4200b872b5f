package store

import (
	"slices"

	"github.com/tgienger/taskdash/internal/models"
)

// Reduce applies ev to tasks and returns the next collection.
//
// Reduce never writes to tasks: every effective transition returns a new
// slice. Events that match nothing (unknown id, unknown or nil event) return
// tasks itself.
func Reduce(tasks models.TaskCollection, ev Event) models.TaskCollection {
	next, _ := reduce(tasks, ev)
	return next
}

// reduce is Reduce plus a flag telling whether the state changed.
func reduce(tasks models.TaskCollection, ev Event) (models.TaskCollection, bool) {
	switch ev := ev.(type) {
	case AddTask:
		next := make(models.TaskCollection, len(tasks), len(tasks)+1)
		copy(next, tasks)
		return append(next, ev.Task), true

	case DeleteTask:
		i := models.IndexOf(tasks, ev.ID)
		if i < 0 {
			return tasks, false
		}
		next := make(models.TaskCollection, 0, len(tasks)-1)
		for _, t := range tasks {
			if t.ID != ev.ID {
				next = append(next, t)
			}
		}
		return next, true

	case ToggleComplete:
		if models.IndexOf(tasks, ev.ID) < 0 {
			return tasks, false
		}
		next := slices.Clone(tasks)
		for i := range next {
			if next[i].ID == ev.ID {
				next[i].Completed = !next[i].Completed
			}
		}
		return next, true

	case UpdateTask:
		// Update existing only: an unknown id is a silent no-op.
		if models.IndexOf(tasks, ev.Task.ID) < 0 {
			return tasks, false
		}
		next := slices.Clone(tasks)
		for i := range next {
			if next[i].ID == ev.Task.ID {
				next[i] = ev.Task
			}
		}
		return next, true
	}

	return tasks, false
}
