package store

import "github.com/tgienger/taskdash/internal/models"

// Event kinds, as reported by Event.Kind and logged on dispatch.
const (
	KindAddTask        = "ADD_TASK"
	KindDeleteTask     = "DELETE_TASK"
	KindToggleComplete = "TOGGLE_COMPLETE"
	KindUpdateTask     = "UPDATE_TASK"
)

// Event is a state transition request. The set of variants is closed:
// AddTask, DeleteTask, ToggleComplete and UpdateTask.
type Event interface {
	Kind() string
	// TargetID is the id of the task the event refers to.
	TargetID() string
	isEvent()
}

// AddTask appends Task to the collection. The caller supplies a fresh id.
type AddTask struct {
	Task models.Task
}

// DeleteTask removes the task with ID.
type DeleteTask struct {
	ID string
}

// ToggleComplete flips the completed flag of the task with ID.
type ToggleComplete struct {
	ID string
}

// UpdateTask replaces the task whose id equals Task.ID.
type UpdateTask struct {
	Task models.Task
}

func (AddTask) Kind() string        { return KindAddTask }
func (DeleteTask) Kind() string     { return KindDeleteTask }
func (ToggleComplete) Kind() string { return KindToggleComplete }
func (UpdateTask) Kind() string     { return KindUpdateTask }

func (e AddTask) TargetID() string        { return e.Task.ID }
func (e DeleteTask) TargetID() string     { return e.ID }
func (e ToggleComplete) TargetID() string { return e.ID }
func (e UpdateTask) TargetID() string     { return e.Task.ID }

func (AddTask) isEvent()        {}
func (DeleteTask) isEvent()     {}
func (ToggleComplete) isEvent() {}
func (UpdateTask) isEvent()     {}
