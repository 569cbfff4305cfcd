package dashboard

import (
	"time"

	"taskboard/internal/storage"
)

// Action is a tagged request to change State. The concrete types are Add,
// Toggle, Delete, ToggleThemeAction, SetCounters, Restore and Remove.
type Action interface {
	action()
}

// Add appends a task with the given text.
type Add struct {
	Text string
}

// Toggle flips the completion of a task.
type Toggle struct {
	ID int64
}

// Delete removes a task once Confirm agrees. A nil Confirm declines.
type Delete struct {
	ID      int64
	Confirm Confirmer
}

// ToggleThemeAction switches between light and dark.
type ToggleThemeAction struct{}

// SetCounters overwrites the user-maintained counters. Nil fields are left
// alone; negative values are clamped to zero.
type SetCounters struct {
	ActiveProjects *int
	HoursLogged    *int
}

// Restore puts a task back at Index, or replaces the task with the same ID.
// Undo and redo use it.
type Restore struct {
	Task  storage.Task
	Index int
}

// Remove deletes a task without asking. Only undo of an add uses it; user
// deletes go through Delete.
type Remove struct {
	ID int64
}

func (Add) action()               {}
func (Toggle) action()            {}
func (Delete) action()            {}
func (ToggleThemeAction) action() {}
func (SetCounters) action()       {}
func (Restore) action()           {}
func (Remove) action()            {}

// Confirmer is the yes/no gate consulted before a delete.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer that always agrees. The TUI uses it once its own
// confirmation dialog has been accepted.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// DeletePrompt is the question put to the Confirmer.
const DeletePrompt = "Are you sure you want to delete this task?"

// Result is the outcome of Dispatch.
type Result struct {
	State State
	Stats Stats

	// Changed is false when the action was a no-op: blank add, unknown id,
	// declined delete.
	Changed bool

	// Task is the task the action touched, as it is after the action (or as
	// it was, for deletes). Index is its position in the list.
	Task  storage.Task
	Index int

	// Persist lists the storage keys that must be rewritten.
	Persist []string
}

// Dispatcher applies actions. Now supplies the clock for new task ids.
type Dispatcher struct {
	Now func() time.Time
}

// Dispatch applies a using the wall clock.
func Dispatch(s State, a Action) Result {
	return Dispatcher{}.Dispatch(s, a)
}

// Dispatch applies a to s and returns the next state with its stats. The
// stats are recomputed on every call and copied into the project document
// whenever the task list changed.
func (d Dispatcher) Dispatch(s State, a Action) Result {
	res := Result{State: s, Index: -1}

	switch a := a.(type) {
	case Add:
		next, task, ok := s.add(a.Text, d.now())
		if ok {
			res = taskResult(next, task, len(next.Tasks)-1)
		}

	case Toggle:
		next, task, ok := s.toggle(a.ID)
		if ok {
			res = taskResult(next, task, next.index(task.ID))
		}

	case Delete:
		if _, ok := s.Get(a.ID); !ok {
			break
		}
		if a.Confirm == nil || !a.Confirm.Confirm(DeletePrompt) {
			break
		}
		next, task, idx, _ := s.remove(a.ID)
		res = taskResult(next, task, idx)

	case Remove:
		next, task, idx, ok := s.remove(a.ID)
		if ok {
			res = taskResult(next, task, idx)
		}

	case Restore:
		next, ok := s.restore(a.Task, a.Index)
		if ok {
			res = taskResult(next, a.Task, next.index(a.Task.ID))
		}

	case ToggleThemeAction:
		next := s.Clone()
		next.Theme = ToggleTheme(s.Theme)
		res = Result{State: next, Changed: true, Index: -1, Persist: []string{storage.KeyTheme}}

	case SetCounters:
		next := s.Clone()
		if a.ActiveProjects != nil {
			next.Data.ActiveProjects = max(0, *a.ActiveProjects)
		}
		if a.HoursLogged != nil {
			next.Data.HoursLogged = max(0, *a.HoursLogged)
		}
		if next.Data != s.Data {
			res = Result{State: next, Changed: true, Index: -1, Persist: []string{storage.KeyData}}
		}
	}

	res.Stats = res.State.Stats()
	return res
}

func (d Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// taskResult derives stats for a changed task list. Both task-related keys
// are rewritten, as the project document carries the derived counts.
func taskResult(next State, task storage.Task, index int) Result {
	return Result{
		State:   next.derive(),
		Changed: true,
		Task:    task,
		Index:   index,
		Persist: []string{storage.KeyData, storage.KeyTasks},
	}
}
