// Package dashboard holds the application state of the project dashboard and
// the pure operations over it: the task store, the stats aggregator, the
// theme controller and the view model that renderers consume. Nothing here
// touches the terminal or the disk.
package dashboard

import (
	"slices"
	"strings"
	"time"

	"taskboard/internal/storage"
)

// State is the complete application state. Values are treated as immutable
// by Dispatch: every action returns a fresh State and never writes through a
// slice shared with the previous one.
type State struct {
	Tasks []storage.Task
	Data  storage.ProjectData
	Theme storage.Theme
}

// NewState builds the initial state from loaded values and derives the task
// statistics, so stored counts that drifted from the task list are corrected
// on startup.
func NewState(tasks []storage.Task, data storage.ProjectData, theme storage.Theme) State {
	if !theme.Valid() {
		theme = storage.ThemeLight
	}
	s := State{
		Tasks: slices.Clone(tasks),
		Data:  data,
		Theme: theme,
	}
	if s.Tasks == nil {
		s.Tasks = []storage.Task{}
	}
	return s.derive()
}

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	s.Tasks = slices.Clone(s.Tasks)
	if s.Tasks == nil {
		s.Tasks = []storage.Task{}
	}
	return s
}

// List returns the tasks in insertion order. The slice is a copy.
func (s State) List() []storage.Task {
	return slices.Clone(s.Tasks)
}

// Get returns the task with id.
func (s State) Get(id int64) (storage.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.Tasks[i], true
	}
	return storage.Task{}, false
}

// Stats aggregates the current task list.
func (s State) Stats() Stats {
	return Aggregate(s.Tasks)
}

func (s State) index(id int64) int {
	return slices.IndexFunc(s.Tasks, func(t storage.Task) bool { return t.ID == id })
}

// derive copies the aggregated counts into the project document.
func (s State) derive() State {
	st := Aggregate(s.Tasks)
	s.Data.TasksCompleted = st.TasksCompleted()
	s.Data.ProjectStatus = st.Counts()
	return s
}

// ============================================================================
// Task store operations
// ============================================================================

// NextID returns an identifier derived from the clock that is strictly
// greater than every identifier already in tasks.
func NextID(tasks []storage.Task, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// add appends a pending task. Blank text is a no-op.
func (s State) add(text string, now time.Time) (State, storage.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s, storage.Task{}, false
	}
	task := storage.Task{
		ID:        NextID(s.Tasks, now),
		Text:      text,
		Completed: false,
		Status:    storage.StatusPending,
	}
	s = s.Clone()
	s.Tasks = append(s.Tasks, task)
	return s, task, true
}

// toggle flips the completed flag. A task that is no longer completed goes
// to in-progress, not back to pending.
func (s State) toggle(id int64) (State, storage.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return s, storage.Task{}, false
	}
	s = s.Clone()
	t := s.Tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		t.Status = storage.StatusCompleted
	} else {
		t.Status = storage.StatusInProgress
	}
	s.Tasks[i] = t
	return s, t, true
}

// remove deletes the task with id and reports where it was.
func (s State) remove(id int64) (State, storage.Task, int, bool) {
	i := s.index(id)
	if i < 0 {
		return s, storage.Task{}, -1, false
	}
	task := s.Tasks[i]
	s = s.Clone()
	s.Tasks = slices.Delete(s.Tasks, i, i+1)
	return s, task, i, true
}

// restore puts task back at index, clamped to the list bounds. If a task with
// the same id exists it is replaced in place instead.
func (s State) restore(task storage.Task, index int) (State, bool) {
	s = s.Clone()
	if i := s.index(task.ID); i >= 0 {
		if s.Tasks[i] == task {
			return s, false
		}
		s.Tasks[i] = task
		return s, true
	}
	index = max(0, min(index, len(s.Tasks)))
	s.Tasks = slices.Insert(s.Tasks, index, task)
	return s, true
}
