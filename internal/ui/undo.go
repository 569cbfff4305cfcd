// Package ui provides the terminal dashboard.
// This file implements the undo/redo history. Each entry stores the pair of
// dashboard actions that reverse and reapply one user change.
package ui

import (
	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	"github.com/mattn/go-runewidth"
)

// maxHistorySize limits the undo stack to prevent unbounded memory growth.
const maxHistorySize = 50

// UndoableAction represents a change that can be undone.
type UndoableAction struct {
	Description string           // Human-readable description for status messages
	Undo        dashboard.Action // Action that reverses the change
	Redo        dashboard.Action // Action that reapplies it (optional)
}

// UndoManager maintains the undo/redo history stacks. It is only touched
// from the Bubble Tea update loop, so it needs no locking.
type UndoManager struct {
	undoStack []*UndoableAction
	redoStack []*UndoableAction
}

// NewUndoManager creates a new UndoManager instance.
func NewUndoManager() *UndoManager {
	return &UndoManager{
		undoStack: make([]*UndoableAction, 0, maxHistorySize),
		redoStack: make([]*UndoableAction, 0, maxHistorySize),
	}
}

// Push adds an undoable action to the history.
// Clears the redo stack since a new action invalidates redo history.
func (m *UndoManager) Push(action *UndoableAction) {
	if action == nil || action.Undo == nil {
		return
	}
	m.redoStack = m.redoStack[:0]

	if len(m.undoStack) >= maxHistorySize {
		m.undoStack = m.undoStack[1:]
	}
	m.undoStack = append(m.undoStack, action)
}

// CanUndo returns true if there are actions to undo.
func (m *UndoManager) CanUndo() bool {
	return len(m.undoStack) > 0
}

// CanRedo returns true if there are actions to redo.
func (m *UndoManager) CanRedo() bool {
	return len(m.redoStack) > 0
}

// Undo pops the most recent entry. The caller dispatches its Undo action.
// Entries with a Redo action move to the redo stack.
func (m *UndoManager) Undo() (*UndoableAction, bool) {
	if len(m.undoStack) == 0 {
		return nil, false
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	if action.Redo != nil {
		m.redoStack = append(m.redoStack, action)
	}
	return action, true
}

// Redo pops the most recently undone entry and puts it back on the undo
// stack. The caller dispatches its Redo action.
func (m *UndoManager) Redo() (*UndoableAction, bool) {
	if len(m.redoStack) == 0 {
		return nil, false
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, action)
	return action, true
}

// Clear removes all undo/redo history.
func (m *UndoManager) Clear() {
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
}

// =============================================================================
// Undoable Action Factories
// =============================================================================

// NewAddTaskAction records an add. Undoing removes the task without asking.
func NewAddTaskAction(task storage.Task, index int) *UndoableAction {
	return &UndoableAction{
		Description: "Added: " + truncateText(task.Text, 20),
		Undo:        dashboard.Remove{ID: task.ID},
		Redo:        dashboard.Restore{Task: task, Index: index},
	}
}

// NewToggleTaskAction records a toggle from before to after. Undo restores
// the exact previous status, including pending.
func NewToggleTaskAction(before, after storage.Task, index int) *UndoableAction {
	desc := "Reopened: "
	if after.Completed {
		desc = "Completed: "
	}
	return &UndoableAction{
		Description: desc + truncateText(after.Text, 20),
		Undo:        dashboard.Restore{Task: before, Index: index},
		Redo:        dashboard.Restore{Task: after, Index: index},
	}
}

// NewDeleteTaskAction records a delete. The task is captured so it can be
// put back at its old position.
func NewDeleteTaskAction(task storage.Task, index int) *UndoableAction {
	return &UndoableAction{
		Description: "Deleted: " + truncateText(task.Text, 20),
		Undo:        dashboard.Restore{Task: task, Index: index},
		Redo:        dashboard.Remove{ID: task.ID},
	}
}

// NewCountersAction records an edit of the user-maintained counters.
func NewCountersAction(before, after storage.ProjectData) *UndoableAction {
	return &UndoableAction{
		Description: "Edited counters",
		Undo: dashboard.SetCounters{
			ActiveProjects: &before.ActiveProjects,
			HoursLogged:    &before.HoursLogged,
		},
		Redo: dashboard.SetCounters{
			ActiveProjects: &after.ActiveProjects,
			HoursLogged:    &after.HoursLogged,
		},
	}
}

// truncateText shortens text to maxLen with ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}
