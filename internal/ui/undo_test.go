// This file contains tests for the undo/redo system.
package ui

import (
	"testing"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"
)

// TestUndoManager_PushAndUndo verifies basic push and undo operations.
func TestUndoManager_PushAndUndo(t *testing.T) {
	manager := NewUndoManager()
	task := storage.Task{ID: 7, Text: "Test", Status: storage.StatusPending}

	manager.Push(NewAddTaskAction(task, 0))
	if !manager.CanUndo() {
		t.Fatal("Expected CanUndo() to return true after push")
	}

	entry, ok := manager.Undo()
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Description != "Added: Test" {
		t.Errorf("description = %q", entry.Description)
	}
	if entry.Undo != (dashboard.Remove{ID: 7}) {
		t.Errorf("undo action = %#v", entry.Undo)
	}
	if manager.CanUndo() {
		t.Error("Expected CanUndo() to return false after undoing only action")
	}
	if !manager.CanRedo() {
		t.Error("Expected CanRedo() after undo")
	}
}

// TestUndoManager_Redo verifies redo moves the entry back to the undo stack.
func TestUndoManager_Redo(t *testing.T) {
	manager := NewUndoManager()
	task := storage.Task{ID: 1, Text: "a", Status: storage.StatusPending}
	manager.Push(NewDeleteTaskAction(task, 2))

	manager.Undo()
	entry, ok := manager.Redo()
	if !ok {
		t.Fatal("expected redo entry")
	}
	if entry.Redo != (dashboard.Remove{ID: 1}) {
		t.Errorf("redo action = %#v", entry.Redo)
	}
	if !manager.CanUndo() || manager.CanRedo() {
		t.Error("redo should move the entry back to the undo stack")
	}
}

// TestUndoManager_EmptyStacks returns false without panicking.
func TestUndoManager_EmptyStacks(t *testing.T) {
	manager := NewUndoManager()
	if _, ok := manager.Undo(); ok {
		t.Error("undo on empty stack")
	}
	if _, ok := manager.Redo(); ok {
		t.Error("redo on empty stack")
	}
	manager.Push(nil)
	manager.Push(&UndoableAction{Description: "no undo"})
	if manager.CanUndo() {
		t.Error("entries without an undo action are ignored")
	}
}

// TestUndoManager_PushClearsRedo verifies a new action drops redo history.
func TestUndoManager_PushClearsRedo(t *testing.T) {
	manager := NewUndoManager()
	manager.Push(NewAddTaskAction(storage.Task{ID: 1}, 0))
	manager.Undo()
	manager.Push(NewAddTaskAction(storage.Task{ID: 2}, 0))
	if manager.CanRedo() {
		t.Error("push should clear redo stack")
	}
}

// TestUndoManager_MaxHistory caps the stack.
func TestUndoManager_MaxHistory(t *testing.T) {
	manager := NewUndoManager()
	for i := 0; i < maxHistorySize+10; i++ {
		manager.Push(NewAddTaskAction(storage.Task{ID: int64(i)}, i))
	}

	count := 0
	var last *UndoableAction
	for manager.CanUndo() {
		last, _ = manager.Undo()
		count++
	}
	if count != maxHistorySize {
		t.Errorf("history = %d, want %d", count, maxHistorySize)
	}
	// The oldest entries were dropped.
	if last.Undo != (dashboard.Remove{ID: 10}) {
		t.Errorf("oldest kept = %#v", last.Undo)
	}
}

// TestUndoManager_Clear empties both stacks.
func TestUndoManager_Clear(t *testing.T) {
	manager := NewUndoManager()
	manager.Push(NewAddTaskAction(storage.Task{ID: 1}, 0))
	manager.Push(NewAddTaskAction(storage.Task{ID: 2}, 1))
	manager.Undo()
	manager.Clear()
	if manager.CanUndo() || manager.CanRedo() {
		t.Error("Clear should empty both stacks")
	}
}

// TestToggleAction_RestoresPreviousStatus covers the pending -> completed ->
// undo path that a plain toggle cannot express.
func TestToggleAction_RestoresPreviousStatus(t *testing.T) {
	before := storage.Task{ID: 3, Text: "Responsive layout testing", Status: storage.StatusPending}
	after := storage.Task{ID: 3, Text: before.Text, Completed: true, Status: storage.StatusCompleted}
	entry := NewToggleTaskAction(before, after, 2)

	state := dashboard.NewState(storage.SeedTasks(), storage.DefaultProjectData(), storage.ThemeLight)
	state = dashboard.Dispatch(state, dashboard.Toggle{ID: 3}).State
	state = dashboard.Dispatch(state, entry.Undo).State

	got, _ := state.Get(3)
	if got != before {
		t.Errorf("after undo = %+v, want %+v", got, before)
	}
	if entry.Description != "Completed: Responsive layout .." {
		t.Errorf("description = %q", entry.Description)
	}
}

// TestCountersAction round trips the counters.
func TestCountersAction(t *testing.T) {
	before := storage.DefaultProjectData()
	after := before
	after.ActiveProjects = 3

	entry := NewCountersAction(before, after)
	state := dashboard.NewState(nil, after, storage.ThemeLight)
	state = dashboard.Dispatch(state, entry.Undo).State
	if state.Data.ActiveProjects != 12 {
		t.Errorf("undo = %d, want 12", state.Data.ActiveProjects)
	}
	state = dashboard.Dispatch(state, entry.Redo).State
	if state.Data.ActiveProjects != 3 {
		t.Errorf("redo = %d, want 3", state.Data.ActiveProjects)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 20, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is too long", 10, "this is .."},
		{"anything", 0, ""},
	}
	for _, tc := range tests {
		if got := truncateText(tc.in, tc.max); got != tc.want {
			t.Errorf("truncateText(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
