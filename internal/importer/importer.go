// Package importer migrates tasks from other productivity tools into the
// dashboard's task list.
package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int // Number of tasks appended
	Skipped  int // Number of tasks already on the board
}

// PreviewTask represents a task preview before import.
type PreviewTask struct {
	Text    string
	Project string
	Status  storage.Status
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads tasks from the reader and appends them to storage.
	Import(ctx context.Context, reader io.Reader, store *storage.Storage) (*ImportResult, error)

	// Preview reads tasks from the reader without importing.
	Preview(reader io.Reader) ([]PreviewTask, error)

	// Name returns the importer name (e.g., "taskwarrior").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "taskwarrior":
		return &TaskwarriorImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"taskwarrior"}
}

// importTasks appends tasks to the stored list through the dispatcher so the
// derived counts stay in step. Tasks whose text is already on the board are
// skipped.
func importTasks(ctx context.Context, store *storage.Storage, tasks []PreviewTask, now func() time.Time) (*ImportResult, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	state := dashboard.NewState(snap.Tasks, snap.Data, snap.Theme)

	seen := make(map[string]bool, len(state.Tasks))
	for _, t := range state.Tasks {
		seen[dedupeKey(t.Text)] = true
	}

	result := &ImportResult{}
	for _, p := range tasks {
		key := dedupeKey(p.Text)
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true

		task := storage.Task{
			ID:        dashboard.NextID(state.Tasks, now()),
			Text:      p.Text,
			Completed: p.Status == storage.StatusCompleted,
			Status:    p.Status,
		}
		res := dashboard.Dispatch(state, dashboard.Restore{Task: task, Index: len(state.Tasks)})
		if res.Changed {
			state = res.State
			result.Imported++
		}
	}

	if result.Imported == 0 {
		return result, nil
	}
	if err := store.SaveTasks(ctx, state.Tasks); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	if err := store.SaveProjectData(ctx, state.Data); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return result, nil
}

func dedupeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
