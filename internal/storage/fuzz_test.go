package storage

import (
	"context"
	"testing"

	"taskboard/internal/kvstore"
)

// FuzzLoadTasks feeds arbitrary stored values to LoadTasks to ensure it never
// panics and always hands back tasks with unique ids that satisfy the status
// invariant.
func FuzzLoadTasks(f *testing.F) {
	f.Add(`[]`)
	f.Add(`[{"id":1,"text":"a","completed":true,"status":"completed"}]`)
	f.Add(`[{"id":1,"status":"pending","completed":true}]`)
	f.Add(`[null]`)
	f.Add(`[{"id":5,"text":"a"},{"id":5,"text":"b"},{"id":0}]`)
	f.Add(`{"id":1}`)
	f.Add(`[{"id":"one"}]`)
	f.Add("\x00\x01")
	f.Add(``)

	f.Fuzz(func(t *testing.T, raw string) {
		ctx := context.Background()
		kv := kvstore.NewMemoryStore()
		store := New(kv, nil)
		_ = kv.Set(ctx, KeyTasks, raw)

		tasks, _, err := store.LoadTasks(ctx)
		if err != nil {
			t.Fatalf("LoadTasks() error = %v", err)
		}
		seen := make(map[int64]bool, len(tasks))
		for _, task := range tasks {
			if seen[task.ID] {
				t.Errorf("duplicate task id %d", task.ID)
			}
			seen[task.ID] = true
			if !task.Status.Valid() {
				t.Errorf("task %d has invalid status %q", task.ID, task.Status)
			}
			if task.Completed != (task.Status == StatusCompleted) {
				t.Errorf("task %d completed=%v status=%q", task.ID, task.Completed, task.Status)
			}
		}
	})
}

// FuzzLoadProjectData ensures arbitrary stored documents never panic.
func FuzzLoadProjectData(f *testing.F) {
	f.Add(`{}`)
	f.Add(`{"activeProjects":1,"projectStatus":{"pending":2}}`)
	f.Add(`{"projectStatus":null}`)
	f.Add(`[]`)
	f.Add(`"dark"`)

	f.Fuzz(func(t *testing.T, raw string) {
		ctx := context.Background()
		kv := kvstore.NewMemoryStore()
		_ = kv.Set(ctx, KeyData, raw)
		if _, _, err := New(kv, nil).LoadProjectData(ctx); err != nil {
			t.Fatalf("LoadProjectData() error = %v", err)
		}
	})
}
