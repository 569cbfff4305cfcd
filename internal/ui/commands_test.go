package ui

import (
	"context"
	"testing"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"
)

// TestSaver_SkipsStaleSnapshots runs two saves in reverse order and checks
// the newer snapshot wins.
func TestSaver_SkipsStaleSnapshots(t *testing.T) {
	store := createTestStorage(t)
	s := newSaver(store)

	older := seedState()
	newer := dashboard.Dispatch(older, dashboard.Add{Text: "newer"}).State

	first := s.saveCmd(older, []string{storage.KeyTasks})
	second := s.saveCmd(newer, []string{storage.KeyTasks})

	if msg := second().(savedMsg); msg.err != nil {
		t.Fatalf("save: %v", msg.err)
	}
	if msg := first().(savedMsg); msg.err != nil {
		t.Fatalf("save: %v", msg.err)
	}

	tasks, _, _ := store.LoadTasks(context.Background())
	if len(tasks) != 5 {
		t.Errorf("stored %d tasks, want the newer 5", len(tasks))
	}
}

func TestSaver_NothingToSave(t *testing.T) {
	if newSaver(nil).saveCmd(seedState(), []string{storage.KeyTasks}) != nil {
		t.Error("nil store should not schedule a save")
	}
	if newSaver(createTestStorage(t)).saveCmd(seedState(), nil) != nil {
		t.Error("no keys should not schedule a save")
	}
}
