package ui

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"taskboard/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// TestApp_EndToEnd runs the full program: add a task, toggle the theme, quit.
func TestApp_EndToEnd(t *testing.T) {
	setupTest(t)
	store := createTestStorage(t)
	app := NewApp(store, seedState(), createTestStyles(), testConfig())

	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(120, 30))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Design the home page"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	tm.Type("Write tests")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("New task added successfully!"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("☀"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(*App)
	if !ok {
		t.Fatal("final model is not *App")
	}
	if n := len(final.State().Tasks); n != 5 {
		t.Errorf("final task count = %d, want 5", n)
	}
	out, _ := io.ReadAll(tm.FinalOutput(t))
	if !bytes.Contains(out, []byte("See you later!")) {
		t.Error("expected goodbye screen")
	}

	// Saves run in commands that may finish after the program exits.
	ctx := context.Background()
	deadline := time.Now().Add(3 * time.Second)
	for {
		tasks, _, _ := store.LoadTasks(ctx)
		theme, _, _ := store.LoadTheme(ctx)
		if len(tasks) == 5 && theme == storage.ThemeDark {
			if tasks[4].Text != "Write tests" || tasks[4].Status != storage.StatusPending {
				t.Errorf("stored task = %+v", tasks[4])
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("stored state never caught up: %d tasks, theme %q", len(tasks), theme)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
