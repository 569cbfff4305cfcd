package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/kvstore"
	"taskboard/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage backed by memory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	return storage.New(kvstore.NewMemoryStore(), nil)
}

// createTestStyles creates default styles for both themes.
func createTestStyles() ThemeStyles {
	return NewThemeStyles(&config.ThemeConfig{})
}

// fixedClock returns a clock that advances one millisecond per call.
func fixedClock() func() time.Time {
	now := time.UnixMilli(1_700_000_000_000)
	return func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}
}

// testConfig returns an app config with animation off and a fake clock.
func testConfig() *AppConfig {
	return &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		NarrowLayoutThreshold: 80,
		Locale:                dashboard.LocaleEnglish,
		Animate:               false,
		Now:                   fixedClock(),
	}
}

// seedState returns the state a fresh install starts with.
func seedState() dashboard.State {
	return dashboard.NewState(storage.SeedTasks(), storage.DefaultProjectData(), storage.ThemeLight)
}

// newTestApp builds an app over the seed state sized for the wide layout.
func newTestApp(t *testing.T, cfg *AppConfig) (*App, *storage.Storage) {
	t.Helper()
	setupTest(t)
	store := createTestStorage(t)
	if cfg == nil {
		cfg = testConfig()
	}
	app := NewApp(store, seedState(), createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return app, store
}

// keyPress builds a key message for a printable key or a named one.
func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// typeText sends each rune of s as a key press.
func typeText(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// drain runs cmd and feeds every resulting message back into the app,
// following batches and nested commands. Ticks are skipped so timers never
// block the test.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("drain: too many commands")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := runCmd(c)
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case actionMsg, savedMsg, sliceOpenedMsg, notifiedMsg:
			_, next := app.Update(msg)
			queue = append(queue, next)
		}
	}
}

// runCmd executes c unless it is a timer. Timers are recognized by not
// returning within a short window.
func runCmd(c tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- c() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// press sends a key and drains the resulting commands.
func press(t *testing.T, app *App, k string) {
	t.Helper()
	_, cmd := app.Update(keyPress(k))
	drain(t, app, cmd)
}

// storedTasks reads the persisted task list.
func storedTasks(t *testing.T, store *storage.Storage) []storage.Task {
	t.Helper()
	tasks, warn, err := store.LoadTasks(context.Background())
	if err != nil || warn != "" {
		t.Fatalf("LoadTasks: %v %q", err, warn)
	}
	return tasks
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
