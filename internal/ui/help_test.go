package ui

import (
	"strings"
	"testing"

	"taskboard/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHelpOverlay_ContentStructure(t *testing.T) {
	setupTest(t)

	help := NewHelpOverlay(createTestStyles().Light, nil)
	help.SetSize(100, 40)

	output := help.View()

	for _, section := range []string{"Global", "Tasks", "Chart", "Input Mode"} {
		if !contains(output, section) {
			t.Errorf("help overlay should contain section: %s", section)
		}
	}
	for _, key := range []string{"Tab", "?", "q", "t", "Space", "Enter", "Esc", "Ctrl+Z"} {
		if !contains(output, key) {
			t.Errorf("help overlay should mention key: %s", key)
		}
	}
}

func TestHelpOverlay_ShowsOverrides(t *testing.T) {
	setupTest(t)

	help := NewHelpOverlay(createTestStyles().Light, &config.KeysConfig{ToggleTheme: "ctrl+t"})
	help.SetSize(100, 40)

	output := help.View()
	if !contains(output, "Ctrl+T") {
		t.Error("help overlay should show the configured theme key")
	}
}

func TestHelpOverlay_SmallTerminal(t *testing.T) {
	setupTest(t)

	help := NewHelpOverlay(createTestStyles().Dark, nil)
	help.SetSize(50, 25)

	for _, line := range strings.Split(help.View(), "\n") {
		if w := len([]rune(line)); w > 50 {
			t.Errorf("line wider than terminal (%d): %q", w, line)
		}
	}
}

func TestApp_HelpToggle(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.Update(keyPress("?"))
	if !app.showHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Error("help overlay should be rendered")
	}

	// Keys other than the close keys are swallowed.
	app.Update(keyPress("a"))
	if !app.showHelp || app.taskPane.IsAdding() {
		t.Error("help should swallow other keys")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("esc should close help")
	}
}
