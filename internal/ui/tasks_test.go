package ui

import (
	"strings"
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestTaskPane(t *testing.T) *TaskPane {
	t.Helper()
	setupTest(t)
	p := NewTaskPane(createTestStyles().Light, &config.KeysConfig{})
	view := dashboard.BuildView(seedState(), dashboard.LocaleEnglish)
	p.SetRows(view.Rows, view.Labels)
	p.SetSize(60, 20)
	return p
}

// actionOf runs cmd and returns the dispatched action, if any.
func actionOf(t *testing.T, cmd tea.Cmd) dashboard.Action {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg, ok := cmd().(actionMsg)
	if !ok {
		return nil
	}
	return msg.action
}

func TestTaskPane_Navigation(t *testing.T) {
	p := newTestTaskPane(t)

	tests := []struct {
		key    string
		wantID int64
	}{
		{"j", 2},
		{"j", 3},
		{"G", 4},
		{"j", 4}, // stays at the bottom
		{"k", 3},
		{"g", 1},
		{"k", 1}, // stays at the top
	}
	for _, tc := range tests {
		p.Update(keyPress(tc.key))
		row, _ := p.Selected()
		if row.ID != tc.wantID {
			t.Fatalf("after %q selected %d, want %d", tc.key, row.ID, tc.wantID)
		}
	}
}

func TestTaskPane_ToggleEmitsAction(t *testing.T) {
	p := newTestTaskPane(t)
	p.Update(keyPress("j"))

	for _, k := range []string{"space", "d"} {
		got := actionOf(t, p.Update(keyPress(k)))
		if got != (dashboard.Toggle{ID: 2}) {
			t.Errorf("%q emitted %#v, want Toggle{2}", k, got)
		}
	}
}

func TestTaskPane_AddEmitsTrimmedLater(t *testing.T) {
	p := newTestTaskPane(t)

	p.Update(keyPress("a"))
	if !p.IsAdding() {
		t.Fatal("expected add mode")
	}
	for _, r := range "Ship it" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	got := actionOf(t, p.Update(keyPress("enter")))
	if got != (dashboard.Add{Text: "Ship it"}) {
		t.Errorf("emitted %#v", got)
	}
	if p.IsAdding() {
		t.Error("enter should leave add mode")
	}
}

func TestTaskPane_UnfocusedIgnoresKeys(t *testing.T) {
	p := newTestTaskPane(t)
	p.SetFocused(false)

	if cmd := p.Update(keyPress("space")); cmd != nil {
		t.Error("unfocused pane should not emit")
	}
	if cmd := p.Update(keyPress("j")); cmd != nil {
		t.Error("unexpected command")
	}
	if row, _ := p.Selected(); row.ID != 1 {
		t.Error("cursor should not move while unfocused")
	}
}

func TestTaskPane_SetRowsClampsCursor(t *testing.T) {
	p := newTestTaskPane(t)
	p.Update(keyPress("G"))

	p.SetRows([]dashboard.Row{{ID: 9, Text: "only", Status: storage.StatusPending}}, dashboard.LabelsFor("en"))
	if row, ok := p.Selected(); !ok || row.ID != 9 {
		t.Errorf("selected = %+v %v", row, ok)
	}

	p.SetRows(nil, dashboard.LabelsFor("en"))
	if _, ok := p.Selected(); ok {
		t.Error("empty list should have no selection")
	}
	if !strings.Contains(p.View(), "No tasks yet") {
		t.Error("empty state missing")
	}
}

func TestTaskPane_View(t *testing.T) {
	p := newTestTaskPane(t)

	view := p.View()
	for _, want := range []string{"TASKS", "[✓] Implement login API", "Completed", "In progress", "Pending", "1/4 complete"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTaskPane_TruncatesWideText(t *testing.T) {
	setupTest(t)
	p := NewTaskPane(createTestStyles().Light, nil)
	long := strings.Repeat("界", 40)
	p.SetRows([]dashboard.Row{{ID: 1, Text: long, Status: storage.StatusPending, StatusLabel: "Pending"}}, dashboard.LabelsFor("en"))
	p.SetSize(40, 10)

	view := p.View()
	if strings.Contains(view, long) {
		t.Error("long text should be truncated")
	}
	if !strings.Contains(view, "..") {
		t.Error("truncated text should end with ..")
	}
}

func TestTaskPane_PersianLabels(t *testing.T) {
	setupTest(t)
	p := NewTaskPane(createTestStyles().Light, nil)
	view := dashboard.BuildView(seedState(), dashboard.LocalePersian)
	p.SetRows(view.Rows, view.Labels)
	p.SetSize(70, 12)

	if !strings.Contains(p.View(), "در حال انجام") {
		t.Error("expected Persian status label")
	}
}
