package ui

import (
	"strings"
	"testing"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestChartPane(t *testing.T) *ChartPane {
	t.Helper()
	setupTest(t)
	c := NewChartPane(createTestStyles().Light, nil)
	view := dashboard.BuildView(seedState(), dashboard.LocaleEnglish)
	c.SetChart(view.Chart, view.Palette)
	c.SetSize(50, 12)
	c.SetFocused(true)
	return c
}

func TestChartPane_SelectionWraps(t *testing.T) {
	c := newTestChartPane(t)

	tests := []struct {
		key  string
		want storage.Status
	}{
		{"right", storage.StatusInProgress},
		{"right", storage.StatusPending},
		{"right", storage.StatusCompleted},
		{"left", storage.StatusPending},
	}
	for _, tc := range tests {
		c.Update(keyPress(tc.key))
		s, _ := c.Selected()
		if s.Status != tc.want {
			t.Fatalf("after %q selected %q, want %q", tc.key, s.Status, tc.want)
		}
	}
}

func TestChartPane_OpenEmitsSlice(t *testing.T) {
	c := newTestChartPane(t)

	cmd := c.Update(keyPress("enter"))
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(sliceOpenedMsg)
	if !ok {
		t.Fatalf("got %T", cmd())
	}
	if msg.slice.Status != storage.StatusCompleted || msg.slice.Value != 1 {
		t.Errorf("slice = %+v", msg.slice)
	}
}

func TestChartPane_ClickOpensSlice(t *testing.T) {
	c := newTestChartPane(t)

	cmd := c.Update(tea.MouseMsg{X: 5, Y: chartHeaderRows + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if msg := cmd().(sliceOpenedMsg); msg.slice.Status != storage.StatusInProgress {
		t.Errorf("slice = %q", msg.slice.Status)
	}

	if cmd := c.Update(tea.MouseMsg{X: 5, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}); cmd != nil {
		t.Error("click on the title should do nothing")
	}
}

func TestChartPane_View(t *testing.T) {
	c := newTestChartPane(t)

	view := c.View()
	for _, want := range []string{"PROJECT STATUS", "Completed", "In progress", "Pending", " 25%", " 50%", "Completed: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestChartPane_EmptyChart(t *testing.T) {
	setupTest(t)
	c := NewChartPane(createTestStyles().Dark, nil)
	view := dashboard.BuildView(dashboard.NewState(nil, storage.DefaultProjectData(), storage.ThemeDark), "en")
	c.SetChart(view.Chart, view.Palette)
	c.SetSize(40, 10)
	c.SetFocused(true)

	if !strings.Contains(c.View(), "  0%") {
		t.Error("empty chart should show zero shares")
	}
}
