package ui

import (
	"reflect"
	"testing"

	"taskboard/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		defaults []string
		want     []string
	}{
		{"empty uses defaults", "", []string{"a", "b"}, []string{"a", "b"}},
		{"single", "x", []string{"a"}, []string{"x"}},
		{"comma separated with spaces", " x , y ,", []string{"a"}, []string{"x", "y"}},
		{"space binds both names", "space,d", nil, []string{" ", "space", "d"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseKeys(tc.custom, tc.defaults...)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parseKeys(%q) = %q, want %q", tc.custom, got, tc.want)
			}
		})
	}
}

func TestKeyMaps_Overrides(t *testing.T) {
	cfg := &config.KeysConfig{ToggleTheme: "T", AddTask: "n", NextSlice: "tab"}

	global := NewGlobalKeyMap(cfg)
	if !key.Matches(keyPress("T"), global.ToggleTheme) {
		t.Error("override T should toggle theme")
	}
	if key.Matches(keyPress("t"), global.ToggleTheme) {
		t.Error("default t should be replaced")
	}

	tasks := NewTaskKeyMap(cfg)
	if !key.Matches(keyPress("n"), tasks.Add) {
		t.Error("override n should add")
	}
	if !key.Matches(keyPress("space"), tasks.Toggle) {
		t.Error("space should still toggle")
	}

	chart := NewChartKeyMap(cfg)
	if !key.Matches(keyPress("tab"), chart.Next) {
		t.Error("override tab should select next slice")
	}
}

func TestKeyMaps_NilConfig(t *testing.T) {
	if !key.Matches(keyPress("q"), NewGlobalKeyMap(nil).Quit) {
		t.Error("q should quit")
	}
	if !key.Matches(keyPress("x"), NewTaskKeyMap(nil).Delete) {
		t.Error("x should delete")
	}
	if !key.Matches(keyPress("esc"), DefaultModalKeyMap().Close) {
		t.Error("esc should close the modal")
	}
	if len(DefaultTaskKeyMap().ShortHelp()) == 0 || len(NewChartKeyMap(nil).FullHelp()) == 0 {
		t.Error("help bindings missing")
	}
}

func TestKeyLabels(t *testing.T) {
	tests := []struct {
		keys []string
		n    int
		sep  string
		name func(string) string
		want string
	}{
		{[]string{"d", " ", "space"}, 1, "/", displayKey, "d"},
		{[]string{" ", "space", "d"}, 0, "/", displayKey, "space/d"},
		{[]string{"left", "h"}, 1, "/", displayKey, "←"},
		{[]string{"ctrl+z", "u"}, 2, " / ", titleKey, "Ctrl+Z / u"},
		{[]string{"tab"}, 2, " / ", titleKey, "Tab"},
		{[]string{"shift+tab"}, 2, " / ", titleKey, "Shift+Tab"},
		{[]string{"G", "end"}, 0, " / ", titleKey, "G / End"},
	}
	for _, tc := range tests {
		if got := keyLabel(tc.keys, tc.n, tc.sep, tc.name); got != tc.want {
			t.Errorf("keyLabel(%q, %d) = %q, want %q", tc.keys, tc.n, got, tc.want)
		}
	}
}

func TestBind_HelpFollowsOverride(t *testing.T) {
	tasks := NewTaskKeyMap(&config.KeysConfig{AddTask: "n,+"})
	if h := tasks.Add.Help(); h.Key != "n" || h.Desc != "add" {
		t.Errorf("Add help = %+v, want n/add", h)
	}
	if h := DefaultTaskKeyMap().Toggle.Help(); h.Key != "d" {
		t.Errorf("Toggle help key = %q, want d", h.Key)
	}

	pairs := helpPairs(tasks.Add, tasks.Delete)
	want := []string{"n", "add", "x", "del"}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("helpPairs = %q, want %q", pairs, want)
	}

	disabled := tasks.Delete
	disabled.SetEnabled(false)
	if got := helpPairs(disabled); len(got) != 0 {
		t.Errorf("disabled binding should be skipped, got %q", got)
	}
}
