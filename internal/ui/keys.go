// Package ui provides the terminal dashboard.
// This file defines the key bindings. Every binding can be overridden from
// the config file, and the help bar and help overlay read their labels back
// from the bindings so overrides show up there too.
package ui

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"taskboard/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys. "space" binds both names
// Bubble Tea versions have used for the space bar.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed == "space" {
			result = append(result, " ")
		}
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// bind builds a binding from a config override and its defaults. desc is
// the short description shown in the help bar.
func bind(custom, desc string, defaults ...string) key.Binding {
	keys := parseKeys(custom, defaults...)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keyLabel(keys, 1, "/", displayKey), desc),
	)
}

var keySymbols = map[string]string{
	" ":     "space",
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
}

// displayKey is the name of k as the help bar shows it.
func displayKey(k string) string {
	if s, ok := keySymbols[k]; ok {
		return s
	}
	return k
}

// titleKey is the name of k as the help overlay shows it: "ctrl+z" becomes
// "Ctrl+Z", single characters are left alone.
func titleKey(k string) string {
	k = displayKey(k)
	if utf8.RuneCountInString(k) == 1 {
		return k
	}
	parts := strings.Split(k, "+")
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size > 0 {
			parts[i] = string(unicode.ToUpper(r)) + p[size:]
		}
	}
	return strings.Join(parts, "+")
}

// keyLabel joins the first n distinct names of keys. n <= 0 means all.
func keyLabel(keys []string, n int, sep string, name func(string) string) string {
	var names []string
	for _, k := range keys {
		s := name(k)
		if slices.Contains(names, s) {
			continue
		}
		names = append(names, s)
		if n > 0 && len(names) == n {
			break
		}
	}
	return strings.Join(names, sep)
}

// helpPairs flattens bindings into key/description pairs for RenderHelp.
// Disabled bindings are left out.
func helpPairs(bindings ...key.Binding) []string {
	pairs := make([]string, 0, 2*len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return pairs
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	NextPane     key.Binding
	ToggleTheme  key.Binding
	EditCounters key.Binding
	DismissToast key.Binding
	Undo         key.Binding
	Redo         key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(nil)
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit:         bind(cfg.Quit, "quit", "q", "ctrl+c"),
		Help:         bind(cfg.Help, "help", "?"),
		NextPane:     bind(cfg.NextPane, "pane", "tab"),
		ToggleTheme:  bind(cfg.ToggleTheme, "theme", "t"),
		EditCounters: bind(cfg.EditCounters, "counters", "e"),
		DismissToast: bind(cfg.DismissToast, "dismiss", "ctrl+x"),
		Undo:         bind(cfg.Undo, "undo", "ctrl+z", "u"),
		Redo:         bind(cfg.Redo, "redo", "ctrl+y"),
	}
}

// =============================================================================
// Navigation Keys
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up:     bind(cfg.Up, "up", "k", "up"),
		Down:   bind(cfg.Down, "down", "j", "down"),
		Top:    bind(cfg.Top, "top", "g", "home"),
		Bottom: bind(cfg.Bottom, "bottom", "G", "end"),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(nil)
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: bind(cfg.Confirm, "save", "enter"),
		Cancel:  bind(cfg.Cancel, "cancel", "esc"),
	}
}

// =============================================================================
// Task Pane Keys
// =============================================================================

// TaskKeyMap defines keys for the task pane.
type TaskKeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
	NavigationKeyMap
}

// DefaultTaskKeyMap returns the default task pane key bindings.
func DefaultTaskKeyMap() TaskKeyMap {
	return NewTaskKeyMap(nil)
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TaskKeyMap{
		Add:              bind(cfg.AddTask, "add", "a"),
		Toggle:           bind(cfg.ToggleTask, "done", "d", " ", "space"),
		Delete:           bind(cfg.DeleteTask, "del", "x"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the task pane (implements help.KeyMap).
func (k TaskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete}
}

// FullHelp returns the full help for the task pane (implements help.KeyMap).
func (k TaskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Chart Pane Keys
// =============================================================================

// ChartKeyMap defines keys for the status chart.
type ChartKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Open key.Binding
}

// NewChartKeyMap creates chart key bindings from config.
func NewChartKeyMap(cfg *config.KeysConfig) ChartKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ChartKeyMap{
		Prev: bind(cfg.PrevSlice, "prev", "left", "h", "k", "up"),
		Next: bind(cfg.NextSlice, "next", "right", "l", "j", "down"),
		Open: bind(cfg.OpenSlice, "details", "enter"),
	}
}

// ShortHelp returns the short help for the chart pane (implements help.KeyMap).
func (k ChartKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Open}
}

// FullHelp returns the full help for the chart pane (implements help.KeyMap).
func (k ChartKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Open}}
}

// =============================================================================
// Overlay Keys
// =============================================================================

// ModalKeyMap defines keys for the slice detail modal.
type ModalKeyMap struct {
	Close key.Binding
}

// DefaultModalKeyMap returns the default modal key bindings.
func DefaultModalKeyMap() ModalKeyMap {
	return ModalKeyMap{Close: bind("", "close", "enter", "c", "esc")}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{Close: bind("", "close", "?", "esc", "q", "enter", " ", "space")}
}
