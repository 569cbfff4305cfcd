package ui

import (
	"strings"

	"taskboard/internal/config"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpEntry is one line of the help overlay.
type helpEntry struct {
	binding key.Binding
	desc    string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

// helpSections lists the shortcuts by context, using the bindings in effect.
func helpSections(cfg *config.KeysConfig) []helpSection {
	g := NewGlobalKeyMap(cfg)
	t := NewTaskKeyMap(cfg)
	c := NewChartKeyMap(cfg)
	in := NewInputKeyMap(cfg)

	return []helpSection{
		{"Global", []helpEntry{
			{g.NextPane, "Switch pane"},
			{g.ToggleTheme, "Toggle light/dark theme"},
			{g.EditCounters, "Edit project counters"},
			{g.Undo, "Undo"},
			{g.Redo, "Redo"},
			{g.DismissToast, "Dismiss notification"},
			{g.Help, "Toggle help"},
			{g.Quit, "Quit"},
		}},
		{"Tasks", []helpEntry{
			{t.Add, "Add task"},
			{t.Toggle, "Toggle done"},
			{t.Delete, "Delete task"},
			{t.Up, "Move up"},
			{t.Down, "Move down"},
			{t.Top, "Go to top"},
			{t.Bottom, "Go to bottom"},
		}},
		{"Chart", []helpEntry{
			{c.Prev, "Previous slice"},
			{c.Next, "Next slice"},
			{c.Open, "Show slice details"},
		}},
		{"Input Mode", []helpEntry{
			{in.Confirm, "Save"},
			{in.Cancel, "Cancel"},
		}},
	}
}

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width    int
	height   int
	styles   *Styles
	sections []helpSection
}

// NewHelpOverlay creates a help overlay for the given key overrides. A nil
// config shows the defaults.
func NewHelpOverlay(styles *Styles, keys *config.KeysConfig) *HelpOverlay {
	return &HelpOverlay{
		styles:   styles,
		sections: helpSections(keys),
	}
}

// SetStyles switches the overlay to another theme.
func (h *HelpOverlay) SetStyles(s *Styles) {
	h.styles = s
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(h.styles.ColorPrimary)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(h.styles.ColorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(h.styles.ColorWarning).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(h.styles.ColorText)
	mutedStyle := lipgloss.NewStyle().Foreground(h.styles.ColorTextMuted).Italic(true)

	lines := []string{titleStyle.Render("taskboard - Keyboard Shortcuts")}
	for _, sec := range h.sections {
		lines = append(lines, "", sectionStyle.Render(sec.title))
		for _, e := range sec.entries {
			label := keyLabel(e.binding.Keys(), 2, " / ", titleKey)
			lines = append(lines, keyStyle.Render(label)+descStyle.Render(e.desc))
		}
	}
	lines = append(lines, "", mutedStyle.Render("Press ? or Esc to close"))

	return RenderCentered(overlayStyle.Render(strings.Join(lines, "\n")), h.width, h.height)
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
