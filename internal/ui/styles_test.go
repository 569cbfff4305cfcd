package ui

import (
	"testing"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStyles_UsesThemeColors(t *testing.T) {
	palette := config.Palette{
		Primary:    "#FF0000",
		Accent:     "#00FF00",
		Muted:      "#0000FF",
		Background: "#000000",
		Text:       "#FFFFFF",
		Border:     "#123456",
	}

	styles := NewStylesFromPalette(storage.ThemeDark, palette)

	tests := []struct {
		name string
		got  lipgloss.Color
		want string
	}{
		{"primary", styles.ColorPrimary, "#FF0000"},
		{"accent", styles.ColorAccent, "#00FF00"},
		{"muted", styles.ColorMuted, "#0000FF"},
		{"background", styles.ColorBg, "#000000"},
		{"text", styles.ColorText, "#FFFFFF"},
		{"border", styles.ColorBorder, "#123456"},
	}
	for _, tc := range tests {
		if tc.got != lipgloss.Color(tc.want) {
			t.Errorf("%s = %v, want %s", tc.name, tc.got, tc.want)
		}
	}
}

func TestNewStyles_UsesDefaults(t *testing.T) {
	themes := NewThemeStyles(&config.ThemeConfig{})

	if themes.Light.ColorPrimary != lipgloss.Color("#7C3AED") {
		t.Errorf("light primary = %v", themes.Light.ColorPrimary)
	}
	if themes.Dark.ColorPrimary != lipgloss.Color("#A78BFA") {
		t.Errorf("dark primary = %v", themes.Dark.ColorPrimary)
	}
	if themes.Light.Theme != storage.ThemeLight || themes.Dark.Theme != storage.ThemeDark {
		t.Error("theme tags mixed up")
	}
}

func TestNewStyles_ChartPaletteFollowsTheme(t *testing.T) {
	themes := NewThemeStyles(nil)

	tests := []struct {
		theme storage.Theme
		want  dashboard.Palette
	}{
		{storage.ThemeLight, dashboard.PaletteFor(storage.ThemeLight)},
		{storage.ThemeDark, dashboard.PaletteFor(storage.ThemeDark)},
	}
	for _, tc := range tests {
		s := themes.For(tc.theme)
		if s.ChartBorder != lipgloss.Color(tc.want.Border) ||
			s.ChartLegend != lipgloss.Color(tc.want.Legend) ||
			s.ChartTooltipBg != lipgloss.Color(tc.want.TooltipBg) {
			t.Errorf("%s chart colors = %v %v %v", tc.theme, s.ChartBorder, s.ChartLegend, s.ChartTooltipBg)
		}
	}
}

func TestThemeStyles_ForUnknownIsLight(t *testing.T) {
	themes := NewThemeStyles(nil)
	if themes.For("sepia") != themes.Light {
		t.Error("unknown theme should use light styles")
	}
}

func TestStyles_TagStyle(t *testing.T) {
	s := NewStylesFromPalette(storage.ThemeLight, config.Palette{})

	if s.TagStyle(storage.StatusCompleted).GetForeground() != lipgloss.Color(dashboard.ColorCompleted) {
		t.Error("completed tag color")
	}
	if s.TagStyle(storage.StatusInProgress).GetForeground() != lipgloss.Color(dashboard.ColorInProgress) {
		t.Error("in-progress tag color")
	}
	if s.TagStyle(storage.StatusPending).GetForeground() != lipgloss.Color(dashboard.ColorPending) {
		t.Error("pending tag color")
	}
}

func TestStyles_RenderHelp(t *testing.T) {
	setupTest(t)
	s := NewStylesFromPalette(storage.ThemeLight, config.Palette{})

	got := s.RenderHelp("a", "add", "q", "quit")
	if got != "[a] add  [q] quit" {
		t.Errorf("RenderHelp = %q", got)
	}
	// A dangling key without description is skipped.
	if got := s.RenderHelp("a"); got != "" {
		t.Errorf("RenderHelp(odd) = %q", got)
	}
}
