package ui

import (
	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles for one theme.
type Styles struct {
	Theme storage.Theme

	// Colors
	ColorPrimary   lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorBorder    lipgloss.Color

	// Chart colors from the dashboard palette
	ChartBorder      lipgloss.Color
	ChartLegend      lipgloss.Color
	ChartTooltipBg   lipgloss.Color
	ChartTooltipText lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	ThemeIconStyle   lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	CardStyle      lipgloss.Style
	CardValueStyle lipgloss.Style
	CardLabelStyle lipgloss.Style

	TaskDoneStyle       lipgloss.Style
	TaskPendingStyle    lipgloss.Style
	TaskSelectedStyle   lipgloss.Style
	TaskCheckboxDone    string
	TaskCheckboxPending string

	// Status tag styles
	TagCompletedStyle  lipgloss.Style
	TagInProgressStyle lipgloss.Style
	TagPendingStyle    lipgloss.Style

	LegendStyle  lipgloss.Style
	TooltipStyle lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
}

// ThemeStyles holds the styles of both themes so a toggle only swaps pointers.
type ThemeStyles struct {
	Light *Styles
	Dark  *Styles
}

// For returns the styles for t.
func (ts ThemeStyles) For(t storage.Theme) *Styles {
	if t == storage.ThemeDark {
		return ts.Dark
	}
	return ts.Light
}

// NewThemeStyles creates both themes from config. Empty colors fall back to
// the defaults.
func NewThemeStyles(theme *config.ThemeConfig) ThemeStyles {
	if theme == nil {
		theme = &config.ThemeConfig{}
	}
	return ThemeStyles{
		Light: NewStylesFromPalette(storage.ThemeLight, theme.Light),
		Dark:  NewStylesFromPalette(storage.ThemeDark, theme.Dark),
	}
}

// NewStylesFromPalette creates a Styles instance for one theme.
func NewStylesFromPalette(t storage.Theme, p config.Palette) *Styles {
	s := &Styles{Theme: t}
	chart := dashboard.PaletteFor(t)

	if t == storage.ThemeDark {
		s.ColorPrimary = colorOrDefault(p.Primary, "#A78BFA")
		s.ColorAccent = colorOrDefault(p.Accent, "#4CAF50")
		s.ColorMuted = colorOrDefault(p.Muted, "#9CA3AF")
		s.ColorBg = colorOrDefault(p.Background, "#121212")
		s.ColorBgLight = lipgloss.Color("#2D2D2D")
		s.ColorText = colorOrDefault(p.Text, "#E0E0E0")
		s.ColorTextMuted = lipgloss.Color("#9CA3AF")
		s.ColorBorder = colorOrDefault(p.Border, "#3A3A3A")
	} else {
		s.ColorPrimary = colorOrDefault(p.Primary, "#7C3AED")
		s.ColorAccent = colorOrDefault(p.Accent, "#4CAF50")
		s.ColorMuted = colorOrDefault(p.Muted, "#6B7280")
		s.ColorBg = colorOrDefault(p.Background, "")
		s.ColorBgLight = lipgloss.Color("#E5E7EB")
		s.ColorText = colorOrDefault(p.Text, "#333333")
		s.ColorTextMuted = lipgloss.Color("#6B7280")
		s.ColorBorder = colorOrDefault(p.Border, "#D1D5DB")
	}

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color(dashboard.ColorPending)
	s.ColorSuccess = lipgloss.Color(dashboard.ColorCompleted)

	s.ChartBorder = lipgloss.Color(chart.Border)
	s.ChartLegend = lipgloss.Color(chart.Legend)
	s.ChartTooltipBg = lipgloss.Color(chart.TooltipBg)
	s.ChartTooltipText = lipgloss.Color(chart.TooltipText)

	s.initComponentStyles()
	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.ThemeIconStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorBorder).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	// Stat cards
	s.CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorBorder).
		Padding(0, 1)

	s.CardValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.CardLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Task styles
	s.TaskDoneStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskPendingStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskCheckboxDone = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("[✓]")
	s.TaskCheckboxPending = lipgloss.NewStyle().Foreground(s.ColorMuted).Render("[ ]")

	s.TagCompletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dashboard.ColorCompleted))
	s.TagInProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dashboard.ColorInProgress))
	s.TagPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dashboard.ColorPending))

	// Chart legend and the selected-slice tooltip
	s.LegendStyle = lipgloss.NewStyle().
		Foreground(s.ChartLegend)

	s.TooltipStyle = lipgloss.NewStyle().
		Foreground(s.ChartTooltipText).
		Background(s.ChartTooltipBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ChartBorder).
		Padding(0, 1)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	// Toasts
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)
}

// TagStyle returns the style of a status tag.
func (s *Styles) TagStyle(status storage.Status) lipgloss.Style {
	switch status {
	case storage.StatusCompleted:
		return s.TagCompletedStyle
	case storage.StatusInProgress:
		return s.TagInProgressStyle
	default:
		return s.TagPendingStyle
	}
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		result += s.HelpKeyStyle.Render("["+keys[i]+"]") + " " + s.HelpStyle.Render(keys[i+1])
	}
	return result
}
