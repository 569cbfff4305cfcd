package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// chartHeaderRows is the number of pane lines above the first slice.
const chartHeaderRows = 3

// ChartPane draws the three-slice status chart as horizontal bars. One slice
// is selected at a time; opening it shows its detail modal.
type ChartPane struct {
	chart    dashboard.Chart
	palette  dashboard.Palette
	selected int
	focused  bool
	width    int
	height   int
	styles   *Styles
	keys     ChartKeyMap
}

// NewChartPane creates an empty chart pane.
func NewChartPane(styles *Styles, keyCfg *config.KeysConfig) *ChartPane {
	return &ChartPane{
		styles: styles,
		keys:   NewChartKeyMap(keyCfg),
	}
}

// SetChart replaces the chart data and palette.
func (c *ChartPane) SetChart(chart dashboard.Chart, palette dashboard.Palette) {
	c.chart = chart
	c.palette = palette
	if c.selected >= len(chart.Slices) {
		c.selected = 0
	}
}

// SetStyles switches the pane to another theme.
func (c *ChartPane) SetStyles(s *Styles) {
	c.styles = s
}

// SetSize sets the pane dimensions.
func (c *ChartPane) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetFocused sets whether this pane is focused.
func (c *ChartPane) SetFocused(focused bool) {
	c.focused = focused
}

// Selected returns the selected slice.
func (c *ChartPane) Selected() (dashboard.Slice, bool) {
	if c.selected < 0 || c.selected >= len(c.chart.Slices) {
		return dashboard.Slice{}, false
	}
	return c.chart.Slices[c.selected], true
}

// Update handles keys and clicks for the chart.
func (c *ChartPane) Update(msg tea.Msg) tea.Cmd {
	if !c.focused || len(c.chart.Slices) == 0 {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		n := len(c.chart.Slices)
		switch {
		case key.Matches(msg, c.keys.Prev):
			c.selected = (c.selected + n - 1) % n
		case key.Matches(msg, c.keys.Next):
			c.selected = (c.selected + 1) % n
		case key.Matches(msg, c.keys.Open):
			return c.openSelected()
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
			return nil
		}
		idx := msg.Y - chartHeaderRows
		if idx < 0 || idx >= len(c.chart.Slices) {
			return nil
		}
		c.selected = idx
		return c.openSelected()
	}
	return nil
}

func (c *ChartPane) openSelected() tea.Cmd {
	s, ok := c.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return sliceOpenedMsg{slice: s} }
}

// View renders the chart pane.
func (c *ChartPane) View() string {
	var b strings.Builder

	b.WriteString(c.styles.PaneTitleStyle.Render(strings.ToUpper(c.chart.Title)))
	b.WriteString("\n")

	sepWidth := c.width - 2
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(c.styles.ColorBorder).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	labelWidth := 0
	for _, s := range c.chart.Slices {
		labelWidth = max(labelWidth, runewidth.StringWidth(s.Label))
	}

	// marker, label, gap, bar, gap, "100%"
	barWidth := c.width - 2 - 2 - labelWidth - 1 - 1 - 4
	if barWidth < 4 {
		barWidth = 4
	}

	for i, s := range c.chart.Slices {
		marker := "  "
		if i == c.selected && c.focused {
			marker = c.styles.HelpKeyStyle.Render("▸ ")
		}
		label := runewidth.FillRight(s.Label, labelWidth)
		bar := c.bar(s.Color, barWidth).ViewAs(s.Percent / 100)
		pct := fmt.Sprintf("%3.0f%%", s.Percent)
		b.WriteString(marker + c.styles.LegendStyle.Render(label) + " " + bar + " " + c.styles.LegendStyle.Render(pct))
		b.WriteString("\n")
	}

	if s, ok := c.Selected(); ok {
		b.WriteString("\n")
		tip := fmt.Sprintf("%s: %d", s.Label, s.Value)
		b.WriteString(c.styles.TooltipStyle.Render(tip))
		b.WriteString("\n")
	}

	style := c.styles.PaneStyle
	if c.focused {
		style = c.styles.PaneFocusedStyle
	}
	return style.Width(c.width).Height(c.height).Render(b.String())
}

// bar builds a solid progress bar in the slice color. The empty track uses
// the theme's chart border color.
func (c *ChartPane) bar(color string, width int) progress.Model {
	p := progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	p.EmptyColor = c.palette.Border
	if c.palette.Border == "" {
		p.EmptyColor = string(c.styles.ColorBorder)
	}
	return p
}
