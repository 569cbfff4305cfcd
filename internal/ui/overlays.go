package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"taskboard/internal/dashboard"
	"taskboard/internal/storage"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// confirmDeleteState is the pending yes/no question before a delete.
type confirmDeleteState struct {
	id    int64
	title string
	body  string
}

// counterEditor edits the two user-maintained counters.
type counterEditor struct {
	inputs [2]textinput.Model
	focus  int
	err    string
}

func newCounterEditor(data storage.ProjectData, labels dashboard.Labels) *counterEditor {
	e := &counterEditor{}
	values := [2]int{data.ActiveProjects, data.HoursLogged}
	prompts := [2]string{labels.ActiveProjects, labels.HoursLogged}
	for i := range e.inputs {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-16s ", prompts[i]+":")
		ti.CharLimit = 9
		ti.Width = 12
		ti.SetValue(strconv.Itoa(values[i]))
		e.inputs[i] = ti
	}
	e.inputs[0].Focus()
	return e
}

// next moves focus to the other field.
func (e *counterEditor) next() {
	e.inputs[e.focus].Blur()
	e.focus = (e.focus + 1) % len(e.inputs)
	e.inputs[e.focus].Focus()
}

// action parses both fields into a SetCounters action.
func (e *counterEditor) action() (dashboard.SetCounters, error) {
	var out [2]int
	for i, in := range e.inputs {
		n, err := strconv.Atoi(strings.TrimSpace(in.Value()))
		if err != nil || n < 0 {
			return dashboard.SetCounters{}, fmt.Errorf("%q is not a non-negative number", in.Value())
		}
		out[i] = n
	}
	return dashboard.SetCounters{ActiveProjects: &out[0], HoursLogged: &out[1]}, nil
}

// overlayWidth is the box width used by all centered dialogs.
func (a *App) overlayWidth() int {
	if a.width > 0 {
		return min(60, max(20, a.width-4))
	}
	return 60
}

func (a *App) renderConfirmDelete() string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(a.overlayWidth())

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	return RenderCentered(overlayStyle.Render(b.String()), a.width, a.height)
}

// sliceModalBox renders the slice detail box without placement.
func (a *App) sliceModalBox() string {
	s := *a.modal

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.Color)).
		Background(a.styles.ChartTooltipBg).
		Foreground(a.styles.ChartTooltipText).
		Padding(1, 2).
		Width(min(40, a.overlayWidth()))

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.Color))

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Label))
	b.WriteString("\n\n")
	b.WriteString(a.view.Labels.Count(s.Value))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[enter] " + a.view.Labels.Close))

	return overlayStyle.Render(b.String())
}

func (a *App) renderSliceModal() string {
	return RenderCentered(a.sliceModalBox(), a.width, a.height)
}

// insideSliceModal reports whether screen cell (x, y) falls on the modal box.
// The math mirrors lipgloss.Place with center alignment.
func (a *App) insideSliceModal(x, y int) bool {
	box := a.sliceModalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := int(math.Round(float64(a.width-w) * 0.5))
	top := int(math.Round(float64(a.height-h) * 0.5))
	return x >= left && x < left+w && y >= top && y < top+h
}

func (a *App) renderCounterEditor() string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(a.overlayWidth())

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit counters"))
	b.WriteString("\n\n")
	for _, in := range a.editor.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if a.editor.err != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.ErrorStyle.Render(a.editor.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[tab] next field    [enter] save    [esc] cancel"))

	return RenderCentered(overlayStyle.Render(b.String()), a.width, a.height)
}
