// Package ui provides the terminal dashboard.
package ui

import (
	"fmt"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// taskHeaderRows is the number of pane lines above the first task: the top
// border, the title and the separator.
const taskHeaderRows = 3

// checkboxHitWidth is how many columns from the pane's left edge count as a
// click on the checkbox.
const checkboxHitWidth = 7

// TaskPane handles the task list display and interactions. It renders rows
// from the view model and turns keys into dashboard actions; it never
// changes state itself.
type TaskPane struct {
	rows    []dashboard.Row
	labels  dashboard.Labels
	cursor  int
	focused bool
	width   int
	height  int
	adding  bool
	input   textinput.Model
	styles  *Styles

	// Key bindings
	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane with custom key bindings.
func NewTaskPane(styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Width = 40

	return &TaskPane{
		rows:      []dashboard.Row{},
		labels:    dashboard.LabelsFor(dashboard.LocaleEnglish),
		focused:   true,
		input:     ti,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetRows replaces the displayed rows and keeps the cursor in bounds.
func (p *TaskPane) SetRows(rows []dashboard.Row, labels dashboard.Labels) {
	p.rows = rows
	p.labels = labels
	if p.cursor >= len(p.rows) {
		p.cursor = max(0, len(p.rows)-1)
	}
}

// SetStyles switches the pane to another theme.
func (p *TaskPane) SetStyles(s *Styles) {
	p.styles = s
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether we're in add mode.
func (p *TaskPane) IsAdding() bool {
	return p.adding
}

// Selected returns the row under the cursor.
func (p *TaskPane) Selected() (dashboard.Row, bool) {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return dashboard.Row{}, false
	}
	return p.rows[p.cursor], true
}

// SelectID moves the cursor to the task with id, if present.
func (p *TaskPane) SelectID(id int64) {
	for i, r := range p.rows {
		if r.ID == id {
			p.cursor = i
			return
		}
	}
}

// visibleRows returns how many task lines fit and the index of the first one.
func (p *TaskPane) visibleRows() (count, start int) {
	count = p.height - taskHeaderRows - 3 // stats line, spacing, input
	if p.adding {
		count -= 2
	}
	if count < 3 {
		count = 3
	}
	if p.cursor >= count {
		start = p.cursor - count + 1
	}
	return count, start
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	if p.adding {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				text := p.input.Value()
				p.adding = false
				p.input.Reset()
				p.input.Blur()
				// Blank text is dropped by the dispatcher.
				return dispatchCmd(dashboard.Add{Text: text})

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.input.Reset()
				p.input.Blur()
				return nil
			}
		}

		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.rows) > 0 {
				p.cursor = min(p.cursor+1, len(p.rows)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.rows) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.rows) > 0 {
				p.cursor = len(p.rows) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Placeholder = p.labels.AddPrompt
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			if row, ok := p.Selected(); ok {
				return dispatchCmd(dashboard.Toggle{ID: row.ID})
			}
		}
	}

	return nil
}

// handleMouse processes mouse events in pane-local coordinates.
func (p *TaskPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(p.rows) == 0 {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(p.rows)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		count, start := p.visibleRows()
		row := msg.Y - taskHeaderRows
		if row < 0 || row >= count {
			return nil
		}
		idx := start + row
		if idx >= len(p.rows) {
			return nil
		}
		p.cursor = idx

		if msg.X < checkboxHitWidth {
			return dispatchCmd(dashboard.Toggle{ID: p.rows[idx].ID})
		}
	}

	return nil
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("TASKS"))
	b.WriteString("\n")

	sepWidth := p.width - 2
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorBorder).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.rows) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		count, start := p.visibleRows()
		done := 0

		for i, row := range p.rows {
			if row.Checked {
				done++
			}
			if i < start || i >= start+count {
				continue
			}
			b.WriteString(p.renderRow(i, row))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d complete", done, len(p.rows))))
		b.WriteString("\n")
	}

	if p.adding {
		b.WriteString("\n")
		b.WriteString(p.styles.InputPromptStyle.Render("+ ") + p.input.View())
		b.WriteString("\n")
	}

	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(b.String())
}

// renderRow lays out " [✓] text ... tag" within the pane width.
func (p *TaskPane) renderRow(i int, row dashboard.Row) string {
	checkbox := p.styles.TaskCheckboxPending
	if row.Checked {
		checkbox = p.styles.TaskCheckboxDone
	}

	tag := row.StatusLabel
	tagWidth := runewidth.StringWidth(tag)

	// Fixed parts: leading space, checkbox (3), space, space before tag.
	fixedWidth := 6 + tagWidth
	textWidth := p.width - 2 - fixedWidth
	if textWidth < 5 {
		textWidth = 5
	}
	text := runewidth.Truncate(row.Text, textWidth, "..")
	padding := max(1, textWidth-runewidth.StringWidth(text)+1)

	if i == p.cursor && p.focused && !p.adding {
		line := fmt.Sprintf(" %s %s%s%s ", checkbox, text, strings.Repeat(" ", padding), tag)
		return p.styles.TaskSelectedStyle.Render(line)
	}

	textStyle := p.styles.TaskPendingStyle
	if row.Checked {
		textStyle = p.styles.TaskDoneStyle
	}
	return fmt.Sprintf(" %s %s%s%s",
		checkbox,
		textStyle.Render(text),
		strings.Repeat(" ", padding),
		p.styles.TagStyle(row.Status).Render(tag),
	)
}
