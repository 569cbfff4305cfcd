// Package ui provides the terminal dashboard.
// This file contains the main App model which owns the dashboard state,
// coordinates the panes and routes messages using the Bubble Tea architecture.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/dashboard"
	"taskboard/internal/notify"
	"taskboard/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneChart
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows both panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	NarrowLayoutThreshold int
	Locale                string
	Animate               bool

	// Mirror forwards toasts to desktop notifications. Nil disables it.
	Mirror *notify.Mirror

	// Warnings from loading stored data, shown once at startup.
	Warnings []string

	Logger *log.Logger
	Now    func() time.Time
}

// DefaultAppConfig returns the configuration used when none is given.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		NarrowLayoutThreshold: 80,
		Locale:                dashboard.LocaleEnglish,
		Animate:               true,
	}
}

// toast is a transient notification on the bottom line.
type toast struct {
	id    int
	text  string
	isErr bool
}

// App is the main application model. It is the only owner of the dashboard
// state: panes emit actions and App dispatches them.
type App struct {
	saver   *saver
	state   dashboard.State
	disp    dashboard.Dispatcher
	view    dashboard.ViewModel
	themes  ThemeStyles
	styles  *Styles
	config  *AppConfig
	logger  *log.Logger

	taskPane    *TaskPane
	chartPane   *ChartPane
	cards       *StatCards
	helpOverlay *HelpOverlay
	undoManager *UndoManager

	confirmDel *confirmDeleteState
	modal      *dashboard.Slice
	editor     *counterEditor
	toast      *toast
	toastSeq   int
	animating  bool
	initCmd    tea.Cmd

	activePane PaneID
	layoutMode LayoutMode
	showHelp   bool
	width      int
	height     int
	quitting   bool

	// Key bindings
	keys      GlobalKeyMap
	helpKeys  HelpKeyMap
	modalKeys ModalKeyMap
	inputKeys InputKeyMap

	// Pane positions for mouse click detection (x coordinates)
	tasksPaneStart int
	tasksPaneEnd   int
	chartPaneStart int
	chartPaneEnd   int
	contentTop     int // Y coordinate where panes start
}

// NewApp creates the application around an already loaded state.
func NewApp(store *storage.Storage, state dashboard.State, themes ThemeStyles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = DefaultAppConfig()
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if themes.Light == nil || themes.Dark == nil {
		themes = NewThemeStyles(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	styles := themes.For(state.Theme)
	a := &App{
		saver:       newSaver(store),
		state:       state,
		disp:        dashboard.Dispatcher{Now: cfg.Now},
		themes:      themes,
		styles:      styles,
		config:      cfg,
		logger:      logger,
		taskPane:    NewTaskPane(styles, cfg.Keys),
		chartPane:   NewChartPane(styles, cfg.Keys),
		cards:       NewStatCards(styles, cfg.Animate),
		helpOverlay: NewHelpOverlay(styles, cfg.Keys),
		undoManager: NewUndoManager(),
		activePane:  PaneTasks,
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
		modalKeys:   DefaultModalKeyMap(),
		inputKeys:   NewInputKeyMap(cfg.Keys),
	}
	a.setActivePane(PaneTasks)
	a.initCmd = a.refresh()
	return a
}

// State returns the current dashboard state.
func (a *App) State() dashboard.State {
	return a.state
}

// Init starts the count-up and shows any load warnings.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.initCmd}
	a.initCmd = nil
	if len(a.config.Warnings) > 0 {
		text := "Stored data was unreadable: " + strings.Join(a.config.Warnings, "; ")
		cmds = append(cmds, a.showToast(text, true))
	}
	return tea.Batch(cmds...)
}

func (a *App) now() time.Time {
	if a.config.Now != nil {
		return a.config.Now()
	}
	return time.Now()
}

// refresh rebuilds the view model and pushes it into every pane. Returns the
// first animation frame when a count-up starts.
func (a *App) refresh() tea.Cmd {
	a.view = dashboard.BuildView(a.state, a.config.Locale)
	a.styles = a.themes.For(a.state.Theme)

	a.taskPane.SetStyles(a.styles)
	a.chartPane.SetStyles(a.styles)
	a.cards.SetStyles(a.styles)
	a.helpOverlay.SetStyles(a.styles)

	a.taskPane.SetRows(a.view.Rows, a.view.Labels)
	a.chartPane.SetChart(a.view.Chart, a.view.Palette)

	if a.cards.SetCards(a.view.Cards, a.now()) && !a.animating {
		a.animating = true
		return animFrameCmd()
	}
	return nil
}

// apply dispatches an action and schedules persistence of whatever changed.
// User actions are recorded for undo; undo and redo themselves are not.
func (a *App) apply(action dashboard.Action, record bool) tea.Cmd {
	before := a.state
	res := a.disp.Dispatch(a.state, action)
	if !res.Changed {
		return nil
	}
	a.state = res.State
	refreshCmd := a.refresh()

	var toastCmd tea.Cmd
	if record {
		switch act := action.(type) {
		case dashboard.Add:
			a.undoManager.Push(NewAddTaskAction(res.Task, res.Index))
			a.taskPane.SelectID(res.Task.ID)
			toastCmd = a.showToast(a.view.Labels.TaskAdded, false)
		case dashboard.Toggle:
			if prev, ok := before.Get(act.ID); ok {
				a.undoManager.Push(NewToggleTaskAction(prev, res.Task, res.Index))
			}
		case dashboard.Delete:
			a.undoManager.Push(NewDeleteTaskAction(res.Task, res.Index))
			toastCmd = a.showToast(a.view.Labels.TaskDeleted, false)
		case dashboard.SetCounters:
			a.undoManager.Push(NewCountersAction(before.Data, res.State.Data))
		}
	}

	a.logger.Debug("dispatched", "action", fmt.Sprintf("%T", action), "persist", res.Persist,
		"completed", res.Stats.Completed, "inProgress", res.Stats.InProgress, "pending", res.Stats.Pending)

	return tea.Batch(
		refreshCmd,
		a.saver.saveCmd(a.state, res.Persist),
		toastCmd,
	)
}

// showToast replaces the current toast and schedules its expiry.
func (a *App) showToast(text string, isErr bool) tea.Cmd {
	a.toastSeq++
	a.toast = &toast{id: a.toastSeq, text: text, isErr: isErr}
	return tea.Batch(
		toastTimeoutCmd(a.toastSeq),
		notifyCmd(a.config.Mirror, text, isErr),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Results of commands are handled first, regardless of overlays.
	switch msg := msg.(type) {
	case actionMsg:
		return a, a.apply(msg.action, true)

	case savedMsg:
		if msg.err != nil {
			a.logger.Error("save failed", "keys", msg.keys, "err", msg.err)
			return a, a.showToast("Save failed: "+msg.err.Error(), true)
		}
		return a, nil

	case sliceOpenedMsg:
		s := msg.slice
		a.modal = &s
		return a, nil

	case animFrameMsg:
		if a.cards.Tick(a.now()) {
			return a, animFrameCmd()
		}
		a.animating = false
		return a, nil

	case toastExpiredMsg:
		if a.toast != nil && a.toast.id == msg.id {
			a.toast = nil
		}
		return a, nil

	case notifiedMsg:
		if msg.err != nil {
			a.logger.Warn("desktop notification failed", "err", msg.err)
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)
	}

	// Anything else (cursor blink) goes to the inputs that may be showing.
	if a.editor != nil {
		var cmd tea.Cmd
		a.editor.inputs[a.editor.focus], cmd = a.editor.inputs[a.editor.focus].Update(msg)
		return a, cmd
	}
	if a.taskPane.IsAdding() {
		return a, a.taskPane.Update(msg)
	}
	return a, nil
}

// handleKey routes a key press. Overlays take priority over panes.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDel != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			id := a.confirmDel.id
			a.confirmDel = nil
			return a, a.apply(dashboard.Delete{ID: id, Confirm: dashboard.Confirmed}, true)
		case "n", "N", "esc":
			// Declined: no state change, no message.
			a.confirmDel = nil
		}
		return a, nil
	}

	if a.modal != nil {
		if key.Matches(msg, a.modalKeys.Close) {
			a.modal = nil
		}
		return a, nil
	}

	if a.editor != nil {
		return a, a.updateEditor(msg)
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	if key.Matches(msg, a.keys.DismissToast) && a.toast != nil {
		a.toast = nil
		return a, nil
	}

	if a.taskPane.IsAdding() {
		return a, a.taskPane.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.NextPane):
		a.switchPane()
		return a, nil

	case key.Matches(msg, a.keys.ToggleTheme):
		return a, a.apply(dashboard.ToggleThemeAction{}, false)

	case key.Matches(msg, a.keys.EditCounters):
		a.editor = newCounterEditor(a.state.Data, a.view.Labels)
		return a, nil

	case key.Matches(msg, a.keys.Undo):
		return a, a.undo()

	case key.Matches(msg, a.keys.Redo):
		return a, a.redo()
	}

	if a.activePane == PaneTasks && key.Matches(msg, a.taskPane.keys.Delete) {
		return a, a.requestDelete()
	}

	switch a.activePane {
	case PaneChart:
		return a, a.chartPane.Update(msg)
	default:
		return a, a.taskPane.Update(msg)
	}
}

// requestDelete asks for confirmation of deleting the selected task, or
// deletes it straight away when confirmations are off.
func (a *App) requestDelete() tea.Cmd {
	row, ok := a.taskPane.Selected()
	if !ok {
		return a.showToast("No task selected", true)
	}
	if !a.config.ConfirmDeletions {
		return a.apply(dashboard.Delete{ID: row.ID, Confirm: dashboard.Confirmed}, true)
	}
	a.confirmDel = &confirmDeleteState{
		id:    row.ID,
		title: a.view.Labels.DeleteTask + "?",
		body:  a.view.Labels.DeleteAsk + "\n\n" + truncateText(row.Text, 60),
	}
	return nil
}

func (a *App) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.inputKeys.Cancel):
		a.editor = nil
		return nil

	case key.Matches(msg, a.inputKeys.Confirm):
		action, err := a.editor.action()
		if err != nil {
			a.editor.err = err.Error()
			return nil
		}
		a.editor = nil
		return a.apply(action, true)

	case msg.String() == "tab" || msg.String() == "shift+tab" || msg.String() == "up" || msg.String() == "down":
		a.editor.next()
		return nil
	}

	var cmd tea.Cmd
	a.editor.inputs[a.editor.focus], cmd = a.editor.inputs[a.editor.focus].Update(msg)
	return cmd
}

func (a *App) undo() tea.Cmd {
	entry, ok := a.undoManager.Undo()
	if !ok {
		return a.showToast("Nothing to undo", false)
	}
	return tea.Batch(a.apply(entry.Undo, false), a.showToast("Undid: "+entry.Description, false))
}

func (a *App) redo() tea.Cmd {
	entry, ok := a.undoManager.Redo()
	if !ok {
		return a.showToast("Nothing to redo", false)
	}
	return tea.Batch(a.apply(entry.Redo, false), a.showToast("Redid: "+entry.Description, false))
}

// handleMouse routes clicks. Overlays close on any click outside of them.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if a.confirmDel != nil {
		if press {
			a.confirmDel = nil
		}
		return a, nil
	}

	if a.modal != nil {
		if press && !a.insideSliceModal(msg.X, msg.Y) {
			a.modal = nil
		}
		return a, nil
	}

	if a.editor != nil {
		return a, nil
	}

	if a.showHelp {
		if press {
			a.showHelp = false
		}
		return a, nil
	}

	if press && a.toast != nil && msg.Y == a.height-1 {
		a.toast = nil
		return a, nil
	}

	// Theme icon sits at the right end of the title bar.
	if press && msg.Y == 0 && msg.X >= a.width-4 {
		return a, a.apply(dashboard.ToggleThemeAction{}, false)
	}

	if a.layoutMode == LayoutNarrow && press && msg.Y == a.contentTop-1 {
		if msg.X < a.width/2 {
			a.setActivePane(PaneTasks)
		} else {
			a.setActivePane(PaneChart)
		}
		return a, nil
	}

	if msg.Y < a.contentTop {
		return a, nil
	}

	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown
	if !press && !wheel {
		return a, nil
	}

	pane := a.paneAtPosition(msg.X)
	if pane < 0 {
		return a, nil
	}
	if press && pane != a.activePane {
		a.setActivePane(pane)
	}

	local := msg
	local.Y = msg.Y - a.contentTop
	switch pane {
	case PaneChart:
		if a.layoutMode == LayoutWide {
			local.X = msg.X - a.chartPaneStart
		}
		if wheel {
			return a, nil
		}
		return a, a.chartPane.Update(local)
	default:
		local.X = msg.X - a.tasksPaneStart
		return a, a.taskPane.Update(local)
	}
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneTasks:
		a.setActivePane(PaneChart)
	default:
		a.setActivePane(PaneTasks)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.taskPane.SetFocused(pane == PaneTasks)
	a.chartPane.SetFocused(pane == PaneChart)
}

// paneAtPosition returns which pane is at the given X coordinate.
// Returns -1 if no pane is at that position.
func (a *App) paneAtPosition(x int) PaneID {
	if a.layoutMode == LayoutNarrow {
		return a.activePane
	}
	if x >= a.tasksPaneStart && x < a.tasksPaneEnd {
		return PaneTasks
	}
	if x >= a.chartPaneStart && x < a.chartPaneEnd {
		return PaneChart
	}
	return -1
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4
	a.cards.SetWidth(a.width)

	// Title bar, then the card row.
	a.contentTop = 1 + cardsHeight

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	if a.width < threshold {
		a.layoutMode = LayoutNarrow
		a.contentTop++ // tab bar

		paneWidth := max(totalWidth, 20)
		paneHeight := max(a.height-a.contentTop-1-2, 8)

		a.taskPane.SetSize(paneWidth, paneHeight)
		a.chartPane.SetSize(paneWidth, paneHeight)

		a.tasksPaneStart = 0
		a.tasksPaneEnd = a.width
		a.chartPaneStart = 0
		a.chartPaneEnd = a.width
		return
	}

	a.layoutMode = LayoutWide

	paneHeight := max(a.height-a.contentTop-1-2, 8)
	tasksWidth := (totalWidth * 55) / 100
	if totalWidth >= 120 {
		tasksWidth = min(tasksWidth, 70)
	}
	chartWidth := totalWidth - tasksWidth - 1

	a.taskPane.SetSize(tasksWidth, paneHeight)
	a.chartPane.SetSize(chartWidth, paneHeight)

	// Rendered panes are two columns wider than their content (border), with
	// a one column gap between them.
	a.tasksPaneStart = 0
	a.tasksPaneEnd = tasksWidth + 2
	a.chartPaneStart = a.tasksPaneEnd + 1
	a.chartPaneEnd = a.chartPaneStart + chartWidth + 2
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	switch {
	case a.confirmDel != nil:
		return a.renderConfirmDelete()
	case a.modal != nil:
		return a.renderSliceModal()
	case a.editor != nil:
		return a.renderCounterEditor()
	case a.showHelp:
		return a.helpOverlay.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(a.cards.View())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

// renderWideContent renders both panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, a.taskPane.View(), " ", a.chartPane.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneChart:
		b.WriteString(a.chartPane.View())
	default:
		b.WriteString(a.taskPane.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTasks, "Tasks"},
		{PaneChart, "Chart"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with the final counts.
func (a *App) renderGoodbye() string {
	st := a.state.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")
	if st.Total > 0 {
		pct := (st.Completed * 100) / st.Total
		b.WriteString(fmt.Sprintf("     Tasks: %d/%d completed (%d%%)\n", st.Completed, st.Total, pct))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTitleBar creates the top title bar with task counts and the theme
// toggle icon at the right edge.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" taskboard ")

	st := a.state.Stats()
	stats := a.styles.StatLabelStyle.Render(fmt.Sprintf("Tasks: %d/%d", st.Completed, st.Total))

	icon := a.styles.ThemeIconStyle.Render(" " + a.view.ThemeIcon + " ")

	left := title + "  " + stats
	spacer := a.width - lipgloss.Width(left) - lipgloss.Width(icon)
	if spacer < 1 {
		spacer = 1
	}
	return left + strings.Repeat(" ", spacer) + icon
}

// renderHelpBar creates the bottom line: the current toast, or context hints.
func (a *App) renderHelpBar() string {
	if a.toast != nil {
		if a.toast.isErr {
			return a.styles.ErrorStyle.Render(a.toast.text)
		}
		return a.styles.StatusStyle.Render(a.toast.text)
	}

	var bindings []key.Binding
	switch {
	case a.taskPane.IsAdding():
		bindings = []key.Binding{a.inputKeys.Confirm, a.inputKeys.Cancel}
	case a.activePane == PaneChart:
		bindings = append(a.chartPane.keys.ShortHelp(), a.keys.ToggleTheme, a.keys.NextPane, a.keys.Help)
	default:
		bindings = append(a.taskPane.keys.ShortHelp(), a.keys.ToggleTheme, a.keys.NextPane, a.keys.Help)
	}
	return a.styles.RenderHelp(helpPairs(bindings...)...)
}

// Run starts the Bubble Tea program and returns the final state.
func Run(ctx context.Context, store *storage.Storage, state dashboard.State, themes ThemeStyles, cfg *AppConfig) (dashboard.State, error) {
	app := NewApp(store, state, themes, cfg)
	p := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return app.State(), err
}
