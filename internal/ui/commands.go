// Package ui provides the terminal dashboard.
// This file contains tea.Cmd factories. Storage writes and notifications run
// off the event loop and answer with a message from messages.go.
package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/dashboard"
	"taskboard/internal/notify"
	"taskboard/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces the count-up animation at roughly 60 frames a second.
const frameInterval = time.Second / 60

// toastDuration is how long a toast stays on screen.
const toastDuration = 3 * time.Second

// saveTimeout bounds a single persistence command.
const saveTimeout = 5 * time.Second

// dispatchCmd wraps an action in a message for the App.
func dispatchCmd(a dashboard.Action) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: a}
	}
}

// saver serializes persistence commands. Bubble Tea runs every command on
// its own goroutine, so two saves of the same key may race; each save carries
// a generation and a key is never overwritten by an older snapshot.
type saver struct {
	store *storage.Storage
	seq   uint64 // only touched from the update loop

	mu      sync.Mutex
	written map[string]uint64
}

func newSaver(store *storage.Storage) *saver {
	return &saver{store: store, written: make(map[string]uint64)}
}

// saveCmd writes the given keys of state. The state is captured by value, so
// later updates cannot change what this command writes.
func (s *saver) saveCmd(state dashboard.State, keys []string) tea.Cmd {
	if s == nil || s.store == nil || len(keys) == 0 {
		return nil
	}
	s.seq++
	gen := s.seq
	state = state.Clone()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		s.mu.Lock()
		defer s.mu.Unlock()

		for _, k := range keys {
			if s.written[k] > gen {
				continue
			}
			var err error
			switch k {
			case storage.KeyData:
				err = s.store.SaveProjectData(ctx, state.Data)
			case storage.KeyTasks:
				err = s.store.SaveTasks(ctx, state.Tasks)
			case storage.KeyTheme:
				err = s.store.SaveTheme(ctx, state.Theme)
			default:
				err = fmt.Errorf("unknown key %q", k)
			}
			if err != nil {
				return savedMsg{keys: keys, err: err}
			}
			s.written[k] = gen
		}
		return savedMsg{keys: keys}
	}
}

// animFrameCmd schedules the next animation frame.
func animFrameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animFrameMsg(t)
	})
}

// toastTimeoutCmd expires toast id after toastDuration.
func toastTimeoutCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// notifyCmd mirrors a toast to the desktop. Returns nil when the mirror is
// disabled so nothing is scheduled.
func notifyCmd(m *notify.Mirror, text string, isErr bool) tea.Cmd {
	if !m.Enabled() {
		return nil
	}
	level := notify.LevelSuccess
	if isErr {
		level = notify.LevelError
	}
	return func() tea.Msg {
		return notifiedMsg{err: m.Toast(text, level)}
	}
}
