// Package ui provides the terminal dashboard.
// This file defines the message types that flow through the Bubble Tea
// update loop. Storage I/O runs in commands and reports back through these.
package ui

import (
	"time"

	"taskboard/internal/dashboard"
)

// actionMsg asks the App to dispatch an action. Panes emit it instead of
// touching state themselves.
type actionMsg struct {
	action dashboard.Action
}

// savedMsg is sent when a persistence command finishes.
type savedMsg struct {
	keys []string
	err  error
}

// animFrameMsg drives the stat card count-up.
type animFrameMsg time.Time

// toastExpiredMsg is sent when a toast's display time runs out. The id
// guards against expiring a newer toast.
type toastExpiredMsg struct {
	id int
}

// notifiedMsg reports the outcome of a desktop notification.
type notifiedMsg struct {
	err error
}

// sliceOpenedMsg asks the App to show the detail modal for a chart slice.
type sliceOpenedMsg struct {
	slice dashboard.Slice
}
