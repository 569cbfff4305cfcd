// Package notify mirrors dashboard toasts as desktop notifications.
// It uses native notification mechanisms on macOS (osascript) and Linux (notify-send).
package notify

import "strings"

// AppName is shown as the notification source.
const AppName = "taskboard"

// Level is the severity of a toast.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string, level Level) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(string, string, Level) error { return nil }
func (noopNotifier) IsSupported() bool                { return false }

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// Config holds notification configuration.
type Config struct {
	// Enabled mirrors toasts to the desktop
	Enabled bool

	// Sound asks the platform to play its notification sound
	Sound bool
}

// Mirror forwards toasts to a Notifier when enabled.
type Mirror struct {
	n   Notifier
	cfg Config
}

// NewMirror wraps n. A nil n uses the platform notifier.
func NewMirror(n Notifier, cfg Config) *Mirror {
	if n == nil {
		n = New()
	}
	return &Mirror{n: n, cfg: cfg}
}

// Enabled reports whether Toast will send anything.
func (m *Mirror) Enabled() bool {
	return m != nil && m.cfg.Enabled && m.n.IsSupported()
}

// Toast sends message as a desktop notification. Blank messages are dropped.
func (m *Mirror) Toast(message string, level Level) error {
	if !m.Enabled() {
		return nil
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	title := AppName
	if level == LevelError {
		title = AppName + ": error"
	}
	if m.cfg.Sound && level == LevelSuccess {
		// Errors always use the louder urgency, so sound only changes
		// success toasts.
		level = soundLevel
	}
	return m.n.Send(title, message, level)
}

// soundLevel marks a success notification that should play a sound.
const soundLevel Level = -1
