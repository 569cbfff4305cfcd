//go:build linux

package notify

import (
	"fmt"
	"os/exec"
	"strconv"
)

// expireMillis matches the on-screen toast duration.
const expireMillis = 3000

// linuxNotifier posts notifications through notify-send. Whether a sound
// plays is up to the notification daemon; the urgency hints at it.
type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

// IsSupported returns true if notify-send is available.
func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

// Send posts a notification.
func (n *linuxNotifier) Send(title, message string, level Level) error {
	if err := exec.Command("notify-send", notifySendArgs(title, message, level)...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

func notifySendArgs(title, message string, level Level) []string {
	urgency := "low"
	switch level {
	case LevelError:
		urgency = "critical"
	case soundLevel:
		urgency = "normal"
	}
	return []string{
		"--app-name=" + AppName,
		"--expire-time=" + strconv.Itoa(expireMillis),
		"--urgency=" + urgency,
		title,
		message,
	}
}
