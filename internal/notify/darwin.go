//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// darwinNotifier posts notifications through osascript.
type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return &darwinNotifier{}
}

// IsSupported returns true if osascript is available.
func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

// Send posts a notification. Errors and sound-enabled toasts play the
// default sound.
func (n *darwinNotifier) Send(title, message string, level Level) error {
	if err := exec.Command("osascript", osascriptArgs(title, message, level)...).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

func osascriptArgs(title, message string, level Level) []string {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		appleScriptEscaper.Replace(message), appleScriptEscaper.Replace(title))
	if level == LevelError || level == soundLevel {
		script += ` sound name "default"`
	}
	return []string{"-e", script}
}

// appleScriptEscaper quotes text for an AppleScript string literal, which
// cannot span lines.
var appleScriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", " ",
	"\n", " ",
)
