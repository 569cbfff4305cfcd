//go:build !darwin && !linux

package notify

// Desktop notifications are not implemented here; New falls back to the
// no-op notifier.
func newPlatformNotifier() Notifier {
	return nil
}
