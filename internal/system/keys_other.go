//go:build !linux

package system

import "context"

// WatchKeys is a no-op outside linux; there is no evdev.
func WatchKeys(ctx context.Context, l logger, handlers KeyHandlers) {
	if l != nil && len(handlers) > 0 {
		l.Infof("input", "evdev hotkeys unavailable on this platform")
	}
}
