//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// WatchKeys reads every /dev/input/event* device and runs the matching
// handler on key press until ctx is done. It is best-effort: without input
// devices it logs and returns.
func WatchKeys(ctx context.Context, l logger, handlers KeyHandlers) {
	if len(handlers) == 0 {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if l != nil {
			l.Infof("input", "no evdev devices found, hotkeys disabled")
		}
		return
	}

	tvSize := int(binary.Size(unix.Timeval{}))
	for _, path := range paths {
		go watchDevice(ctx, l, path, tvSize, handlers)
	}
}

func watchDevice(ctx context.Context, l logger, path string, tvSize int, handlers KeyHandlers) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()

	buf := make([]byte, 64*(tvSize+8))
	for ctx.Err() == nil {
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			if l != nil {
				l.Infof("input", "%s closed: %v", path, err)
			}
			return
		}
		for _, code := range keyPresses(buf[:n], tvSize) {
			if fn := handlers[code]; fn != nil {
				fn()
			}
		}
	}
}
