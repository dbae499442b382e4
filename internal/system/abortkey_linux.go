//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// KeyEsc and KeyF4 are Linux input-event-codes.h key codes.
	KeyEsc = 1
	KeyF4  = 62
)

// struct input_event is a timeval followed by u16 type, u16 code and s32 value.
var timevalSize = binary.Size(unix.Timeval{})

// WatchAbortKey watches every /dev/input/event* device and calls onAbort once
// when one of keys is pressed. Readers stop when ctx is done. It reports
// whether any device could be watched.
func WatchAbortKey(ctx context.Context, logger Logger, onAbort func(), keys ...uint16) bool {
	if logger == nil {
		logger = nopLogger{}
	}
	if onAbort == nil || len(keys) == 0 {
		return false
	}
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		logger.Infof("input", "no evdev devices, abort key disabled")
		return false
	}

	var once sync.Once
	abort := func() {
		once.Do(func() {
			logger.Infof("input", "abort key pressed")
			onAbort()
		})
	}

	watched := 0
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			logger.Errorf("input", "%s: %v", path, err)
			continue
		}
		watched++
		go watchDevice(ctx, os.NewFile(uintptr(fd), path), fd, keys, abort)
	}
	return watched > 0
}

func watchDevice(ctx context.Context, f *os.File, fd int, keys []uint16, abort func()) {
	defer f.Close()
	buf := make([]byte, 64*(timevalSize+8))
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
			return
		}
		if keyPressed(buf[:n], timevalSize, keys) {
			abort()
			return
		}
	}
}

// keyPressed scans a run of input_event records for a key-down of any of keys.
func keyPressed(events []byte, tvSize int, keys []uint16) bool {
	size := tvSize + 8
	for off := 0; off+size <= len(events); off += size {
		rec := events[off+tvSize : off+size]
		typ := binary.NativeEndian.Uint16(rec[0:2])
		code := binary.NativeEndian.Uint16(rec[2:4])
		value := int32(binary.NativeEndian.Uint32(rec[4:8]))
		if typ != evKey || value != 1 {
			continue
		}
		for _, k := range keys {
			if code == k {
				return true
			}
		}
	}
	return false
}
