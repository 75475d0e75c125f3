//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyEsc   = 1
	keyO     = 24
	keyV     = 47
	keySpace = 57
	keyF4    = 62
)

var keyBindings = map[uint16]Event{
	keySpace: TogglePause,
	keyV:     CycleVariant,
	keyO:     ToggleOverlay,
	keyEsc:   Exit,
	keyF4:    Exit,
}

// Evdev watches Linux input devices under /dev/input/event* and emits
// control events on key presses. It is best-effort: with no readable devices
// it logs and emits nothing.
type Evdev struct {
	Logger Logger

	cancel context.CancelFunc
	events chan Event
	wg     sync.WaitGroup
}

func NewEvdev() *Evdev {
	return &Evdev{events: make(chan Event, 8)}
}

func (e *Evdev) Events() <-chan Event { return e.events }

func (e *Evdev) Start(ctx context.Context) error {
	watchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if e.Logger != nil {
			e.Logger.Infof("input", "no evdev devices found, keyboard control disabled")
		}
		return nil
	}

	for _, path := range paths {
		e.wg.Add(1)
		go func(devPath string) {
			defer e.wg.Done()
			e.watchDevice(watchCtx, devPath)
		}(path)
	}
	return nil
}

func (e *Evdev) Stop() error {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	return nil
}

func (e *Evdev) watchDevice(ctx context.Context, path string) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	defer unix.Close(fd)

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			// Device might have gone away.
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

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ != evKey || value != 1 {
				continue
			}
			if ev, ok := keyBindings[code]; ok {
				select {
				case e.events <- ev:
				default:
					// Drop rather than block the device reader.
				}
			}
		}
	}
}

// NewKeyboard returns the evdev-backed keyboard input for this platform.
func NewKeyboard(logger Logger) Input {
	e := NewEvdev()
	e.Logger = logger
	return e
}
