//go:build linux

// internal/keyboard/reader_linux.go
package keyboard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sys/unix"

	"konamid/internal/recovery"
)

// ErrNilPress indicates a press callback is required
var ErrNilPress = errors.New("press callback is required")

// evdev event type/value constants (linux/input.h).
const (
	evKey    = 0x01
	keyDownV = 1

	// struct input_event on 64-bit: two 8-byte timeval fields,
	// u16 type, u16 code, s32 value.
	eventSize = 24
)

// Reader watches evdev keyboard devices with a single epoll loop and
// reports every key-down event through the press callback.
type Reader struct {
	press PressFunc
	log   *slog.Logger
	epfd  int

	mu     sync.Mutex
	files  map[int]*os.File
	closed bool
}

// Open opens the given device nodes, autodetecting keyboards when none
// are given, and starts the read loop. Devices that cannot be opened are
// skipped with a warning; Open fails only when none remain.
func Open(paths []string, press PressFunc, log *slog.Logger) (*Reader, error) {
	if press == nil {
		return nil, ErrNilPress
	}
	if log == nil {
		log = slog.Default()
	}

	if len(paths) == 0 {
		paths = Discover()
	}
	if len(paths) == 0 {
		return nil, ErrNoKeyboards
	}

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}

	r := &Reader{
		press: press,
		log:   log,
		epfd:  epfd,
		files: make(map[int]*os.File),
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Warn("cannot open keyboard device", "path", path, "error", err)
			continue
		}
		fd := int(f.Fd())
		ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
		if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
			log.Warn("cannot register keyboard device", "path", path, "error", err)
			_ = f.Close()
			continue
		}
		r.files[fd] = f
		log.Debug("watching keyboard device", "path", path)
	}

	if len(r.files) == 0 {
		_ = unix.Close(epfd)
		return nil, ErrNoKeyboards
	}

	go r.loop()
	return r, nil
}

// Close stops the read loop and releases the devices.
func (r *Reader) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	files := r.files
	r.files = make(map[int]*os.File)
	r.mu.Unlock()

	for _, f := range files {
		_ = f.Close()
	}
	return nil
}

func (r *Reader) loop() {
	defer recovery.LogAndContinue(r.log, "keyboard read loop")
	defer func() { _ = unix.Close(r.epfd) }()

	events := make([]unix.EpollEvent, 8)
	buf := make([]byte, eventSize)

	for {
		// Bounded wait so Close is noticed without an extra wakeup fd.
		n, err := unix.EpollWait(r.epfd, events, 500)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			r.log.Warn("epoll_wait failed", "error", err)
			return
		}
		if r.isClosed() {
			return
		}

		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			r.mu.Lock()
			f := r.files[fd]
			r.mu.Unlock()
			if f == nil {
				continue
			}
			if !r.readEvent(fd, f, buf) {
				return
			}
		}
	}
}

// readEvent pulls one input_event off a ready device. Returns false once
// the last device is gone and the loop should end.
func (r *Reader) readEvent(fd int, f *os.File, buf []byte) bool {
	n, err := f.Read(buf)
	if err != nil {
		// Device unplugged or revoked: drop it, keep the rest.
		r.log.Warn("keyboard device dropped", "error", err)
		_ = unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
		_ = f.Close()

		r.mu.Lock()
		delete(r.files, fd)
		remaining := len(r.files)
		r.mu.Unlock()
		return remaining > 0
	}
	if n != eventSize {
		return true
	}

	evType := binary.LittleEndian.Uint16(buf[16:18])
	code := binary.LittleEndian.Uint16(buf[18:20])
	value := int32(binary.LittleEndian.Uint32(buf[20:24]))

	// Only fresh key-downs; repeats (value 2) and releases are ignored.
	if evType == evKey && value == keyDownV {
		r.press(CodeName(code))
	}
	return true
}

func (r *Reader) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Discover returns the stable by-path nodes of attached keyboards.
func Discover() []string {
	matches, err := filepath.Glob("/dev/input/by-path/*-event-kbd")
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}
