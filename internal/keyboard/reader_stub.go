//go:build !linux

// internal/keyboard/reader_stub.go
package keyboard

import (
	"errors"
	"log/slog"
)

// ErrUnsupported indicates keyboard input is not available on this platform
var ErrUnsupported = errors.New("keyboard input is only supported on linux")

// Reader is a no-op placeholder on platforms without evdev.
type Reader struct{}

// Open reports that keyboard input is unavailable.
func Open(paths []string, press PressFunc, log *slog.Logger) (*Reader, error) {
	return nil, ErrUnsupported
}

// Close is a no-op.
func (r *Reader) Close() error {
	return nil
}

// Discover returns no devices.
func Discover() []string {
	return nil
}
