// internal/keyboard/keymap.go
// Package keyboard reports key presses from evdev keyboard devices as the
// code strings the sequence detector understands.
package keyboard

import (
	"errors"
	"fmt"
)

// ErrNoKeyboards indicates no usable keyboard device was found
var ErrNoKeyboards = errors.New("no keyboard devices found")

// PressFunc receives the code string of each key-down event.
// Must be non-blocking and fast - called from the read loop.
type PressFunc func(code string)

// Kernel keycodes for the keys the detector cares about
// (linux/input-event-codes.h).
const (
	keyW     = 17
	keyA     = 30
	keyS     = 31
	keyD     = 32
	keyB     = 48
	keyUp    = 103
	keyLeft  = 105
	keyRight = 106
	keyDown  = 108
)

// codeNames maps kernel keycodes to DOM-style code strings.
var codeNames = map[uint16]string{
	keyUp:    "ArrowUp",
	keyDown:  "ArrowDown",
	keyLeft:  "ArrowLeft",
	keyRight: "ArrowRight",
	keyW:     "KeyW",
	keyS:     "KeyS",
	keyA:     "KeyA",
	keyD:     "KeyD",
	keyB:     "KeyB",
}

// CodeName returns the code string for a kernel keycode. Keycodes outside
// the map get a synthesized name: the normalizer maps those to nothing,
// so pressing an unrelated key still resets a partial sequence the way a
// raw key handler would see it.
func CodeName(code uint16) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Keycode%d", code)
}
