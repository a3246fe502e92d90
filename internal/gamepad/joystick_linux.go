//go:build linux

// internal/gamepad/joystick_linux.go
package gamepad

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"konamid/internal/recovery"
)

// Linux joystick interface constants (linux/joystick.h).
const (
	jsEventSize   = 8
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80

	// The d-pad reports as hat axes on the joystick interface.
	axisHatX = 6
	axisHatY = 7
)

// Joystick implements Source over a /dev/input/jsN device node. A reader
// goroutine folds the kernel's event stream into the level snapshot the
// poller samples, matching the snapshot-style controller APIs elsewhere.
type Joystick struct {
	index int
	file  *os.File
	log   *slog.Logger

	mu   sync.Mutex
	snap Snapshot
	gone bool
}

// OpenJoystick opens /dev/input/js<index> and starts its reader.
func OpenJoystick(index int, log *slog.Logger) (*Joystick, error) {
	if log == nil {
		log = slog.Default()
	}

	path := fmt.Sprintf("%s/js%d", inputDir, index)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open joystick: %w", err)
	}

	j := &Joystick{index: index, file: f, log: log}
	go j.readLoop()
	return j, nil
}

// Index returns the controller slot this device occupies.
func (j *Joystick) Index() int {
	return j.index
}

// Read returns the current button levels. ok is false once the device
// has gone away.
func (j *Joystick) Read() (Snapshot, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.gone {
		return Snapshot{}, false
	}
	return j.snap, true
}

// Close tears the device down; the poll loop observes it as disappeared.
func (j *Joystick) Close() error {
	j.mu.Lock()
	if j.gone {
		j.mu.Unlock()
		return nil
	}
	j.gone = true
	j.mu.Unlock()
	return j.file.Close()
}

func (j *Joystick) readLoop() {
	defer recovery.LogAndContinue(j.log, "joystick reader")

	buf := make([]byte, jsEventSize)
	for {
		if _, err := io.ReadFull(j.file, buf); err != nil {
			// Unplugged (or closed by us): flag gone so Read fails.
			j.mu.Lock()
			j.gone = true
			j.mu.Unlock()
			_ = j.file.Close()
			return
		}

		// struct js_event: u32 time, s16 value, u8 type, u8 number
		value := int16(binary.LittleEndian.Uint16(buf[4:6]))
		kind := buf[6] &^ jsEventInit
		number := buf[7]

		switch kind {
		case jsEventButton:
			j.setButton(number, value != 0)
		case jsEventAxis:
			j.setHat(number, value)
		}
	}
}

func (j *Joystick) setButton(number uint8, pressed bool) {
	var index int
	switch number {
	case 0:
		index = ButtonA
	case 1:
		index = ButtonB
	default:
		return
	}
	j.mu.Lock()
	j.snap[index] = pressed
	j.mu.Unlock()
}

// setHat folds the d-pad hat axes into the four direction buttons.
func (j *Joystick) setHat(number uint8, value int16) {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch number {
	case axisHatX:
		j.snap[ButtonLeft] = value < 0
		j.snap[ButtonRight] = value > 0
	case axisHatY:
		j.snap[ButtonUp] = value < 0
		j.snap[ButtonDown] = value > 0
	}
}
