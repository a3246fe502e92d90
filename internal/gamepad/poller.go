// internal/gamepad/poller.go
// Package gamepad polls a game controller at a fixed rate and converts
// level-sampled button state into edge-triggered press events.
package gamepad

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"konamid/internal/recovery"
)

var (
	// ErrInvalidInterval indicates the poll interval must be positive
	ErrInvalidInterval = errors.New("poll interval must be positive")
	// ErrNilPress indicates a press callback is required
	ErrNilPress = errors.New("press callback is required")
)

// ButtonCount is the number of button slots in a state snapshot.
const ButtonCount = 16

// Tracked snapshot indices under the standard gamepad layout.
const (
	ButtonA     = 0
	ButtonB     = 1
	ButtonUp    = 12
	ButtonDown  = 13
	ButtonLeft  = 14
	ButtonRight = 15
)

// trackedButtons lists the watched indices in a fixed order so
// simultaneous presses are reported deterministically.
var trackedButtons = []struct {
	index int
	name  string
}{
	{ButtonUp, "up"},
	{ButtonDown, "down"},
	{ButtonLeft, "left"},
	{ButtonRight, "right"},
	{ButtonA, "a"},
	{ButtonB, "b"},
}

// Snapshot is the level state of every button at one poll tick.
type Snapshot [ButtonCount]bool

// Source provides level snapshots for one connected controller.
type Source interface {
	// Index is the controller slot this source occupies.
	Index() int
	// Read returns the current button levels. ok is false once the
	// controller has disappeared; the poll loop halts itself on that.
	Read() (snap Snapshot, ok bool)
}

// PressFunc receives a button identifier on its released-to-pressed edge.
// Must be non-blocking and fast - called from the poll loop.
type PressFunc func(button string)

// Poller samples one controller source on a fixed interval and emits a
// press exactly once per released-to-pressed transition. At most one
// controller is tracked at a time; the first discovered wins and later
// connections are ignored until it disconnects.
type Poller struct {
	interval time.Duration
	press    PressFunc
	log      *slog.Logger

	mu     sync.Mutex
	source Source
	levels Snapshot
	stop   chan struct{}
}

// NewPoller creates a poller with the given tick interval.
func NewPoller(interval time.Duration, press PressFunc, log *slog.Logger) (*Poller, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if press == nil {
		return nil, ErrNilPress
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		interval: interval,
		press:    press,
		log:      log,
	}, nil
}

// Track adopts src and starts the poll loop for it. Returns false when
// another controller is already tracked.
func (p *Poller) Track(src Source) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source != nil {
		p.log.Debug("ignoring controller, one already tracked",
			"index", src.Index(), "tracked", p.source.Index())
		return false
	}

	p.source = src
	p.levels = Snapshot{}
	p.stop = make(chan struct{})
	p.log.Info("controller connected", "index", src.Index())

	go p.loop(src, p.stop)
	return true
}

// Disconnect drops the tracked controller if it occupies index.
// Disconnect notifications for other indices are ignored.
func (p *Poller) Disconnect(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.source == nil || p.source.Index() != index {
		return
	}
	close(p.stop)
	p.source = nil
	p.log.Info("controller disconnected", "index", index)
}

// TrackedIndex returns the tracked controller index, or -1 when none is.
func (p *Poller) TrackedIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.source == nil {
		return -1
	}
	return p.source.Index()
}

// Close stops the poll loop if one is running.
func (p *Poller) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.source != nil {
		close(p.stop)
		p.source = nil
	}
}

func (p *Poller) loop(src Source, stop chan struct{}) {
	defer recovery.LogAndContinue(p.log, "controller poll loop")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if p.tick(src) {
				continue
			}
			// Controller gone: halt and clear our own handle, unless a
			// Disconnect already did.
			p.mu.Lock()
			if p.source == src {
				p.source = nil
				p.log.Info("controller disappeared", "index", src.Index())
			}
			p.mu.Unlock()
			return
		}
	}
}

// tick samples the source once, updating stored levels unconditionally
// and reporting presses only on released-to-pressed edges. Returns false
// when the source is gone.
func (p *Poller) tick(src Source) bool {
	snap, ok := src.Read()
	if !ok {
		return false
	}

	p.mu.Lock()
	prev := p.levels
	p.levels = snap
	p.mu.Unlock()

	for _, b := range trackedButtons {
		if snap[b.index] && !prev[b.index] {
			p.press(b.name)
		}
	}
	return true
}
