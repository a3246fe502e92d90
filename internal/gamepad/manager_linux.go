//go:build linux

// internal/gamepad/manager_linux.go
package gamepad

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	"konamid/internal/recovery"
)

const inputDir = "/dev/input"

// Manager feeds joystick device nodes to the poller: one startup scan for
// controllers already present, then fsnotify on /dev/input for hotplug.
type Manager struct {
	poller *Poller
	log    *slog.Logger

	watcher *fsnotify.Watcher
}

// NewManager creates a manager around the given poller.
func NewManager(poller *Poller, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{poller: poller, log: log}
}

// Start scans for connected controllers and begins hotplug watching.
func (m *Manager) Start() error {
	// Pick up an already-connected controller without waiting for an event.
	for _, index := range Discover() {
		if m.connect(index) {
			break
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(inputDir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}
	m.watcher = watcher

	go m.watchLoop()
	return nil
}

func (m *Manager) watchLoop() {
	defer recovery.LogAndContinue(m.log, "gamepad hotplug watcher")

	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			index, ok := joystickIndex(filepath.Base(ev.Name))
			if !ok {
				continue
			}
			switch {
			case ev.Op.Has(fsnotify.Create):
				m.connect(index)
			case ev.Op.Has(fsnotify.Remove):
				m.poller.Disconnect(index)
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.log.Warn("hotplug watcher error", "error", err)
		}
	}
}

// connect opens the joystick and hands it to the poller. A controller
// arriving while one is already tracked is closed again immediately.
func (m *Manager) connect(index int) bool {
	js, err := OpenJoystick(index, m.log)
	if err != nil {
		m.log.Warn("cannot open joystick", "index", index, "error", err)
		return false
	}
	if !m.poller.Track(js) {
		_ = js.Close()
		return false
	}
	return true
}

// Close stops hotplug watching and the poll loop.
func (m *Manager) Close() error {
	m.poller.Close()
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// Discover returns the indices of joystick nodes currently present.
func Discover() []int {
	return discoverIn(inputDir)
}

func discoverIn(dir string) []int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var indices []int
	for _, e := range entries {
		if index, ok := joystickIndex(e.Name()); ok {
			indices = append(indices, index)
		}
	}
	sort.Ints(indices)
	return indices
}

// joystickIndex parses "jsN" device names.
func joystickIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "js")
	if !ok || rest == "" {
		return 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
