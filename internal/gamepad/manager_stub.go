//go:build !linux

// internal/gamepad/manager_stub.go
package gamepad

import (
	"errors"
	"log/slog"
)

// ErrUnsupported indicates controller input is not available on this platform
var ErrUnsupported = errors.New("controller input is only supported on linux")

// Manager is a no-op placeholder on platforms without joystick support.
type Manager struct{}

// NewManager creates a manager around the given poller.
func NewManager(poller *Poller, log *slog.Logger) *Manager {
	return &Manager{}
}

// Start reports that controller input is unavailable.
func (m *Manager) Start() error {
	return ErrUnsupported
}

// Close is a no-op.
func (m *Manager) Close() error {
	return nil
}

// Discover returns no controllers.
func Discover() []int {
	return nil
}
