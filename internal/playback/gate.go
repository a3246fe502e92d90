// internal/playback/gate.go
// Package playback plays the reward sound and enforces the re-trigger
// cooldown window.
package playback

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"konamid/internal/recovery"
)

var (
	// ErrNilPlayer indicates a player is required
	ErrNilPlayer = errors.New("player is required")
	// ErrInvalidCooldown indicates the cooldown must be positive
	ErrInvalidCooldown = errors.New("cooldown must be positive")
)

// Player starts one playback of the configured sound from the beginning.
// Play blocks until playback finishes or fails.
type Player interface {
	Play() error
}

// Gate fires playback on demand and suppresses re-triggering for a fixed
// cooldown after each accepted trigger. The window is never extended,
// restarted or cancelled; triggers landing inside it are dropped, not
// queued.
type Gate struct {
	player   Player
	cooldown time.Duration
	log      *slog.Logger

	mu         sync.Mutex
	suppressed bool
	until      time.Time

	now func() time.Time // replaced in tests
}

// NewGate creates a gate around the given player.
func NewGate(player Player, cooldown time.Duration, log *slog.Logger) (*Gate, error) {
	if player == nil {
		return nil, ErrNilPlayer
	}
	if cooldown <= 0 {
		return nil, ErrInvalidCooldown
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		player:   player,
		cooldown: cooldown,
		log:      log,
		now:      time.Now,
	}, nil
}

// Trigger requests playback. Inside the suppression window it is a no-op;
// otherwise it arms the window and starts playback fire-and-forget.
// Playback failures are logged and swallowed - the window stays armed as
// if playback had succeeded.
func (g *Gate) Trigger() {
	g.mu.Lock()
	now := g.now()
	if g.suppressed && now.Before(g.until) {
		g.mu.Unlock()
		g.log.Debug("match during cooldown dropped")
		return
	}
	g.suppressed = true
	g.until = now.Add(g.cooldown)
	g.mu.Unlock()

	// One-shot clear; a dropped trigger never re-arms this.
	time.AfterFunc(g.cooldown, g.clear)

	go func() {
		defer recovery.LogAndContinue(g.log, "playback")
		if err := g.player.Play(); err != nil {
			g.log.Warn("playback failed", "error", err)
			return
		}
		g.log.Debug("playback finished")
	}()
}

// clear drops the suppression flag once the deadline has passed.
// The deadline guard keeps a stale timer from clearing a newer window.
func (g *Gate) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.now().Before(g.until) {
		g.suppressed = false
	}
}

// Suppressed reports whether the cooldown window is currently active.
func (g *Gate) Suppressed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.suppressed && g.now().Before(g.until)
}
