// internal/konami/detector.go
package konami

import "log/slog"

// Trigger is the side effect fired when a channel completes the sequence.
// It owns its own re-trigger suppression; the detector reports every match.
type Trigger interface {
	Trigger()
}

// Detector binds the two input channels to their matchers and a single
// shared trigger (the playback gate).
type Detector struct {
	keyboard   *Matcher
	controller *Matcher
	log        *slog.Logger
}

// NewDetector creates a detector with independent keyboard and controller
// channels feeding the given trigger.
func NewDetector(trig Trigger, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	d := &Detector{
		keyboard:   NewMatcher(),
		controller: NewMatcher(),
		log:        log,
	}
	d.keyboard.SetCallback(func() {
		log.Debug("sequence completed", "channel", "keyboard")
		trig.Trigger()
	})
	d.controller.SetCallback(func() {
		log.Debug("sequence completed", "channel", "controller")
		trig.Trigger()
	})
	return d
}

// HandleKey processes one key press on the keyboard channel. Codes outside
// both keyboard alphabets normalize to nothing, which the matcher treats
// as an ordinary mismatch.
func (d *Detector) HandleKey(code string) {
	d.keyboard.Consume(NormalizeKey(code)...)
}

// HandleButton processes one edge-triggered press on the controller
// channel.
func (d *Detector) HandleButton(name string) {
	if s, ok := NormalizeButton(name); ok {
		d.controller.Consume(s)
		return
	}
	d.controller.Consume()
}

// KeyboardPrefix returns the keyboard channel's matched prefix length.
func (d *Detector) KeyboardPrefix() int {
	return d.keyboard.PrefixLen()
}

// ControllerPrefix returns the controller channel's matched prefix length.
func (d *Detector) ControllerPrefix() int {
	return d.controller.PrefixLen()
}
