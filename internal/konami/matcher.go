// internal/konami/matcher.go
package konami

import "sync"

// MatchCallback is called when the full target sequence completes.
// Must be non-blocking and fast - called from the input event path.
type MatchCallback func()

// Matcher tracks how much of the target sequence one input channel has
// entered so far. Keyboard and controller each hold their own instance;
// progress on one channel never advances or resets the other.
//
// The matcher keeps cycling even while the playback gate is suppressing
// output; suppression is the gate's concern, not the matcher's.
type Matcher struct {
	mu        sync.Mutex
	prefixLen int
	callback  MatchCallback
}

// NewMatcher creates a matcher with an empty prefix.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// SetCallback sets the callback for completed sequences.
func (m *Matcher) SetCallback(cb MatchCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callback = cb
}

// Consume feeds one input event to the matcher. candidates holds every
// logical symbol the raw input could stand for: usually one, two when a
// key code belongs to both keyboard layouts, zero for input outside the
// alphabets. It returns true when this event completed the sequence.
func (m *Matcher) Consume(candidates ...Symbol) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if containsSymbol(candidates, Target[m.prefixLen]) {
		m.prefixLen++
		if m.prefixLen == len(Target) {
			// Match fires and the prefix resets in the same step.
			m.prefixLen = 0
			if m.callback != nil {
				m.callback()
			}
			return true
		}
		return false
	}

	// Mismatch: reset first, then let the mismatching event start a fresh
	// attempt if it happens to be the first symbol of the sequence.
	m.prefixLen = 0
	if containsSymbol(candidates, Target[0]) {
		m.prefixLen = 1
	}
	return false
}

// PrefixLen returns how many symbols of the target are currently matched.
func (m *Matcher) PrefixLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefixLen
}

// Reset clears the matched prefix.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefixLen = 0
}

func containsSymbol(syms []Symbol, want Symbol) bool {
	for _, s := range syms {
		if s == want {
			return true
		}
	}
	return false
}
