// internal/konami/symbol.go
// Package konami detects the classic 10-step cheat sequence
// (up, up, down, down, left, right, left, right, B, A) across
// keyboard and game-controller input.
package konami

// Symbol is one element of the logical input alphabet. Raw key codes and
// controller buttons are normalized to symbols before matching, so the
// matcher never sees device-specific codes.
type Symbol int

const (
	Up Symbol = iota
	Down
	Left
	Right
	B
	A
)

// String returns a short lowercase name for logging.
func (s Symbol) String() string {
	switch s {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case B:
		return "b"
	case A:
		return "a"
	}
	return "unknown"
}

// Target is the sequence being matched. Both keyboard layouts and the
// controller enter the same 10 logical symbols.
var Target = [10]Symbol{Up, Up, Down, Down, Left, Right, Left, Right, B, A}

// arrowCodes maps the arrow-layout key codes to logical symbols.
// Both KeyboardEvent.code spellings ("KeyB") and bare key values ("b")
// are accepted for the letter keys.
var arrowCodes = map[string]Symbol{
	"ArrowUp":    Up,
	"ArrowDown":  Down,
	"ArrowLeft":  Left,
	"ArrowRight": Right,
	"KeyB":       B,
	"b":          B,
	"KeyA":       A,
	"a":          A,
}

// wasdCodes maps the WASD-layout key codes to logical symbols.
// Note "KeyA"/"a" means left here but the A button in arrowCodes;
// NormalizeKey reports both readings and the matcher picks whichever
// fits the current position.
var wasdCodes = map[string]Symbol{
	"KeyW": Up,
	"w":    Up,
	"KeyS": Down,
	"s":    Down,
	"KeyA": Left,
	"a":    Left,
	"KeyD": Right,
	"d":    Right,
}

// buttonNames maps controller button identifiers to logical symbols.
var buttonNames = map[string]Symbol{
	"up":    Up,
	"down":  Down,
	"left":  Left,
	"right": Right,
	"a":     A,
	"b":     B,
}

// NormalizeKey returns every logical symbol a raw keyboard code can stand
// for. Codes belonging to a single layout yield one candidate, codes shared
// by both layouts yield two, unknown codes yield none. Pure mapping, no
// side effects.
func NormalizeKey(code string) []Symbol {
	var syms []Symbol
	if s, ok := arrowCodes[code]; ok {
		syms = append(syms, s)
	}
	if s, ok := wasdCodes[code]; ok {
		if len(syms) == 0 || syms[0] != s {
			syms = append(syms, s)
		}
	}
	return syms
}

// NormalizeButton returns the logical symbol for a controller button
// identifier. ok is false for identifiers outside the tracked six.
func NormalizeButton(name string) (Symbol, bool) {
	s, ok := buttonNames[name]
	return s, ok
}
