package keyboard

import "testing"

func TestCodeName_KnownKeys(t *testing.T) {
	tests := []struct {
		code uint16
		want string
	}{
		{keyUp, "ArrowUp"},
		{keyDown, "ArrowDown"},
		{keyLeft, "ArrowLeft"},
		{keyRight, "ArrowRight"},
		{keyW, "KeyW"},
		{keyS, "KeyS"},
		{keyA, "KeyA"},
		{keyD, "KeyD"},
		{keyB, "KeyB"},
	}

	for _, tt := range tests {
		if got := CodeName(tt.code); got != tt.want {
			t.Errorf("CodeName(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeName_UnknownKeys(t *testing.T) {
	// KEY_SPACE is 57; not part of either sequence alphabet.
	if got := CodeName(57); got != "Keycode57" {
		t.Errorf("CodeName(57) = %q, want %q", got, "Keycode57")
	}
	if got := CodeName(0); got != "Keycode0" {
		t.Errorf("CodeName(0) = %q, want %q", got, "Keycode0")
	}
}
