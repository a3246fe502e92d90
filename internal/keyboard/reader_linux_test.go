//go:build linux

package keyboard

import (
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestOpen_NilPress(t *testing.T) {
	_, err := Open(nil, nil, nil)
	if err != ErrNilPress {
		t.Errorf("Open() error = %v, want %v", err, ErrNilPress)
	}
}

func TestOpen_NoUsableDevices(t *testing.T) {
	// Regular files open fine but cannot be epoll-registered, so Open
	// must fall through to ErrNoKeyboards instead of half-working.
	path := filepath.Join(t.TempDir(), "not-a-device")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := Open([]string{path}, func(string) {}, slog.Default())
	if err != ErrNoKeyboards {
		t.Errorf("Open() error = %v, want %v", err, ErrNoKeyboards)
	}
}

func TestOpen_MissingDevices(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "event99")
	_, err := Open([]string{missing}, func(string) {}, slog.Default())
	if err != ErrNoKeyboards {
		t.Errorf("Open() error = %v, want %v", err, ErrNoKeyboards)
	}
}

// encodeEvent builds one 24-byte input_event record.
func encodeEvent(evType, code uint16, value int32) []byte {
	buf := make([]byte, eventSize)
	binary.LittleEndian.PutUint16(buf[16:18], evType)
	binary.LittleEndian.PutUint16(buf[18:20], code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(value))
	return buf
}

func TestReadEvent_PressOnly(t *testing.T) {
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer pr.Close()
	defer pw.Close()

	var mu sync.Mutex
	var codes []string
	r := &Reader{
		press: func(code string) {
			mu.Lock()
			codes = append(codes, code)
			mu.Unlock()
		},
		log:   slog.Default(),
		files: map[int]*os.File{int(pr.Fd()): pr},
	}

	feed := [][]byte{
		encodeEvent(evKey, keyUp, 1),   // press
		encodeEvent(evKey, keyUp, 0),   // release, ignored
		encodeEvent(evKey, keyUp, 2),   // autorepeat, ignored
		encodeEvent(0x00, 0, 0),        // EV_SYN, ignored
		encodeEvent(evKey, keyB, 1),    // press
		encodeEvent(evKey, 57, 1),      // unmapped key still reported
	}
	buf := make([]byte, eventSize)
	for _, ev := range feed {
		if _, err := pw.Write(ev); err != nil {
			t.Fatalf("write event: %v", err)
		}
		if !r.readEvent(int(pr.Fd()), pr, buf) {
			t.Fatal("readEvent() = false, want true")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"ArrowUp", "KeyB", "Keycode57"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes[%d] = %q, want %q", i, codes[i], want[i])
		}
	}
}
