package buttons

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"

	"github.com/rook-computer/sysdeck/internal/screen"
)

type fakeDevice struct {
	state  evdev.StateMap
	closed bool
}

func (d *fakeDevice) State(evdev.EvType) (evdev.StateMap, error) { return d.state, nil }
func (d *fakeDevice) Close() error                                 { d.closed = true; return nil }

func TestEvdevSource(t *testing.T) {
	codes, err := ResolveEvdevKeys(map[string]string{"ok": "KEY_ENTER", "cancel": "KEY_ESC"})
	if err != nil {
		t.Fatal(err)
	}
	dev := &fakeDevice{state: evdev.StateMap{codes[screen.Ok]: true}}
	src := &EvdevSource{dev: dev, codes: codes}

	if pressed, err := src.IsPressed(screen.Ok); err != nil || !pressed {
		t.Fatalf("ok = %v, %v", pressed, err)
	}
	if pressed, _ := src.IsPressed(screen.Cancel); pressed {
		t.Fatal("cancel should be released")
	}
	if err := src.Close(); err != nil || !dev.closed {
		t.Fatal("Close should close the device")
	}
	if _, err := src.IsPressed(screen.Ok); err == nil {
		t.Fatal("closed source should error")
	}
}

func TestResolveEvdevKeys_Unknown(t *testing.T) {
	if _, err := ResolveEvdevKeys(map[string]string{"ok": "KEY_NOPE"}); err == nil {
		t.Fatal("expected error for unknown code")
	}
	if _, err := ResolveEvdevKeys(map[string]string{"select": "KEY_ENTER"}); err == nil {
		t.Fatal("expected error for unknown key name")
	}
}
