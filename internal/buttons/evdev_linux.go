package buttons

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/rook-computer/sysdeck/internal/screen"
)

// keyState is the part of an evdev device the source needs.
type keyState interface {
	State(t evdev.EvType) (evdev.StateMap, error)
	Close() error
}

// EvdevSource reads key state from a Linux input device, such as a
// gpio-keys node or a USB keyboard.
type EvdevSource struct {
	mu    sync.Mutex
	dev   keyState
	codes map[screen.Key]evdev.EvCode
}

// OpenEvdev opens path and maps key names to KEY_* code names.
func OpenEvdev(path string, keys map[string]string) (*EvdevSource, error) {
	codes, err := ResolveEvdevKeys(keys)
	if err != nil {
		return nil, err
	}
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &EvdevSource{dev: dev, codes: codes}, nil
}

// ResolveEvdevKeys turns {"ok": "KEY_ENTER"} into key codes.
func ResolveEvdevKeys(keys map[string]string) (map[screen.Key]evdev.EvCode, error) {
	codes := make(map[screen.Key]evdev.EvCode, len(keys))
	for name, codeName := range keys {
		key, err := screen.ParseKey(name)
		if err != nil {
			return nil, err
		}
		code, ok := evdev.KEYFromString[codeName]
		if !ok {
			return nil, fmt.Errorf("unknown evdev key %q for %s", codeName, key)
		}
		codes[key] = code
	}
	return codes, nil
}

func (s *EvdevSource) IsPressed(k screen.Key) (bool, error) {
	code, ok := s.codes[k]
	if !ok {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return false, fmt.Errorf("evdev source closed")
	}
	st, err := s.dev.State(evdev.EV_KEY)
	if err != nil {
		return false, fmt.Errorf("key state: %w", err)
	}
	return st[code], nil
}

func (s *EvdevSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}
