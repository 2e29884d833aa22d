//go:build !linux

package buttons

import (
	"errors"

	"github.com/rook-computer/sysdeck/internal/screen"
)

var errNoEvdev = errors.New("evdev input is only available on linux")

type EvdevSource struct{}

func OpenEvdev(path string, keys map[string]string) (*EvdevSource, error) {
	return nil, errNoEvdev
}

func (*EvdevSource) IsPressed(screen.Key) (bool, error) { return false, errNoEvdev }

func (*EvdevSource) Close() error { return nil }
