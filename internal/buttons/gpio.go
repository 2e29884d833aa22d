package buttons

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/rook-computer/sysdeck/internal/screen"
)

// GPIOSource reads active-low buttons wired to ground with the internal
// pull-up enabled.
type GPIOSource struct {
	pins map[screen.Key]gpio.PinIn
}

// OpenGPIO initializes periph.io and configures one input per mapped key.
// pins maps key names to periph.io pin names such as "GPIO21".
func OpenGPIO(pins map[string]string) (*GPIOSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	resolved := make(map[screen.Key]gpio.PinIn, len(pins))
	for name, pinName := range pins {
		key, err := screen.ParseKey(name)
		if err != nil {
			return nil, err
		}
		pin := gpioreg.ByName(pinName)
		if pin == nil {
			return nil, fmt.Errorf("pin %q for key %s not found", pinName, key)
		}
		resolved[key] = pin
	}
	return NewGPIOSource(resolved)
}

// NewGPIOSource configures already resolved pins as pulled-up inputs.
func NewGPIOSource(pins map[screen.Key]gpio.PinIn) (*GPIOSource, error) {
	for key, pin := range pins {
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configure %s for key %s: %w", pin, key, err)
		}
	}
	return &GPIOSource{pins: pins}, nil
}

func (s *GPIOSource) IsPressed(k screen.Key) (bool, error) {
	pin, ok := s.pins[k]
	if !ok {
		return false, nil
	}
	return pin.Read() == gpio.Low, nil
}
