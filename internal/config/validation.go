package config

import (
	"fmt"

	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/screen"
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every section and returns all problems found.
func (c Config) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch c.Display.Backend {
	case "st7789", "fb", "memory":
	default:
		add("display.backend", "must be st7789, fb or memory (got %q)", c.Display.Backend)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		add("display.size", "width and height must be positive (got %dx%d)", c.Display.Width, c.Display.Height)
	}
	switch c.Display.Rotation {
	case 0, 90, 180, 270:
	default:
		add("display.rotation", "must be 0, 90, 180 or 270 (got %d)", c.Display.Rotation)
	}
	if c.Display.Padding < 0 {
		add("display.padding", "must not be negative")
	}
	if c.Display.Backend == "st7789" {
		if c.Display.SPIPort == "" {
			add("display.spi_port", "required for st7789")
		}
		if c.Display.SPISpeedHz <= 0 {
			add("display.spi_speed_hz", "must be positive")
		}
		if c.Display.Pins.DC == "" || c.Display.Pins.Reset == "" {
			add("display.pins", "dc and reset are required for st7789")
		}
	}
	if c.Display.Backend == "fb" && c.Display.Framebuffer == "" {
		add("display.framebuffer", "required for fb")
	}
	if c.Font.Path != "" && c.Font.Size <= 0 {
		add("font.size", "must be positive when font.path is set")
	}

	for field, value := range map[string]string{
		"colors.header": c.Colors.Header,
		"colors.body":   c.Colors.Body,
		"colors.footer": c.Colors.Footer,
		"colors.text":   c.Colors.Text,
	} {
		if _, err := ParseHexColor(value); err != nil {
			add(field, "%v", err)
		}
	}

	switch c.Input.Backend {
	case "gpio", "evdev", "none":
	default:
		add("input.backend", "must be gpio, evdev or none (got %q)", c.Input.Backend)
	}
	if c.Input.PollInterval <= 0 {
		add("input.poll_interval", "must be positive")
	}
	for name := range c.Input.Pins {
		if _, err := screen.ParseKey(name); err != nil {
			add("input.pins", "%v", err)
		}
	}
	for name := range c.Input.EvdevKeys {
		if _, err := screen.ParseKey(name); err != nil {
			add("input.evdev_keys", "%v", err)
		}
	}

	if _, err := c.NavigationTable(); err != nil {
		add("navigation", "%v", err)
	}

	if c.Timing.RedrawInterval <= 0 {
		add("timing.redraw_interval", "must be positive")
	}
	if c.Timing.SampleInterval <= 0 {
		add("timing.sample_interval", "must be positive")
	}
	if c.Timing.IdleTimeout < 0 {
		add("timing.idle_timeout", "must not be negative (0 disables blanking)")
	}
	if c.Network.RefreshInterval <= 0 {
		add("network.refresh_interval", "must be positive")
	}
	if _, err := c.Location(); err != nil {
		add("clock.time_zone", "%v", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level", "%v", err)
	}
	return errs
}
