// Package config loads the device configuration: built-in defaults overlaid
// with an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rook-computer/sysdeck/internal/screen"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "SYSDECK_CONFIG"
	// DefaultPath is read when it exists and no path is given.
	DefaultPath = "/etc/sysdeck/config.yaml"
)

// Load reads path (or DefaultPath when path is empty) over the defaults.
// A missing DefaultPath is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	if path == "" {
		cfg, err := LoadFrom(DefaultPath)
		if errors.Is(err, os.ErrNotExist) {
			cfg = DefaultConfig()
			return cfg, validate(cfg)
		}
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom reads one YAML file over the defaults and validates the result.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := decode(&cfg, data); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, validate(cfg)
}

// decode overlays YAML onto cfg. Keys absent from the document keep their
// current value; unknown keys are rejected.
func decode(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func validate(cfg Config) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", formatValidationErrors(errs))
	}
	return nil
}

func formatValidationErrors(errs []ValidationError) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%d errors: %s", len(errs), strings.Join(parts, "; "))
}

// NavigationTable builds the transition table from the navigation section.
func (c Config) NavigationTable() (*screen.Table, error) {
	returnHome, err := screen.ParseKey(c.Navigation.ReturnHomeKey)
	if err != nil {
		return nil, err
	}
	shortcuts := make([]screen.Shortcut, 0, len(c.Navigation.Shortcuts))
	for _, sc := range c.Navigation.Shortcuts {
		from, err := screen.ParseID(sc.From)
		if err != nil {
			return nil, err
		}
		key, err := screen.ParseKey(sc.Key)
		if err != nil {
			return nil, err
		}
		to, err := screen.ParseID(sc.To)
		if err != nil {
			return nil, err
		}
		shortcuts = append(shortcuts, screen.Shortcut{From: from, Key: key, To: to})
	}
	return screen.NewTable(returnHome, shortcuts...), nil
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	if c.Clock.TimeZone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Clock.TimeZone)
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
