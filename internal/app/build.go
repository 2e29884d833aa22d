package app

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/font"

	"github.com/rook-computer/sysdeck/internal/app/screens"
	"github.com/rook-computer/sysdeck/internal/buttons"
	"github.com/rook-computer/sysdeck/internal/config"
	"github.com/rook-computer/sysdeck/internal/locale"
	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/metrics"
	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/render/layout"
	"github.com/rook-computer/sysdeck/internal/screen"
	"github.com/rook-computer/sysdeck/internal/state"
	"github.com/rook-computer/sysdeck/internal/system"
)

// ThemeFromConfig converts the configured hex colors. Config validation
// already rejected malformed values.
func ThemeFromConfig(cfg config.Config) (render.Theme, error) {
	theme := render.DefaultTheme()
	theme.Padding = cfg.Display.Padding
	header, err := config.ParseHexColor(cfg.Colors.Header)
	if err != nil {
		return theme, fmt.Errorf("colors.header: %w", err)
	}
	body, err := config.ParseHexColor(cfg.Colors.Body)
	if err != nil {
		return theme, fmt.Errorf("colors.body: %w", err)
	}
	footer, err := config.ParseHexColor(cfg.Colors.Footer)
	if err != nil {
		return theme, fmt.Errorf("colors.footer: %w", err)
	}
	text, err := config.ParseHexColor(cfg.Colors.Text)
	if err != nil {
		return theme, fmt.Errorf("colors.text: %w", err)
	}
	theme.Palette = layout.Palette{Header: header, Body: body, Footer: footer}
	theme.Text = text
	return theme, nil
}

// Assemble builds the app for cfg on top of an opened display. Buttons and
// backlight are left for the caller to attach.
func Assemble(cfg config.Config, display render.Display, face font.Face, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NoopLogger{}
	}
	table, err := cfg.NavigationTable()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	catalog, err := locale.New(cfg.Locale.Language, cfg.Locale.MessageFile)
	if err != nil {
		return nil, err
	}
	theme, err := ThemeFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	renderer := render.NewRenderer(render.Options{
		Table:  table,
		Labels: catalog,
		Style:  render.StyleFor(face, theme),
		Theme:  theme,
	})
	store := state.NewStore()
	a := New(screen.NewNavigator(table), renderer, display, store)
	a.Logger = logger
	a.RedrawInterval = cfg.Timing.RedrawInterval
	a.IdleTimeout = cfg.Timing.IdleTimeout
	a.Sampler = &metrics.Sampler{
		Collector: metrics.HostCollector{},
		Clock:     metrics.HostClock{Location: loc},
		Store:     store,
		Logger:    logger,
		Interval:  cfg.Timing.SampleInterval,
		Changed:   a.RequestRedraw,
	}

	wifi, err := screens.NewWifiScreen(system.NetworkProbe{
		Runner:    system.ShellRunner{},
		Interface: cfg.Network.Interface,
	}, store, catalog, logger, cfg.Network.SharePayload)
	if err != nil {
		return nil, fmt.Errorf("wifi screen: %w", err)
	}
	wifi.Interval = cfg.Network.RefreshInterval
	wifi.Changed = a.RequestRedraw

	renderer.Register(screen.Home, screens.HomeScreen{})
	renderer.Register(screen.Menu, &screens.MenuScreen{Labels: catalog})
	renderer.Register(screen.SystemInfo, screens.SystemInfoScreen{})
	renderer.Register(screen.Wifi, wifi)
	return a, nil
}

// OpenPanel opens the configured display backend.
func OpenPanel(cfg config.DisplayConfig) (render.Panel, error) {
	switch cfg.Backend {
	case "st7789":
		return render.OpenST7789(render.ST7789Config{
			ST7789Options: render.ST7789Options{
				Width:    cfg.Width,
				Height:   cfg.Height,
				Rotation: cfg.Rotation,
				Invert:   cfg.InvertColors,
			},
			SPIPort:   cfg.SPIPort,
			SpeedHz:   cfg.SPISpeedHz,
			DCPin:     cfg.Pins.DC,
			ResetPin:  cfg.Pins.Reset,
			Backlight: cfg.Pins.Backlight,
		})
	case "fb":
		return render.OpenFramebuffer(cfg.Framebuffer)
	case "memory":
		return render.NewMemoryPanel(cfg.Width, cfg.Height), nil
	default:
		return nil, fmt.Errorf("unknown display backend %q", cfg.Backend)
	}
}

// OpenButtons opens the configured input backend. The returned closer is
// nil when the backend holds nothing open.
func OpenButtons(cfg config.InputConfig, logger logging.Logger) (buttons.Buttons, io.Closer, error) {
	var source buttons.Source
	var closer io.Closer
	switch cfg.Backend {
	case "gpio":
		src, err := buttons.OpenGPIO(cfg.Pins)
		if err != nil {
			return nil, nil, err
		}
		source = src
	case "evdev":
		src, err := buttons.OpenEvdev(cfg.Device, cfg.EvdevKeys)
		if err != nil {
			return nil, nil, err
		}
		source, closer = src, src
	case "none", "":
		source = buttons.NoopSource{}
	default:
		return nil, nil, errors.New("unknown input backend " + cfg.Backend)
	}
	return buttons.NewPoller(source, cfg.PollInterval, logger), closer, nil
}
