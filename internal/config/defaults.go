package config

import "time"

// DefaultConfig matches a Waveshare 1.3" LCD HAT on a Raspberry Pi.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Backend:      "st7789",
			Width:        240,
			Height:       240,
			Rotation:     90,
			InvertColors: true,
			SPIPort:      "SPI0.0",
			SPISpeedHz:   40_000_000,
			Framebuffer:  "/dev/fb1",
			Pins: PanelPins{
				DC:        "GPIO25",
				Reset:     "GPIO27",
				Backlight: "GPIO24",
			},
			Padding: 10,
		},
		Font: FontConfig{Size: 12},
		Colors: ColorConfig{
			Header: "#9400d3",
			Body:   "#2f4f4f",
			Footer: "#000000",
			Text:   "#ffffff",
		},
		Input: InputConfig{
			Backend:      "gpio",
			PollInterval: 200 * time.Millisecond,
			Pins: map[string]string{
				"up":     "GPIO6",
				"down":   "GPIO19",
				"left":   "GPIO5",
				"right":  "GPIO26",
				"press":  "GPIO13",
				"ok":     "GPIO21",
				"main":   "GPIO20",
				"cancel": "GPIO16",
			},
			Device: "/dev/input/event0",
			EvdevKeys: map[string]string{
				"up":     "KEY_UP",
				"down":   "KEY_DOWN",
				"left":   "KEY_LEFT",
				"right":  "KEY_RIGHT",
				"press":  "KEY_ENTER",
				"ok":     "KEY_F1",
				"main":   "KEY_F2",
				"cancel": "KEY_F3",
			},
		},
		Navigation: NavigationConfig{ReturnHomeKey: "cancel"},
		Timing: TimingConfig{
			RedrawInterval: 3 * time.Second,
			IdleTimeout:    20 * time.Second,
			SampleInterval: 3 * time.Second,
		},
		Locale: LocaleConfig{Language: "en"},
		Network: NetworkConfig{
			Interface:       "wlan0",
			RefreshInterval: 5 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
