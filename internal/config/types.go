package config

import "time"

// Config is the complete runtime configuration of the device binary.
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Font       FontConfig       `yaml:"font"`
	Colors     ColorConfig      `yaml:"colors"`
	Input      InputConfig      `yaml:"input"`
	Navigation NavigationConfig `yaml:"navigation"`
	Timing     TimingConfig     `yaml:"timing"`
	Clock      ClockConfig      `yaml:"clock"`
	Locale     LocaleConfig     `yaml:"locale"`
	Network    NetworkConfig    `yaml:"network"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DisplayConfig selects and parameterizes the panel backend.
type DisplayConfig struct {
	// Backend is st7789, fb or memory.
	Backend      string    `yaml:"backend"`
	Width        int       `yaml:"width"`
	Height       int       `yaml:"height"`
	Rotation     int       `yaml:"rotation"`
	InvertColors bool      `yaml:"invert_colors"`
	SPIPort      string    `yaml:"spi_port"`
	SPISpeedHz   int64     `yaml:"spi_speed_hz"`
	Framebuffer  string    `yaml:"framebuffer"`
	Pins         PanelPins `yaml:"pins"`
	// Padding is added to the glyph height for the header and footer bands.
	Padding int `yaml:"padding"`
}

// PanelPins are periph.io pin names.
type PanelPins struct {
	DC        string `yaml:"dc"`
	Reset     string `yaml:"reset"`
	Backlight string `yaml:"backlight"`
}

type FontConfig struct {
	// Path to a monospace TTF/OTF; empty uses the built-in 7x13 bitmap face.
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"`
}

// ColorConfig holds #rrggbb colors.
type ColorConfig struct {
	Header string `yaml:"header"`
	Body   string `yaml:"body"`
	Footer string `yaml:"footer"`
	Text   string `yaml:"text"`
}

type InputConfig struct {
	// Backend is gpio, evdev or none.
	Backend      string        `yaml:"backend"`
	PollInterval time.Duration `yaml:"poll_interval"`
	// Pins maps logical key names to periph.io pin names.
	Pins map[string]string `yaml:"pins"`
	// Device is the evdev node for the evdev backend.
	Device string `yaml:"device"`
	// EvdevKeys maps logical key names to KEY_* code names.
	EvdevKeys map[string]string `yaml:"evdev_keys"`
}

type NavigationConfig struct {
	ReturnHomeKey string           `yaml:"return_home_key"`
	Shortcuts     []ShortcutConfig `yaml:"shortcuts"`
}

type ShortcutConfig struct {
	From string `yaml:"from"`
	Key  string `yaml:"key"`
	To   string `yaml:"to"`
}

type TimingConfig struct {
	RedrawInterval time.Duration `yaml:"redraw_interval"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	SampleInterval time.Duration `yaml:"sample_interval"`
}

type ClockConfig struct {
	// TimeZone is an IANA name; empty means the system local zone.
	TimeZone string `yaml:"time_zone"`
}

type LocaleConfig struct {
	Language    string `yaml:"language"`
	MessageFile string `yaml:"message_file"`
}

type NetworkConfig struct {
	Interface       string        `yaml:"interface"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	// SharePayload is encoded as a QR code on the wifi screen when set,
	// e.g. "WIFI:S:office;T:WPA;P:secret;;".
	SharePayload string `yaml:"share_payload"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}
