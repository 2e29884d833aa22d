package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	st7789SWRESET = 0x01
	st7789SLPOUT  = 0x11
	st7789NORON   = 0x13
	st7789INVOFF  = 0x20
	st7789INVON   = 0x21
	st7789DISPON  = 0x29
	st7789CASET   = 0x2A
	st7789RASET   = 0x2B
	st7789RAMWR   = 0x2C
	st7789MADCTL  = 0x36
	st7789COLMOD  = 0x3A

	st7789ChunkSize = 4096
	// The controller RAM is 240x320; a 240x240 glass sits at one end of it.
	st7789RAMHeight = 320
)

// ST7789Options configure the controller after reset.
type ST7789Options struct {
	Width    int
	Height   int
	Rotation int
	Invert   bool
}

// ST7789Config names the periph.io bus and pins of a wired panel.
type ST7789Config struct {
	ST7789Options
	SPIPort   string
	SpeedHz   int64
	DCPin     string
	ResetPin  string
	Backlight string
}

// ST7789Panel drives a ST7789 controller over SPI with 16-bit RGB565 pixels.
type ST7789Panel struct {
	mu     sync.Mutex
	conn   spi.Conn
	closer interface{ Close() error }
	dc     gpio.PinOut
	rst    gpio.PinOut
	bl     gpio.PinOut
	opts   ST7789Options
	offset image.Point
	txBuf  []byte
	closed bool
}

// OpenST7789 initializes the periph.io host drivers, opens the SPI port and
// pins by name and runs the controller init sequence.
func OpenST7789(cfg ST7789Config) (*ST7789Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("open spi %s: %w", cfg.SPIPort, err)
	}
	conn, err := port.Connect(physic.Frequency(cfg.SpeedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("connect spi %s: %w", cfg.SPIPort, err)
	}

	dc := gpioreg.ByName(cfg.DCPin)
	if dc == nil {
		_ = port.Close()
		return nil, fmt.Errorf("dc pin %q not found", cfg.DCPin)
	}
	var rst, bl gpio.PinOut
	if cfg.ResetPin != "" {
		if p := gpioreg.ByName(cfg.ResetPin); p != nil {
			rst = p
		} else {
			_ = port.Close()
			return nil, fmt.Errorf("reset pin %q not found", cfg.ResetPin)
		}
	}
	if cfg.Backlight != "" {
		if p := gpioreg.ByName(cfg.Backlight); p != nil {
			bl = p
		} else {
			_ = port.Close()
			return nil, fmt.Errorf("backlight pin %q not found", cfg.Backlight)
		}
	}

	panel, err := NewST7789(conn, dc, rst, bl, cfg.ST7789Options)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	panel.closer = port
	return panel, nil
}

// NewST7789 runs reset and init over an already connected bus. rst and bl
// may be nil when the lines are not wired.
func NewST7789(conn spi.Conn, dc, rst, bl gpio.PinOut, opts ST7789Options) (*ST7789Panel, error) {
	if conn == nil || dc == nil {
		return nil, errors.New("st7789: spi conn and dc pin are required")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("st7789: invalid size %dx%d", opts.Width, opts.Height)
	}
	p := &ST7789Panel{
		conn:  conn,
		dc:    dc,
		rst:   rst,
		bl:    bl,
		opts:  opts,
		txBuf: make([]byte, st7789ChunkSize),
	}
	p.offset = ramOffset(opts)
	if err := p.reset(); err != nil {
		return nil, err
	}
	if err := p.init(); err != nil {
		return nil, err
	}
	if err := p.SetBacklight(true); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ST7789Panel) reset() error {
	if p.rst == nil {
		return nil
	}
	for _, step := range []struct {
		level gpio.Level
		wait  time.Duration
	}{
		{gpio.High, 10 * time.Millisecond},
		{gpio.Low, 10 * time.Millisecond},
		{gpio.High, 120 * time.Millisecond},
	} {
		if err := p.rst.Out(step.level); err != nil {
			return fmt.Errorf("st7789 reset: %w", err)
		}
		time.Sleep(step.wait)
	}
	return nil
}

func (p *ST7789Panel) init() error {
	invert := byte(st7789INVOFF)
	if p.opts.Invert {
		invert = st7789INVON
	}
	steps := []struct {
		cmd  byte
		data []byte
		wait time.Duration
	}{
		{st7789SWRESET, nil, 150 * time.Millisecond},
		{st7789SLPOUT, nil, 120 * time.Millisecond},
		{st7789COLMOD, []byte{0x55}, 10 * time.Millisecond}, // 16bpp
		{st7789MADCTL, []byte{madctl(p.opts.Rotation)}, 0},
		{invert, nil, 0},
		{st7789NORON, nil, 10 * time.Millisecond},
		{st7789DISPON, nil, 10 * time.Millisecond},
	}
	for _, s := range steps {
		if err := p.command(s.cmd, s.data...); err != nil {
			return fmt.Errorf("st7789 init 0x%02X: %w", s.cmd, err)
		}
		if s.wait > 0 {
			time.Sleep(s.wait)
		}
	}
	return nil
}

func madctl(rotation int) byte {
	switch rotation {
	case 90:
		return 0x60 // MX|MV
	case 180:
		return 0xC0 // MX|MY
	case 270:
		return 0xA0 // MY|MV
	default:
		return 0x00
	}
}

// ramOffset is where the visible glass starts in controller RAM. Rotations
// that mirror rows push it to the far end of the 320-line RAM.
func ramOffset(opts ST7789Options) image.Point {
	switch opts.Rotation {
	case 180:
		return image.Point{Y: max(st7789RAMHeight-opts.Height, 0)}
	case 270:
		return image.Point{X: max(st7789RAMHeight-opts.Width, 0)}
	default:
		return image.Point{}
	}
}

func (p *ST7789Panel) command(cmd byte, data ...byte) error {
	if err := p.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := p.conn.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := p.dc.Out(gpio.High); err != nil {
		return err
	}
	return p.conn.Tx(data, nil)
}

func (p *ST7789Panel) setWindow(rect image.Rectangle) error {
	x0, y0 := rect.Min.X+p.offset.X, rect.Min.Y+p.offset.Y
	x1, y1 := rect.Max.X-1+p.offset.X, rect.Max.Y-1+p.offset.Y
	if err := p.command(st7789CASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := p.command(st7789RASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return p.command(st7789RAMWR)
}

// writePixels streams n pixels produced by next into the open RAM window.
func (p *ST7789Panel) writePixels(n int, next func(i int) uint16) error {
	if err := p.dc.Out(gpio.High); err != nil {
		return err
	}
	chunk := p.txBuf[:len(p.txBuf)&^1]
	filled := 0
	for i := 0; i < n; i++ {
		px := next(i)
		chunk[filled] = byte(px >> 8)
		chunk[filled+1] = byte(px)
		filled += 2
		if filled == len(chunk) {
			if err := p.conn.Tx(chunk, nil); err != nil {
				return err
			}
			filled = 0
		}
	}
	if filled > 0 {
		return p.conn.Tx(chunk[:filled], nil)
	}
	return nil
}

func (p *ST7789Panel) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.opts.Width, p.opts.Height)
}

func (p *ST7789Panel) Fill(rect image.Rectangle, c color.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPanelClosed
	}
	rect = rect.Intersect(p.Bounds())
	if rect.Empty() {
		return nil
	}
	if err := p.setWindow(rect); err != nil {
		return fmt.Errorf("st7789 window: %w", err)
	}
	px := RGB565(c)
	return p.writePixels(rect.Dx()*rect.Dy(), func(int) uint16 { return px })
}

func (p *ST7789Panel) Blit(rect image.Rectangle, src image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPanelClosed
	}
	rect = rect.Intersect(p.Bounds()).Intersect(src.Bounds())
	if rect.Empty() {
		return nil
	}
	if err := p.setWindow(rect); err != nil {
		return fmt.Errorf("st7789 window: %w", err)
	}
	w := rect.Dx()
	return p.writePixels(w*rect.Dy(), func(i int) uint16 {
		return RGB565(src.At(rect.Min.X+i%w, rect.Min.Y+i/w))
	})
}

func (p *ST7789Panel) SetBacklight(on bool) error {
	if p.bl == nil {
		return nil
	}
	level := gpio.Low
	if on {
		level = gpio.High
	}
	return p.bl.Out(level)
}

func (p *ST7789Panel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	_ = p.SetBacklight(false)
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// RGB565 packs c into the controller's 16-bit pixel format.
func RGB565(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16((r>>11)<<11 | (g>>10)<<5 | b>>11)
}
