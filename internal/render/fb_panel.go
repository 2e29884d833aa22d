package render

import (
	"image"
	"image/color"
	"sync"

	fb "github.com/gonutz/framebuffer"
)

// FramebufferPanel writes to a Linux framebuffer device such as the fbtft
// node a SPI panel shows up as.
type FramebufferPanel struct {
	mu    sync.Mutex
	fbDev *fb.Device
}

func OpenFramebuffer(path string) (*FramebufferPanel, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return &FramebufferPanel{fbDev: dev}, nil
}

func (p *FramebufferPanel) Bounds() image.Rectangle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fbDev == nil {
		return image.Rectangle{}
	}
	return p.fbDev.Bounds()
}

func (p *FramebufferPanel) Fill(rect image.Rectangle, c color.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fbDev == nil {
		return ErrPanelClosed
	}
	r, g, b, _ := c.RGBA()
	opaque := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xFF}
	rect = rect.Intersect(p.fbDev.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			p.fbDev.Set(x, y, opaque)
		}
	}
	return nil
}

func (p *FramebufferPanel) Blit(rect image.Rectangle, src image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fbDev == nil {
		return ErrPanelClosed
	}
	rect = rect.Intersect(p.fbDev.Bounds()).Intersect(src.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			p.fbDev.Set(x, y, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xFF})
		}
	}
	return nil
}

func (p *FramebufferPanel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fbDev != nil {
		p.fbDev.Close()
		p.fbDev = nil
	}
	return nil
}
