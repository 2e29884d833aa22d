package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// MemoryPanel is an in-memory RGBA panel. It backs headless runs and tests.
type MemoryPanel struct {
	mu        sync.Mutex
	img       *image.RGBA
	backlight bool
	closed    bool
}

func NewMemoryPanel(width, height int) *MemoryPanel {
	return &MemoryPanel{img: image.NewRGBA(image.Rect(0, 0, width, height)), backlight: true}
}

func (p *MemoryPanel) Bounds() image.Rectangle { return p.img.Bounds() }

func (p *MemoryPanel) Fill(rect image.Rectangle, c color.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPanelClosed
	}
	draw.Draw(p.img, rect.Intersect(p.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

func (p *MemoryPanel) Blit(rect image.Rectangle, src image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPanelClosed
	}
	rect = rect.Intersect(p.img.Bounds())
	draw.Draw(p.img, rect, src, rect.Min, draw.Src)
	return nil
}

func (p *MemoryPanel) SetBacklight(on bool) error {
	p.mu.Lock()
	p.backlight = on
	p.mu.Unlock()
	return nil
}

func (p *MemoryPanel) Backlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backlight
}

// Snapshot returns a copy of the current pixels.
func (p *MemoryPanel) Snapshot() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := image.NewRGBA(p.img.Bounds())
	copy(out.Pix, p.img.Pix)
	return out
}

func (p *MemoryPanel) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}
