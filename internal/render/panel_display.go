package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/sysdeck/internal/render/layout"
)

// PanelDisplay implements Display on top of a Panel, rasterizing glyphs with
// a fixed-width font face.
type PanelDisplay struct {
	panel Panel
	face  font.Face
}

func NewPanelDisplay(panel Panel, face font.Face) *PanelDisplay {
	return &PanelDisplay{panel: panel, face: face}
}

func (d *PanelDisplay) Panel() Panel { return d.panel }

func (d *PanelDisplay) Bounds() image.Rectangle {
	if d.panel == nil {
		return image.Rectangle{}
	}
	return d.panel.Bounds()
}

func (d *PanelDisplay) ClipTo(region layout.Region) (Surface, error) {
	if d.panel == nil {
		return nil, ErrNoPanel
	}
	clip := region.Rect.Canon().Intersect(d.panel.Bounds())
	return &panelSurface{display: d, clip: clip, background: region.Background}, nil
}

type panelSurface struct {
	display    *PanelDisplay
	clip       image.Rectangle
	background color.Color
}

func (s *panelSurface) Clear(c color.Color) error {
	s.background = c
	if s.clip.Empty() {
		return nil
	}
	if err := s.display.panel.Fill(s.clip, c); err != nil {
		return fmt.Errorf("fill %v: %w", s.clip, err)
	}
	return nil
}

// DrawTextLine renders the line's glyph cells over the surface background and
// copies them to the panel in one block.
func (s *panelSurface) DrawTextLine(line layout.Line, style layout.Style) error {
	cell := line.Bounds(style).Intersect(s.clip)
	if cell.Empty() || line.Text == "" {
		return nil
	}
	buf := image.NewRGBA(cell)
	bg := s.background
	if bg == nil {
		bg = color.Black
	}
	draw.Draw(buf, cell, image.NewUniform(bg), image.Point{}, draw.Src)

	fg := style.Foreground
	if fg == nil {
		fg = color.White
	}
	descent := s.display.face.Metrics().Descent.Ceil()
	drawer := &font.Drawer{
		Dst:  buf,
		Src:  image.NewUniform(fg),
		Face: s.display.face,
		Dot:  fixed.P(line.Origin.X, line.Origin.Y-descent),
	}
	drawer.DrawString(line.Text)

	if err := s.display.panel.Blit(cell, buf); err != nil {
		return fmt.Errorf("blit text %v: %w", cell, err)
	}
	return nil
}

// DrawImage scales img into rect with nearest-neighbor sampling.
func (s *panelSurface) DrawImage(rect image.Rectangle, img image.Image) error {
	target := rect.Canon().Intersect(s.clip)
	if img == nil || target.Empty() {
		return nil
	}
	buf := image.NewRGBA(rect.Canon())
	xdraw.NearestNeighbor.Scale(buf, buf.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	if err := s.display.panel.Blit(target, buf); err != nil {
		return fmt.Errorf("blit image %v: %w", target, err)
	}
	return nil
}
