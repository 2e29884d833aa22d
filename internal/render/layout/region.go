// Package layout computes screen regions and lays text out inside them.
// Nothing here touches a display; every function is pure.
package layout

import (
	"image"
	"image/color"
)

// Style is the fixed-width text style of a region: one glyph cell is
// GlyphWidth x GlyphHeight pixels.
type Style struct {
	GlyphWidth  int
	GlyphHeight int
	Foreground  color.Color
}

// Region is an isolated drawing surface: a rectangle with its background and
// text style.
type Region struct {
	Name       string
	Rect       image.Rectangle
	Background color.Color
	Style      Style
}

// Line is one laid-out line of text. Origin is the bottom-left corner of the
// line's glyph cell; the cell covers [Origin.Y-GlyphHeight, Origin.Y).
type Line struct {
	Text   string
	Origin image.Point
}

// Bounds returns the pixel rectangle the line occupies in style s.
func (l Line) Bounds(s Style) image.Rectangle {
	n := runeCount(l.Text)
	return image.Rect(l.Origin.X, l.Origin.Y-s.GlyphHeight, l.Origin.X+n*s.GlyphWidth, l.Origin.Y)
}

// Columns is the number of whole glyphs that fit across the region.
func (r Region) Columns() int {
	if r.Style.GlyphWidth <= 0 {
		return 0
	}
	return r.Rect.Canon().Dx() / r.Style.GlyphWidth
}

// Rows is the number of whole lines that fit down the region.
func (r Region) Rows() int {
	if r.Style.GlyphHeight <= 0 {
		return 0
	}
	return r.Rect.Canon().Dy() / r.Style.GlyphHeight
}

// Regions is the fixed header/body/footer split of one frame.
type Regions struct {
	Header Region
	Body   Region
	Footer Region
}

// Palette holds the background of each band.
type Palette struct {
	Header color.Color
	Body   color.Color
	Footer color.Color
}

// Frame splits display into a header band at the top and a footer band at the
// bottom, each one glyph plus padPx tall, with the body between them. Bands
// are clipped to the display and never overlap; on a display too short for
// both bands the body is empty.
func Frame(display image.Rectangle, style Style, padPx int, palette Palette) Regions {
	display = display.Canon()
	band := max(style.GlyphHeight+padPx, 0)
	header, rest := SplitHorizontal(display, band)
	body, footer := SplitBottom(rest, band)
	return Regions{
		Header: Region{Name: "header", Rect: header, Background: palette.Header, Style: style},
		Body:   Region{Name: "body", Rect: body, Background: palette.Body, Style: style},
		Footer: Region{Name: "footer", Rect: footer, Background: palette.Footer, Style: style},
	}
}
