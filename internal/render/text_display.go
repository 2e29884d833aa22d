package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/rook-computer/sysdeck/internal/render/layout"
)

const imageCell = '#'

// TextDisplay is a Display made of character cells, one per glyph, for
// terminal front-ends. Pixel rectangles are mapped to the nearest cell
// boundary.
type TextDisplay struct {
	mu          sync.Mutex
	bounds      image.Rectangle
	glyphWidth  int
	glyphHeight int
	cells       [][]rune
	backgrounds []color.Color
}

func NewTextDisplay(bounds image.Rectangle, glyphWidth, glyphHeight int) *TextDisplay {
	glyphWidth = max(glyphWidth, 1)
	glyphHeight = max(glyphHeight, 1)
	d := &TextDisplay{bounds: bounds.Canon(), glyphWidth: glyphWidth, glyphHeight: glyphHeight}
	cols, rows := d.colOf(d.bounds.Max.X), d.rowOf(d.bounds.Max.Y)
	d.cells = make([][]rune, rows)
	for i := range d.cells {
		d.cells[i] = make([]rune, cols)
		for j := range d.cells[i] {
			d.cells[i][j] = ' '
		}
	}
	d.backgrounds = make([]color.Color, rows)
	return d
}

func (d *TextDisplay) Bounds() image.Rectangle { return d.bounds }

func (d *TextDisplay) ClipTo(region layout.Region) (Surface, error) {
	r := region.Rect.Canon().Intersect(d.bounds)
	return &textSurface{
		display: d,
		cols:    [2]int{d.colOf(r.Min.X), d.colOf(r.Max.X)},
		rows:    [2]int{d.rowOf(r.Min.Y), d.rowOf(r.Max.Y)},
	}, nil
}

// Rows returns a copy of every cell row.
func (d *TextDisplay) Rows() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.cells))
	for i, row := range d.cells {
		out[i] = string(row)
	}
	return out
}

// Background is the color the row was last cleared to, nil if never.
func (d *TextDisplay) Background(row int) color.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	if row < 0 || row >= len(d.backgrounds) {
		return nil
	}
	return d.backgrounds[row]
}

func (d *TextDisplay) colOf(x int) int {
	return (x - d.bounds.Min.X + d.glyphWidth/2) / d.glyphWidth
}

func (d *TextDisplay) rowOf(y int) int {
	return (y - d.bounds.Min.Y + d.glyphHeight/2) / d.glyphHeight
}

type textSurface struct {
	display *TextDisplay
	cols    [2]int
	rows    [2]int
}

func (s *textSurface) fill(rows, cols [2]int, r rune, bg color.Color) {
	d := s.display
	d.mu.Lock()
	defer d.mu.Unlock()
	for y := max(rows[0], s.rows[0]); y < min(rows[1], s.rows[1]); y++ {
		if bg != nil {
			d.backgrounds[y] = bg
		}
		for x := max(cols[0], s.cols[0]); x < min(cols[1], s.cols[1]); x++ {
			d.cells[y][x] = r
		}
	}
}

func (s *textSurface) Clear(c color.Color) error {
	s.fill(s.rows, s.cols, ' ', c)
	return nil
}

func (s *textSurface) DrawTextLine(line layout.Line, style layout.Style) error {
	d := s.display
	row := d.rowOf(line.Origin.Y - style.GlyphHeight)
	if row < s.rows[0] || row >= s.rows[1] {
		return nil
	}
	col := d.colOf(line.Origin.X)
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range line.Text {
		if col >= s.cols[1] {
			break
		}
		if col >= s.cols[0] {
			d.cells[row][col] = r
		}
		col++
	}
	return nil
}

func (s *textSurface) DrawImage(rect image.Rectangle, img image.Image) error {
	if img == nil {
		return nil
	}
	d := s.display
	rect = rect.Canon()
	s.fill([2]int{d.rowOf(rect.Min.Y), d.rowOf(rect.Max.Y)}, [2]int{d.colOf(rect.Min.X), d.colOf(rect.Max.X)}, imageCell, nil)
	return nil
}
