package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/rook-computer/sysdeck/internal/render/layout"
)

const defaultFontDPI = 72

var ErrNotMonospace = errors.New("font is not monospace")

// LoadFace returns the built-in 7x13 bitmap face for an empty path.
// .otf files go through the opentype parser, everything else through
// freetype's truetype parser.
func LoadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	if size <= 0 {
		size = 12
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}

	var face font.Face
	if strings.EqualFold(filepath.Ext(path), ".otf") {
		parsed, perr := opentype.Parse(data)
		if perr != nil {
			return nil, fmt.Errorf("parse otf %s: %w", path, perr)
		}
		face, err = opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: defaultFontDPI, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("otf face %s: %w", path, err)
		}
	} else {
		parsed, perr := truetype.Parse(data)
		if perr != nil {
			return nil, fmt.Errorf("parse ttf %s: %w", path, perr)
		}
		face = truetype.NewFace(parsed, &truetype.Options{Size: size, DPI: defaultFontDPI, Hinting: font.HintingFull})
	}

	if !isMonospace(face) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotMonospace)
	}
	return face, nil
}

// CellSize is the size of one glyph cell: the advance of "M" by the line
// height.
func CellSize(face font.Face) (width, height int) {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = face.Metrics().Height
	}
	return adv.Ceil(), face.Metrics().Height.Ceil()
}

// StyleFor builds the layout style for face drawn in the theme text color.
func StyleFor(face font.Face, theme Theme) layout.Style {
	w, h := CellSize(face)
	return layout.Style{GlyphWidth: w, GlyphHeight: h, Foreground: theme.Text}
}

func isMonospace(face font.Face) bool {
	ref, ok := face.GlyphAdvance('M')
	if !ok {
		return false
	}
	for _, r := range "il0 W" {
		adv, ok := face.GlyphAdvance(r)
		if ok && adv != ref {
			return false
		}
	}
	return true
}
