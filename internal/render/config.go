package render

import (
	"image/color"

	"github.com/rook-computer/sysdeck/internal/render/layout"
)

// Default colors, matching the stock theme of the device.
var (
	HeaderBackground = color.RGBA{R: 0x94, G: 0x00, B: 0xD3, A: 0xFF} // #9400d3
	BodyBackground   = color.RGBA{R: 0x2F, G: 0x4F, B: 0x4F, A: 0xFF} // #2f4f4f
	FooterBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF} // #000000
	TextColor        = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // #ffffff

	DefaultPadding = 10
)

// Theme is the static look of every frame: region colors, text color and the
// padding added around the header and footer text rows.
type Theme struct {
	Palette layout.Palette
	Text    color.Color
	Padding int
}

func DefaultTheme() Theme {
	return Theme{
		Palette: layout.Palette{
			Header: HeaderBackground,
			Body:   BodyBackground,
			Footer: FooterBackground,
		},
		Text:    TextColor,
		Padding: DefaultPadding,
	}
}
