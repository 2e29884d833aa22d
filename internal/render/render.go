package render

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/rook-computer/sysdeck/internal/render/layout"
	"github.com/rook-computer/sysdeck/internal/state"
)

var (
	ErrNoPanel     = errors.New("no panel configured")
	ErrPanelClosed = errors.New("panel closed")
)

// Display is the drawing collaborator the renderer talks to. It never hands
// out raw pixels; all drawing goes through a Surface clipped to one region.
type Display interface {
	Bounds() image.Rectangle
	ClipTo(region layout.Region) (Surface, error)
}

// Surface draws inside one region. Nothing drawn through it lands outside
// the region's rectangle.
type Surface interface {
	Clear(c color.Color) error
	DrawTextLine(line layout.Line, style layout.Style) error
	DrawImage(rect image.Rectangle, img image.Image) error
}

// Panel is the pixel sink behind a PanelDisplay: a fill or a block copy of a
// rectangle. src passed to Blit uses panel coordinates.
type Panel interface {
	Bounds() image.Rectangle
	Fill(rect image.Rectangle, c color.Color) error
	Blit(rect image.Rectangle, src image.Image) error
}

// Backlighter is implemented by panels that can switch their backlight.
type Backlighter interface {
	SetBacklight(on bool) error
}

// Screen produces the body content of one UI screen. Start and Stop bracket
// the time the screen is active so it can run background work.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Body(s state.State) Body
}

// Body is what a screen wants drawn in the body region. Text is laid out as
// one block, List item by item; Image, when set, is scaled into the space
// left under the text.
type Body struct {
	Text  string
	List  []string
	Image image.Image
}

// Labels resolves UI strings by message id.
type Labels interface {
	T(id string) string
}

type IdentityLabels struct{}

func (IdentityLabels) T(id string) string { return id }
