package render

import (
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/sysdeck/internal/render/layout"
	"github.com/rook-computer/sysdeck/internal/screen"
	"github.com/rook-computer/sysdeck/internal/state"
)

const (
	footerSeparator = "  "
	emptySlotLabel  = "slot.empty"
	imageMarginPx   = 4
)

// Renderer turns (active screen, state snapshot) into drawing calls on a
// Display. The same inputs always produce the same calls.
type Renderer struct {
	mu      sync.RWMutex
	table   *screen.Table
	labels  Labels
	style   layout.Style
	theme   Theme
	screens map[screen.ID]Screen
}

type Options struct {
	Table  *screen.Table
	Labels Labels
	Style  layout.Style
	Theme  Theme
}

func NewRenderer(opts Options) *Renderer {
	if opts.Table == nil {
		opts.Table = screen.DefaultTable()
	}
	if opts.Labels == nil {
		opts.Labels = IdentityLabels{}
	}
	if opts.Style.Foreground == nil {
		opts.Style.Foreground = opts.Theme.Text
	}
	return &Renderer{
		table:   opts.Table,
		labels:  opts.Labels,
		style:   opts.Style,
		theme:   opts.Theme,
		screens: map[screen.ID]Screen{},
	}
}

// Register sets the body provider for id, replacing any earlier one.
func (r *Renderer) Register(id screen.ID, s Screen) {
	r.mu.Lock()
	r.screens[id] = s
	r.mu.Unlock()
}

func (r *Renderer) Screen(id screen.ID) (Screen, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.screens[id]
	return s, ok
}

// Regions returns the frame split used for a display of the given bounds.
func (r *Renderer) Regions(bounds image.Rectangle) layout.Regions {
	return layout.Frame(bounds, r.style, r.theme.Padding, r.theme.Palette)
}

// Render draws header, footer and body in that order. Each region is
// cleared to its background before its lines are drawn. The first failing
// region aborts the frame.
func (r *Renderer) Render(id screen.ID, snap state.State, d Display) error {
	regions := r.Regions(d.Bounds())

	if err := r.drawRegion(d, regions.Header, layout.WrapAndClip(HeaderText(snap), regions.Header), nil); err != nil {
		return err
	}
	footer := r.FooterText(id)
	if err := r.drawRegion(d, regions.Footer, layout.WrapAndClip(footer, regions.Footer), nil); err != nil {
		return err
	}

	body := r.body(id, snap)
	var lines []layout.Line
	switch {
	case len(body.List) > 0 && body.Text != "":
		lines = layout.WrapAndClipList(append([]string{body.Text}, body.List...), regions.Body)
	case len(body.List) > 0:
		lines = layout.WrapAndClipList(body.List, regions.Body)
	default:
		lines = layout.WrapAndClip(body.Text, regions.Body)
	}
	return r.drawRegion(d, regions.Body, lines, body.Image)
}

func (r *Renderer) body(id screen.ID, snap state.State) Body {
	s, ok := r.Screen(id)
	if !ok || s == nil {
		return Body{}
	}
	return s.Body(snap)
}

func (r *Renderer) drawRegion(d Display, region layout.Region, lines []layout.Line, img image.Image) error {
	surface, err := d.ClipTo(region)
	if err != nil {
		return fmt.Errorf("%s: clip: %w", region.Name, err)
	}
	if err := surface.Clear(region.Background); err != nil {
		return fmt.Errorf("%s: clear: %w", region.Name, err)
	}
	for _, line := range lines {
		if err := surface.DrawTextLine(line, region.Style); err != nil {
			return fmt.Errorf("%s: line %q: %w", region.Name, line.Text, err)
		}
	}
	if img == nil {
		return nil
	}
	rect := ImageRect(region, lines)
	if rect.Empty() {
		return nil
	}
	if err := surface.DrawImage(rect, img); err != nil {
		return fmt.Errorf("%s: image: %w", region.Name, err)
	}
	return nil
}

// ImageRect is the square left under the last text line of region,
// anchored bottom-right.
func ImageRect(region layout.Region, lines []layout.Line) image.Rectangle {
	rect := region.Rect.Canon()
	top := rect.Min.Y
	if n := len(lines); n > 0 {
		top = lines[n-1].Origin.Y
	}
	if top >= rect.Max.Y {
		return image.Rectangle{}
	}
	rest := image.Rect(rect.Min.X, top, rect.Max.X, rect.Max.Y)
	return layout.FitSquare(layout.Inset(rest, imageMarginPx))
}

// HeaderText is the uptime as H:MM:SS followed by the OS version.
func HeaderText(snap state.State) string {
	secs := int64(snap.Uptime / time.Second)
	if secs < 0 {
		secs = 0
	}
	text := fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	if snap.OSVersion != "" {
		text += " " + snap.OSVersion
	}
	return text
}

// FooterText joins the localized slot labels of id.
func (r *Renderer) FooterText(id screen.ID) string {
	slots := r.table.Footer(id)
	labels := make([]string, 0, 3)
	for _, slot := range []string{slots.Left, slots.Middle, slots.Right} {
		labels = append(labels, r.slotLabel(slot))
	}
	return strings.Join(labels, footerSeparator)
}

func (r *Renderer) slotLabel(name string) string {
	if name == "" {
		return r.labels.T(emptySlotLabel)
	}
	return r.labels.T("screen." + name)
}
