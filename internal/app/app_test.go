package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/render/layout"
	"github.com/rook-computer/sysdeck/internal/screen"
	"github.com/rook-computer/sysdeck/internal/state"
)

type fakeButtons struct {
	ch      chan screen.Key
	started bool
}

func newFakeButtons() *fakeButtons { return &fakeButtons{ch: make(chan screen.Key)} }

func (b *fakeButtons) Start(ctx context.Context) error { b.started = true; return nil }
func (b *fakeButtons) Stop() error                     { return nil }
func (b *fakeButtons) Events() <-chan screen.Key       { return b.ch }

type lifecycleScreen struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (s *lifecycleScreen) Start(context.Context) error {
	s.mu.Lock()
	s.starts++
	s.mu.Unlock()
	return nil
}

func (s *lifecycleScreen) Stop() error {
	s.mu.Lock()
	s.stops++
	s.mu.Unlock()
	return nil
}

func (s *lifecycleScreen) Body(state.State) render.Body { return render.Body{Text: "body"} }

func (s *lifecycleScreen) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts, s.stops
}

func newTestApp(t *testing.T) (*App, *render.MemoryPanel) {
	t.Helper()
	panel := render.NewMemoryPanel(240, 240)
	theme := render.DefaultTheme()
	renderer := render.NewRenderer(render.Options{Style: render.StyleFor(basicfont.Face7x13, theme), Theme: theme})
	a := New(screen.NewNavigator(nil), renderer, render.NewPanelDisplay(panel, basicfont.Face7x13), state.NewStore())
	return a, panel
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHandleKey_NavigatesAndCyclesScreens(t *testing.T) {
	a, _ := newTestApp(t)
	menu := &lifecycleScreen{}
	a.Renderer.Register(screen.Menu, menu)

	a.HandleKey(screen.Ok)
	if got := a.Navigator.Current(); got != screen.Menu {
		t.Fatalf("current = %s, want menu", got)
	}
	a.HandleKey(screen.Up)
	a.HandleKey(screen.Cancel)
	if got := a.Navigator.Current(); got != screen.Home {
		t.Fatalf("current = %s, want home", got)
	}
	if starts, stops := menu.counts(); starts != 1 || stops != 1 {
		t.Fatalf("menu starts=%d stops=%d", starts, stops)
	}
}

func TestRun_BlanksAndWakes(t *testing.T) {
	a, panel := newTestApp(t)
	a.Backlight = panel
	a.IdleTimeout = 100 * time.Millisecond
	a.IdleCheckInterval = 5 * time.Millisecond
	btn := newFakeButtons()
	a.Buttons = btn

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	waitFor(t, "first frame", func() bool { return a.Frames() > 0 })
	waitFor(t, "blank", a.Blanked)
	if panel.Backlight() {
		t.Fatal("backlight should be off while blank")
	}

	btn.ch <- screen.Ok
	waitFor(t, "wake", func() bool { return !a.Blanked() })
	if got := a.Navigator.Current(); got != screen.Home {
		t.Fatalf("waking key must not navigate, current = %s", got)
	}
	if !panel.Backlight() {
		t.Fatal("backlight should be on after wake")
	}

	btn.ch <- screen.Ok
	waitFor(t, "navigation", func() bool { return a.Navigator.Current() == screen.Menu })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestBlank_WithoutBacklightFillsBlack(t *testing.T) {
	a, panel := newTestApp(t)
	a.Frame()
	a.mu.Lock()
	if err := a.blankLocked(); err != nil {
		t.Fatal(err)
	}
	a.mu.Unlock()

	img := panel.Snapshot()
	for _, pt := range []image.Point{{0, 0}, {120, 120}, {239, 239}} {
		r, g, b, _ := img.At(pt.X, pt.Y).RGBA()
		if r|g|b != 0 {
			t.Fatalf("pixel %v not black after blank", pt)
		}
	}
	frames := a.Frames()
	a.Frame()
	if a.Frames() != frames {
		t.Fatal("no frame should be drawn while blank")
	}
}

type flakyDisplay struct {
	render.Display
	mu    sync.Mutex
	fails int
}

func (d *flakyDisplay) ClipTo(r layout.Region) (render.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fails > 0 {
		d.fails--
		return nil, errors.New("bus busy")
	}
	return d.Display.ClipTo(r)
}

func TestFrame_FailureIsRetried(t *testing.T) {
	a, _ := newTestApp(t)
	a.Display = &flakyDisplay{Display: a.Display, fails: 1}
	a.Frame()
	if a.Frames() != 0 {
		t.Fatal("failed frame should not count")
	}
	a.Frame()
	if a.Frames() != 1 {
		t.Fatal("second frame should succeed")
	}
}

func TestRun_RequiresCollaborators(t *testing.T) {
	if err := (&App{}).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRequestRedraw_NeverBlocks(t *testing.T) {
	a, _ := newTestApp(t)
	for i := 0; i < 10; i++ {
		a.RequestRedraw()
	}
}
