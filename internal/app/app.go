// Package app wires navigation, sampling, input and rendering into the
// device's main loop.
package app

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/rook-computer/sysdeck/internal/buttons"
	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/metrics"
	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/render/layout"
	"github.com/rook-computer/sysdeck/internal/screen"
	"github.com/rook-computer/sysdeck/internal/state"
)

const (
	DefaultRedrawInterval    = 3 * time.Second
	DefaultIdleTimeout       = 20 * time.Second
	DefaultIdleCheckInterval = 200 * time.Millisecond
)

type App struct {
	Navigator *screen.Navigator
	Renderer  *render.Renderer
	Display   render.Display
	Store     *state.Store
	Buttons   buttons.Buttons
	Sampler   *metrics.Sampler
	// Backlight, when set, is switched off while the screen is blank.
	// Without it the blank screen is a black fill.
	Backlight render.Backlighter
	Logger    logging.Logger

	RedrawInterval    time.Duration
	IdleTimeout       time.Duration
	IdleCheckInterval time.Duration

	// mu serializes navigator transitions and every write to Display.
	mu        sync.Mutex
	screenCtx context.Context
	redraw    chan struct{}
	blanked   atomic.Bool
	running   atomic.Bool
	lastInput atomic.Int64
	frames    atomic.Int64
}

func New(nav *screen.Navigator, renderer *render.Renderer, display render.Display, store *state.Store) *App {
	return &App{
		Navigator:         nav,
		Renderer:          renderer,
		Display:           display,
		Store:             store,
		Logger:            logging.NoopLogger{},
		RedrawInterval:    DefaultRedrawInterval,
		IdleTimeout:       DefaultIdleTimeout,
		IdleCheckInterval: DefaultIdleCheckInterval,
		redraw:            make(chan struct{}, 1),
	}
}

// RequestRedraw schedules a frame. It never blocks.
func (app *App) RequestRedraw() {
	select {
	case app.redraw <- struct{}{}:
	default:
	}
}

func (app *App) Blanked() bool { return app.blanked.Load() }

// Frames counts successfully drawn frames.
func (app *App) Frames() int64 { return app.frames.Load() }

// Run draws the first frame and then serves input, periodic redraws and idle
// blanking until ctx is cancelled. Cancellation is a clean shutdown and
// returns nil.
func (app *App) Run(ctx context.Context) error {
	if app.Navigator == nil || app.Renderer == nil || app.Display == nil || app.Store == nil {
		return errors.New("app: navigator, renderer, display and store are required")
	}
	if !app.running.CompareAndSwap(false, true) {
		return errors.New("app: already running")
	}
	defer app.running.Store(false)
	if app.redraw == nil {
		app.redraw = make(chan struct{}, 1)
	}
	if app.Logger == nil {
		app.Logger = logging.NoopLogger{}
	}

	app.mu.Lock()
	app.screenCtx = ctx
	app.startScreen(app.Navigator.Current())
	app.mu.Unlock()
	app.touch()

	var wg sync.WaitGroup
	if app.Sampler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.Sampler.Run(ctx)
		}()
	}
	if app.Buttons != nil {
		if err := app.Buttons.Start(ctx); err != nil {
			app.Logger.Errorf("app", "buttons start error: %v", err)
		} else {
			defer app.Buttons.Stop()
			wg.Add(1)
			go func() {
				defer wg.Done()
				app.inputLoop(ctx)
			}()
		}
	}

	app.Logger.Infof("app", "running, screen=%s", app.Navigator.Current())
	app.renderLoop(ctx)

	wg.Wait()
	app.mu.Lock()
	app.stopScreen(app.Navigator.Current())
	app.mu.Unlock()
	app.Logger.Infof("app", "stopped")
	return nil
}

func (app *App) inputLoop(ctx context.Context) {
	events := app.Buttons.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case key := <-events:
			app.HandleKey(key)
		}
	}
}

func (app *App) renderLoop(ctx context.Context) {
	redrawEvery := app.RedrawInterval
	if redrawEvery <= 0 {
		redrawEvery = DefaultRedrawInterval
	}
	idleEvery := app.IdleCheckInterval
	if idleEvery <= 0 {
		idleEvery = DefaultIdleCheckInterval
	}
	redrawTicker := time.NewTicker(redrawEvery)
	defer redrawTicker.Stop()
	idleTicker := time.NewTicker(idleEvery)
	defer idleTicker.Stop()

	app.Frame()
	for {
		select {
		case <-ctx.Done():
			return
		case <-app.redraw:
			app.Frame()
		case <-redrawTicker.C:
			app.Frame()
		case <-idleTicker.C:
			app.checkIdle()
		}
	}
}

// HandleKey applies one key press. While the screen is blank the key only
// wakes it.
func (app *App) HandleKey(key screen.Key) {
	app.touch()
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.blanked.Load() {
		app.wakeLocked()
		app.Logger.Debugf("app", "woken by %s", key)
		app.RequestRedraw()
		return
	}
	prev, next := app.Navigator.Apply(key)
	if prev != next {
		app.Logger.Infof("app", "%s + %s -> %s", prev, key, next)
		app.stopScreen(prev)
		app.startScreen(next)
	}
	app.RequestRedraw()
}

// Frame renders the current screen from a fresh snapshot. Failures are
// logged; the next frame redraws everything.
func (app *App) Frame() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.blanked.Load() {
		return
	}
	current := app.Navigator.Current()
	if err := app.Renderer.Render(current, app.Store.Snapshot(), app.Display); err != nil {
		app.Logger.Errorf("render", "frame for %s failed: %v", current, err)
		return
	}
	app.frames.Inc()
}

func (app *App) checkIdle() {
	if app.blanked.Load() || app.IdleTimeout <= 0 {
		return
	}
	idle := time.Since(time.Unix(0, app.lastInput.Load()))
	if idle < app.IdleTimeout {
		return
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	if err := app.blankLocked(); err != nil {
		app.Logger.Errorf("app", "blank failed: %v", err)
		return
	}
	app.Logger.Debugf("app", "blanked after %s idle", idle.Round(time.Second))
}

func (app *App) blankLocked() error {
	if app.Backlight != nil {
		if err := app.Backlight.SetBacklight(false); err != nil {
			return err
		}
	} else {
		surface, err := app.Display.ClipTo(layout.Region{Name: "blank", Rect: app.Display.Bounds(), Background: color.Black})
		if err != nil {
			return err
		}
		if err := surface.Clear(color.Black); err != nil {
			return err
		}
	}
	app.blanked.Store(true)
	return nil
}

func (app *App) wakeLocked() {
	if app.Backlight != nil {
		if err := app.Backlight.SetBacklight(true); err != nil {
			app.Logger.Errorf("app", "backlight on failed: %v", err)
		}
	}
	app.blanked.Store(false)
}

func (app *App) touch() {
	app.lastInput.Store(time.Now().UnixNano())
}

func (app *App) startScreen(id screen.ID) {
	s, ok := app.Renderer.Screen(id)
	if !ok || s == nil {
		return
	}
	ctx := app.screenCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.Start(ctx); err != nil {
		app.Logger.Errorf("app", "start screen %s: %v", id, err)
	}
}

func (app *App) stopScreen(id screen.ID) {
	s, ok := app.Renderer.Screen(id)
	if !ok || s == nil {
		return
	}
	if err := s.Stop(); err != nil {
		app.Logger.Errorf("app", "stop screen %s: %v", id, err)
	}
}
