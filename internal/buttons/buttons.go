// Package buttons turns the board's physical keys into navigation key events.
package buttons

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/screen"
)

const DefaultPollInterval = 200 * time.Millisecond

// Source reports whether a key is currently held. It must not block.
type Source interface {
	IsPressed(k screen.Key) (bool, error)
}

type NoopSource struct{}

func (NoopSource) IsPressed(screen.Key) (bool, error) { return false, nil }

// Buttons delivers key events until stopped.
type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan screen.Key
}

// Poller samples a Source in screen.Keys order every Interval and emits the
// first held key. A key fires once per press: it has to be released before
// it fires again.
type Poller struct {
	Source   Source
	Interval time.Duration
	Logger   logging.Logger

	ch      chan screen.Key
	held    screen.Key
	holding bool
	lastErr string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(source Source, interval time.Duration, logger logging.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = logging.NoopLogger{}
	}
	return &Poller{Source: source, Interval: interval, Logger: logger, ch: make(chan screen.Key)}
}

func (p *Poller) Events() <-chan screen.Key { return p.ch }

func (p *Poller) Start(ctx context.Context) error {
	if p.Source == nil {
		return errors.New("no button source configured")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return errors.New("poller already started")
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(pollCtx, p.done)
	return nil
}

// Stop ends polling and waits for the loop to exit. Events is never closed.
func (p *Poller) Stop() error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		key, ok := p.poll()
		if !ok {
			continue
		}
		select {
		case p.ch <- key:
		case <-ctx.Done():
			return
		}
	}
}

// poll samples every key once and reports a newly pressed key.
func (p *Poller) poll() (screen.Key, bool) {
	for _, k := range screen.Keys {
		pressed, err := p.Source.IsPressed(k)
		if err != nil {
			p.reportError(err)
			return 0, false
		}
		if !pressed {
			continue
		}
		p.lastErr = ""
		if p.holding && p.held == k {
			return 0, false
		}
		p.held, p.holding = k, true
		return k, true
	}
	p.lastErr = ""
	p.holding = false
	return 0, false
}

func (p *Poller) reportError(err error) {
	if msg := err.Error(); msg != p.lastErr {
		p.lastErr = msg
		p.Logger.Errorf("buttons", "read keys: %v", err)
	}
}
