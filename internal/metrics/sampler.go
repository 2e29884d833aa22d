package metrics

import (
	"context"
	"time"

	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/state"
)

const defaultSampleInterval = 3 * time.Second

// Sampler refreshes the header and metric fields of a Store.
type Sampler struct {
	Collector Collector
	Clock     Clock
	Store     *state.Store
	Logger    logging.Logger
	Interval  time.Duration
	// Changed is called after every refresh.
	Changed func()
}

// Refresh takes one sample. Collector and clock failures are logged and the
// affected fields keep their last value.
func (s *Sampler) Refresh(ctx context.Context) {
	prev := s.Store.Snapshot()
	uptime, version, metrics := prev.Uptime, prev.OSVersion, prev.Metrics

	if s.Clock != nil {
		if v, err := s.Clock.Uptime(ctx); err != nil {
			s.logError("uptime: %v", err)
		} else {
			uptime = v
		}
		if v, err := s.Clock.OSVersion(ctx); err != nil {
			s.logError("os version: %v", err)
		} else {
			version = v
		}
	}
	if s.Collector != nil {
		if v, err := s.Collector.Collect(ctx); err != nil {
			s.logError("collect: %v", err)
		} else {
			metrics = v
		}
	}

	now := time.Now()
	if s.Clock != nil {
		now = s.Clock.Now()
	}
	s.Store.UpdateSystem(uptime, version, now, metrics)
	if s.Changed != nil {
		s.Changed()
	}
}

// Run refreshes immediately and then on every interval until ctx is done.
func (s *Sampler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		s.Refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sampler) logError(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("metrics", format, args...)
	}
}
