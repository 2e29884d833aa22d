package metrics

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rook-computer/sysdeck/internal/state"
)

func TestSample_Lines(t *testing.T) {
	s := Sample{
		CPUPercent: []float64{12.34, 0},
		MemUsed:    3 * gib / 2,
		MemTotal:   4 * gib,
		Temperatures: []Temperature{
			{Label: "cpu_thermal", Current: 48.25, Critical: 85},
			{Label: "gp", Current: 40},
		},
		Volumes: []Volume{{Mount: "/", Used: 3 * gib, Total: 29 * gib}, {Mount: "/boot", Used: gib / 10, Total: gib / 2}},
	}
	want := []string{
		"CPU0: 12.3%",
		"CPU1: 0.0%",
		"MEM: 1.5G/4.0G",
		"cpu: 48.2C/85.0C",
		"gp: 40.0C/0.0C",
		"/   3.0G/29.0G",
		"/boot 0.1G/0.5G",
	}
	if got := s.Lines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() =\n%q\nwant\n%q", got, want)
	}
}

func TestOSVersionString(t *testing.T) {
	if got := OSVersionString("debian", "12.5", "linux"); got != "debian 12.5" {
		t.Fatalf("got %q", got)
	}
	if got := OSVersionString("", "", "linux"); got != "linux" {
		t.Fatalf("got %q", got)
	}
}

type fakeClock struct {
	uptime  time.Duration
	version string
	now     time.Time
	err     error
}

func (c fakeClock) Uptime(context.Context) (time.Duration, error) { return c.uptime, c.err }
func (c fakeClock) OSVersion(context.Context) (string, error)     { return c.version, c.err }
func (c fakeClock) Now() time.Time                                { return c.now }

type fakeCollector struct {
	lines []string
	err   error
}

func (c fakeCollector) Collect(context.Context) ([]string, error) { return c.lines, c.err }

func TestSampler_Refresh(t *testing.T) {
	store := state.NewStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	changed := 0
	s := &Sampler{
		Collector: fakeCollector{lines: []string{"CPU0: 1.0%"}},
		Clock:     fakeClock{uptime: time.Minute, version: "debian 12", now: now},
		Store:     store,
		Changed:   func() { changed++ },
	}
	s.Refresh(context.Background())
	snap := store.Snapshot()
	if snap.Uptime != time.Minute || snap.OSVersion != "debian 12" || !snap.Now.Equal(now) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if !reflect.DeepEqual(snap.Metrics, []string{"CPU0: 1.0%"}) || changed != 1 {
		t.Fatalf("metrics %v, changed %d", snap.Metrics, changed)
	}

	// A failing refresh keeps the previous values but still moves the clock.
	later := now.Add(time.Second)
	s.Collector = fakeCollector{err: errors.New("boom")}
	s.Clock = fakeClock{now: later, err: errors.New("boom")}
	s.Refresh(context.Background())
	snap = store.Snapshot()
	if snap.Uptime != time.Minute || snap.OSVersion != "debian 12" || len(snap.Metrics) != 1 {
		t.Fatalf("failed refresh should keep old values, got %+v", snap)
	}
	if !snap.Now.Equal(later) {
		t.Fatalf("Now = %v, want %v", snap.Now, later)
	}
}

func TestSampler_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	refreshed := make(chan struct{}, 1)
	s := &Sampler{
		Store:    state.NewStore(),
		Clock:    fakeClock{},
		Interval: time.Millisecond,
		Changed: func() {
			select {
			case refreshed <- struct{}{}:
			default:
			}
		},
	}
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	<-refreshed
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
