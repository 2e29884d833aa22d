package screens

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/state"
)

type labels map[string]string

func (l labels) T(id string) string {
	if v, ok := l[id]; ok {
		return v
	}
	return id
}

func TestHomeScreen_Body(t *testing.T) {
	now := time.Date(2024, 2, 29, 23, 59, 58, 0, time.UTC)
	body := HomeScreen{}.Body(state.State{Now: now})
	if body.Text != "2024-02-29 23:59:58" {
		t.Fatalf("Text = %q", body.Text)
	}
	if body := (HomeScreen{}).Body(state.State{}); body.Text != "" {
		t.Fatalf("zero time should render nothing, got %q", body.Text)
	}
}

func TestSystemInfoScreen_Body(t *testing.T) {
	metrics := []string{"CPU0: 3.0%", "MEM: 0.3G/1.0G"}
	body := SystemInfoScreen{}.Body(state.State{Metrics: metrics})
	if !reflect.DeepEqual(body.List, metrics) {
		t.Fatalf("List = %v", body.List)
	}
	body.List[0] = "changed"
	if metrics[0] != "CPU0: 3.0%" {
		t.Fatal("body should not alias the snapshot")
	}
}

func TestMenuScreen_Body(t *testing.T) {
	screen := &MenuScreen{Labels: labels{"menu.heading": "Menu", "menu.empty": "Nothing here"}}
	body := screen.Body(state.State{})
	if body.Text != "Menu" || !reflect.DeepEqual(body.List, []string{"Nothing here"}) {
		t.Fatalf("unexpected body %+v", body)
	}
}

type countingProber struct {
	mu    sync.Mutex
	calls int
	info  state.NetworkInfo
}

func (p *countingProber) Probe(ctx context.Context) state.NetworkInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.info
}

func (p *countingProber) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestWifiScreen_RefreshesUntilStopped(t *testing.T) {
	prober := &countingProber{info: state.NetworkInfo{SSID: "lab", Interfaces: []state.Interface{{Name: "wlan0", Addrs: []string{"10.1.2.3"}}}}}
	store := state.NewStore()
	screen, err := NewWifiScreen(prober, store, labels{"wifi.ssid": "SSID:"}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	screen.Interval = 5 * time.Millisecond
	changed := make(chan struct{}, 16)
	screen.Changed = func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}

	if err := screen.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 2; i++ {
		select {
		case <-changed:
		case <-time.After(time.Second):
			t.Fatal("no refresh observed")
		}
	}
	if err := screen.Stop(); err != nil {
		t.Fatal(err)
	}
	after := prober.count()
	time.Sleep(20 * time.Millisecond)
	if prober.count() != after {
		t.Fatal("prober still called after Stop")
	}

	body := screen.Body(store.Snapshot())
	want := []string{"SSID: lab", "wlan0 10.1.2.3"}
	if !reflect.DeepEqual(body.List, want) {
		t.Fatalf("List = %v, want %v", body.List, want)
	}
	if body.Image != nil {
		t.Fatal("no share payload configured, image should be nil")
	}
}

func TestWifiScreen_Disconnected(t *testing.T) {
	screen, err := NewWifiScreen(&countingProber{}, state.NewStore(), labels{}, nil, "WIFI:S:lab;T:WPA;P:pw;;")
	if err != nil {
		t.Fatal(err)
	}
	body := screen.Body(state.State{})
	if !reflect.DeepEqual(body.List, []string{"wifi.not-connected", "wifi.no-address"}) {
		t.Fatalf("List = %v", body.List)
	}
	if body.Image == nil {
		t.Fatal("share payload should produce a QR image")
	}
}

func TestWifiScreen_StartRequiresCollaborators(t *testing.T) {
	screen := &WifiScreen{}
	if err := screen.Start(context.Background()); err == nil {
		t.Fatal("expected error without prober")
	}
	if err := screen.Stop(); err != nil {
		t.Fatal("Stop without Start should be a no-op")
	}
}

var (
	_ render.Screen = HomeScreen{}
	_ render.Screen = (*MenuScreen)(nil)
	_ render.Screen = SystemInfoScreen{}
	_ render.Screen = (*WifiScreen)(nil)
)
