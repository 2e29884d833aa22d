package screens

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/sysdeck/internal/logging"
	"github.com/rook-computer/sysdeck/internal/render"
	"github.com/rook-computer/sysdeck/internal/state"
)

const (
	defaultWifiRefresh = 5 * time.Second
	wifiQRCodeSizePx   = 128
)

// NetworkProber reports the current network status.
type NetworkProber interface {
	Probe(ctx context.Context) state.NetworkInfo
}

// WifiScreen shows the associated SSID and the IPv4 address of every
// interface. While active it refreshes the network part of the store on an
// interval and calls Changed after each refresh.
type WifiScreen struct {
	Prober   NetworkProber
	Store    *state.Store
	Labels   render.Labels
	Logger   logging.Logger
	Interval time.Duration
	Changed  func()

	qr image.Image

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWifiScreen builds the screen. A non-empty sharePayload is encoded once
// as a QR code drawn under the status text.
func NewWifiScreen(prober NetworkProber, store *state.Store, labels render.Labels, logger logging.Logger, sharePayload string) (*WifiScreen, error) {
	qr, err := render.GenerateQRCodeImage(sharePayload, wifiQRCodeSizePx)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NoopLogger{}
	}
	if labels == nil {
		labels = render.IdentityLabels{}
	}
	return &WifiScreen{
		Prober:   prober,
		Store:    store,
		Labels:   labels,
		Logger:   logger,
		Interval: defaultWifiRefresh,
		qr:       qr,
	}, nil
}

func (screen *WifiScreen) Start(ctx context.Context) error {
	if screen.Prober == nil {
		return errors.New("no network prober configured")
	}
	if screen.Store == nil {
		return errors.New("no state store configured")
	}

	screen.mu.Lock()
	defer screen.mu.Unlock()
	if screen.cancel != nil {
		return nil
	}
	screenCtx, cancel := context.WithCancel(ctx)
	screen.cancel = cancel
	screen.done = make(chan struct{})

	interval := screen.Interval
	if interval <= 0 {
		interval = defaultWifiRefresh
	}
	go screen.refreshLoop(screenCtx, interval, screen.done)
	return nil
}

func (screen *WifiScreen) refreshLoop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		screen.refresh(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (screen *WifiScreen) refresh(ctx context.Context) {
	info := screen.Prober.Probe(ctx)
	if ctx.Err() != nil {
		return
	}
	if info.Err != "" {
		screen.Logger.Errorf("wifi", "network probe: %s", info.Err)
	}
	screen.Store.UpdateNetwork(info)
	if screen.Changed != nil {
		screen.Changed()
	}
}

// Stop cancels the refresh loop and waits for it to exit.
func (screen *WifiScreen) Stop() error {
	screen.mu.Lock()
	cancel, done := screen.cancel, screen.done
	screen.cancel, screen.done = nil, nil
	screen.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (screen *WifiScreen) Body(st state.State) render.Body {
	var lines []string
	if st.Network.SSID != "" {
		lines = append(lines, screen.Labels.T("wifi.ssid")+" "+st.Network.SSID)
	} else {
		lines = append(lines, screen.Labels.T("wifi.not-connected"))
	}
	if len(st.Network.Interfaces) == 0 {
		lines = append(lines, screen.Labels.T("wifi.no-address"))
	}
	for _, iface := range st.Network.Interfaces {
		lines = append(lines, iface.Name+" "+strings.Join(iface.Addrs, " "))
	}
	return render.Body{List: lines, Image: screen.qr}
}
