// Package state holds the point-in-time inputs a frame is drawn from.
package state

import (
	"sync"
	"time"
)

// Interface is one network interface with its IPv4 addresses.
type Interface struct {
	Name  string
	Addrs []string
}

type NetworkInfo struct {
	SSID       string
	Interfaces []Interface
	Err        string
}

// State is everything a frame needs besides the active screen. Two renders
// of equal States produce identical pixels.
type State struct {
	Uptime    time.Duration
	OSVersion string
	Now       time.Time
	Metrics   []string
	Network   NetworkInfo
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Metrics = cloneStrings(s.Metrics)
	out.Network = s.Network.Clone()
	return out
}

func (n NetworkInfo) Clone() NetworkInfo {
	out := n
	if n.Interfaces != nil {
		out.Interfaces = make([]Interface, len(n.Interfaces))
		for i, iface := range n.Interfaces {
			out.Interfaces[i] = Interface{Name: iface.Name, Addrs: cloneStrings(iface.Addrs)}
		}
	}
	return out
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy that later updates do not touch.
func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state.Clone()
}

// UpdateSystem replaces the header and metrics fields in one step.
func (store *Store) UpdateSystem(uptime time.Duration, osVersion string, now time.Time, metrics []string) {
	store.mu.Lock()
	store.state.Uptime = uptime
	store.state.OSVersion = osVersion
	store.state.Now = now
	store.state.Metrics = cloneStrings(metrics)
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network.Clone()
	store.mu.Unlock()
}

func cloneStrings(input []string) []string {
	if len(input) == 0 {
		return nil
	}
	out := make([]string, len(input))
	copy(out, input)
	return out
}
