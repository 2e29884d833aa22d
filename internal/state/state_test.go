package state

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestStore_SnapshotIsolated(t *testing.T) {
	store := NewStore()
	metrics := []string{"CPU0: 1.0%", "MEM: 0.1G/1.0G"}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	store.UpdateSystem(90*time.Second, "Debian 12", now, metrics)
	store.UpdateNetwork(NetworkInfo{SSID: "lab", Interfaces: []Interface{{Name: "wlan0", Addrs: []string{"10.0.0.2"}}}})

	metrics[0] = "mutated"
	snap := store.Snapshot()
	if snap.Metrics[0] != "CPU0: 1.0%" {
		t.Fatalf("store kept a reference to the caller's slice: %v", snap.Metrics)
	}

	snap.Metrics[1] = "mutated"
	snap.Network.Interfaces[0].Addrs[0] = "mutated"
	again := store.Snapshot()
	if again.Metrics[1] != "MEM: 0.1G/1.0G" || again.Network.Interfaces[0].Addrs[0] != "10.0.0.2" {
		t.Fatalf("snapshot shares memory with the store: %+v", again)
	}
	if again.Uptime != 90*time.Second || again.OSVersion != "Debian 12" || !again.Now.Equal(now) {
		t.Fatalf("unexpected snapshot: %+v", again)
	}
}

func TestState_CloneEqual(t *testing.T) {
	s := State{Metrics: []string{"a"}, Network: NetworkInfo{Interfaces: []Interface{{Name: "eth0"}}}}
	if !reflect.DeepEqual(s, s.Clone()) {
		t.Fatal("clone should be deeply equal")
	}
}

func TestStore_Concurrent(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.UpdateSystem(time.Duration(j), "x", time.Now(), []string{"m"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Snapshot()
			}
		}()
	}
	wg.Wait()
}
