package system

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rook-computer/sysdeck/internal/state"
)

type fakeRunner struct {
	stdout string
	err    error
	calls  [][]string
}

func (r *fakeRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	r.calls = append(r.calls, append([]string{cmd}, args...))
	return r.stdout, "", r.err
}

func TestWiFiSSID(t *testing.T) {
	runner := &fakeRunner{stdout: "office\n"}
	ssid, err := WiFiSSID(context.Background(), runner, "wlan0")
	if err != nil || ssid != "office" {
		t.Fatalf("WiFiSSID = %q, %v", ssid, err)
	}
	if want := []string{"iwgetid", "wlan0", "-r"}; !reflect.DeepEqual(runner.calls[0], want) {
		t.Fatalf("ran %v, want %v", runner.calls[0], want)
	}
}

func TestWiFiSSID_NotAssociated(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("exit 255: %w", &exec.ExitError{})}
	ssid, err := WiFiSSID(context.Background(), runner, "")
	if err != nil || ssid != "" {
		t.Fatalf("not associated should be empty without error, got %q, %v", ssid, err)
	}
}

func TestWiFiSSID_Failure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("executable file not found")}
	if _, err := WiFiSSID(context.Background(), runner, ""); err == nil {
		t.Fatal("expected error")
	}
}

func fakeLister(stats psnet.InterfaceStatList, err error) InterfaceLister {
	return func(context.Context) (psnet.InterfaceStatList, error) { return stats, err }
}

func TestIPv4Interfaces(t *testing.T) {
	stats := psnet.InterfaceStatList{
		{Name: "wlan0", Addrs: psnet.InterfaceAddrList{{Addr: "192.168.1.20/24"}, {Addr: "fe80::1/64"}}},
		{Name: "lo", Flags: []string{"up", "loopback"}, Addrs: psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}}},
		{Name: "eth0", Addrs: psnet.InterfaceAddrList{{Addr: "10.0.0.5/8"}}},
		{Name: "usb0", Addrs: psnet.InterfaceAddrList{{Addr: "fe80::2/64"}}},
	}
	got, err := IPv4Interfaces(context.Background(), fakeLister(stats, nil))
	if err != nil {
		t.Fatal(err)
	}
	want := []state.Interface{
		{Name: "eth0", Addrs: []string{"10.0.0.5"}},
		{Name: "wlan0", Addrs: []string{"192.168.1.20"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("IPv4Interfaces = %+v, want %+v", got, want)
	}
}

func TestNetworkProbe_ReportsProblems(t *testing.T) {
	probe := NetworkProbe{
		Runner: &fakeRunner{err: errors.New("boom")},
		Lister: fakeLister(nil, errors.New("no netlink")),
	}
	info := probe.Probe(context.Background())
	if !strings.Contains(info.Err, "boom") || !strings.Contains(info.Err, "no netlink") {
		t.Fatalf("Err = %q", info.Err)
	}
}
