package system

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"sort"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rook-computer/sysdeck/internal/state"
)

const ssidCommand = "iwgetid"

// WiFiSSID returns the SSID iface is associated with, or "" when it is not
// associated.
func WiFiSSID(ctx context.Context, r Runner, iface string) (string, error) {
	args := []string{"-r"}
	if iface != "" {
		args = []string{iface, "-r"}
	}
	stdout, stderr, err := r.Run(ctx, ssidCommand, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.TrimSpace(stdout) == "" {
			return "", nil
		}
		return "", fmt.Errorf("%s failed: %v: %s", ssidCommand, err, strings.TrimSpace(stderr))
	}
	return strings.TrimSpace(stdout), nil
}

// InterfaceLister returns the host's interfaces. The gopsutil lister is the
// default.
type InterfaceLister func(ctx context.Context) (psnet.InterfaceStatList, error)

// IPv4Interfaces lists every non-loopback interface that has at least one
// IPv4 address, sorted by name.
func IPv4Interfaces(ctx context.Context, list InterfaceLister) ([]state.Interface, error) {
	if list == nil {
		list = psnet.InterfacesWithContext
	}
	stats, err := list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}
	var out []state.Interface
	for _, stat := range stats {
		if isLoopback(stat) {
			continue
		}
		var addrs []string
		for _, a := range stat.Addrs {
			if ip := ipv4(a.Addr); ip != "" {
				addrs = append(addrs, ip)
			}
		}
		if len(addrs) > 0 {
			out = append(out, state.Interface{Name: stat.Name, Addrs: addrs})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func isLoopback(stat psnet.InterfaceStat) bool {
	for _, flag := range stat.Flags {
		if flag == "loopback" {
			return true
		}
	}
	return stat.Name == "lo"
}

func ipv4(addr string) string {
	ip := net.ParseIP(addr)
	if ip == nil {
		parsed, _, err := net.ParseCIDR(addr)
		if err != nil {
			return ""
		}
		ip = parsed
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ""
}

// NetworkProbe gathers what the wifi screen shows.
type NetworkProbe struct {
	Runner    Runner
	Interface string
	Lister    InterfaceLister
}

// Probe never fails; problems are reported in NetworkInfo.Err so the screen
// can show them.
func (p NetworkProbe) Probe(ctx context.Context) state.NetworkInfo {
	var info state.NetworkInfo
	var problems []string

	runner := p.Runner
	if runner == nil {
		runner = NoopRunner{}
	}
	ssid, err := WiFiSSID(ctx, runner, p.Interface)
	if err != nil {
		problems = append(problems, err.Error())
	}
	info.SSID = ssid

	ifaces, err := IPv4Interfaces(ctx, p.Lister)
	if err != nil {
		problems = append(problems, err.Error())
	}
	info.Interfaces = ifaces
	info.Err = strings.Join(problems, "; ")
	return info
}
