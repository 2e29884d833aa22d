package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// pseudo filesystems that never make sense as a volume line
var skipFstypes = map[string]bool{
	"tmpfs": true, "devtmpfs": true, "squashfs": true, "overlay": true, "proc": true, "sysfs": true,
}

// HostCollector reads the host through gopsutil.
type HostCollector struct{}

func (c HostCollector) Collect(ctx context.Context) ([]string, error) {
	sample, err := c.Sample(ctx)
	if err != nil {
		return nil, err
	}
	return sample.Lines(), nil
}

// Sample reads every statistic. Temperatures and volumes are best effort; a
// failure there leaves the section empty.
func (c HostCollector) Sample(ctx context.Context) (Sample, error) {
	var sample Sample

	percents, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return sample, fmt.Errorf("cpu percent: %w", err)
	}
	sample.CPUPercent = percents

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return sample, fmt.Errorf("virtual memory: %w", err)
	}
	sample.MemUsed, sample.MemTotal = vm.Used, vm.Total

	// SensorsTemperatures returns partial results together with warnings.
	temps, _ := host.SensorsTemperaturesWithContext(ctx)
	for _, t := range temps {
		sample.Temperatures = append(sample.Temperatures, Temperature{
			Label:    t.SensorKey,
			Current:  t.Temperature,
			Critical: t.Critical,
		})
	}

	sample.Volumes = c.volumes(ctx)
	return sample, nil
}

func (c HostCollector) volumes(ctx context.Context) []Volume {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil
	}
	seen := map[string]bool{}
	var out []Volume
	for _, p := range parts {
		if skipFstypes[p.Fstype] || seen[p.Mountpoint] {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil || usage.Total == 0 {
			continue
		}
		seen[p.Mountpoint] = true
		out = append(out, Volume{Mount: p.Mountpoint, Used: usage.Total - usage.Free, Total: usage.Total})
	}
	return out
}

// HostClock reads uptime and the OS release through gopsutil.
type HostClock struct {
	Location *time.Location
}

func (c HostClock) Uptime(ctx context.Context) (time.Duration, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("uptime: %w", err)
	}
	return time.Duration(secs) * time.Second, nil
}

func (c HostClock) OSVersion(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("host info: %w", err)
	}
	return OSVersionString(info.Platform, info.PlatformVersion, info.OS), nil
}

func (c HostClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return now
}

// OSVersionString prefers "<platform> <version>" and falls back to the OS
// family name.
func OSVersionString(platform, version, osName string) string {
	s := strings.TrimSpace(strings.TrimSpace(platform) + " " + strings.TrimSpace(version))
	if s == "" {
		return osName
	}
	return s
}
