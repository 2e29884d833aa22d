// Package metrics samples host statistics into the display lines of the
// system-info screen and the header.
package metrics

import (
	"context"
	"fmt"
	"time"
)

const gib = 1024 * 1024 * 1024

// Collector returns the system-info lines in display order.
type Collector interface {
	Collect(ctx context.Context) ([]string, error)
}

// Clock provides the header inputs.
type Clock interface {
	Uptime(ctx context.Context) (time.Duration, error)
	OSVersion(ctx context.Context) (string, error)
	Now() time.Time
}

type Temperature struct {
	Label    string
	Current  float64
	Critical float64
}

type Volume struct {
	Mount string
	Used  uint64
	Total uint64
}

// Sample is one raw reading before formatting.
type Sample struct {
	CPUPercent   []float64
	MemUsed      uint64
	MemTotal     uint64
	Temperatures []Temperature
	Volumes      []Volume
}

// Lines formats s as CPU lines, then memory, then temperatures, then volumes.
func (s Sample) Lines() []string {
	lines := make([]string, 0, len(s.CPUPercent)+1+len(s.Temperatures)+len(s.Volumes))
	for i, pct := range s.CPUPercent {
		lines = append(lines, FormatCPU(i, pct))
	}
	lines = append(lines, FormatMemory(s.MemUsed, s.MemTotal))
	for _, t := range s.Temperatures {
		lines = append(lines, FormatTemperature(t))
	}
	for _, v := range s.Volumes {
		lines = append(lines, FormatVolume(v))
	}
	return lines
}

func FormatCPU(index int, percent float64) string {
	return fmt.Sprintf("CPU%d: %.1f%%", index, percent)
}

func FormatMemory(used, total uint64) string {
	return fmt.Sprintf("MEM: %.1fG/%.1fG", float64(used)/gib, float64(total)/gib)
}

// FormatTemperature truncates the label to three runes. The built-in font has
// no degree sign.
func FormatTemperature(t Temperature) string {
	label := []rune(t.Label)
	if len(label) > 3 {
		label = label[:3]
	}
	return fmt.Sprintf("%s: %.1fC/%.1fC", string(label), t.Current, t.Critical)
}

func FormatVolume(v Volume) string {
	return fmt.Sprintf("%-3s %.1fG/%.1fG", v.Mount, float64(v.Used)/gib, float64(v.Total)/gib)
}
