// Package sysinfo collects the best-effort host facts shown in a report's
// context header: CPU count, clock speed, and whether the scaling
// governor is likely to distort timings. Every probe degrades to a zero
// value rather than failing, since none of this is essential to running
// a benchmark.
package sysinfo

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Info is the host snapshot attached to a report's context.
type Info struct {
	NumCPU int
	MHzPerCPU float64
	// ScalingEnabled is true when the CPU frequency scaling governor is
	// not "performance", which the original warns about because it makes
	// repeated measurements noisier.
	ScalingEnabled bool
}

// Probe gathers Info. On any platform or parsing failure the
// corresponding field is left at its zero value; Probe never returns an
// error because a benchmark run should proceed regardless.
func Probe() Info {
	return Info{
		NumCPU:         runtime.NumCPU(),
		MHzPerCPU:      cpuMHz(),
		ScalingEnabled: scalingGovernorEnabled(),
	}
}

// cpuMHz best-effort parses the "cpu MHz" field of /proc/cpuinfo. Returns
// 0 when unavailable, which is the expected case off Linux.
func cpuMHz() float64 {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "cpu MHz") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		return v
	}
	return 0
}

// scalingGovernorEnabled reports whether cpu0's frequency scaling
// governor is anything other than "performance". Returns false
// (no warning) when the sysfs file cannot be read, since that's the
// common case on non-Linux hosts and in containers without it mounted.
func scalingGovernorEnabled() bool {
	data, err := os.ReadFile("/sys/devices/system/cpu/cpu0/cpufreq/scaling_governor")
	if err != nil {
		return false
	}
	governor := strings.TrimSpace(string(data))
	return governor != "" && governor != "performance"
}
