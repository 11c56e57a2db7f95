//go:build !linux

package clock

import "time"

const threadCPUSupported = false

var processStart = time.Now()

// ProcessCPUNow approximates process CPU time as wall time elapsed since
// package initialization. Platforms without a process-CPU clock report
// this degraded reading rather than fail.
func ProcessCPUNow() float64 {
	return time.Since(processStart).Seconds()
}

// ThreadCPUNow falls back to ProcessCPUNow on platforms without a
// per-thread CPU clock, per spec: the framework marks the affected
// benchmark as imprecise rather than erroring out.
func ThreadCPUNow() float64 {
	return ProcessCPUNow()
}
