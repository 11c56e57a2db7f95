// Package clock provides the monotonic timing services the rest of the
// harness builds on: wall-clock, process-CPU and thread-CPU reads, plus the
// date string used in a report's context line. The CPU/scaling probe lives
// in internal/sysinfo.
package clock

import "time"

var realEpoch = time.Now()

// RealNow returns elapsed wall-clock time, in fractional seconds, since
// package initialization, measured against a monotonic source. Only
// differences between two readings are meaningful.
func RealNow() float64 {
	return time.Since(realEpoch).Seconds()
}

// FormattedDate renders the current local time the way a report context
// line expects it.
func FormattedDate() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// ThreadCPUSupported reports whether ThreadCPUNow reads a true per-thread
// clock on this platform. When false, ThreadCPUNow falls back to
// ProcessCPUNow and callers should mark affected runs as imprecise.
var ThreadCPUSupported = threadCPUSupported
