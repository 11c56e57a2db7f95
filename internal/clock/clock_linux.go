//go:build linux

package clock

import "golang.org/x/sys/unix"

const threadCPUSupported = true

// ProcessCPUNow returns accumulated process CPU time in fractional seconds.
func ProcessCPUNow() float64 {
	return clockSeconds(unix.CLOCK_PROCESS_CPUTIME_ID)
}

// ThreadCPUNow returns accumulated CPU time for the calling OS thread, in
// fractional seconds. Go goroutines are not pinned to OS threads, so a
// reading is only meaningful for a goroutine that has called
// runtime.LockOSThread first; nothing in this package does that today,
// which is why the coordinator accounts CPU time with ProcessCPUNow
// instead and ThreadCPUSupported exists to mark a run Imprecise.
func ThreadCPUNow() float64 {
	return clockSeconds(unix.CLOCK_THREAD_CPUTIME_ID)
}

func clockSeconds(id int32) float64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(id, &ts); err != nil {
		return 0
	}
	return float64(ts.Sec) + float64(ts.Nsec)/1e9
}
