package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeNumCPUMatchesRuntime(t *testing.T) {
	info := Probe()
	assert.Equal(t, runtime.NumCPU(), info.NumCPU)
}

func TestProbeNeverPanicsWithoutProcFS(t *testing.T) {
	// Probe must degrade gracefully regardless of host; this just
	// exercises the full call path.
	assert.NotPanics(t, func() {
		_ = Probe()
	})
}
