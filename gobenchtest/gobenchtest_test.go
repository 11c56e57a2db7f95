package gobenchtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobench-project/gobench/internal/core"
)

func TestHarnessRunAndReportAggregates(t *testing.T) {
	h := New()
	h.Register("BM_Demo", func(s *core.State) {
		for s.KeepRunning() {
		}
	}).Repetitions(3).MinTime(0.001)

	records := h.RunAndReport("all", 0.001, 3)

	var raw, aggregated int
	for _, r := range records {
		if r.Aggregate == "" {
			raw++
		} else {
			aggregated++
		}
	}
	assert.Equal(t, 3, raw)
	assert.Equal(t, 4, aggregated)
}

func TestHarnessInstancesExpansion(t *testing.T) {
	h := New()
	h.Register("BM_X", func(s *core.State) {
		for s.KeepRunning() {
		}
	}).Threads(1, 2)

	instances := h.Instances("all")
	require.Len(t, instances, 2)
	assert.Equal(t, "BM_X", instances[0].Name)
	assert.Equal(t, "BM_X/threads:2", instances[1].Name)
}
