package iteration

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobench-project/gobench/internal/core"
)

func instanceFor(fam *core.Family, threads int) core.Instance {
	return core.Instance{
		Name:    fam.Name,
		Family:  fam,
		Threads: threads,
	}
}

func TestRunSingleThreadProducesOneRecordPerRepetition(t *testing.T) {
	fam := core.NewFamily("BM_Empty", func(s core.StateIface) {
		for s.KeepRunning() {
		}
	}).Repetitions(3).MinTime(0.001)

	inst := instanceFor(fam, 1)
	records := Run(inst, 0.001, 1)

	require.Len(t, records, 3)
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Iterations, int64(1))
		assert.False(t, r.ErrorOccurred)
	}
}

func TestRunFixedIterationsBypassesSearch(t *testing.T) {
	fam := core.NewFamily("BM_Fixed", func(s core.StateIface) {
		for s.KeepRunning() {
		}
	}).Iterations(123).Repetitions(2)

	inst := instanceFor(fam, 1)
	records := Run(inst, 0.5, 1)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, int64(123), r.Iterations)
	}
}

func TestRunMultithreadedMergesCounters(t *testing.T) {
	fam := core.NewFamily("BM_Counters", func(s core.StateIface) {
		st := s.(*core.State)
		for st.KeepRunning() {
			st.Counters.Add("ops", 1, 0)
		}
	}).Threads(4).Iterations(10).Repetitions(1)

	inst := instanceFor(fam, 4)
	records := Run(inst, 0.001, 1)

	require.Len(t, records, 1)
	c, ok := records[0].Counters.Get("ops")
	require.True(t, ok)
	// 4 threads x 10 iterations each
	assert.Equal(t, float64(40), c.Value)
	// iterations_reported = per_thread_iterations * threads
	assert.Equal(t, int64(40), records[0].Iterations)
}

func TestRunSkipWithErrorMarksRecord(t *testing.T) {
	fam := core.NewFamily("BM_Errors", func(s core.StateIface) {
		st := s.(*core.State)
		st.SkipWithError("boom")
	}).Iterations(5).Repetitions(1)

	inst := instanceFor(fam, 1)
	records := Run(inst, 0.001, 1)

	require.Len(t, records, 1)
	assert.True(t, records[0].ErrorOccurred)
	assert.Equal(t, "boom", records[0].ErrorMessage)
}

func TestRunManualTimeUsesSetIterationTime(t *testing.T) {
	fam := core.NewFamily("BM_Manual", func(s core.StateIface) {
		st := s.(*core.State)
		for st.KeepRunning() {
			st.SetIterationTime(0.001)
		}
	}).UseManualTime().Iterations(50).Repetitions(1)

	inst := instanceFor(fam, 1)
	inst.UseManualTime = true
	records := Run(inst, 0.001, 1)

	require.Len(t, records, 1)
	assert.InDelta(t, 0.05, records[0].ManualAccumulatedTime, 1e-6)
	assert.InDelta(t, 0.05, records[0].ReportedSeconds(), 1e-6)
}

func TestRunAdaptiveSearchGrowsIterationsTowardMinTime(t *testing.T) {
	var calls int64
	fam := core.NewFamily("BM_Adaptive", func(s core.StateIface) {
		st := s.(*core.State)
		atomic.AddInt64(&calls, 1)
		for st.KeepRunning() {
			time.Sleep(10 * time.Microsecond)
		}
	}).Repetitions(1).MinTime(0.02)

	inst := instanceFor(fam, 1)
	records := Run(inst, 0.02, 1)

	require.Len(t, records, 1)
	assert.GreaterOrEqual(t, records[0].Iterations, int64(1))
	assert.GreaterOrEqual(t, records[0].CPUAccumulatedTime+records[0].RealAccumulatedTime, 0.0)
}
