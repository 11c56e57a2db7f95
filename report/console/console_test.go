package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobench-project/gobench/internal/config"
	"github.com/gobench-project/gobench/internal/core"
	"github.com/gobench-project/gobench/report"
)

func TestConsoleReporterRendersBasicRun(t *testing.T) {
	var buf bytes.Buffer
	r := New(false, config.ColorOff)
	r.w = &buf

	require.True(t, r.ReportContext(report.Context{NumCPUs: 4, MHzPerCPU: 2400, DateTime: "2026-01-01"}))
	r.ReportRuns([]report.RunRecord{
		{
			Name:                "BM_Foo",
			Iterations:          1000,
			RealAccumulatedTime: 1.0,
			CPUAccumulatedTime:  1.0,
			TimeUnit:            core.Nanosecond,
			Counters:            core.NewCounters(),
		},
	})
	r.Finalize()

	out := buf.String()
	assert.Contains(t, out, "BM_Foo")
	assert.Contains(t, out, "Benchmark")
	assert.Contains(t, out, "Iterations")
}

func TestConsoleReporterShowsErrorRow(t *testing.T) {
	var buf bytes.Buffer
	r := New(false, config.ColorOff)
	r.w = &buf

	r.ReportContext(report.Context{})
	r.ReportRuns([]report.RunRecord{
		{Name: "BM_Bad", ErrorOccurred: true, ErrorMessage: "boom", Counters: core.NewCounters()},
	})

	out := buf.String()
	assert.Contains(t, out, "ERROR OCCURRED: 'boom'")
}

func TestConsoleReporterDisplayAggregatesOnlySkipsRawRows(t *testing.T) {
	var buf bytes.Buffer
	r := New(true, config.ColorOff)
	r.w = &buf

	r.ReportContext(report.Context{})
	r.ReportRuns([]report.RunRecord{
		{Name: "BM_X", Repetitions: 3, Iterations: 10, Counters: core.NewCounters()},
		{Name: "BM_X_mean", Aggregate: "mean", Repetitions: 3, Iterations: 10, Counters: core.NewCounters()},
	})

	out := buf.String()
	assert.NotContains(t, out, "BM_X ")
	assert.Contains(t, out, "BM_X_mean")
}
