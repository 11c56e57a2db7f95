package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobench-project/gobench/internal/core"
	"github.com/gobench-project/gobench/report"
)

func TestJSONReporterShape(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	require.True(t, r.ReportContext(report.Context{NumCPUs: 8, MHzPerCPU: 3200, BuildKind: "release", DateTime: "2026-01-01 00:00:00"}))
	r.ReportRuns([]report.RunRecord{
		{
			Name:                "BM_Foo",
			Iterations:          100,
			RealAccumulatedTime: 0.5,
			CPUAccumulatedTime:  0.5,
			TimeUnit:            core.Nanosecond,
			Counters:            core.NewCounters(),
		},
	})
	r.Finalize()

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	ctx, ok := doc["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(8), ctx["num_cpus"])

	benches, ok := doc["benchmarks"].([]any)
	require.True(t, ok)
	require.Len(t, benches, 1)

	run := benches[0].(map[string]any)
	assert.Equal(t, "BM_Foo", run["name"])
	assert.Equal(t, "ns", run["time_unit"])
}

func TestJSONReporterErrorFields(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.ReportContext(report.Context{})
	r.ReportRuns([]report.RunRecord{
		{Name: "BM_Bad", ErrorOccurred: true, ErrorMessage: "boom", Counters: core.NewCounters()},
	})
	r.Finalize()

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	run := doc["benchmarks"].([]any)[0].(map[string]any)
	assert.Equal(t, true, run["error_occurred"])
	assert.Equal(t, "boom", run["error_message"])
}

func TestJSONReporterCountersBecomeTopLevelFields(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.ReportContext(report.Context{})

	c := core.NewCounters()
	c.Add("ops_per_sec", 42, 0)
	r.ReportRuns([]report.RunRecord{
		{Name: "BM_Counters", Iterations: 1, Counters: c},
	})
	r.Finalize()

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	run := doc["benchmarks"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(42), run["ops_per_sec"])
}
