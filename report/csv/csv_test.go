package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobench-project/gobench/internal/core"
	"github.com/gobench-project/gobench/report"
)

func TestCSVReporterHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	require.True(t, r.ReportContext(report.Context{}))
	r.ReportRuns([]report.RunRecord{
		{
			Name:                "BM_Foo",
			Iterations:          10,
			RealAccumulatedTime: 1.0,
			CPUAccumulatedTime:  1.0,
			TimeUnit:            core.Nanosecond,
			Counters:            core.NewCounters(),
		},
	})
	r.Finalize()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,iterations,real_time,cpu_time,time_unit,bytes_per_second,items_per_second,label,error_occurred,error_message", lines[0])
	assert.Contains(t, lines[1], "BM_Foo")
}

func TestCSVReporterQuotesEmbeddedCommasAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.ReportContext(report.Context{})
	r.ReportRuns([]report.RunRecord{
		{
			Name:         `BM_"Weird",Name`,
			Iterations:   1,
			ErrorMessage: `has "quotes"`,
			Counters:     core.NewCounters(),
		},
	})
	r.Finalize()

	out := buf.String()
	assert.Contains(t, out, `"BM_""Weird"",Name"`)
	assert.Contains(t, out, `"has ""quotes"""`)
}

func TestCSVReporterCounterColumnsSortedAndAppended(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.ReportContext(report.Context{})

	c := core.NewCounters()
	c.Add("zeta", 1, 0)
	c.Add("alpha", 2, 0)
	r.ReportRuns([]report.RunRecord{
		{Name: "BM_X", Iterations: 1, Counters: c},
	})
	r.Finalize()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.True(t, strings.HasSuffix(lines[0], "alpha,zeta"))
}
