// Package json implements the JSON reporter using json-iterator/go in
// stdlib-compatible mode, grounded on aistore's
// jsoniter.ConfigCompatibleWithStandardLibrary usage (stats/common.go,
// api/bucket.go).
package json

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/gobench-project/gobench/report"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// contextJSON mirrors report.Context's shape in the output document.
type contextJSON struct {
	NumCPUs   int     `json:"num_cpus"`
	MHzPerCPU float64 `json:"mhz_per_cpu"`
	Scaling   bool    `json:"cpu_scaling_enabled"`
	BuildKind string  `json:"build_kind"`
	Date      string  `json:"date"`
}

// Reporter accumulates every run group and writes one JSON document, the
// shape spec.md §6 describes, on Finalize. AggregatesOnly suppresses
// non-aggregated rows from multi-repetition instances, matching
// --benchmark_report_aggregates_only when this reporter is the file sink.
type Reporter struct {
	w             io.Writer
	AggregatesOnly bool
	ctx           report.Context
	all           []map[string]any
}

// New returns a JSON Reporter writing the final document to w (os.Stdout
// by default).
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w}
}

func (r *Reporter) ReportContext(ctx report.Context) bool {
	r.ctx = ctx
	return true
}

func (r *Reporter) ReportRuns(group []report.RunRecord) {
	for _, rec := range group {
		if r.AggregatesOnly && rec.Aggregate == "" && rec.Repetitions > 1 {
			continue
		}
		r.all = append(r.all, runToMap(rec))
	}
}

func runToMap(rec report.RunRecord) map[string]any {
	m := map[string]any{
		"name":       rec.Name,
		"iterations": rec.Iterations,
		"real_time":  rec.RealAccumulatedTime,
		"cpu_time":   rec.CPUAccumulatedTime,
		"time_unit":  rec.TimeUnit.String(),
	}
	if rec.BytesProcessed > 0 {
		if elapsed := rec.ReportedSeconds(); elapsed > 0 {
			m["bytes_per_second"] = float64(rec.BytesProcessed) / elapsed
		}
	}
	if rec.ItemsProcessed > 0 {
		if elapsed := rec.ReportedSeconds(); elapsed > 0 {
			m["items_per_second"] = float64(rec.ItemsProcessed) / elapsed
		}
	}
	if rec.Label != "" {
		m["label"] = rec.Label
	}
	if rec.ErrorOccurred {
		m["error_occurred"] = true
		m["error_message"] = rec.ErrorMessage
	}
	for _, name := range rec.Counters.Names() {
		c, _ := rec.Counters.Get(name)
		m[name] = c.Finalized(rec.ReportedSeconds(), rec.Threads, rec.Iterations)
	}
	return m
}

func (r *Reporter) Finalize() {
	doc := map[string]any{
		"context": contextJSON{
			NumCPUs:   r.ctx.NumCPUs,
			MHzPerCPU: r.ctx.MHzPerCPU,
			Scaling:   r.ctx.ScalingEnabled,
			BuildKind: r.ctx.BuildKind,
			Date:      r.ctx.DateTime,
		},
		"benchmarks": r.all,
	}
	b, err := jsonAPI.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	r.w.Write(b)
	r.w.Write([]byte("\n"))
}
