// Package aggregate computes the derived statistics (_mean/_median/
// _stddev/_cv and any custom statistics) across same-instance runs, and
// fits a family's declared complexity curve at the family boundary.
package aggregate

import (
	"math"
	"sort"

	"github.com/gobench-project/gobench/internal/core"
)

// statKind names one of the built-in derived rows.
type statKind struct {
	suffix  string
	compute func(values []float64) float64
}

var builtins = []statKind{
	{"mean", mean},
	{"median", median},
	{"stddev", stddev},
	{"cv", coefficientOfVariation},
}

// Aggregate computes _mean/_median/_stddev/_cv rows (plus any family
// custom statistics) for runs, which must all be repetitions of the same
// instance. Fewer than two runs produce no aggregated rows, matching the
// harness's "aggregation requires >= 2 repetitions" rule. The input runs
// are returned unchanged, followed by the derived rows.
func Aggregate(runs []core.RunRecord, custom []core.Statistic) []core.RunRecord {
	out := append([]core.RunRecord{}, runs...)
	if len(runs) < 2 {
		return out
	}

	base := runs[0]

	for _, b := range builtins {
		out = append(out, deriveRow(base, runs, b.suffix, b.compute))
	}
	for _, s := range custom {
		out = append(out, deriveRow(base, runs, s.Name, s.Compute))
	}
	return out
}

// deriveRow builds one aggregated RunRecord by applying compute
// independently to each measured quantity across runs: real time, cpu
// time, manual time, bytes processed, items processed, and every counter
// (by name). Bytes/sec and items/sec are not aggregated per run; a
// reporter derives them for the row from its aggregated totals.
func deriveRow(base core.RunRecord, runs []core.RunRecord, suffix string, compute func([]float64) float64) core.RunRecord {
	row := base
	row.Aggregate = suffix
	row.Name = base.Name + "_" + suffix
	row.ErrorOccurred = false
	row.ErrorMessage = ""

	row.RealAccumulatedTime = compute(perIterationValues(runs, func(r core.RunRecord) float64 { return r.RealAccumulatedTime })) * float64(base.Iterations)
	row.CPUAccumulatedTime = compute(perIterationValues(runs, func(r core.RunRecord) float64 { return r.CPUAccumulatedTime })) * float64(base.Iterations)
	row.ManualAccumulatedTime = compute(perIterationValues(runs, func(r core.RunRecord) float64 { return r.ManualAccumulatedTime })) * float64(base.Iterations)

	row.BytesProcessed = int64(compute(int64sToFloat(runs, func(r core.RunRecord) int64 { return r.BytesProcessed })))
	row.ItemsProcessed = int64(compute(int64sToFloat(runs, func(r core.RunRecord) int64 { return r.ItemsProcessed })))

	row.Counters = mergeCounterStats(runs, compute)

	return row
}

// perIterationValues divides each run's quantity by its own iteration
// count, so _mean etc. are computed over comparable per-iteration
// seconds rather than raw accumulated totals across runs that may have
// picked different iteration counts.
func perIterationValues(runs []core.RunRecord, get func(core.RunRecord) float64) []float64 {
	out := make([]float64, len(runs))
	for i, r := range runs {
		if r.Iterations == 0 {
			out[i] = 0
			continue
		}
		out[i] = get(r) / float64(r.Iterations)
	}
	return out
}

func int64sToFloat(runs []core.RunRecord, get func(core.RunRecord) int64) []float64 {
	out := make([]float64, len(runs))
	for i, r := range runs {
		out[i] = float64(get(r))
	}
	return out
}

// mergeCounterStats applies compute independently to every counter name
// seen across runs, in first-seen order.
func mergeCounterStats(runs []core.RunRecord, compute func([]float64) float64) core.Counters {
	out := core.NewCounters()
	var order []string
	seen := make(map[string]bool)
	for _, r := range runs {
		for _, name := range r.Counters.Names() {
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
		}
	}
	for _, name := range order {
		values := make([]float64, len(runs))
		var flags core.CounterFlags
		for i, r := range runs {
			if c, ok := r.Counters.Get(name); ok {
				values[i] = c.Value
				flags = c.Flags
			}
		}
		out.Set(name, compute(values), flags)
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// coefficientOfVariation returns stddev/mean, or 0 when the mean is 0.
func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stddev(values) / m
}
