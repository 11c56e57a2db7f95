// Package gobench is a microbenchmark harness modeled on Google
// Benchmark: register callables under a Family, let the harness expand
// argument/thread combinations into Instances, run an adaptive
// iteration-count search per instance, aggregate repetitions, and hand
// the result to a pluggable Reporter.
package gobench

import (
	"go.uber.org/zap"

	"github.com/gobench-project/gobench/internal/aggregate"
	"github.com/gobench-project/gobench/internal/core"
	"github.com/gobench-project/gobench/internal/iteration"
	"github.com/gobench-project/gobench/internal/registry"
	"github.com/gobench-project/gobench/report"
)

// Public type aliases: callers write gobench.Family, gobench.State, etc.
// without ever importing an internal package. Keeping the data model in
// internal/core (the dependency DAG's leaf) and aliasing it here is what
// lets internal/registry, internal/aggregate and internal/iteration all
// depend on the model without an import cycle back through gobench.
type (
	Family    = core.Family
	State     = core.State
	RunRecord = core.RunRecord
	Counter   = core.Counter
	Counters  = core.Counters
	Complexity = core.Complexity
	TimeUnit   = core.TimeUnit
	Fixture    = core.Fixture
	Statistic  = core.Statistic
	Instance   = core.Instance
)

// Counter flag constants.
const (
	CounterRate               = core.CounterRate
	CounterAvgThreads         = core.CounterAvgThreads
	CounterAvgIterations      = core.CounterAvgIterations
	CounterIterationInvariant = core.CounterIterationInvariant
	CounterInvert             = core.CounterInvert
)

// Complexity constants.
const (
	ONone   = core.ONone
	OAuto   = core.OAuto
	O1      = core.O1
	OLogN   = core.OLogN
	ON      = core.ON
	ONLogN  = core.ONLogN
	ON2     = core.ON2
	ON3     = core.ON3
	OLambda = core.OLambda
)

// Time unit constants.
const (
	Nanosecond  = core.Nanosecond
	Microsecond = core.Microsecond
	Millisecond = core.Millisecond
	Second      = core.Second
)

var defaultRegistry = registry.New()

func init() {
	defaultRegistry.SetLogger(zap.NewNop())
}

// SetLogger installs the zap logger used to report a malformed
// --benchmark_filter regex.
func SetLogger(l *zap.Logger) {
	defaultRegistry.SetLogger(l)
}

// Register adds a new Family named name, running fn, to the default
// registry, and returns the Family so the caller chains its builder
// methods (Arg, Range, Threads, Repetitions, ...).
func Register(name string, fn func(s *State)) *Family {
	return defaultRegistry.Register(core.NewFamily(name, func(s core.StateIface) {
		fn(s.(*State))
	}))
}

// DoNotOptimize and ClobberMemory re-export the optimizer-defeating
// primitives benchmark bodies call around the code under measurement.
var (
	DoNotOptimize = core.DoNotOptimize
	ClobberMemory = core.ClobberMemory
)

// RunOptions controls one RunBenchmarks invocation.
// RunOptions controls instance selection and the iteration controller's
// per-run defaults. Aggregates-only suppression is a reporter-level
// concern (see report/console, report/json, report/csv), not part of
// RunOptions, since the console and file sinks may each want a different
// answer for the same run.
type RunOptions struct {
	Filter      string
	MinTime     float64
	Repetitions int
	BuildKind   string
}

// RunBenchmarks finds every instance matching opts.Filter, runs it,
// aggregates its repetitions, and streams the result through reporter
// one family-instance group at a time. It returns the process exit code:
// 0 on success, 1 if reporter.ReportContext returns false.
func RunBenchmarks(reporter report.Reporter, opts RunOptions) int {
	instances := defaultRegistry.FindMatching(opts.Filter)

	nameWidth := 0
	for _, inst := range instances {
		if len(inst.Name) > nameWidth {
			nameWidth = len(inst.Name)
		}
	}
	buildKind := opts.BuildKind
	if buildKind == "" {
		buildKind = "release"
	}

	if !reporter.ReportContext(report.NewContext(nameWidth, buildKind)) {
		return 1
	}

	familyRuns := make(map[*core.Family][]core.RunRecord)
	for _, inst := range instances {
		raw := iteration.Run(inst, opts.MinTime, opts.Repetitions)
		familyRuns[inst.Family] = append(familyRuns[inst.Family], raw...)

		group := aggregate.Aggregate(raw, inst.Family.CustomStatistics())
		if inst.LastInFamily {
			group = appendComplexityRows(inst, familyRuns[inst.Family], group)
		}
		reporter.ReportRuns(group)
	}

	reporter.Finalize()
	return 0
}

// appendComplexityRows emits the family's _BigO/_RMS rows exactly once, at
// the instance carrying LastInFamily, provided the family declared a
// complexity and at least two distinct ComplexityN values were recorded
// across every instance of the family (familyRuns accumulates every raw
// run seen so far for inst.Family, across all of its instances).
func appendComplexityRows(inst core.Instance, familyRuns []core.RunRecord, group []core.RunRecord) []core.RunRecord {
	tag := inst.Family.ComplexityValue()
	if tag == core.ONone {
		return group
	}

	var ns []int64
	var cpuSeconds, realSeconds []float64
	for _, r := range familyRuns {
		if r.ErrorOccurred {
			continue
		}
		ns = append(ns, r.ComplexityN)
		cpuSeconds = append(cpuSeconds, secondsPerIteration(r.CPUAccumulatedTime, r.Iterations))
		realSeconds = append(realSeconds, secondsPerIteration(r.RealAccumulatedTime, r.Iterations))
	}
	if len(distinct(ns)) < 2 {
		return group
	}

	bigO, rms := aggregate.ComplexityRows(familyRuns[0], ns, cpuSeconds, realSeconds, tag, inst.Family.ComplexityLambdaValue())
	return append(group, bigO, rms)
}

func secondsPerIteration(accumulated float64, iterations int64) float64 {
	if iterations == 0 {
		return 0
	}
	return accumulated / float64(iterations)
}

func distinct(values []int64) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// ListMatching returns the names of every instance filter selects,
// for --benchmark_list_tests.
func ListMatching(filter string) []string {
	instances := defaultRegistry.FindMatching(filter)
	names := make([]string, len(instances))
	for i, inst := range instances {
		names[i] = inst.Name
	}
	return names
}

