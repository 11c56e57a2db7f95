package core

import "runtime"

// Statistic is a user-registered aggregate computed over a vector of
// same-instance run values, in addition to the built-in mean/median/
// stddev/cv.
type Statistic struct {
	Name    string
	Compute func(values []float64) float64
}

// Fixture mirrors the original's setup/teardown benchmark pattern:
// Setup runs on thread 0 before the start barrier, Teardown on thread 0
// after the stop barrier.
type Fixture interface {
	Setup(args []int64)
	Teardown(args []int64)
}

// Family is the template a benchmark is registered under: a name, a
// callable, and the parameter axes it is expanded across. Its builder
// methods return the Family itself so registration reads as a fluent
// chain, e.g. Register("x", fn).Range(1, 1<<20).Threads(1, 2, 4).
type Family struct {
	Name string
	Fn   func(s StateIface)

	Unit TimeUnit

	argLists [][]int64
	argNames []string

	threadCounts []int

	repetitions int
	minTime     float64
	rangeMult   int64

	useRealTime   bool
	useManualTime bool

	fixedIterations int64

	complexityTag    Complexity
	complexityLambda func(n int64) float64

	customStats []Statistic

	reportAggregatesOnly *bool

	minRelAccuracyCV     float64
	minRelAccuracyMaxRep int

	fixture Fixture
}

// StateIface is the interface a registered callable receives. It is
// satisfied by *gobench.State; defining it here (rather than importing
// gobench, which would create a cycle) lets Family.Fn's signature live in
// the leaf package while the public package supplies the concrete type.
type StateIface interface {
	KeepRunning() bool
}

// NewFamily constructs a Family with the documented defaults: a single
// thread, the default repetitions/min-time (0 meaning "use the harness
// default"), and a range multiplier of 8.
func NewFamily(name string, fn func(s StateIface)) *Family {
	return &Family{
		Name:          name,
		Fn:            fn,
		Unit:          Nanosecond,
		threadCounts:  []int{1},
		rangeMult:     8,
		complexityTag: ONone,
	}
}

// Arg registers a single one-argument instance.
func (f *Family) Arg(x int64) *Family {
	f.checkArity(1)
	f.argLists = append(f.argLists, []int64{x})
	return f
}

// Args registers one instance over an arbitrary-arity argument tuple.
func (f *Family) Args(xs ...int64) *Family {
	f.checkArity(len(xs))
	cp := make([]int64, len(xs))
	copy(cp, xs)
	f.argLists = append(f.argLists, cp)
	return f
}

// ArgPair registers a single two-argument instance.
func (f *Family) ArgPair(x, y int64) *Family {
	return f.Args(x, y)
}

// Range registers one instance per value yielded by RangeValues(lo, hi,
// m), where m is the multiplier set by RangeMultiplier (default 8).
func (f *Family) Range(lo, hi int64) *Family {
	for _, v := range RangeValues(lo, hi, f.rangeMult) {
		f.Arg(v)
	}
	return f
}

// DenseRange registers one instance per integer in [lo, hi].
func (f *Family) DenseRange(lo, hi int64) *Family {
	for v := lo; v <= hi; v++ {
		f.Arg(v)
	}
	return f
}

// RangePair registers the Cartesian product of two ranges as two-argument
// instances.
func (f *Family) RangePair(lo1, hi1, lo2, hi2 int64) *Family {
	xs := RangeValues(lo1, hi1, f.rangeMult)
	ys := RangeValues(lo2, hi2, f.rangeMult)
	for _, x := range xs {
		for _, y := range ys {
			f.ArgPair(x, y)
		}
	}
	return f
}

// RangeMultiplier sets the multiplier used by subsequent Range/RangePair
// calls. Must be >= 2.
func (f *Family) RangeMultiplier(m int64) *Family {
	if m < 2 {
		m = 2
	}
	f.rangeMult = m
	return f
}

// ArgNames labels each argument axis so instance names read
// "name/axis:value" instead of positional "name/value".
func (f *Family) ArgNames(names ...string) *Family {
	f.argNames = names
	return f
}

// Threads sets the explicit list of thread counts this family is run
// under.
func (f *Family) Threads(counts ...int) *Family {
	f.threadCounts = counts
	return f
}

// ThreadRange sets the thread counts to every integer in [lo, hi],
// replacing any earlier list.
func (f *Family) ThreadRange(lo, hi int) *Family {
	var counts []int
	for t := lo; t <= hi; t++ {
		counts = append(counts, t)
	}
	f.threadCounts = counts
	return f
}

// ThreadPerCPU sets the thread count to runtime.NumCPU() / perCPU
// (minimum 1).
func (f *Family) ThreadPerCPU(perCPU int) *Family {
	if perCPU <= 0 {
		perCPU = 1
	}
	n := runtime.NumCPU() / perCPU
	if n < 1 {
		n = 1
	}
	f.threadCounts = []int{n}
	return f
}

// Iterations pins the iteration count, bypassing the adaptive
// trial-count search entirely.
func (f *Family) Iterations(n int64) *Family {
	f.fixedIterations = n
	return f
}

// Repetitions sets how many full timed repetitions each instance runs.
// 0 means "use the harness-wide default".
func (f *Family) Repetitions(n int) *Family {
	f.repetitions = n
	return f
}

// MinTime sets the minimum accumulated measured time per repetition, in
// seconds. 0 means "use the harness-wide default".
func (f *Family) MinTime(seconds float64) *Family {
	f.minTime = seconds
	return f
}

// UseRealTime selects wall-clock time as the reported measure instead of
// CPU time.
func (f *Family) UseRealTime() *Family {
	f.useRealTime = true
	return f
}

// UseManualTime selects State.SetIterationTime contributions as the
// reported measure.
func (f *Family) UseManualTime() *Family {
	f.useManualTime = true
	return f
}

// Complexity declares the fitting curve used for this family's
// complexity row. Pass a non-nil lambda only alongside OLambda.
func (f *Family) Complexity(tag Complexity, lambda ...func(n int64) float64) *Family {
	f.complexityTag = tag
	if len(lambda) > 0 {
		f.complexityLambda = lambda[0]
	}
	return f
}

// ComputeStatistics registers additional aggregate statistics, computed
// the same way as the built-in mean/median/stddev/cv.
func (f *Family) ComputeStatistics(stats ...Statistic) *Family {
	f.customStats = append(f.customStats, stats...)
	return f
}

// ReportAggregatesOnly stores a per-family aggregates-only setting,
// readable through ReportAggregatesOnlyValue. The bundled reporters do not
// consult it: they apply only the global
// --benchmark_report_aggregates_only/--benchmark_display_aggregates_only
// flags.
func (f *Family) ReportAggregatesOnly(v bool) *Family {
	f.reportAggregatesOnly = &v
	return f
}

// MinRelativeAccuracy opts into outlier-robust repetition re-adjustment:
// once the normal repetition loop finishes, if the coefficient of
// variation across repetitions exceeds cv, repetitions are added (up to
// maxRepetitions total) and the loop continues.
func (f *Family) MinRelativeAccuracy(cv float64, maxRepetitions int) *Family {
	f.minRelAccuracyCV = cv
	f.minRelAccuracyMaxRep = maxRepetitions
	return f
}

// WithFixture attaches setup/teardown hooks run on thread 0 around every
// trial, including each attempt of the iteration-count search.
func (f *Family) WithFixture(fx Fixture) *Family {
	f.fixture = fx
	return f
}

// SetUnit sets the time unit used when a reporter renders this family's
// times.
func (f *Family) SetUnit(u TimeUnit) *Family {
	f.Unit = u
	return f
}

// Apply runs an arbitrary configuration function against the family,
// mirroring the original's ->Apply(CustomArguments) escape hatch.
func (f *Family) Apply(fn func(*Family)) *Family {
	fn(f)
	return f
}

func (f *Family) checkArity(n int) {
	if len(f.argLists) == 0 {
		return
	}
	if len(f.argLists[0]) != n {
		panic("gobench: inconsistent argument arity for family " + f.Name)
	}
}

// Accessors used by internal/registry, internal/iteration and
// internal/aggregate; unexported fields stay unexported to keep the
// builder the only mutation surface.

func (f *Family) ArgLists() [][]int64      { return f.argLists }
func (f *Family) ArgNamesList() []string    { return f.argNames }
func (f *Family) ThreadCounts() []int       { return f.threadCounts }
func (f *Family) RepetitionsValue() int     { return f.repetitions }
func (f *Family) MinTimeValue() float64     { return f.minTime }
func (f *Family) UseRealTimeValue() bool    { return f.useRealTime }
func (f *Family) UseManualTimeValue() bool  { return f.useManualTime }
func (f *Family) FixedIterationsValue() int64 { return f.fixedIterations }
func (f *Family) ComplexityValue() Complexity { return f.complexityTag }
func (f *Family) ComplexityLambdaValue() func(n int64) float64 { return f.complexityLambda }
func (f *Family) CustomStatistics() []Statistic { return f.customStats }
func (f *Family) ReportAggregatesOnlyValue() *bool { return f.reportAggregatesOnly }
func (f *Family) MinRelAccuracy() (cv float64, maxRep int) {
	return f.minRelAccuracyCV, f.minRelAccuracyMaxRep
}
func (f *Family) FixtureValue() Fixture { return f.fixture }

// RangeValues implements the harness's Range(lo, hi, mult) generator:
// lo, then mult^k for the largest strictly-between k-sequence, then hi if
// distinct from lo.
func RangeValues(lo, hi, mult int64) []int64 {
	if mult < 2 {
		mult = 2
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	out := []int64{lo}
	const int32max = int64(1)<<31 - 1
	for i := int64(1); i < int32max/mult; i *= mult {
		if i >= hi {
			break
		}
		if i > lo {
			out = append(out, i)
		}
	}
	if hi != lo {
		out = append(out, hi)
	}
	return out
}
