// Package iteration implements the adaptive trial-count search described
// in the harness design: for one instance, grow the iteration count until
// the measured interval is long enough to trust, then repeat that fixed
// iteration count for the remaining repetitions.
package iteration

import (
	"math"
	"sync"

	"github.com/gobench-project/gobench/internal/clock"
	"github.com/gobench-project/gobench/internal/coordinator"
	"github.com/gobench-project/gobench/internal/core"
)

const (
	maxIterationCap   = 1_000_000_000
	growthTarget      = 1.4
	lowRatioThreshold = 0.1
	lowRatioCap       = 10.0
	watchdogMultiple  = 5.0
)

// Run executes every repetition of inst and returns one RunRecord per
// repetition. minTimeDefault/repetitionsDefault are the global
// --benchmark_min_time/--benchmark_repetitions values, used whenever the
// instance itself does not override them.
func Run(inst core.Instance, minTimeDefault float64, repetitionsDefault int) []core.RunRecord {
	minTime := inst.MinTime
	if minTime <= 0 {
		minTime = minTimeDefault
	}
	if minTime <= 0 {
		minTime = 0.5
	}

	repeats := inst.Repetitions
	if repeats <= 0 {
		repeats = repetitionsDefault
	}
	if repeats <= 0 {
		repeats = 1
	}

	iters := int64(1)
	fixed := inst.FixedIterations > 0
	if fixed {
		iters = inst.FixedIterations
	}

	var records []core.RunRecord
	for rep := 0; rep < repeats; rep++ {
		firstAttempt := rep == 0 && !fixed
		for {
			rec := runTrial(inst, iters)
			reported := rec.ReportedSeconds()

			stop := !firstAttempt ||
				rec.ErrorOccurred ||
				iters >= maxIterationCap ||
				reported >= minTime ||
				rec.RealAccumulatedTime >= watchdogMultiple*minTime

			if stop {
				records = append(records, rec)
				break
			}

			iters = nextIterationCount(iters, reported, minTime)
		}
	}

	records = applyMinRelativeAccuracy(inst, iters, records)

	return records
}

// nextIterationCount implements the harness's trial-count growth rule: aim
// to overshoot min_time by 40% next time, but cap growth at 10x when the
// current trial ran at under 10% of min_time (a signal the measurement
// picked up noise rather than real work), and never propose a smaller or
// equal iteration count.
func nextIterationCount(iters int64, reportedSeconds, minTime float64) int64 {
	multiplier := math.Max(1.0, minTime*growthTarget/math.Max(reportedSeconds, 1e-9))
	if minTime > 0 && reportedSeconds/minTime < lowRatioThreshold {
		multiplier = math.Min(multiplier, lowRatioCap)
	}
	if multiplier <= 1.0 {
		multiplier = 2.0
	}
	next := math.Round(math.Max(multiplier*float64(iters), float64(iters)+1))
	if next > maxIterationCap {
		next = maxIterationCap
	}
	return int64(next)
}

// applyMinRelativeAccuracy implements the outlier-robust repetition
// re-adjustment: if the family opted in via MinRelativeAccuracy and the
// coefficient of variation across the repetitions already run exceeds the
// threshold, keep adding repetitions (reusing the settled iters) up to
// maxRepetitions.
func applyMinRelativeAccuracy(inst core.Instance, iters int64, records []core.RunRecord) []core.RunRecord {
	cvThreshold, maxRep := inst.Family.MinRelAccuracy()
	if cvThreshold <= 0 || maxRep <= len(records) || len(records) < 2 {
		return records
	}

	for len(records) < maxRep {
		if reportedSecondsCV(records) <= cvThreshold {
			break
		}
		records = append(records, runTrial(inst, iters))
	}
	return records
}

func reportedSecondsCV(records []core.RunRecord) float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.ReportedSeconds()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(values)-1))
	return stddev / mean
}

// runTrial executes one repetition attempt: fixture setup, instance.Threads
// goroutines (thread 0 on the calling goroutine) all calling the family's
// callable with a shared coordinator and maxIters iteration budget, fixture
// teardown, then the merged RunRecord.
func runTrial(inst core.Instance, iters int64) core.RunRecord {
	fam := inst.Family

	threads := inst.Threads
	if threads < 1 {
		threads = 1
	}

	if fx := fam.FixtureValue(); fx != nil {
		fx.Setup(inst.Args)
	}

	coord := coordinator.New(threads)
	shared := core.NewTrialShared()

	states := make([]*core.State, threads)
	for t := 0; t < threads; t++ {
		states[t] = core.NewState(t, threads, inst.Args, iters, coord, shared)
	}

	var wg sync.WaitGroup
	for t := 1; t < threads; t++ {
		wg.Add(1)
		go func(s *core.State) {
			defer wg.Done()
			fam.Fn(s)
		}(states[t])
	}
	fam.Fn(states[0])
	wg.Wait()

	coord.Finalize()

	if fx := fam.FixtureValue(); fx != nil {
		fx.Teardown(inst.Args)
	}

	real, cpu, manual := coord.Totals()

	label, errOccurred, errMessage, bytes, items, complexityN := states[0].SharedSnapshot()

	merged := core.NewCounters()
	for _, s := range states {
		merged = merged.Merge(s.Counters)
	}

	return core.RunRecord{
		Name: inst.Name,
		// Iterations is summed across threads: each of the threads ran
		// iters loop passes, so the reported total is iters * threads.
		Iterations:            iters * int64(threads),
		RealAccumulatedTime:   real,
		CPUAccumulatedTime:    cpu,
		ManualAccumulatedTime: manual,
		BytesProcessed:        bytes,
		ItemsProcessed:        items,
		ComplexityN:           complexityN,
		ComplexityTag:         fam.ComplexityValue(),
		ComplexityLambda:      fam.ComplexityLambdaValue(),
		Label:                 label,
		Counters:              merged,
		ErrorOccurred:         errOccurred,
		ErrorMessage:          errMessage,
		TimeUnit:              fam.Unit,
		Threads:               threads,
		Repetitions:           inst.Repetitions,
		UseRealTime:           inst.UseRealTime,
		UseManualTime:         inst.UseManualTime,
		Imprecise:             !clock.ThreadCPUSupported,
		LastInFamily:          inst.LastInFamily,
	}
}
