package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobench-project/gobench/internal/core"
)

func run(name string, iters int64, realSeconds float64) core.RunRecord {
	return core.RunRecord{
		Name:                name,
		Iterations:          iters,
		RealAccumulatedTime: realSeconds,
		CPUAccumulatedTime:  realSeconds,
		Counters:            core.NewCounters(),
	}
}

func TestAggregateNoRowsBelowTwoRuns(t *testing.T) {
	runs := []core.RunRecord{run("BM_X", 100, 1.0)}
	got := Aggregate(runs, nil)
	assert.Len(t, got, 1)
}

func TestAggregateEmitsFourBuiltinRows(t *testing.T) {
	runs := []core.RunRecord{
		run("BM_X", 100, 1.0),
		run("BM_X", 100, 1.2),
		run("BM_X", 100, 0.8),
	}
	got := Aggregate(runs, nil)
	require.Len(t, got, 3+4)

	var suffixes []string
	for _, r := range got[3:] {
		suffixes = append(suffixes, r.Aggregate)
	}
	assert.ElementsMatch(t, []string{"mean", "median", "stddev", "cv"}, suffixes)
}

func TestAggregateMeanIsPerIterationScaledBack(t *testing.T) {
	runs := []core.RunRecord{
		run("BM_X", 10, 1.0),
		run("BM_X", 10, 2.0),
	}
	got := Aggregate(runs, nil)
	var meanRow core.RunRecord
	for _, r := range got {
		if r.Aggregate == "mean" {
			meanRow = r
		}
	}
	// per-iter: 0.1, 0.2 -> mean 0.15 -> scaled by base iterations (10) = 1.5
	assert.InDelta(t, 1.5, meanRow.RealAccumulatedTime, 1e-9)
}

func TestAggregateCustomStatistic(t *testing.T) {
	runs := []core.RunRecord{
		run("BM_X", 10, 1.0),
		run("BM_X", 10, 3.0),
	}
	max := core.Statistic{Name: "max", Compute: func(values []float64) float64 {
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	}}
	got := Aggregate(runs, []core.Statistic{max})
	var maxRow core.RunRecord
	found := false
	for _, r := range got {
		if r.Aggregate == "max" {
			maxRow = r
			found = true
		}
	}
	require.True(t, found)
	assert.InDelta(t, 3.0, maxRow.RealAccumulatedTime, 1e-9)
}

func TestAggregateCVZeroWhenMeanZero(t *testing.T) {
	assert.Equal(t, 0.0, coefficientOfVariation([]float64{0, 0, 0}))
}

func TestFitComplexityLinearIsExactOnNoiselessData(t *testing.T) {
	n := []int64{1, 2, 4, 8}
	t_ := []float64{2, 4, 8, 16}
	fit := FitComplexity(n, t_, core.ON, nil)
	assert.InDelta(t, 2.0, fit.Coef, 1e-9)
	assert.InDelta(t, 0.0, fit.RMS, 1e-9)
}

func TestFitComplexityAutoPicksBestCandidate(t *testing.T) {
	n := []int64{1, 2, 4, 8, 16}
	vals := make([]float64, len(n))
	for i, v := range n {
		vals[i] = 3.0 * float64(v)
	}
	fit := FitComplexity(n, vals, core.OAuto, nil)
	assert.Equal(t, core.ON, fit.Complexity)
}

func TestFitComplexityLambdaCandidate(t *testing.T) {
	n := []int64{1, 2, 3, 4}
	vals := []float64{5, 5, 5, 5}
	fit := FitComplexity(n, vals, core.OLambda, func(int64) float64 { return 1 })
	assert.Equal(t, core.OLambda, fit.Complexity)
	assert.InDelta(t, 5.0, fit.Coef, 1e-9)
}
