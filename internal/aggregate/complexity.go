package aggregate

import (
	"math"

	"github.com/gobench-project/gobench/internal/core"
)

// LeastSq is the result of fitting one candidate curve: the leading
// coefficient and the RMS residual normalized by the mean observed time,
// matching original_source/src/complexity.cc's LeastSq struct.
type LeastSq struct {
	Complexity core.Complexity
	Coef       float64
	RMS        float64
}

var autoCandidates = []core.Complexity{core.OLogN, core.ON, core.ONLogN, core.ON2, core.ON3}

// calculateLeastSq fits coef*f(n) to time by minimizing squared error,
// exactly following CalculateLeastSq: coef = sum(t*f(n)) / sum(f(n)^2),
// RMS = sqrt(mean((t - coef*f(n))^2)) / mean(t).
func calculateLeastSq(n []int64, t []float64, f func(int64) float64) (coef, rms float64) {
	var sigmaGN, sigmaGNSquared, sigmaTime, sigmaTimeGN float64
	for i := range n {
		gn := f(n[i])
		sigmaGN += gn
		sigmaGNSquared += gn * gn
		sigmaTime += t[i]
		sigmaTimeGN += t[i] * gn
	}

	if sigmaGNSquared == 0 {
		return 0, 0
	}
	coef = sigmaTimeGN / sigmaGNSquared

	var sumSq float64
	for i := range n {
		fit := coef * f(n[i])
		d := t[i] - fit
		sumSq += d * d
	}
	mean := sigmaTime / float64(len(n))
	if mean == 0 {
		return coef, 0
	}
	rms = math.Sqrt(sumSq/float64(len(n))) / mean
	return coef, rms
}

// FitComplexity fits n (the state.SetComplexityN values) against t (the
// per-iteration reported seconds) for the family's declared complexity.
// n must have at least 2 distinct values; callers are expected to have
// checked this already, matching CHECK_GE(n.size(), 2) in the original.
// When tag is OAuto, every candidate in {O1, logN, N, N logN, N^2, N^3}
// is tried and the minimum-RMS one wins, defaulting to O1. OLambda fits
// lambda as the sole candidate.
func FitComplexity(n []int64, t []float64, tag core.Complexity, lambda func(int64) float64) LeastSq {
	if tag == core.OLambda && lambda != nil {
		coef, rms := calculateLeastSq(n, t, lambda)
		return LeastSq{Complexity: core.OLambda, Coef: coef, RMS: rms}
	}

	if tag != core.OAuto && tag != core.ONone {
		coef, rms := calculateLeastSq(n, t, tag.FittingCurve())
		return LeastSq{Complexity: tag, Coef: coef, RMS: rms}
	}

	// OAuto (and, defensively, ONone): O1 is the default best fit, then
	// every other candidate competes on RMS.
	bestCoef, bestRMS := calculateLeastSq(n, t, core.O1.FittingCurve())
	best := LeastSq{Complexity: core.O1, Coef: bestCoef, RMS: bestRMS}

	for _, c := range autoCandidates {
		coef, rms := calculateLeastSq(n, t, c.FittingCurve())
		if rms < best.RMS {
			best = LeastSq{Complexity: c, Coef: coef, RMS: rms}
		}
	}
	return best
}

// ComplexityRows builds the _BigO and _RMS rows at a family's
// last-in-family boundary, fitting cpu time and real time as two
// independent series, matching original_source/src/reporter.cc's
// ComputeBigO: cpuPerIter is fit first against tag (resolving OAuto to a
// concrete complexity), then realPerIter is fit forced to that same
// resolved complexity, since noisy measurements can otherwise make the
// best-fit curve for cpu and real differ. base supplies the shared fields
// (name, threads, counters are not carried, a complexity row reports only
// the fit).
func ComplexityRows(base core.RunRecord, n []int64, cpuPerIter, realPerIter []float64, tag core.Complexity, lambda func(int64) float64) (bigO, rms core.RunRecord) {
	cpuFit := FitComplexity(n, cpuPerIter, tag, lambda)
	realFit := fitForced(n, realPerIter, cpuFit.Complexity, lambda)

	bigO = base
	bigO.Aggregate = "BigO"
	bigO.Name = base.Name + "_BigO"
	bigO.ComplexityTag = cpuFit.Complexity
	bigO.Counters = core.NewCounters()
	bigO.CPUAccumulatedTime = cpuFit.Coef
	bigO.RealAccumulatedTime = realFit.Coef
	bigO.Iterations = 1

	rms = base
	rms.Aggregate = "RMS"
	rms.Name = base.Name + "_RMS"
	rms.ComplexityTag = cpuFit.Complexity
	rms.Counters = core.NewCounters()
	rms.CPUAccumulatedTime = cpuFit.RMS * 100
	rms.RealAccumulatedTime = realFit.RMS * 100
	rms.Iterations = 1

	return bigO, rms
}

// fitForced fits t against the single curve named by tag (never treating
// it as OAuto), used to apply the cpu-time fit's resolved complexity to
// the real-time series.
func fitForced(n []int64, t []float64, tag core.Complexity, lambda func(int64) float64) LeastSq {
	if tag == core.OLambda && lambda != nil {
		coef, rms := calculateLeastSq(n, t, lambda)
		return LeastSq{Complexity: core.OLambda, Coef: coef, RMS: rms}
	}
	coef, rms := calculateLeastSq(n, t, tag.FittingCurve())
	return LeastSq{Complexity: tag, Coef: coef, RMS: rms}
}
