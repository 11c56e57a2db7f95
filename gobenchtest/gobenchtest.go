// Package gobenchtest is a small test-only adapter so this repo's own
// _test.go files can register a throwaway family and inspect the
// RunRecords it produces, without spinning up the CLI or touching the
// global default registry. Grounded on the style of MichaelAJay-go-metrics'
// testutil helpers and original_source/test/*_test.cc, which exercise the
// harness's own behaviour as in-tree correctness tests rather than only
// benchmarks-of-benchmarks.
package gobenchtest

import (
	"github.com/gobench-project/gobench/internal/aggregate"
	"github.com/gobench-project/gobench/internal/core"
	"github.com/gobench-project/gobench/internal/iteration"
	"github.com/gobench-project/gobench/internal/registry"
)

// Harness is an isolated registry a test can register families against
// and run directly, independent of any process-wide state.
type Harness struct {
	reg *registry.Registry
}

// New returns an empty Harness.
func New() *Harness {
	return &Harness{reg: registry.New()}
}

// Register adds a family to this harness only.
func (h *Harness) Register(name string, fn func(s *core.State)) *core.Family {
	return h.reg.Register(core.NewFamily(name, func(s core.StateIface) {
		fn(s.(*core.State))
	}))
}

// RunAndReport expands pattern against this harness's families, runs
// every matching instance with the given min-time/repetitions defaults,
// aggregates each instance's repetitions, and returns the flattened
// result: raw runs followed by their derived aggregate rows, in instance
// order. It intentionally skips the complexity-fit step (tests that care
// about FitComplexity call internal/aggregate directly with explicit N
// values), since assembling a believable multi-instance fit is rarely
// what a harness-behavior test wants.
func (h *Harness) RunAndReport(pattern string, minTime float64, repetitions int) []core.RunRecord {
	var out []core.RunRecord
	for _, inst := range h.reg.FindMatching(pattern) {
		raw := iteration.Run(inst, minTime, repetitions)
		out = append(out, aggregate.Aggregate(raw, inst.Family.CustomStatistics())...)
	}
	return out
}

// Instances exposes the expanded instance list for a pattern, for tests
// asserting on filter/expansion behavior without running anything.
func (h *Harness) Instances(pattern string) []core.Instance {
	return h.reg.FindMatching(pattern)
}
