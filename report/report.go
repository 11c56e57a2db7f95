// Package report defines the reporter contract every output sink (console,
// JSON, CSV) implements, plus the run context passed to it once per run.
package report

import (
	"github.com/gobench-project/gobench/internal/clock"
	"github.com/gobench-project/gobench/internal/core"
	"github.com/gobench-project/gobench/internal/sysinfo"
)

// RunRecord is the public alias for core.RunRecord, so reporters never
// need to import the internal package directly.
type RunRecord = core.RunRecord

// Context is the host/build information a reporter renders once, before
// any run group.
type Context struct {
	NumCPUs        int
	MHzPerCPU      float64
	ScalingEnabled bool

	NameWidth int
	BuildKind string
	DateTime  string
}

// NewContext builds a Context from a live sysinfo probe, the widest
// instance name about to be reported, and the running build's kind
// ("release" unless overridden by the caller).
func NewContext(nameWidth int, buildKind string) Context {
	info := sysinfo.Probe()
	return Context{
		NumCPUs:        info.NumCPU,
		MHzPerCPU:      info.MHzPerCPU,
		ScalingEnabled: info.ScalingEnabled,
		NameWidth:      nameWidth,
		BuildKind:      buildKind,
		DateTime:       clock.FormattedDate(),
	}
}

// Reporter is the sink interface every output format implements.
// ReportContext is called exactly once, before any group; returning false
// aborts the run with a non-zero exit. ReportRuns is called once per
// family-or-instance group and must accept both a single raw run and an
// aggregated group. Finalize is called exactly once, after the last group.
type Reporter interface {
	ReportContext(ctx Context) bool
	ReportRuns(group []RunRecord)
	Finalize()
}
