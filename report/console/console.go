// Package console implements the tabular console reporter, grounded on
// oasis-sdk's tablewriter usage in cli/cmd/inspect/runtime_stats.go and
// colorised the way fatih/color is used throughout that pack's CLI
// commands.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/gobench-project/gobench/internal/config"
	"github.com/gobench-project/gobench/report"
)

// Reporter writes a human-readable table to w (os.Stdout by default).
// DisplayAggregatesOnly suppresses non-aggregated rows, matching
// --benchmark_display_aggregates_only.
type Reporter struct {
	w                     io.Writer
	DisplayAggregatesOnly bool
	colorMode             config.Color

	ctx        report.Context
	headerDone bool
}

// New returns a console Reporter writing to os.Stdout. colorMode true/false
// forces color.NoColor; "auto" leaves fatih/color's own isatty detection in
// place.
func New(displayAggregatesOnly bool, colorMode config.Color) *Reporter {
	switch colorMode {
	case config.ColorOn:
		color.NoColor = false
	case config.ColorOff:
		color.NoColor = true
	}
	return &Reporter{
		w:                     os.Stdout,
		DisplayAggregatesOnly: displayAggregatesOnly,
		colorMode:             colorMode,
	}
}

func (r *Reporter) ReportContext(ctx report.Context) bool {
	r.ctx = ctx
	fmt.Fprintf(r.w, "%d CPUs, %.0f MHz, date: %s\n", ctx.NumCPUs, ctx.MHzPerCPU, ctx.DateTime)
	if ctx.ScalingEnabled {
		color.New(color.FgYellow).Fprintln(r.w, "CPU scaling is enabled: timings may be noisy")
	}
	return true
}

func (r *Reporter) ReportRuns(group []report.RunRecord) {
	if len(group) == 0 {
		return
	}

	table := tablewriter.NewWriter(r.w)
	table.SetBorders(tablewriter.Border{Left: false, Top: false, Right: false, Bottom: false})
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	counterNames := collectCounterNames(group)
	header := append([]string{"Benchmark", "Time", "CPU", "Iterations"}, counterNames...)
	table.SetHeader(header)

	for _, rec := range group {
		if r.DisplayAggregatesOnly && rec.Aggregate == "" && isRepeatable(rec) {
			continue
		}
		table.Append(r.row(rec, counterNames))
	}

	table.Render()
}

// isRepeatable reports whether rec belongs to a family run with more than
// one repetition, i.e. whether suppressing its raw row still leaves an
// aggregated row behind.
func isRepeatable(rec report.RunRecord) bool {
	return rec.Repetitions > 1
}

func collectCounterNames(group []report.RunRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range group {
		for _, n := range rec.Counters.Names() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

func (r *Reporter) row(rec report.RunRecord, counterNames []string) []string {
	name := rec.Name
	if rec.ErrorOccurred {
		row := []string{name, fmt.Sprintf("ERROR OCCURRED: '%s'", rec.ErrorMessage), "", ""}
		for range counterNames {
			row = append(row, "")
		}
		return row
	}

	unit := rec.TimeUnit
	scale := unit.Seconds()
	// Time is real_accumulated_time (or, under use_manual_time, the
	// manual time that overwrites it), matching the original console
	// reporter's real/cpu column pair; CPU is always cpu_accumulated_time,
	// so the two columns only coincide when a cpu-bound run's real and
	// cpu clocks happen to agree, not by construction.
	realTime := rec.RealAccumulatedTime
	if rec.UseManualTime {
		realTime = rec.ManualAccumulatedTime
	}
	timeVal := realTime / float64(max64(rec.Iterations, 1)) / scale
	cpuVal := rec.CPUAccumulatedTime / float64(max64(rec.Iterations, 1)) / scale

	row := []string{
		name,
		fmt.Sprintf("%.2f %s", timeVal, unit.String()),
		fmt.Sprintf("%.2f %s", cpuVal, unit.String()),
		strconv.FormatInt(rec.Iterations, 10),
	}
	for _, cn := range counterNames {
		if c, ok := rec.Counters.Get(cn); ok {
			row = append(row, fmt.Sprintf("%.4g", c.Finalized(rec.ReportedSeconds(), rec.Threads, rec.Iterations)))
		} else {
			row = append(row, "")
		}
	}
	return row
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func (r *Reporter) Finalize() {}
