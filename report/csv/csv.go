// Package csv implements the CSV reporter on encoding/csv: no example repo
// in the retrieved pack imports a third-party CSV library, so this one
// concern is built on the standard library (see DESIGN.md).
package csv

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/gobench-project/gobench/report"
)

var fixedColumns = []string{
	"name", "iterations", "real_time", "cpu_time", "time_unit",
	"bytes_per_second", "items_per_second", "label", "error_occurred", "error_message",
}

// Reporter accumulates every run group and writes one CSV document on
// Finalize, since the counter-name columns aren't known until every run
// has been seen. AggregatesOnly suppresses non-aggregated rows from
// multi-repetition instances.
type Reporter struct {
	w              io.Writer
	AggregatesOnly bool
	runs           []report.RunRecord
}

// New returns a CSV Reporter writing to w (os.Stdout by default).
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w}
}

func (r *Reporter) ReportContext(report.Context) bool { return true }

func (r *Reporter) ReportRuns(group []report.RunRecord) {
	for _, rec := range group {
		if r.AggregatesOnly && rec.Aggregate == "" && rec.Repetitions > 1 {
			continue
		}
		r.runs = append(r.runs, rec)
	}
}

func (r *Reporter) Finalize() {
	counterNames := sortedCounterNames(r.runs)
	header := append(append([]string{}, fixedColumns...), counterNames...)

	cw := csv.NewWriter(r.w)
	cw.Write(header)

	for _, rec := range r.runs {
		row := []string{
			rec.Name,
			strconv.FormatInt(rec.Iterations, 10),
			strconv.FormatFloat(rec.RealAccumulatedTime, 'g', -1, 64),
			strconv.FormatFloat(rec.CPUAccumulatedTime, 'g', -1, 64),
			rec.TimeUnit.String(),
			bytesPerSecond(rec),
			itemsPerSecond(rec),
			rec.Label,
			strconv.FormatBool(rec.ErrorOccurred),
			rec.ErrorMessage,
		}
		for _, name := range counterNames {
			if c, ok := rec.Counters.Get(name); ok {
				row = append(row, strconv.FormatFloat(c.Finalized(rec.ReportedSeconds(), rec.Threads, rec.Iterations), 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
	cw.Flush()
}

func bytesPerSecond(rec report.RunRecord) string {
	if rec.BytesProcessed == 0 {
		return ""
	}
	elapsed := rec.ReportedSeconds()
	if elapsed == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(rec.BytesProcessed)/elapsed, 'g', -1, 64)
}

func itemsPerSecond(rec report.RunRecord) string {
	if rec.ItemsProcessed == 0 {
		return ""
	}
	elapsed := rec.ReportedSeconds()
	if elapsed == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(rec.ItemsProcessed)/elapsed, 'g', -1, 64)
}

func sortedCounterNames(runs []report.RunRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range runs {
		for _, n := range rec.Counters.Names() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}
