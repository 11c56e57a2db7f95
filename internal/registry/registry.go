// Package registry holds the global family list and expands it into the
// concrete instances a run will execute, mirroring
// benchmark::internal::BenchmarkFamilies from the original implementation.
package registry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gobench-project/gobench/internal/core"
)

// Registry is a mutex-guarded family list. The gobench package keeps one
// process-wide Registry for its Register/RunBenchmarks; New also lets
// tests build an isolated instance instead of mutating global state.
type Registry struct {
	mu       sync.Mutex
	families []*core.Family
	logger   *zap.Logger
}

// New returns an empty, independently lockable Registry.
func New() *Registry {
	return &Registry{logger: zap.NewNop()}
}

// SetLogger installs the zap logger used to report malformed filter
// regexes. Defaults to a no-op logger.
func (r *Registry) SetLogger(l *zap.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l != nil {
		r.logger = l
	}
}

// Register appends family to the registry and returns it unchanged, so
// callers chain the returned *core.Family's builder methods.
func (r *Registry) Register(family *core.Family) *core.Family {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.families = append(r.families, family)
	return family
}

// Families returns a snapshot of the registered families.
func (r *Registry) Families() []*core.Family {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*core.Family, len(r.families))
	copy(out, r.families)
	return out
}

// isLiteralPattern reports whether pattern contains no regex
// metacharacters, i.e. regexp.QuoteMeta is a no-op on it. When true,
// FindMatching uses a substring test instead of compiling a regex. The
// test is applied to each expanded instance name: every family is still
// expanded in full, and no family is skipped by its name alone.
func isLiteralPattern(pattern string) bool {
	return regexp.QuoteMeta(pattern) == pattern
}

// FindMatching compiles pattern once, expands every registered family into
// its instances, and returns those whose name matches. An empty pattern
// matches nothing; "all" matches everything. A malformed regex is logged
// and yields no instances rather than aborting the caller.
func (r *Registry) FindMatching(pattern string) []core.Instance {
	if pattern == "" {
		return nil
	}

	families := r.Families()

	if pattern == "all" {
		return expandAll(families, nil)
	}

	if isLiteralPattern(pattern) {
		return expandAll(families, func(name string) bool {
			return strings.Contains(name, pattern)
		})
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		r.mu.Lock()
		logger := r.logger
		r.mu.Unlock()
		logger.Error("invalid --benchmark_filter regex", zap.String("pattern", pattern), zap.Error(err))
		return nil
	}
	return expandAll(families, re.MatchString)
}

func expandAll(families []*core.Family, match func(name string) bool) []core.Instance {
	var out []core.Instance
	for _, fam := range families {
		instances := Expand(fam)
		for i := range instances {
			if match == nil || match(instances[i].Name) {
				out = append(out, instances[i])
			}
		}
	}
	return out
}

// Expand produces every (argument-tuple × thread-count) instance for a
// single family, in deterministic order: argument tuples in registration
// order (outermost), thread counts in declaration order (innermost). The
// final element has LastInFamily set so the aggregator knows when to
// emit the family's complexity row.
func Expand(fam *core.Family) []core.Instance {
	argLists := fam.ArgLists()
	if len(argLists) == 0 {
		argLists = [][]int64{nil}
	}
	threadCounts := fam.ThreadCounts()
	if len(threadCounts) == 0 {
		threadCounts = []int{1}
	}

	reps := fam.RepetitionsValue()
	minTime := fam.MinTimeValue()

	var out []core.Instance
	for _, args := range argLists {
		for _, threads := range threadCounts {
			out = append(out, core.Instance{
				Name:            instanceName(fam, args, threads, minTime, reps),
				Family:          fam,
				Args:            args,
				Threads:         threads,
				MinTime:         minTime,
				Repetitions:     reps,
				UseRealTime:     fam.UseRealTimeValue(),
				UseManualTime:   fam.UseManualTimeValue(),
				FixedIterations: fam.FixedIterationsValue(),
			})
		}
	}
	if len(out) > 0 {
		out[len(out)-1].LastInFamily = true
	}
	return out
}

// instanceName builds "name/<arg0>/<arg1>/min_time:X/repeats:R/manual_time
// |real_time/threads:T", including only the tokens that apply, per the
// harness's naming convention.
func instanceName(fam *core.Family, args []int64, threads int, minTime float64, reps int) string {
	var b strings.Builder
	b.WriteString(fam.Name)

	names := fam.ArgNamesList()
	for i, a := range args {
		b.WriteByte('/')
		if i < len(names) && names[i] != "" {
			b.WriteString(names[i])
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatInt(a, 10))
	}

	if minTime > 0 {
		fmt.Fprintf(&b, "/min_time:%s", strconv.FormatFloat(minTime, 'g', -1, 64))
	}
	if reps > 0 {
		fmt.Fprintf(&b, "/repeats:%d", reps)
	}
	if fam.UseManualTimeValue() {
		b.WriteString("/manual_time")
	} else if fam.UseRealTimeValue() {
		b.WriteString("/real_time")
	}
	if threads != 1 {
		fmt.Fprintf(&b, "/threads:%d", threads)
	}

	return b.String()
}
