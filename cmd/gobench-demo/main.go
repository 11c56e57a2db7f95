// Command gobench-demo is a runnable example host: it registers a handful
// of benchmark families exercising the harness's features (arguments,
// threads, counters, manual time, complexity) and dispatches to the
// gobench CLI.
package main

import (
	"sort"
	"time"

	gobench "github.com/gobench-project/gobench"
	"github.com/gobench-project/gobench/cmd/gobench/cmd"
)

func main() {
	registerDemoBenchmarks()
	cmd.Execute()
}

func registerDemoBenchmarks() {
	gobench.Register("BM_StringConcat", func(s *gobench.State) {
		for s.KeepRunning() {
			out := ""
			for i := 0; i < 32; i++ {
				out += "x"
			}
			gobench.DoNotOptimize(out)
		}
	})

	gobench.Register("BM_SortInts", func(s *gobench.State) {
		n := int(s.Range(0))
		for s.KeepRunning() {
			s.PauseTiming()
			data := make([]int, n)
			for i := range data {
				data[i] = n - i
			}
			s.ResumeTiming()
			sort.Ints(data)
			gobench.DoNotOptimize(data)
		}
		s.SetComplexityN(int64(n))
		s.SetItemsProcessed(int64(n))
	}).RangeMultiplier(4).Range(1, 1<<16).Complexity(gobench.ONLogN)

	gobench.Register("BM_ManualSleep", func(s *gobench.State) {
		for s.KeepRunning() {
			start := time.Now()
			time.Sleep(time.Millisecond)
			s.SetIterationTime(time.Since(start).Seconds())
		}
	}).UseManualTime().Repetitions(3)

	gobench.Register("BM_Parallel", func(s *gobench.State) {
		for s.KeepRunning() {
			s.Counters.Add("ops", 1, gobench.CounterRate)
		}
	}).Threads(1, 2, 4)
}
