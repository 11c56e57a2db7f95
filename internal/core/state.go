package core

import (
	"sync"
	"sync/atomic"

	"github.com/gobench-project/gobench/internal/coordinator"
)

// trialShared is the state one repetition's threads all contribute to:
// the report label, error cell, byte/item/complexity counters, and the
// merged counter map. It corresponds to spec's "global report label and
// error-message cell (mutex-protected)", scoped per-trial rather than
// process-wide, since internal/iteration owns one trial at a time.
type trialShared struct {
	mu sync.Mutex

	label string

	errOccurred bool
	errMessage  string

	bytesProcessed int64
	itemsProcessed int64
	complexityN    int64
}

func newTrialShared() *trialShared {
	return &trialShared{}
}

// State is the per-thread handle passed to a registered callable. It
// drives the KeepRunning iteration loop, exposes this instance's
// arguments and thread index, and collects byte/item/label/error/counter
// reporting for its thread; internal/iteration merges every thread's
// State into one RunRecord once the repetition finishes.
type State struct {
	ThreadIndex int
	Threads     int

	Counters Counters

	args     []int64
	maxIters int64

	iter int64

	started bool
	errored bool
	removed bool

	coord  *coordinator.Coordinator
	shared *trialShared
}

// NewState constructs the State for one thread of one trial. maxIters is
// the iteration count this trial must execute before KeepRunning returns
// false.
func NewState(threadIndex, threads int, args []int64, maxIters int64, coord *coordinator.Coordinator, shared *trialShared) *State {
	return &State{
		ThreadIndex: threadIndex,
		Threads:     threads,
		Counters:    NewCounters(),
		args:        args,
		maxIters:    maxIters,
		coord:       coord,
		shared:      shared,
	}
}

// NewTrialShared is exported for internal/iteration, which owns the
// lifetime of one trial's shared cell.
func NewTrialShared() *trialShared { return newTrialShared() }

// KeepRunning is the harness's iteration-loop driver. The first call
// crosses the coordinator's start barrier; the call that would exceed
// maxIters crosses the stop barrier and returns false. Per the documented
// contract, the loop body must be side-effect complete before KeepRunning
// returns false, because timing has already stopped by the time it does.
func (s *State) KeepRunning() bool {
	if s.errored {
		s.removeFromCoordinatorOnce()
		return false
	}
	if !s.started {
		s.started = true
		s.coord.StartTimer()
	}
	if s.iter < s.maxIters {
		s.iter++
		return true
	}
	s.coord.StopTimer()
	return false
}

func (s *State) removeFromCoordinatorOnce() {
	if s.removed {
		return
	}
	s.removed = true
	s.coord.RemoveErroredThread()
}

// Range returns the i-th argument tuple element for this instance.
func (s *State) Range(i int) int64 {
	if i < 0 || i >= len(s.args) {
		return 0
	}
	return s.args[i]
}

// Args returns the full argument tuple for this instance.
func (s *State) Args() []int64 { return s.args }

// SetBytesProcessed records the total bytes processed across the whole
// run (not per-iteration); used to compute bytes_per_second.
func (s *State) SetBytesProcessed(n int64) {
	atomic.StoreInt64(&s.shared.bytesProcessed, n)
}

// SetItemsProcessed records the total items processed across the whole
// run.
func (s *State) SetItemsProcessed(n int64) {
	atomic.StoreInt64(&s.shared.itemsProcessed, n)
}

// SetLabel attaches a free-form label to the run, shown by reporters
// alongside the timing columns.
func (s *State) SetLabel(label string) {
	s.shared.mu.Lock()
	s.shared.label = label
	s.shared.mu.Unlock()
}

// SetComplexityN records the "size" this run represents for complexity
// fitting.
func (s *State) SetComplexityN(n int64) {
	atomic.StoreInt64(&s.shared.complexityN, n)
}

// SetIterationTime contributes a manual per-thread timing sample for
// UseManualTime instances.
func (s *State) SetIterationTime(seconds float64) {
	s.coord.AddManualTime(seconds)
}

// SkipWithError marks the run as failed. No further iterations run on
// this thread: the next (or, if already mid-loop, this) call to
// KeepRunning returns false, and this thread is removed from the
// coordinator's barrier so other threads are not blocked waiting on it.
func (s *State) SkipWithError(message string) {
	s.shared.mu.Lock()
	if !s.shared.errOccurred {
		s.shared.errOccurred = true
		s.shared.errMessage = message
	}
	s.shared.mu.Unlock()
	s.errored = true
	s.removeFromCoordinatorOnce()
}

// PauseTiming stops the clock. In multithreaded runs this is a barrier:
// all threads must call it before the clock actually stops.
func (s *State) PauseTiming() {
	s.coord.PauseTimer()
}

// ResumeTiming restarts the clock; like PauseTiming, a barrier when
// multithreaded.
func (s *State) ResumeTiming() {
	s.coord.ResumeTimer()
}

// Shared snapshots (read by internal/iteration once all threads finish).

func (s *State) sharedSnapshot() (label string, errOccurred bool, errMessage string, bytes, items, complexityN int64) {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.label, s.shared.errOccurred, s.shared.errMessage,
		atomic.LoadInt64(&s.shared.bytesProcessed), atomic.LoadInt64(&s.shared.itemsProcessed), atomic.LoadInt64(&s.shared.complexityN)
}

// SharedSnapshot exposes sharedSnapshot to internal/iteration.
func (s *State) SharedSnapshot() (label string, errOccurred bool, errMessage string, bytes, items, complexityN int64) {
	return s.sharedSnapshot()
}
