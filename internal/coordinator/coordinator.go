// Package coordinator implements the barrier-based thread timer manager
// described in the harness design: it synchronises N worker goroutines
// across start/stop/pause/resume phases and accumulates real/CPU/manual
// elapsed time exactly once per phase crossing.
//
// It deliberately does not know anything about benchmarks, arguments, or
// reporting — it is the leaf synchronisation primitive that
// internal/iteration drives. The closest thing to it in the retrieved
// example pack is the wait-group/channel fan-out in
// oasisprotocol-oasis-sdk's benchmarks/api.Config.RunBenchmark, which only
// needs one coarse start/stop split; gobench generalises that into a
// reusable phase barrier because pause/resume must also behave as
// barriers.
package coordinator

import (
	"sync"

	"github.com/gobench-project/gobench/internal/clock"
)

// State is the coordinator's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finalized
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Coordinator manages one measurement across a fixed number of threads.
// It is single-use: construct a fresh Coordinator per trial.
type Coordinator struct {
	mu   sync.Mutex
	cond *sync.Cond

	threads int // total threads taking part
	running int // threads still participating (shrinks via RemoveErrored)
	entered int // threads that have crossed the current phase
	phase   int // monotonically increasing barrier phase

	state State

	realStart float64
	cpuStart  float64

	realTimeUsed   float64
	cpuTimeUsed    float64
	manualTimeUsed float64
}

// New creates a Coordinator for the given number of threads.
func New(threads int) *Coordinator {
	c := &Coordinator{threads: threads, running: threads, state: Idle}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// barrier blocks the calling goroutine until every still-running thread
// has called barrier for the current phase, or until the phase is
// advanced out from under it by RemoveErroredThread. The goroutine that
// observes entered == running performs sideEffect and becomes "the last
// thread"; sideEffect runs with the lock held.
func (c *Coordinator) barrier(sideEffect func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	myPhase := c.phase
	c.entered++

	if c.entered == c.running {
		if sideEffect != nil {
			sideEffect()
		}
		c.phase++
		c.entered = 0
		c.cond.Broadcast()
		return
	}

	for c.phase == myPhase {
		c.cond.Wait()
	}
}

// StartTimer crosses the start barrier. The last thread to arrive
// transitions Idle -> Running and records the instant all threads are
// considered to have started. It is a contract violation to call
// StartTimer while already Running.
func (c *Coordinator) StartTimer() {
	c.barrier(func() {
		if c.state == Running {
			panic("coordinator: StartTimer called while already running")
		}
		c.state = Running
		c.realStart = clock.RealNow()
		c.cpuStart = clock.ProcessCPUNow()
	})
}

// StopTimer crosses the stop barrier, accumulating the elapsed
// real/CPU interval exactly once.
func (c *Coordinator) StopTimer() {
	c.barrier(func() {
		c.accumulateLocked()
		c.state = Idle
	})
}

// PauseTimer crosses the pause barrier: real/CPU time stop accumulating
// until ResumeTimer. Calling it while not Running is a contract
// violation.
func (c *Coordinator) PauseTimer() {
	c.barrier(func() {
		if c.state != Running {
			panic("coordinator: PauseTimer called while not running")
		}
		c.accumulateLocked()
		c.state = Paused
	})
}

// ResumeTimer crosses the resume barrier, restarting accumulation.
func (c *Coordinator) ResumeTimer() {
	c.barrier(func() {
		if c.state != Paused {
			panic("coordinator: ResumeTimer called while not paused")
		}
		c.state = Running
		c.realStart = clock.RealNow()
		c.cpuStart = clock.ProcessCPUNow()
	})
}

// Finalize moves the coordinator to Finalized. It does not wait on the
// barrier: internal/iteration calls it once, after every thread has
// returned, and threads removed by RemoveErroredThread never arrive at a
// barrier again. Calling it more than once is harmless.
func (c *Coordinator) Finalize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Finalized
}

// accumulateLocked adds the elapsed real/cpu interval since the last
// start/resume. Must be called with c.mu held.
func (c *Coordinator) accumulateLocked() {
	c.realTimeUsed += clock.RealNow() - c.realStart
	c.cpuTimeUsed += clock.ProcessCPUNow() - c.cpuStart
}

// AddManualTime records one manual iteration time contribution. Every
// thread's calls accumulate into the same running sum: with T threads each
// calling SetIterationTime once per iteration, the sum naturally scales
// with T, matching RunRecord.Iterations (which is likewise summed across
// threads) so that iterations * per-call-seconds reconstructs the total.
func (c *Coordinator) AddManualTime(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manualTimeUsed += seconds
}

// RemoveErroredThread removes one thread from the running count,
// releasing the current barrier if every remaining thread has already
// arrived. If no threads remain, the timer stops immediately.
func (c *Coordinator) RemoveErroredThread() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.running--
	if c.running <= 0 {
		if c.state == Running {
			c.accumulateLocked()
			c.state = Idle
		}
		c.phase++
		c.entered = 0
		c.cond.Broadcast()
		return
	}
	if c.entered == c.running {
		c.phase++
		c.entered = 0
		c.cond.Broadcast()
	}
}

// Totals returns the accumulated real, CPU and manual time. Safe to call
// once all threads have finished their barrier calls for the trial.
func (c *Coordinator) Totals() (real, cpu, manual float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.realTimeUsed, c.cpuTimeUsed, c.manualTimeUsed
}

// CurrentState returns the coordinator's lifecycle state.
func (c *Coordinator) CurrentState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
