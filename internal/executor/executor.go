// Package executor runs a compiled program against a track snapshot, one
// primitive instruction per tick, and reports the outcome.
//
// An Executor is a small state machine:
//
//	Idle ──Start──▶ Running ──▶ HaltedSuccess
//	  │                 │   └─▶ HaltedFailure
//	  │                 └─Abort─▶ Idle
//	  └──precondition failure──▶ HaltedFailure
//
// Only one run is active at a time. The run goroutine is the sole owner of
// the robot simulator; callers observe progress through a Sink.
package executor

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/reach"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/scheduler"
	"github.com/specialistvlad/robotrack/internal/track"
)

// State is the executor's lifecycle state.
type State int32

const (
	// Idle means no run has finished since the last reset or abort.
	Idle State = iota
	// Running means a run is active.
	Running
	// HaltedSuccess means the last run ended on the goal.
	HaltedSuccess
	// HaltedFailure means the last run was rejected or failed.
	HaltedFailure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case HaltedSuccess:
		return "halted_success"
	case HaltedFailure:
		return "halted_failure"
	}
	return "unknown"
}

// Executor schedules program runs.
type Executor struct {
	clock    scheduler.Clock
	interval time.Duration
	sink     Sink

	mu     sync.Mutex
	state  State
	active *RunHandle
	last   *Result
}

// New creates an executor. A nil clock uses the wall clock, a non-positive
// interval uses scheduler.DefaultInterval and a nil sink discards events.
func New(clock scheduler.Clock, interval time.Duration, sink Sink) *Executor {
	if clock == nil {
		clock = scheduler.RealClock{}
	}
	if interval <= 0 {
		interval = scheduler.DefaultInterval
	}
	if sink == nil {
		sink = Discard
	}
	return &Executor{clock: clock, interval: interval, sink: sink}
}

// State returns the current lifecycle state.
func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Last returns the result of the most recent finished or rejected run.
func (e *Executor) Last() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return Result{}, false
	}
	return *e.last, true
}

// prepare checks every precondition in order, compiles the program and
// computes the goal with its hop distance.
func prepare(t track.Track, raw []program.Instruction) (*program.Program, track.Cell, int, error) {
	if !t.HasPath() {
		return nil, track.Cell{}, 0, track.ErrEmptyTrack
	}
	if len(raw) == 0 {
		return nil, track.Cell{}, 0, program.ErrEmptyProgram
	}
	if !t.OnPath(track.Start) {
		return nil, track.Cell{}, 0, track.ErrStartNotOnPath
	}
	prog, err := program.Compile(raw)
	if err != nil {
		return nil, track.Cell{}, 0, err
	}
	goal, dist, ok := reach.FarthestWithDistance(t, track.Start)
	if !ok {
		return nil, track.Cell{}, 0, track.ErrStartNotOnPath
	}
	return prog, goal, dist, nil
}

// Start validates and begins a run of raw on a snapshot of t. It returns
// ErrRunActive without side effects if a run is already active. A failed
// precondition is returned and also reported to the sink; no simulation
// happens in that case. Cancelling ctx aborts the run.
func (e *Executor) Start(ctx context.Context, t track.Track, raw []program.Instruction) (*RunHandle, error) {
	logger := ctxlog.FromContext(ctx)

	e.mu.Lock()
	if e.active != nil {
		e.mu.Unlock()
		logger.Debug("Start ignored, a run is already active.")
		return nil, ErrRunActive
	}

	prog, goal, dist, err := prepare(t, raw)
	if err != nil {
		res := Result{Outcome: Rejected, Err: err, Final: robot.Initial()}
		e.state = HaltedFailure
		e.last = &res
		e.mu.Unlock()
		logger.Warn("Run rejected before execution.", "reason", Reason(err), "error", err)
		e.sink.Finished(res)
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &RunHandle{cancel: cancel, done: make(chan struct{})}
	ticker := e.clock.NewTicker(e.interval)
	e.state = Running
	e.active = h
	e.mu.Unlock()

	logger.Info("Run started.", "program", program.Format(prog.Raw), "steps", prog.Len(), "goal", goal.String(), "distance", dist)
	e.sink.Started(prog, goal, dist, robot.Initial())

	go e.run(runCtx, h, ticker, t, prog, goal)
	return h, nil
}

// Reset aborts any active run and returns the executor to Idle. A run
// started by another goroutine while Reset waits is aborted too, so no run
// is active when Reset returns.
func (e *Executor) Reset() {
	for {
		e.mu.Lock()
		h := e.active
		if h == nil {
			e.state = Idle
			e.last = nil
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()
		h.Abort()
	}
}

// finish records the terminal result of h and reports it to the sink. The
// run stays active until Finished returns, so a Start issued from the sink
// callback gets ErrRunActive and the next run's Started never precedes this
// run's Finished. It must be called once per run, from the run goroutine.
func (e *Executor) finish(h *RunHandle, res Result) {
	e.mu.Lock()
	switch res.Outcome {
	case Success:
		e.state = HaltedSuccess
	case Aborted:
		e.state = Idle
	default:
		e.state = HaltedFailure
	}
	e.last = &res
	e.mu.Unlock()

	h.result = res
	e.sink.Finished(res)

	e.mu.Lock()
	if e.active == h {
		e.active = nil
	}
	e.mu.Unlock()
}
