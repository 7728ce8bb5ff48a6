package executor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/scheduler"
	"github.com/specialistvlad/robotrack/internal/track"
)

// run is the processing loop for a single run. It applies one instruction
// per tick until the program ends, the robot leaves the track, or ctx is
// cancelled.
func (e *Executor) run(ctx context.Context, h *RunHandle, ticker scheduler.Ticker, t track.Track, prog *program.Program, goal track.Cell) {
	defer close(h.done)
	defer h.cancel()
	defer ticker.Stop()

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Run loop started.", "interval", e.interval)

	sim := robot.New(t)
	pc := 0
	result := func(outcome Outcome, err error) Result {
		return Result{Outcome: outcome, Err: err, Final: sim.State(), Goal: goal, Steps: pc}
	}

	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			logger.Info("Run aborted.", "steps", pc)
			e.finish(h, result(Aborted, ErrAborted))
			return

		case <-ticker.C():
			// A tick that races with cancellation is dropped.
			if ctx.Err() != nil {
				continue
			}

			in := prog.Steps[pc]
			src, _ := prog.Source(pc)
			stepLogger := logger.With("step", pc, "source", src, "instruction", in.String())

			state, err := sim.Apply(in)
			if err != nil {
				ticker.Stop()
				stepLogger.Info("Run failed, robot left the track.", "error", err)
				e.finish(h, result(Failure, &StepError{Step: pc, Source: src, Err: err}))
				return
			}
			pc++
			stepLogger.Debug("Instruction applied.", "state", state.String())
			e.sink.Tick(Tick{Step: pc - 1, Source: src, Instruction: in, State: state})

			if pc < prog.Len() {
				continue
			}

			ticker.Stop()
			if state.Pos == goal {
				logger.Info("Run succeeded.", "final", state.String())
				e.finish(h, result(Success, nil))
				return
			}
			logger.Info("Run finished away from the goal.", "final", state.String(), "goal", goal.String())
			e.finish(h, result(Failure, fmt.Errorf("%w: ended at %s, goal is %s", ErrGoalNotReached, state.Pos, goal)))
			return
		}
	}
}
