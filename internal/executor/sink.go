package executor

import (
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/track"
)

// Tick is the progress reported after each applied instruction.
type Tick struct {
	// Step is the index into the compiled program.
	Step int
	// Source is the index into the raw program to highlight.
	Source      int
	Instruction program.Instruction
	State       robot.State
}

// Sink receives run progress. Started and Tick are only called for runs that
// pass their preconditions; Finished is called exactly once per Start call
// that did not return ErrRunActive. Tick and Finished for a running program
// are called from the run goroutine and must not block for long.
//
// Events of one run never interleave with another's: the run counts as
// active until its Finished returns, so a Start made from Finished returns
// ErrRunActive. The goal distance passed to Started is the BFS hop count
// computed with the goal, so sinks need not walk the track again.
type Sink interface {
	Started(p *program.Program, goal track.Cell, distance int, initial robot.State)
	Tick(t Tick)
	Finished(r Result)
}

type discard struct{}

func (discard) Started(*program.Program, track.Cell, int, robot.State) {}
func (discard) Tick(Tick)                                              {}
func (discard) Finished(Result)                                        {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}
