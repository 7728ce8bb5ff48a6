// Package robot simulates the robot's position and heading as primitive
// instructions are applied one at a time against a track snapshot.
package robot

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/track"
)

var (
	// ErrOffTrack is returned when Forward would leave the path.
	ErrOffTrack = errors.New("robot left the track")
	// ErrHalted is returned by Apply after the simulator has halted.
	ErrHalted = errors.New("simulator halted")
	// ErrNotPrimitive is returned when a loop marker reaches the simulator.
	ErrNotPrimitive = errors.New("instruction is not primitive")
)

// Heading is the cardinal direction the robot faces.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

// Left returns the heading after a counterclockwise quarter turn.
func (h Heading) Left() Heading {
	return (h + 3) % 4
}

// Right returns the heading after a clockwise quarter turn.
func (h Heading) Right() Heading {
	return (h + 1) % 4
}

// Vector returns the row and column delta of one step in this heading.
func (h Heading) Vector() (dr, dc int) {
	switch h {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Heading(%d)", uint8(h))
}

// Arrow returns a glyph pointing in this heading, for board rendering.
func (h Heading) Arrow() rune {
	switch h {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	case West:
		return '<'
	}
	return '?'
}

// State is the robot's position and heading.
type State struct {
	Pos     track.Cell
	Heading Heading
}

// Initial is the state every run starts from.
func Initial() State {
	return State{Pos: track.Start, Heading: East}
}

func (s State) String() string {
	return fmt.Sprintf("%s %s", s.Pos, s.Heading)
}

// Simulator applies primitive instructions to a State. It is not safe for
// concurrent use; the executor owns it for the duration of a run.
type Simulator struct {
	track  track.Track
	state  State
	halted bool
}

// New returns a simulator at the initial state on a copy of t.
func New(t track.Track) *Simulator {
	return &Simulator{track: t, state: Initial()}
}

// State returns the current robot state.
func (s *Simulator) State() State {
	return s.state
}

// Apply executes one primitive instruction. A Forward onto a cell that is
// not on the path returns ErrOffTrack, leaves the position unchanged and
// halts the simulator.
func (s *Simulator) Apply(in program.Instruction) (State, error) {
	if s.halted {
		return s.state, ErrHalted
	}
	switch in {
	case program.TurnLeft:
		s.state.Heading = s.state.Heading.Left()
	case program.TurnRight:
		s.state.Heading = s.state.Heading.Right()
	case program.Forward:
		target := s.state.Pos.Add(s.state.Heading.Vector())
		if !s.track.OnPath(target) {
			s.halted = true
			return s.state, fmt.Errorf("%w: %s from %s", ErrOffTrack, target, s.state.Pos)
		}
		s.state.Pos = target
	case program.LoopMarker:
		return s.state, ErrNotPrimitive
	default:
		return s.state, fmt.Errorf("%w: %s", ErrNotPrimitive, in)
	}
	return s.state, nil
}
