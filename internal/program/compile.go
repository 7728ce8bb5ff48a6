// Package program turns a player's raw instruction sequence into the linear
// stream of primitive instructions the simulator executes.
//
// Loops are a single level deep. The first LoopMarker opens a block, the next
// one closes it, and the closed block's body is emitted twice. There is never
// more than one pending open block, so a marker seen while a block is open
// always closes it.
package program

import "errors"

var (
	// ErrEmptyProgram is returned when the raw sequence has no instructions.
	ErrEmptyProgram = errors.New("program has no instructions")
	// ErrUnbalancedLoop is returned when the loop markers do not pair up.
	ErrUnbalancedLoop = errors.New("loop markers are not balanced")
	// ErrEmptyExpansion is returned when expansion leaves nothing to execute.
	ErrEmptyExpansion = errors.New("program is empty after expanding loops")
)

// loopRepeat is how many times a closed loop body is emitted.
const loopRepeat = 2

// Program is a compiled program. It is never mutated after Compile returns.
type Program struct {
	// Raw is the player's sequence as authored.
	Raw []Instruction
	// Steps holds only Forward, TurnLeft and TurnRight.
	Steps []Instruction
	// Sources maps Steps[i] to the index in Raw it was written at.
	Sources []int
}

// Len returns the number of primitive steps.
func (p *Program) Len() int {
	return len(p.Steps)
}

// Source returns the raw index that step i originates from.
func (p *Program) Source(i int) (int, bool) {
	if i < 0 || i >= len(p.Sources) {
		return 0, false
	}
	return p.Sources[i], true
}

// Expand performs loop expansion without validation. Instructions after an
// opening marker that is never closed produce no output.
func Expand(raw []Instruction) ([]Instruction, []int) {
	var (
		steps   []Instruction
		sources []int
		open    = -1 // index of the pending opening marker, -1 if none
	)
	for i, in := range raw {
		switch in {
		case LoopMarker:
			if open < 0 {
				open = i
				continue
			}
			body := raw[open+1 : i]
			for range loopRepeat {
				for k, b := range body {
					steps = append(steps, b)
					sources = append(sources, open+1+k)
				}
			}
			open = -1
		case Forward, TurnLeft, TurnRight:
			if open < 0 {
				steps = append(steps, in)
				sources = append(sources, i)
			}
		}
	}
	return steps, bound(sources, len(raw))
}

// bound drops entries that do not address the raw sequence.
func bound(sources []int, n int) []int {
	out := sources[:0]
	for _, s := range sources {
		if s < n {
			out = append(out, s)
		}
	}
	return out
}

// CountMarkers returns how many loop markers raw contains.
func CountMarkers(raw []Instruction) int {
	n := 0
	for _, in := range raw {
		if in == LoopMarker {
			n++
		}
	}
	return n
}

// Validate checks the raw sequence without expanding it.
func Validate(raw []Instruction) error {
	if len(raw) == 0 {
		return ErrEmptyProgram
	}
	if CountMarkers(raw)%2 != 0 {
		return ErrUnbalancedLoop
	}
	return nil
}

// Compile validates raw and expands it. The returned Program owns copies of
// its slices, so later edits to raw do not leak into a running program.
func Compile(raw []Instruction) (*Program, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	snapshot := append([]Instruction(nil), raw...)
	steps, sources := Expand(snapshot)
	if len(steps) == 0 {
		return nil, ErrEmptyExpansion
	}
	return &Program{Raw: snapshot, Steps: steps, Sources: sources}, nil
}
