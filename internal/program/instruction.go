package program

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnknownInstruction is returned when a token does not name an instruction.
var ErrUnknownInstruction = errors.New("unknown instruction")

// Instruction is one symbol of a player's program. The set is closed: every
// switch over Instruction handles all four values.
type Instruction uint8

const (
	// Forward moves the robot one cell in the direction it faces.
	Forward Instruction = iota + 1
	// TurnLeft rotates the robot counterclockwise.
	TurnLeft
	// TurnRight rotates the robot clockwise.
	TurnRight
	// LoopMarker opens, then closes, a block that runs twice.
	LoopMarker
)

// Primitive reports whether the instruction can be executed directly.
func (i Instruction) Primitive() bool {
	switch i {
	case Forward, TurnLeft, TurnRight:
		return true
	case LoopMarker:
		return false
	}
	return false
}

// Symbol returns the single-letter form used in compact programs.
func (i Instruction) Symbol() string {
	switch i {
	case Forward:
		return "F"
	case TurnLeft:
		return "L"
	case TurnRight:
		return "R"
	case LoopMarker:
		return "B"
	}
	return "?"
}

func (i Instruction) String() string {
	switch i {
	case Forward:
		return "forward"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	case LoopMarker:
		return "loop"
	}
	return fmt.Sprintf("Instruction(%d)", uint8(i))
}

// ParseInstruction accepts either the symbol or the word form, case-insensitively.
func ParseInstruction(s string) (Instruction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "forward":
		return Forward, nil
	case "l", "left", "turn_left", "turnleft":
		return TurnLeft, nil
	case "r", "right", "turn_right", "turnright":
		return TurnRight, nil
	case "b", "loop":
		return LoopMarker, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInstruction, s)
}

// ParseSequence parses a program written as tokens separated by commas or
// whitespace, e.g. "F, B, L R, B".
func ParseSequence(s string) ([]Instruction, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return ParseAll(fields)
}

// ParseAll parses each token in order.
func ParseAll(tokens []string) ([]Instruction, error) {
	out := make([]Instruction, 0, len(tokens))
	for n, tok := range tokens {
		in, err := ParseInstruction(tok)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", n, err)
		}
		out = append(out, in)
	}
	return out, nil
}

// Format renders a sequence in compact symbol form, e.g. "F B L R B".
func Format(seq []Instruction) string {
	parts := make([]string, len(seq))
	for n, in := range seq {
		parts[n] = in.Symbol()
	}
	return strings.Join(parts, " ")
}
