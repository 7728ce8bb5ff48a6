// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Track, the fixed-size board the robot drives on.
//
// Why a value type?
//
// A run must never observe edits made to the board while it executes. Track is
// a plain array, so handing it to the executor copies it, and that copy is the
// immutable snapshot for the whole run. Editing only ever happens on the
// caller's own copy.
package track

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Rows is the fixed number of rows on every track.
	Rows = 4
	// Cols is the fixed number of columns on every track.
	Cols = 5
)

var (
	// ErrEmptyTrack is returned when a track has no path cells.
	ErrEmptyTrack = errors.New("track has no path cells")
	// ErrStartNotOnPath is returned when the start cell is not a path cell.
	ErrStartNotOnPath = errors.New("start cell is not on the path")
	// ErrMalformedMatrix is returned when a matrix does not have exactly Rows rows.
	ErrMalformedMatrix = errors.New("malformed track matrix")
)

// Cell addresses a single square of the track.
type Cell struct {
	Row int
	Col int
}

// Start is the cell every run begins on: last row, first column.
var Start = Cell{Row: Rows - 1, Col: 0}

// String renders the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the cell offset by the given row and column deltas.
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// InBounds reports whether the cell lies inside the Rows x Cols grid.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Col >= 0 && c.Row < Rows && c.Col < Cols
}

// Track is a Rows x Cols matrix of path cells.
type Track [Rows][Cols]bool

// OnPath reports whether c is in bounds and marked as path.
func (t Track) OnPath(c Cell) bool {
	return c.InBounds() && t[c.Row][c.Col]
}

// HasPath reports whether at least one cell is marked as path.
func (t Track) HasPath() bool {
	for r := range t {
		for c := range t[r] {
			if t[r][c] {
				return true
			}
		}
	}
	return false
}

// IsStart reports whether c is the start cell. It only affects rendering.
func IsStart(c Cell) bool {
	return c == Start
}

// Set marks or clears a cell. Out of bounds cells are ignored.
func (t *Track) Set(c Cell, on bool) {
	if !c.InBounds() {
		return
	}
	t[c.Row][c.Col] = on
}

// Toggle flips a cell and returns its new value.
func (t *Track) Toggle(c Cell) bool {
	if !c.InBounds() {
		return false
	}
	t[c.Row][c.Col] = !t[c.Row][c.Col]
	return t[c.Row][c.Col]
}

// Count returns the number of path cells.
func (t Track) Count() int {
	n := 0
	for r := range t {
		for c := range t[r] {
			if t[r][c] {
				n++
			}
		}
	}
	return n
}

// FromMatrix builds a Track from a row-major matrix. The matrix must have
// exactly Rows rows; short rows are padded with false and extra columns are
// dropped.
func FromMatrix(m [][]bool) (Track, error) {
	var t Track
	if len(m) != Rows {
		return t, fmt.Errorf("%w: want %d rows, got %d", ErrMalformedMatrix, Rows, len(m))
	}
	for r, row := range m {
		for c := 0; c < Cols && c < len(row); c++ {
			t.Set(Cell{Row: r, Col: c}, row[c])
		}
	}
	return t, nil
}

// Matrix returns the track as a freshly allocated row-major matrix.
func (t Track) Matrix() [][]bool {
	m := make([][]bool, Rows)
	for r := range t {
		m[r] = make([]bool, Cols)
		copy(m[r], t[r][:])
	}
	return m
}

// Render draws the track, placing marker at cell at when at is in bounds.
// Path cells are '#', empty cells '.', and the start cell 'S'.
func (t Track) Render(at Cell, marker rune) string {
	var b strings.Builder
	for r := range t {
		for c := range t[r] {
			cell := Cell{Row: r, Col: c}
			switch {
			case cell == at:
				b.WriteRune(marker)
			case IsStart(cell) && t[r][c]:
				b.WriteByte('S')
			case t[r][c]:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String draws the track without a robot.
func (t Track) String() string {
	return t.Render(Cell{Row: -1, Col: -1}, 0)
}
