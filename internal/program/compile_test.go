package program

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	F = Forward
	L = TurnLeft
	R = TurnRight
	B = LoopMarker
)

func TestExpand(t *testing.T) {
	testCases := []struct {
		name        string
		raw         []Instruction
		wantSteps   []Instruction
		wantSources []int
	}{
		{
			name:        "no loops",
			raw:         []Instruction{F, L, F, R},
			wantSteps:   []Instruction{F, L, F, R},
			wantSources: []int{0, 1, 2, 3},
		},
		{
			name:        "loop body doubled",
			raw:         []Instruction{F, B, L, R, B},
			wantSteps:   []Instruction{F, L, R, L, R},
			wantSources: []int{0, 2, 3, 2, 3},
		},
		{
			name:        "two consecutive loops",
			raw:         []Instruction{B, F, B, B, R, B, L},
			wantSteps:   []Instruction{F, F, R, R, L},
			wantSources: []int{1, 1, 4, 4, 6},
		},
		{
			name:        "empty loop",
			raw:         []Instruction{B, B, F},
			wantSteps:   []Instruction{F},
			wantSources: []int{2},
		},
		{
			name:        "unclosed marker swallows the rest",
			raw:         []Instruction{F, B, L, R},
			wantSteps:   []Instruction{F},
			wantSources: []int{0},
		},
		{
			name: "only markers",
			raw:  []Instruction{B, B},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			steps, sources := Expand(tc.raw)
			if diff := cmp.Diff(tc.wantSteps, steps); diff != "" {
				t.Errorf("steps mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantSources, sources); diff != "" {
				t.Errorf("sources mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandLoopBodyLength(t *testing.T) {
	body := []Instruction{F, L, F, R, R}
	raw := append([]Instruction{R, B}, body...)
	raw = append(raw, B)

	steps, sources := Expand(raw)
	require.Len(t, steps, 1+2*len(body))
	for k := range body {
		assert.Equal(t, body[k], steps[1+k])
		assert.Equal(t, body[k], steps[1+len(body)+k])
		assert.Equal(t, 2+k, sources[1+k])
		assert.Equal(t, 2+k, sources[1+len(body)+k])
	}
}

func TestCompile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		raw := []Instruction{F, B, L, R, B}
		p, err := Compile(raw)
		require.NoError(t, err)
		assert.Equal(t, []Instruction{F, L, R, L, R}, p.Steps)
		assert.Equal(t, 5, p.Len())

		src, ok := p.Source(3)
		require.True(t, ok)
		assert.Equal(t, 2, src)
		_, ok = p.Source(5)
		assert.False(t, ok)

		// The program keeps its own copy of the raw sequence.
		raw[0] = R
		assert.Equal(t, F, p.Raw[0])
	})

	errorCases := []struct {
		name string
		raw  []Instruction
		want error
	}{
		{"empty", nil, ErrEmptyProgram},
		{"single marker", []Instruction{B}, ErrUnbalancedLoop},
		{"three markers", []Instruction{F, B, F, B, B, F}, ErrUnbalancedLoop},
		{"empty loop only", []Instruction{B, B}, ErrEmptyExpansion},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Compile(tc.raw)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, p)
		})
	}
}

func TestCompileOutputIsPrimitive(t *testing.T) {
	inputs := [][]Instruction{
		{F, B, L, B},
		{B, F, R, B, B, L, B},
		{F, F, F, F},
		{L, B, B, R},
	}
	for _, raw := range inputs {
		p, err := Compile(raw)
		require.NoError(t, err, Format(raw))
		for _, in := range p.Steps {
			assert.True(t, in.Primitive(), "%s produced %s", Format(raw), in)
		}
		assert.Len(t, p.Sources, len(p.Steps))
		for _, s := range p.Sources {
			assert.Less(t, s, len(raw))
		}
	}
}

func TestCompileIsIdempotentOnExpandedPrograms(t *testing.T) {
	first, err := Compile([]Instruction{F, B, L, F, B, R})
	require.NoError(t, err)

	second, err := Compile(first.Steps)
	require.NoError(t, err)
	assert.Equal(t, first.Steps, second.Steps)
}
