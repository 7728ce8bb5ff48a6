package robot

import (
	"testing"

	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bottomRow() track.Track {
	return track.Parse([track.Rows]string{
		".....",
		".....",
		".....",
		"#####",
	})
}

func TestHeadingRotation(t *testing.T) {
	for _, h := range []Heading{North, East, South, West} {
		assert.Equal(t, h, h.Right().Right().Right().Right(), "four rights from %s", h)
		assert.Equal(t, h, h.Left().Left().Left().Left(), "four lefts from %s", h)
		assert.Equal(t, h, h.Left().Right())
	}
	assert.Equal(t, West, North.Left())
	assert.Equal(t, South, West.Left())
	assert.Equal(t, East, South.Left())
	assert.Equal(t, North, East.Left())
	assert.Equal(t, East, North.Right())
}

func TestTurnsRestoreHeading(t *testing.T) {
	for _, in := range []program.Instruction{program.TurnLeft, program.TurnRight} {
		sim := New(bottomRow())
		for range 4 {
			_, err := sim.Apply(in)
			require.NoError(t, err)
		}
		assert.Equal(t, Initial(), sim.State())
	}
}

func TestForward(t *testing.T) {
	sim := New(bottomRow())
	var st State
	var err error
	for range 4 {
		st, err = sim.Apply(program.Forward)
		require.NoError(t, err)
	}
	assert.Equal(t, State{Pos: track.Cell{Row: 3, Col: 4}, Heading: East}, st)
}

func TestOffTrack(t *testing.T) {
	testCases := []struct {
		name    string
		steps   []program.Instruction
		wantPos track.Cell
	}{
		{
			name:    "onto empty cell",
			steps:   []program.Instruction{program.Forward, program.TurnLeft, program.Forward},
			wantPos: track.Cell{Row: 3, Col: 1},
		},
		{
			name:    "past the right edge",
			steps:   []program.Instruction{program.Forward, program.Forward, program.Forward, program.Forward, program.Forward},
			wantPos: track.Cell{Row: 3, Col: 4},
		},
		{
			name:    "below the grid",
			steps:   []program.Instruction{program.TurnRight, program.Forward},
			wantPos: track.Start,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sim := New(bottomRow())
			var err error
			for _, in := range tc.steps {
				if _, err = sim.Apply(in); err != nil {
					break
				}
			}
			require.ErrorIs(t, err, ErrOffTrack)
			assert.Equal(t, tc.wantPos, sim.State().Pos)

			_, err = sim.Apply(program.TurnLeft)
			require.ErrorIs(t, err, ErrHalted)
			assert.Equal(t, tc.wantPos, sim.State().Pos)
		})
	}
}

func TestLoopMarkerRejected(t *testing.T) {
	sim := New(bottomRow())
	_, err := sim.Apply(program.LoopMarker)
	require.ErrorIs(t, err, ErrNotPrimitive)
	assert.Equal(t, Initial(), sim.State())

	_, err = sim.Apply(program.Forward)
	require.NoError(t, err, "a rejected marker does not halt the simulator")
}

func TestSimulatorOwnsTrackCopy(t *testing.T) {
	tr := bottomRow()
	sim := New(tr)
	tr.Set(track.Cell{Row: 3, Col: 1}, false)

	_, err := sim.Apply(program.Forward)
	require.NoError(t, err)
}
