package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/robotrack/internal/app"
	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/hclstore"
	"github.com/specialistvlad/robotrack/internal/inmemorystore"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/testutil"
	"github.com/specialistvlad/robotrack/internal/track"
	"github.com/specialistvlad/robotrack/internal/trackstore"
	"github.com/stretchr/testify/require"
)

const bottomRowLevel = `
track {
  layout = [
    ".....",
    ".....",
    ".....",
    "S####",
  ]
}
`

func firstPick(int) int { return 0 }

func requireRunError(t *testing.T, err error) executor.Result {
	t.Helper()
	var runErr *app.RunError
	require.True(t, errors.As(err, &runErr), "expected a RunError, got %v", err)
	return runErr.Result
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"level.hcl": bottomRowLevel + `
program {
  instructions = ["loop", "forward", "forward", "loop"]
}
`,
	}
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{})

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "Mission accomplished!")
	require.Contains(t, result.Output, "Goal: (3,4) at distance 4")
	require.Contains(t, result.Output, "Track chosen.")

	res, ok := result.App.Executor().Last()
	require.True(t, ok)
	require.Equal(t, executor.Success, res.Outcome)
	require.Equal(t, 4, res.Steps)
	require.Equal(t, executor.HaltedSuccess, result.App.Executor().State())
}

func TestRun_ProgramFlagOverridesLevel(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"level.hcl": bottomRowLevel + `
program {
  instructions = ["F"]
}
`,
	}
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{Program: "F F F F"})
	require.NoError(t, result.Err)
}

func TestRun_ToggleReshapesTrack(t *testing.T) {
	t.Parallel()

	files := map[string]string{"level.hcl": bottomRowLevel}
	cfg := app.Config{
		Program: "L F F F",
		Toggle: []track.Cell{
			{Row: 3, Col: 1}, {Row: 3, Col: 2}, {Row: 3, Col: 3}, {Row: 3, Col: 4}, // clear the bottom row
			{Row: 2, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 0}, // first column
		},
	}
	result := testutil.RunLevelTest(context.Background(), t, files, cfg)

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "Track cell toggled.")
	require.Contains(t, result.Output, "Goal: (0,0) at distance 3")

	res, ok := result.App.Executor().Last()
	require.True(t, ok)
	require.Equal(t, track.Cell{Row: 0, Col: 0}, res.Final.Pos)
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		level       string
		program     string
		wantErr     error
		wantOutcome executor.Outcome
	}{
		{
			name:        "goal not reached",
			level:       bottomRowLevel,
			program:     "F",
			wantErr:     executor.ErrGoalNotReached,
			wantOutcome: executor.Failure,
		},
		{
			name:        "off track",
			level:       bottomRowLevel,
			program:     "L F",
			wantErr:     robot.ErrOffTrack,
			wantOutcome: executor.Failure,
		},
		{
			name: "start not on path",
			level: `
track {
  layout = [".....", ".....", ".....", ".####"]
}
`,
			program:     "F",
			wantErr:     track.ErrStartNotOnPath,
			wantOutcome: executor.Rejected,
		},
		{
			name:        "unbalanced loop",
			level:       bottomRowLevel,
			program:     "B F",
			wantErr:     program.ErrUnbalancedLoop,
			wantOutcome: executor.Rejected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := testutil.RunLevelTest(context.Background(), t, map[string]string{"level.hcl": tc.level}, app.Config{Program: tc.program})
			require.Error(t, result.Err)

			res := requireRunError(t, result.Err)
			require.Equal(t, tc.wantOutcome, res.Outcome)
			require.ErrorIs(t, result.Err, tc.wantErr)
			require.Equal(t, executor.HaltedFailure, result.App.Executor().State())
		})
	}
}

func TestRun_TrackSourceFallback(t *testing.T) {
	t.Parallel()

	result := testutil.RunLevelTest(context.Background(), t, nil, app.Config{Program: "F F F F"}, app.WithPicker(firstPick))
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "preset 0")
}

func TestRun_UsesSavedCustomTrack(t *testing.T) {
	t.Parallel()

	store := inmemorystore.New()
	column := track.Parse([track.Rows]string{"#....", "#....", "#....", "#...."})
	require.NoError(t, store.Set(context.Background(), trackstore.Key, column.Matrix()))

	result := testutil.RunLevelTest(context.Background(), t, nil, app.Config{Program: "L F F F"},
		app.WithPicker(firstPick), app.WithStore(store))
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "custom")
}

func TestRun_SaveTrackToFile(t *testing.T) {
	t.Parallel()

	storePath := filepath.Join(t.TempDir(), "tracks.hcl")
	files := map[string]string{"level.hcl": bottomRowLevel}
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{
		Program:   "F F F F",
		StorePath: storePath,
		SaveTrack: true,
	})
	require.NoError(t, result.Err)

	m, found, err := hclstore.New(storePath).Get(context.Background(), trackstore.Key)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, track.Presets()[0].Matrix(), m)
}

func TestRun_CancelledContextAborts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := map[string]string{"level.hcl": bottomRowLevel}
	result := testutil.RunLevelTest(ctx, t, files, app.Config{Program: "F F F F", Tick: time.Hour})

	require.ErrorIs(t, result.Err, executor.ErrAborted)
	res := requireRunError(t, result.Err)
	require.Equal(t, executor.Aborted, res.Outcome)
	require.Equal(t, executor.Idle, result.App.Executor().State())
	require.Contains(t, result.Output, "Shutdown requested, resetting the executor.")

	_, ok := result.App.Executor().Last()
	require.False(t, ok, "reset clears the last result")
}

func TestRun_InvalidProgramIsConfigError(t *testing.T) {
	t.Parallel()

	files := map[string]string{"level.hcl": bottomRowLevel}
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{Program: "F jump"})
	require.ErrorIs(t, result.Err, app.ErrConfig)
	require.Nil(t, result.App.Executor(), "no executor is built for an invalid program")
}

func TestNewApp_LevelParseError(t *testing.T) {
	t.Parallel()

	result := testutil.RunLevelTest(context.Background(), t, map[string]string{"level.hcl": `track {`}, app.Config{})
	require.Error(t, result.Err)
	require.Nil(t, result.App)
	require.Contains(t, result.Err.Error(), "failed to load level")
}

func TestNewApp_LogFileFanout(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "run.log")
	files := map[string]string{"level.hcl": bottomRowLevel}
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{
		Program: "F F F F",
		LogFile: logPath,
	})
	require.NoError(t, result.Err)
	require.NoError(t, result.App.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"Run started."`)
	require.Contains(t, result.Output, "Run started.")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := app.NewConfig(app.Config{})
	require.Error(t, err)

	_, err = app.NewConfig(app.Config{Program: "F", Tick: -time.Second})
	require.Error(t, err)

	_, err = app.NewConfig(app.Config{LevelPath: "level.hcl", HealthcheckPort: 70000})
	require.Error(t, err)

	cfg, err := app.NewConfig(app.Config{LevelPath: "level.hcl"})
	require.NoError(t, err)
	require.Equal(t, "level.hcl", cfg.LevelPath)
}
