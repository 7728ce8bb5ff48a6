package integration_tests

import (
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/robotrack/internal/app"
	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestLevel_SerpentineWithLoops validates a full run over the serpentine
// layout using a program that leans on loop expansion.
func TestLevel_SerpentineWithLoops(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	levelHCL := `
		track {
			layout = [
				"#####",
				"....#",
				"#####",
				"#....",
			]
		}

		program {
			source = "L F R B F F B L F F L B F F B"
		}
	`
	files := map[string]string{"level.hcl": levelHCL}

	// --- Act ---
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{})

	// --- Assert ---
	require.NoError(t, result.Err, "app.Run() returned an unexpected error")
	require.Contains(t, result.Output, "Goal: (0,0) at distance 11")
	require.Contains(t, result.Output, "Mission accomplished!")

	res, ok := result.App.Executor().Last()
	require.True(t, ok)
	require.Equal(t, executor.Success, res.Outcome)
	require.Equal(t, 15, res.Steps)
	require.Equal(t, "(0,0) W", res.Final.String())
}

// TestLevel_QuietSuppressesBoard validates that -quiet keeps the board out of
// the output while the structured log still reports the outcome.
func TestLevel_QuietSuppressesBoard(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"level.hcl": `
		track {
			layout = [".....", ".....", ".....", "#####"]
		}
	`}

	// --- Act ---
	result := testutil.RunLevelTest(context.Background(), t, files, app.Config{Program: "F F F F", Quiet: true})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.False(t, strings.Contains(result.Output, "Mission accomplished!"), "printer output should be suppressed")
	require.Contains(t, result.Output, "Run finished.")
	require.Contains(t, result.Output, "outcome=success")
}
