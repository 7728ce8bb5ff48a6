package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/robotrack/internal/app"
	"github.com/specialistvlad/robotrack/internal/cli"
	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/stretchr/testify/require"
)

func writeLevel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to set up test file")
	return path
}

const level = `
settings {
  tick = "1ms"
}

track {
  layout = [".....", ".....", ".....", "#####"]
}
`

func TestRun_LoadErrorIsUsageError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeLevel(t, `
		track {
			layout = [
		// Missing closing brackets here
	`)
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{path})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(runErr, &exitErr), "load failures should map to an ExitError")
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-program", "B F F B", "-log-level", "warn", writeLevel(t, level)})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Mission accomplished!")
}

func TestRun_FailureIsRunError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-program", "F R F", "-quiet", writeLevel(t, level)})

	var runErr *app.RunError
	require.ErrorAs(t, err, &runErr)
	require.Equal(t, executor.Failure, runErr.Result.Outcome)
	require.Equal(t, "Try again: the robot left the track.", err.Error())
}

func TestRun_BadProgramIsUsageError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-program", "F X", writeLevel(t, level)})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}
