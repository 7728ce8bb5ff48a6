package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/specialistvlad/robotrack/internal/app"
	"github.com/specialistvlad/robotrack/internal/track"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("robotrack", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
RoboTrack - Program a robot to reach the far end of a 4x5 track.

Usage:
  robotrack [options] [LEVEL_PATH]

Arguments:
  LEVEL_PATH
    Path to a single .hcl level file or a directory containing .hcl files.

Instructions:
  F / forward   move one cell ahead
  L / left      turn left
  R / right     turn right
  B / loop      open or close a loop; the closed body runs twice

Options:
`)
		flagSet.PrintDefaults()
	}

	levelFlag := flagSet.String("level", "", "Path to the level file or directory.")
	lFlag := flagSet.String("l", "", "Path to the level file or directory (shorthand).")
	programFlag := flagSet.String("program", "", "Instructions to run, e.g. \"F B F R B\". Overrides the level's program.")
	tickFlag := flagSet.Duration("tick", 0, "Pause between instructions. 0 uses the level's tick or 420ms.")
	storeFlag := flagSet.String("store", "", "Path of the HCL file holding the custom track. Empty keeps it in memory.")
	saveTrackFlag := flagSet.Bool("save-track", false, "Save the chosen track as the custom track.")
	quietFlag := flagSet.Bool("quiet", false, "Do not print the board.")
	toggleFlag := flagSet.String("toggle", "", "Cells to flip on the chosen track before the run, e.g. \"2,1 1,1\" (row,col).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	socketIOFlag := flagSet.String("socketio-url", "", "Socket.IO server URL to stream run progress to.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Also write JSON logs to this file.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *levelFlag != "" {
		path = *levelFlag
	} else if *lFlag != "" {
		path = *lFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Level path determined.", "path", path)

	if path == "" && *programFlag == "" {
		slog.Debug("No level path or program provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	toggle, err := parseCells(*toggleFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid toggle: %v", err)}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		LevelPath:       path,
		Program:         *programFlag,
		Tick:            *tickFlag,
		StorePath:       *storeFlag,
		SaveTrack:       *saveTrackFlag,
		Quiet:           *quietFlag,
		Toggle:          toggle,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		LogFile:         *logFileFlag,
		HealthcheckPort: *healthPortFlag,
		SocketIOURL:     *socketIOFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseCells reads "row,col" pairs separated by spaces or semicolons.
func parseCells(s string) ([]track.Cell, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ';' || r == '\t'
	})
	var cells []track.Cell
	for _, f := range fields {
		rowText, colText, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("%q is not a row,col pair", f)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowText))
		if err != nil {
			return nil, fmt.Errorf("%q: bad row: %w", f, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colText))
		if err != nil {
			return nil, fmt.Errorf("%q: bad column: %w", f, err)
		}
		cells = append(cells, track.Cell{Row: row, Col: col})
	}
	return cells, nil
}
