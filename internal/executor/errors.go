package executor

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/track"
)

var (
	// ErrRunActive is returned by Start while another run is active.
	ErrRunActive = errors.New("a run is already active")
	// ErrGoalNotReached is the failure when the program ends away from the goal.
	ErrGoalNotReached = errors.New("did not reach the goal")
	// ErrAborted is the result error of an aborted run.
	ErrAborted = errors.New("run aborted")
)

// Outcome classifies how a run ended.
type Outcome int

const (
	// Success means the robot ended on the goal cell.
	Success Outcome = iota
	// Failure means the robot left the track or ended elsewhere.
	Failure
	// Rejected means a precondition failed and nothing ran.
	Rejected
	// Aborted means the run was cancelled.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Rejected:
		return "rejected"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Result is the terminal report of a run.
type Result struct {
	Outcome Outcome
	// Err is nil on success and carries the reason otherwise.
	Err   error
	Final robot.State
	Goal  track.Cell
	// Steps is how many instructions were applied.
	Steps int
}

// StepError ties an execution failure to the instruction that caused it.
type StepError struct {
	Step   int
	Source int
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (instruction %d): %v", e.Step, e.Source, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// reasons pairs each failure with its stable code and player-facing message.
var reasons = []struct {
	err     error
	code    string
	message string
}{
	{track.ErrEmptyTrack, "empty_track", "There is no track. Configure and save one, or use a built-in layout."},
	{program.ErrEmptyProgram, "empty_program", "Add some moves before running."},
	{track.ErrStartNotOnPath, "start_not_on_path", "The start cell is not on the track. Paint it in configure mode."},
	{program.ErrUnbalancedLoop, "unbalanced_loop", "Every loop must be closed by another loop marker."},
	{program.ErrEmptyExpansion, "empty_expansion", "The program is empty after expanding loops. Add some moves."},
	{robot.ErrOffTrack, "off_track", "Try again: the robot left the track."},
	{ErrGoalNotReached, "goal_not_reached", "Try again: the robot did not reach the goal."},
	{ErrAborted, "aborted", "The run was stopped."},
	{ErrRunActive, "run_active", "A run is already in progress."},
}

// Reason returns a stable code for err, "" for nil and "internal" for
// errors outside the taxonomy.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return "internal"
}

// Message returns the player-facing text for a result.
func Message(r Result) string {
	if r.Outcome == Success {
		return "Mission accomplished!"
	}
	for _, rs := range reasons {
		if errors.Is(r.Err, rs.err) {
			return rs.message
		}
	}
	return fmt.Sprintf("Unexpected error: %v", r.Err)
}
