package sink

import (
	"log/slog"

	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/track"
)

// Logger reports run progress as structured log records.
type Logger struct {
	logger *slog.Logger
}

// NewLogger returns a sink writing to logger.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger.With("sink", "log")}
}

// Started implements executor.Sink.
func (l *Logger) Started(prog *program.Program, goal track.Cell, distance int, initial robot.State) {
	l.logger.Debug("Run progress started.", "raw", len(prog.Raw), "steps", prog.Len(), "goal", goal.String(), "distance", distance, "state", initial.String())
}

// Tick implements executor.Sink.
func (l *Logger) Tick(t executor.Tick) {
	l.logger.Debug("Run progress.", "step", t.Step, "source", t.Source, "instruction", t.Instruction.String(), "state", t.State.String())
}

// Finished implements executor.Sink.
func (l *Logger) Finished(r executor.Result) {
	attrs := []any{"outcome", r.Outcome.String(), "steps", r.Steps, "final", r.Final.String()}
	if r.Err != nil {
		attrs = append(attrs, "reason", executor.Reason(r.Err), "error", r.Err)
	}
	if r.Outcome == executor.Success {
		l.logger.Info("🏁 Run finished.", attrs...)
		return
	}
	l.logger.Warn("🏁 Run finished.", attrs...)
}
