// Package sink provides executor.Sink implementations that report run
// progress to a terminal, to the structured log, or to a socket.io server.
package sink

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/track"
)

// Printer draws the board after every step.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	board track.Track
	prog  *program.Program
}

// NewPrinter returns a printer that draws on board and writes to w.
func NewPrinter(w io.Writer, board track.Track) *Printer {
	return &Printer{w: w, board: board}
}

// Started implements executor.Sink.
func (p *Printer) Started(prog *program.Program, goal track.Cell, distance int, initial robot.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prog = prog

	fmt.Fprintf(p.w, "Program: %s\n", program.Format(prog.Raw))
	fmt.Fprintf(p.w, "Expanded: %s (%d steps)\n", program.Format(prog.Steps), prog.Len())
	fmt.Fprintf(p.w, "Goal: %s at distance %d\n\n", goal, distance)
	fmt.Fprint(p.w, p.board.Render(initial.Pos, initial.Heading.Arrow()))
}

// Tick implements executor.Sink.
func (p *Printer) Tick(t executor.Tick) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\nstep %d  %s\n", t.Step+1, p.highlight(t.Source))
	fmt.Fprint(p.w, p.board.Render(t.State.Pos, t.State.Heading.Arrow()))
}

// highlight renders the raw program with the instruction at src bracketed.
func (p *Printer) highlight(src int) string {
	if p.prog == nil {
		return ""
	}
	parts := make([]string, len(p.prog.Raw))
	for i, in := range p.prog.Raw {
		if i == src {
			parts[i] = "[" + in.Symbol() + "]"
			continue
		}
		parts[i] = in.Symbol()
	}
	return strings.Join(parts, " ")
}

// Finished implements executor.Sink.
func (p *Printer) Finished(r executor.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\n%s\n", executor.Message(r))
}

// Multi fans every event out to each sink in order.
type Multi []executor.Sink

// Started implements executor.Sink.
func (m Multi) Started(prog *program.Program, goal track.Cell, distance int, initial robot.State) {
	for _, s := range m {
		s.Started(prog, goal, distance, initial)
	}
}

// Tick implements executor.Sink.
func (m Multi) Tick(t executor.Tick) {
	for _, s := range m {
		s.Tick(t)
	}
}

// Finished implements executor.Sink.
func (m Multi) Finished(r executor.Result) {
	for _, s := range m {
		s.Finished(r)
	}
}
