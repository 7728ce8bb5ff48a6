package executor

import (
	"context"
)

// RunHandle controls one active run. It is owned by the executor; callers
// only use it to abort or wait.
type RunHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// Abort stops the run and blocks until it has halted. The instruction being
// applied when Abort is called either completes or never starts; no further
// instructions run. Abort is a no-op on a finished run. It must not be called
// from a Sink callback.
func (h *RunHandle) Abort() {
	h.cancel()
	<-h.done
}

// Done is closed once the run has halted and its result is available.
func (h *RunHandle) Done() <-chan struct{} {
	return h.done
}

// Result returns the terminal result. It is only valid after Done is closed.
func (h *RunHandle) Result() Result {
	<-h.done
	return h.result
}

// Wait blocks until the run halts or ctx is done. Cancelling ctx does not
// abort the run.
func (h *RunHandle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
