package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/robot"
	"github.com/specialistvlad/robotrack/internal/track"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted by the SocketIO sink.
const (
	EventStart  = "run:start"
	EventTick   = "run:tick"
	EventFinish = "run:finish"
)

// SocketIOConfig configures the connection to a progress server.
type SocketIOConfig struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// emitter is the part of *socket.Socket the sink uses.
type emitter interface {
	Emit(ev string, args ...any) error
}

// SocketIO streams run progress to a socket.io server.
type SocketIO struct {
	io     emitter
	client *socket.Socket
}

// DialSocketIO connects to the server described by cfg and waits for the
// connection to be established.
func DialSocketIO(ctx context.Context, cfg SocketIOConfig) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", cfg.URL)
	logger.Info("Connecting progress stream...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 15 * time.Second
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &SocketIO{io: io, client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(cfg.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", cfg.ConnectTimeout)
	}
}

// Close disconnects from the server.
func (s *SocketIO) Close() error {
	if s.client != nil {
		s.client.Disconnect()
	}
	return nil
}

// Started implements executor.Sink.
func (s *SocketIO) Started(prog *program.Program, goal track.Cell, distance int, initial robot.State) {
	s.io.Emit(EventStart, map[string]any{
		"program":  program.Format(prog.Raw),
		"expanded": program.Format(prog.Steps),
		"sources":  prog.Sources,
		"goal":     cellPayload(goal),
		"distance": distance,
		"state":    statePayload(initial),
	})
}

// Tick implements executor.Sink.
func (s *SocketIO) Tick(t executor.Tick) {
	s.io.Emit(EventTick, map[string]any{
		"step":        t.Step,
		"source":      t.Source,
		"instruction": t.Instruction.String(),
		"state":       statePayload(t.State),
	})
}

// Finished implements executor.Sink.
func (s *SocketIO) Finished(r executor.Result) {
	s.io.Emit(EventFinish, map[string]any{
		"outcome": r.Outcome.String(),
		"reason":  executor.Reason(r.Err),
		"message": executor.Message(r),
		"steps":   r.Steps,
		"state":   statePayload(r.Final),
		"goal":    cellPayload(r.Goal),
	})
}

func cellPayload(c track.Cell) map[string]any {
	return map[string]any{"row": c.Row, "col": c.Col}
}

func statePayload(st robot.State) map[string]any {
	return map[string]any{"row": st.Pos.Row, "col": st.Pos.Col, "heading": st.Heading.String()}
}
