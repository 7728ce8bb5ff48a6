package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/program"
	"github.com/specialistvlad/robotrack/internal/sink"
	"github.com/specialistvlad/robotrack/internal/track"
	"golang.org/x/sync/errgroup"
)

// ErrConfig marks failures caused by the level or the command line rather
// than by the run itself.
var ErrConfig = errors.New("invalid configuration")

// RunError reports a run that did not end in success.
type RunError struct {
	Result executor.Result
}

func (e *RunError) Error() string {
	return executor.Message(e.Result)
}

func (e *RunError) Unwrap() error { return e.Result.Err }

// Run chooses a track, compiles the program and executes it to completion.
// Cancelling ctx aborts the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	board, origin, err := a.chooseTrack(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Track chosen.", "origin", origin, "cells", board.Count())

	for _, c := range a.config.Toggle {
		on := board.Toggle(c)
		a.logger.Info("Track cell toggled.", "cell", c.String(), "on", on)
	}

	if a.config.SaveTrack {
		if err := a.source.Save(ctx, board); err != nil {
			return fmt.Errorf("failed to save track: %w", err)
		}
	}

	raw, err := a.program()
	if err != nil {
		return err
	}

	progress, closeSinks, err := a.sinks(ctx, board)
	if err != nil {
		return err
	}
	defer closeSinks()

	exec := executor.New(a.clock, a.tick, progress)
	a.mu.Lock()
	a.executor = exec
	a.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stopRun := context.WithCancel(gctx)
	defer stopRun()

	if a.config.HealthcheckPort > 0 {
		srv := a.newHealthcheckServer(a.config.HealthcheckPort)
		g.Go(func() error {
			return a.serveHealthcheck(ctx, srv)
		})
		g.Go(func() error {
			<-runCtx.Done()
			return a.closeHealthcheckServer(ctx)
		})
	}

	var res executor.Result
	g.Go(func() error {
		defer stopRun()
		a.logger.Info("🚀 Starting run...", "tick", a.tick)
		// The run outlives runCtx; shutdown goes through Reset below.
		h, err := exec.Start(context.WithoutCancel(runCtx), board, raw)
		if err != nil {
			// Rejections are recorded as the executor's last result.
			res, _ = exec.Last()
			return nil
		}
		if _, err := h.Wait(runCtx); err != nil {
			a.logger.Info("Shutdown requested, resetting the executor.")
			exec.Reset()
		}
		res = h.Result()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.", "outcome", res.Outcome.String())
	if res.Outcome != executor.Success {
		return &RunError{Result: res}
	}
	return nil
}

// chooseTrack prefers the level's track and falls back to the track source.
func (a *App) chooseTrack(ctx context.Context) (track.Track, string, error) {
	if a.level.Track != nil {
		t, err := track.FromMatrix(a.level.Track)
		if err != nil {
			return track.Track{}, "", fmt.Errorf("%w: level track: %w", ErrConfig, err)
		}
		return t, "level", nil
	}
	t, origin := a.source.Load(ctx)
	return t, origin.String(), nil
}

// program prefers the command line program over the level's one.
func (a *App) program() ([]program.Instruction, error) {
	var (
		raw []program.Instruction
		err error
	)
	if a.config.Program != "" {
		if raw, err = program.ParseSequence(a.config.Program); err != nil {
			return nil, fmt.Errorf("%w: program: %w", ErrConfig, err)
		}
	} else if raw, err = program.ParseAll(a.level.Program); err != nil {
		return nil, fmt.Errorf("%w: level program: %w", ErrConfig, err)
	}

	var b program.Builder
	b.Append(raw...)
	a.logger.Debug("Program assembled.", "instructions", b.Len())
	return b.Snapshot(), nil
}

func (a *App) sinks(ctx context.Context, board track.Track) (executor.Sink, func(), error) {
	progress := sink.Multi{sink.NewLogger(a.logger)}
	if !a.config.Quiet {
		progress = append(progress, sink.NewPrinter(a.outW, board))
	}

	cfg, ok := a.socketIOConfig()
	if !ok {
		return progress, func() {}, nil
	}
	stream, err := sink.DialSocketIO(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect progress stream: %w", err)
	}
	progress = append(progress, stream)
	return progress, func() {
		if err := stream.Close(); err != nil {
			a.logger.Warn("Progress stream close failed.", "error", err)
		}
	}, nil
}

// socketIOConfig merges the level's socketio block with the command line URL.
func (a *App) socketIOConfig() (sink.SocketIOConfig, bool) {
	cfg := sink.SocketIOConfig{Namespace: "/"}
	if s := a.level.SocketIO; s != nil {
		cfg = sink.SocketIOConfig{
			URL:                s.URL,
			Namespace:          s.Namespace,
			InsecureSkipVerify: s.InsecureSkipVerify,
			ConnectTimeout:     s.ConnectTimeout,
		}
	}
	if a.config.SocketIOURL != "" {
		cfg.URL = a.config.SocketIOURL
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	return cfg, cfg.URL != ""
}
