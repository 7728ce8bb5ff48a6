package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/executor"
)

type statusResponse struct {
	State string      `json:"state"`
	Last  *lastResult `json:"last,omitempty"`
}

type lastResult struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Steps   int    `json:"steps"`
	Final   string `json:"final"`
	Goal    string `json:"goal"`
}

// healthHandler logs the request and reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// statusHandler reports the executor state and the last result as JSON.
func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)

	resp := statusResponse{State: executor.Idle.String()}
	if exec := a.Executor(); exec != nil {
		resp.State = exec.State().String()
		if res, ok := exec.Last(); ok {
			resp.Last = &lastResult{
				Outcome: res.Outcome.String(),
				Reason:  executor.Reason(res.Err),
				Message: executor.Message(res),
				Steps:   res.Steps,
				Final:   res.Final.String(),
				Goal:    res.Goal.String(),
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Error("Status encoding failed.", "error", err)
	}
}

func (a *App) newHealthcheckServer(port int) *http.Server {
	a.logger.Debug("Configuring health check server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	a.mu.Lock()
	a.httpServer = srv
	a.mu.Unlock()
	return srv
}

// serveHealthcheck blocks until the server is shut down.
func (a *App) serveHealthcheck(ctx context.Context, srv *http.Server) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", srv.Addr))
	// ListenAndServe returns ErrServerClosed on graceful shutdown.
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Health check server failed unexpectedly", "error", err)
		return fmt.Errorf("health check server: %w", err)
	}
	return nil
}

func (a *App) closeHealthcheckServer(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Closing health check server...")

	a.mu.Lock()
	srv := a.httpServer
	a.mu.Unlock()
	if srv == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
