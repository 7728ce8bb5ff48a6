package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/specialistvlad/robotrack/internal/config"
	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/executor"
	"github.com/specialistvlad/robotrack/internal/hclstore"
	"github.com/specialistvlad/robotrack/internal/inmemorystore"
	"github.com/specialistvlad/robotrack/internal/scheduler"
	"github.com/specialistvlad/robotrack/internal/trackstore"
	"github.com/specialistvlad/robotrack/internal/tracksource"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	level   *config.Model
	store   trackstore.Store
	source  *tracksource.Source
	clock   scheduler.Clock
	tick    time.Duration
	logFile *os.File

	mu         sync.Mutex
	executor   *executor.Executor
	httpServer *http.Server
}

// Option customizes an App.
type Option func(*options)

type options struct {
	clock  scheduler.Clock
	picker tracksource.Picker
	store  trackstore.Store
}

// WithClock replaces the wall clock that paces runs.
func WithClock(c scheduler.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithPicker replaces the random track picker.
func WithPicker(p tracksource.Picker) Option {
	return func(o *options) { o.picker = p }
}

// WithStore replaces the custom track store chosen from the configuration.
func WithStore(s trackstore.Store) Option {
	return func(o *options) { o.store = s }
}

// NewApp is the constructor for the main application. It loads the level,
// if any, and wires the track store, the track source and the run pacing.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var logFile *os.File
	var fileW io.Writer
	if appConfig.LogFile != "" {
		f, err := os.OpenFile(appConfig.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logFile, fileW = f, f
	}

	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW, fileW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	level := &config.Model{}
	if appConfig.LevelPath != "" {
		var err error
		level, err = loader.Load(ctx, appConfig.LevelPath)
		if err != nil {
			closeFile(logFile)
			return nil, fmt.Errorf("failed to load level: %w", err)
		}
		logger.Debug("Level loaded.", "path", appConfig.LevelPath)
	}

	store := o.store
	if store == nil {
		storePath := appConfig.StorePath
		if storePath == "" {
			storePath = level.Settings.StorePath
		}
		if storePath != "" {
			store = hclstore.New(storePath)
			logger.Debug("Using file track store.", "path", storePath)
		} else {
			store = inmemorystore.New()
			logger.Debug("Using in-memory track store.")
		}
	}

	tick := appConfig.Tick
	if tick == 0 {
		tick = level.Settings.Tick
	}
	if tick == 0 {
		tick = scheduler.DefaultInterval
	}

	clock := o.clock
	if clock == nil {
		clock = scheduler.RealClock{}
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		level:   level,
		store:   store,
		source:  tracksource.New(store, o.picker),
		clock:   clock,
		tick:    tick,
		logFile: logFile,
	}, nil
}

// Executor returns the executor of the current run, or nil before Run.
// This is primarily for testing and the status endpoint.
func (a *App) Executor() *executor.Executor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.executor
}

// Close releases the resources held by the app.
func (a *App) Close() error {
	return closeFile(a.logFile)
}

func closeFile(f *os.File) error {
	if f == nil {
		return nil
	}
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
