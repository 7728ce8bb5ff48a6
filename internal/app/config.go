package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/robotrack/internal/track"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LevelPath string // hcl file or directory
	Program   string // instruction text, overrides the level's program

	Tick      time.Duration // zero uses the level's tick or the default
	StorePath string        // custom track file, overrides the level's store
	SaveTrack bool          // persist the chosen track as the custom track
	Quiet     bool          // no board output
	Toggle    []track.Cell  // cells flipped on the chosen track before the run

	LogFormat       string
	LogLevel        string
	LogFile         string
	HealthcheckPort int
	SocketIOURL     string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.LevelPath == "" && cfg.Program == "" {
		return nil, errors.New("either a level path or a program is required")
	}
	if cfg.Tick < 0 {
		return nil, fmt.Errorf("tick must not be negative, got %s", cfg.Tick)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck-port out of range: %d", cfg.HealthcheckPort)
	}
	for _, c := range cfg.Toggle {
		if !c.InBounds() {
			return nil, fmt.Errorf("toggle cell %s is outside the %dx%d track", c, track.Rows, track.Cols)
		}
	}
	return &cfg, nil
}
