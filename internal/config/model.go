package config

import "time"

// Model is the unified, format-agnostic representation of a level.
type Model struct {
	Settings Settings
	// Track is the level's layout as a row-major matrix, nil when the level
	// leaves the choice to the track source.
	Track [][]bool
	// Program is the level's instruction tokens, nil when not set.
	Program  []string
	SocketIO *SocketIO
}

// Settings holds run pacing and persistence options.
type Settings struct {
	// Tick is the pause between instructions; zero means the default.
	Tick time.Duration
	// StorePath is the custom track store file; empty means in-memory.
	StorePath string
}

// SocketIO configures the optional progress stream.
type SocketIO struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}
