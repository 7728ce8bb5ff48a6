package config

import "context"

// Loader is the interface for a format-specific level loader.
type Loader interface {
	// Load reads every level file found under paths and merges them into one
	// model. Later files override earlier ones block by block.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
