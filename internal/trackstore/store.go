// Package trackstore defines the interface for persisting a player's custom
// track between sessions.
//
// # Why Track Store Exists
//
// Built-in layouts are compiled in, but a player may paint and save their own
// track. The store is a plain key/value contract over a boolean matrix so the
// backing medium can change (memory for tests, an HCL file for the CLI)
// without touching the track source that consumes it.
//
// # Contract
//
//   - Get returns found=false with a nil error when nothing is stored.
//   - Get returns an error when stored data exists but cannot be read. Callers
//     treat that the same as "no custom track".
//   - Set replaces the value stored under key.
//
// Implementations must be safe for concurrent use.
package trackstore

import "context"

// Key is the identifier the custom track is stored under.
const Key = "track_5x4"

// Store persists boolean matrices by key.
type Store interface {
	// Get returns the matrix stored under key.
	Get(ctx context.Context, key string) (matrix [][]bool, found bool, err error)
	// Set stores matrix under key, replacing any previous value.
	Set(ctx context.Context, key string, matrix [][]bool) error
}

// Clone returns a deep copy of m so stores never alias caller memory.
func Clone(m [][]bool) [][]bool {
	if m == nil {
		return nil
	}
	out := make([][]bool, len(m))
	for i, row := range m {
		out[i] = append([]bool(nil), row...)
	}
	return out
}
