// Package tracksource chooses the track for a new round: either the player's
// saved custom track or one of the built-in layouts.
package tracksource

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/track"
	"github.com/specialistvlad/robotrack/internal/trackstore"
)

// Origin says where a loaded track came from.
type Origin struct {
	// Custom is true for the saved track.
	Custom bool
	// Preset is the catalog index when Custom is false.
	Preset int
}

func (o Origin) String() string {
	if o.Custom {
		return "custom"
	}
	return fmt.Sprintf("preset %d", o.Preset)
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// Source loads and saves tracks.
type Source struct {
	store trackstore.Store
	pick  Picker
}

// New returns a source over store. A nil pick picks uniformly at random.
func New(store trackstore.Store, pick Picker) *Source {
	if pick == nil {
		pick = rand.IntN
	}
	return &Source{store: store, pick: pick}
}

// Saved returns the custom track if one is stored and readable. Any read or
// shape problem is logged and reported as "no custom track".
func (s *Source) Saved(ctx context.Context) (track.Track, bool) {
	logger := ctxlog.FromContext(ctx)
	m, found, err := s.store.Get(ctx, trackstore.Key)
	if err != nil {
		logger.Debug("Saved track unreadable, ignoring it.", "error", err)
		return track.Track{}, false
	}
	if !found {
		return track.Track{}, false
	}
	t, err := track.FromMatrix(m)
	if err != nil {
		logger.Debug("Saved track malformed, ignoring it.", "error", err)
		return track.Track{}, false
	}
	return t, true
}

// Load picks a track for a new round from the saved track (when present)
// followed by the built-in catalog.
func (s *Source) Load(ctx context.Context) (track.Track, Origin) {
	presets := track.Presets()
	saved, ok := s.Saved(ctx)

	n := len(presets)
	if ok {
		n++
	}
	i := s.pick(n)
	if ok {
		if i == 0 {
			return saved, Origin{Custom: true}
		}
		i--
	}
	return presets[i], Origin{Preset: i}
}

// Save persists t as the custom track. A track without path cells is refused.
func (s *Source) Save(ctx context.Context, t track.Track) error {
	if !t.HasPath() {
		return track.ErrEmptyTrack
	}
	if err := s.store.Set(ctx, trackstore.Key, t.Matrix()); err != nil {
		return fmt.Errorf("failed to save custom track: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Custom track saved.", "cells", t.Count())
	return nil
}
