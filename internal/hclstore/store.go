// Package hclstore implements trackstore.Store on top of a single HCL file.
//
// Each key is one labelled block:
//
//	track "track_5x4" {
//	  cells = [[false, false, false, false, false], ...]
//	}
//
// The file is read with hclparse and gohcl and written with hclwrite, so it
// stays human-editable.
package hclstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/trackstore"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// matrixType is the cty type of a stored matrix.
var matrixType = cty.List(cty.List(cty.Bool))

// storeFile is the top-level structure of a store file for decoding.
type storeFile struct {
	Tracks []*trackBlock `hcl:"track,block"`
	Remain hcl.Body      `hcl:",remain"`
}

type trackBlock struct {
	Key   string   `hcl:"key,label"`
	Cells [][]bool `hcl:"cells"`
}

// Store is a file-backed trackstore.Store. Access within one process is
// serialized; concurrent writers in other processes are not coordinated.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store persisting to path. The file is created on first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Get implements trackstore.Store.
func (s *Store) Get(ctx context.Context, key string) ([][]bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, false, err
	}
	m, ok := all[key]
	return m, ok, nil
}

// Set implements trackstore.Store. An unreadable existing file is replaced.
func (s *Store) Set(ctx context.Context, key string, matrix [][]bool) error {
	logger := ctxlog.FromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		logger.Warn("Existing track store is unreadable, replacing it.", "path", s.path, "error", err)
		all = make(map[string][][]bool)
	}
	if matrix == nil {
		matrix = [][]bool{}
	}
	all[key] = trackstore.Clone(matrix)

	data, err := encode(all)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create track store directory: %w", err)
	}
	// Readers see either the old file or the new one, never a partial write.
	if err := renameio.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write track store %s: %w", s.path, err)
	}
	logger.Debug("Track stored.", "path", s.path, "key", key)
	return nil
}

// readAll loads every block in the file. A missing file is an empty store.
func (s *Store) readAll() (map[string][][]bool, error) {
	all := make(map[string][][]bool)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return all, nil
		}
		return nil, fmt.Errorf("failed to read track store %s: %w", s.path, err)
	}

	file, diags := hclparse.NewParser().ParseHCL(data, s.path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse track store %s: %w", s.path, diags)
	}

	var parsed storeFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode track store %s: %w", s.path, diags)
	}
	for _, blk := range parsed.Tracks {
		all[blk.Key] = blk.Cells
	}
	return all, nil
}

// encode renders all tracks as HCL, ordered by key for stable output.
func encode(all map[string][][]bool) ([]byte, error) {
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, key := range keys {
		val, err := gocty.ToCtyValue(all[key], matrixType)
		if err != nil {
			return nil, fmt.Errorf("failed to encode track %q: %w", key, err)
		}
		if i > 0 {
			body.AppendNewline()
		}
		blk := body.AppendNewBlock("track", []string{key})
		blk.Body().SetAttributeValue("cells", val)
	}
	return f.Bytes(), nil
}

var _ trackstore.Store = (*Store)(nil)
