package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/robotrack/internal/config"
	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL level loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load discovers every .hcl file under paths and merges them, in walk order,
// into a single model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find level files in %s: %w", path, err)
		}
		logger.Debug("Discovered HCL files.", "path", path, "count", len(files))

		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read HCL file %s: %w", file, err)
			}
			if err := l.loadSource(ctx, parser, model, file, src); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("HCL loading complete.", "has_track", model.Track != nil, "instructions", len(model.Program), "socketio", model.SocketIO != nil)
	return model, nil
}

// loadSource parses one level file and merges it into model.
func (l *Loader) loadSource(ctx context.Context, parser *hclparse.Parser, model *config.Model, filename string, src []byte) error {
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.merge(ctx, model, hclFile.Body, filename)
}
