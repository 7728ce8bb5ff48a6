package hcl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/robotrack/internal/config"
	"github.com/specialistvlad/robotrack/internal/ctxlog"
	"github.com/specialistvlad/robotrack/internal/track"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var matrixType = cty.List(cty.List(cty.Bool))

// merge decodes one file body and folds its blocks into model.
func (l *Loader) merge(ctx context.Context, model *config.Model, body hcl.Body, file string) error {
	logger := ctxlog.FromContext(ctx)

	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	for _, s := range root.Settings {
		if err := translateSettings(s, &model.Settings); err != nil {
			return fmt.Errorf("%s: settings: %w", file, err)
		}
	}
	for _, t := range root.Tracks {
		m, err := translateTrack(t)
		if err != nil {
			return fmt.Errorf("%s: track: %w", file, err)
		}
		if model.Track != nil {
			logger.Debug("Track block overridden.", "file", file)
		}
		model.Track = m
	}
	for _, p := range root.Programs {
		tokens, err := translateProgram(p)
		if err != nil {
			return fmt.Errorf("%s: program: %w", file, err)
		}
		model.Program = tokens
	}
	for _, s := range root.SocketIO {
		sio, err := translateSocketIO(s)
		if err != nil {
			return fmt.Errorf("%s: socketio: %w", file, err)
		}
		model.SocketIO = sio
	}
	return nil
}

// isSet reports whether an optional attribute was written in the file.
func isSet(expr hcl.Expression) (cty.Value, bool, error) {
	if expr == nil {
		return cty.NilVal, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, diags
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	return val, true, nil
}

// translateDuration accepts "250ms"-style strings or a number of milliseconds.
func translateDuration(expr hcl.Expression) (time.Duration, bool, error) {
	val, ok, err := isSet(expr)
	if err != nil || !ok {
		return 0, false, err
	}
	switch val.Type() {
	case cty.String:
		d, err := time.ParseDuration(val.AsString())
		if err != nil {
			return 0, false, err
		}
		return d, true, nil
	case cty.Number:
		var ms int64
		if err := gocty.FromCtyValue(val, &ms); err != nil {
			return 0, false, err
		}
		return time.Duration(ms) * time.Millisecond, true, nil
	}
	return 0, false, fmt.Errorf("duration must be a string or a number of milliseconds, got %s", val.Type().FriendlyName())
}

func translateSettings(s *settingsBlock, out *config.Settings) error {
	tick, ok, err := translateDuration(s.Tick)
	if err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	if ok {
		if tick <= 0 {
			return fmt.Errorf("tick must be positive, got %s", tick)
		}
		out.Tick = tick
	}
	if s.Store != nil {
		out.StorePath = *s.Store
	}
	return nil
}

// translateTrack accepts either a drawing (one string per row, '#' for path)
// or a matrix of bools.
func translateTrack(t *trackBlock) ([][]bool, error) {
	val, diags := t.Layout.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if !val.IsKnown() || val.IsNull() {
		return nil, fmt.Errorf("layout must not be null")
	}

	if rows, err := convert.Convert(val, cty.List(cty.String)); err == nil {
		var drawing []string
		if err := gocty.FromCtyValue(rows, &drawing); err != nil {
			return nil, err
		}
		return drawingToMatrix(drawing)
	}

	matrix, err := convert.Convert(val, matrixType)
	if err != nil {
		return nil, fmt.Errorf("layout must be a list of row strings or a list of lists of bools: %w", err)
	}
	var m [][]bool
	if err := gocty.FromCtyValue(matrix, &m); err != nil {
		return nil, err
	}
	if _, err := track.FromMatrix(m); err != nil {
		return nil, err
	}
	return m, nil
}

func drawingToMatrix(drawing []string) ([][]bool, error) {
	if len(drawing) != track.Rows {
		return nil, fmt.Errorf("%w: want %d rows, got %d", track.ErrMalformedMatrix, track.Rows, len(drawing))
	}
	var rows [track.Rows]string
	for i, line := range drawing {
		line = strings.TrimSpace(line)
		if len(line) != track.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", track.ErrMalformedMatrix, i, len(line), track.Cols)
		}
		rows[i] = line
	}
	t := track.Parse(rows)
	return t.Matrix(), nil
}

func translateProgram(p *programBlock) ([]string, error) {
	if p.Source != nil && len(p.Instructions) > 0 {
		return nil, fmt.Errorf("set either instructions or source, not both")
	}
	if p.Source != nil {
		return strings.FieldsFunc(*p.Source, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		}), nil
	}
	return append([]string{}, p.Instructions...), nil
}

func translateSocketIO(s *socketIOBlock) (*config.SocketIO, error) {
	out := &config.SocketIO{URL: s.URL, Namespace: "/"}
	if s.Namespace != nil {
		out.Namespace = *s.Namespace
	}
	if s.InsecureSkipVerify != nil {
		out.InsecureSkipVerify = *s.InsecureSkipVerify
	}
	timeout, ok, err := translateDuration(s.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect_timeout: %w", err)
	}
	if ok {
		out.ConnectTimeout = timeout
	}
	return out, nil
}
