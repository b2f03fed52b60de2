package render

import (
	"bytes"
	"encoding/json"

	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/layout"
)

// RenderJSON serializes a positioned layout for external viewers. The
// output carries the frame, the graph with final positions, and the run
// statistics.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return buf.Bytes(), nil
}

// ParseJSON decodes a layout previously produced by RenderJSON, allowing
// render-only invocations to skip the simulation.
func ParseJSON(data []byte) (*layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if l.Graph == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout has no graph")
	}
	if err := l.Graph.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}
