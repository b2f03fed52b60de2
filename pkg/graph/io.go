package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/lhartmann/forcefield/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a validated graph.
func Unmarshal(data []byte) (*Graph, error) {
	return readFrom(bytes.NewReader(data))
}

// Write writes a graph as JSON to an io.Writer.
func Write(g *Graph, w io.Writer) error {
	return writeTo(g, w)
}

// Read decodes a JSON graph from an io.Reader and validates it.
// Use ReadFile for files or Unmarshal for in-memory data.
func Read(r io.Reader) (*Graph, error) {
	return readFrom(r)
}

// WriteFile writes a graph to a JSON file with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return writeTo(g, f)
}

// ReadFile reads and validates a JSON graph file.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return readFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return nil
}

func readFrom(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}
