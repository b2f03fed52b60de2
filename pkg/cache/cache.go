// Package cache provides caching for layout and render artifacts.
//
// Computing a layout is the expensive step of the pipeline: hundreds of
// simulation ticks over every node and edge. Results are deterministic for
// a given graph and option set, which makes them ideal cache entries. The
// same applies to rendered artifacts downstream of a layout.
//
// Two backends ship by default: FileCache for CLI usage and RedisCache for
// the server. NullCache disables caching without branching at call sites.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every input that changes a layout result.
// Two runs with equal graph hash and equal opts produce identical layouts.
type LayoutKeyOpts struct {
	Width        float64
	Height       float64
	Fit          bool
	Charge       float64
	LinkDistance float64
	Collide      bool
	Jitter       float64
	JitterSeed   int64
	MaxTicks     int
}

// ArtifactKeyOpts captures every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string
	Width  int
	Height int
	Labels bool
	Theme  string
}

// Keyer derives cache keys. Implementations must be deterministic: equal
// inputs produce equal keys across processes and versions of this package
// with the same key schema.
type Keyer interface {
	// GraphKey generates a key for a parsed graph, from the hash of its
	// canonical JSON serialization.
	GraphKey(graphHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key schema: a namespace prefix plus a
// SHA-256 over the JSON-encoded inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a parsed graph.
func (k *DefaultKeyer) GraphKey(graphHash string) string {
	return hashKey("graph", graphHash)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
