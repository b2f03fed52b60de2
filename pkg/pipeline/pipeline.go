// Package pipeline provides the core layout-and-render pipeline.
//
// This package implements the load → layout → render flow shared by the
// CLI, the TUI, and the HTTP server. By centralizing this logic, behavior
// stays consistent across all entry points.
//
// # Architecture
//
// The pipeline consists of two cached stages over a loaded graph:
//
//  1. Layout: Compute positions with the force simulation
//  2. Render: Generate output in various formats (SVG, DOT, JSON, PNG)
//
// Layouts are deterministic functions of the graph and the options, which
// makes both stages safe to cache by content hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/lhartmann/forcefield/pkg/cache"
	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/layout"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Charge       float64 `json:"charge,omitempty"`
	LinkDistance float64 `json:"link_distance,omitempty"`
	Collide      bool    `json:"collide,omitempty"`
	Jitter       float64 `json:"jitter,omitempty"`
	JitterSeed   int64   `json:"jitter_seed,omitempty"`
	MaxTicks     int     `json:"max_ticks,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Theme     string   `json:"theme,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
	EdgeWidth float64  `json:"edge_width,omitempty"`

	// Refresh bypasses the cache on read (results are still written).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Theme names accepted by Options.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{errors.FormatSVG}
	}
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	switch o.Theme {
	case "":
		o.Theme = ThemeLight
	case ThemeLight, ThemeDark:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown theme %q (light, dark)", o.Theme)
	}
	if o.EdgeWidth == 0 {
		o.EdgeWidth = 1
	}

	// Delegate the numeric checks to the layout options.
	lo := o.LayoutOptions()
	if err := lo.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Width, o.Height = lo.Width, lo.Height
	o.Charge = lo.Charge

	o.validated = true
	return nil
}

// LayoutOptions converts pipeline options to layout options.
func (o *Options) LayoutOptions() layout.Options {
	lo := layout.DefaultOptions()
	if o.Width != 0 {
		lo.Width = o.Width
	}
	if o.Height != 0 {
		lo.Height = o.Height
	}
	if o.Charge != 0 {
		lo.Charge = o.Charge
	}
	lo.LinkDistance = o.LinkDistance
	lo.Collide = o.Collide
	lo.Jitter = o.Jitter
	lo.JitterSeed = o.JitterSeed
	lo.Sim.MaxTicks = o.MaxTicks
	return lo
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:        o.Width,
		Height:       o.Height,
		Fit:          true,
		Charge:       o.Charge,
		LinkDistance: o.LinkDistance,
		Collide:      o.Collide,
		Jitter:       o.Jitter,
		JitterSeed:   o.JitterSeed,
		MaxTicks:     o.MaxTicks,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  int(o.Width),
		Height: int(o.Height),
		Labels: o.Labels,
		Theme:  o.Theme,
	}
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the positioned graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Layout is the positioned layout with run statistics.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
