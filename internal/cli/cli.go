// Package cli implements the forcefield command-line interface.
//
// This package provides commands for computing force-directed layouts,
// rendering them to SVG, DOT, JSON, or PNG, generating demo datasets,
// watching a simulation converge in the terminal, serving layouts over
// HTTP, and managing the artifact cache. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute node positions for a graph file
//   - render: Render a graph or layout to one or more output formats
//   - demo: Generate built-in example datasets
//   - watch: Run the simulation interactively in the terminal
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/lhartmann/forcefield/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/lhartmann/forcefield/internal/config"
	"github.com/lhartmann/forcefield/pkg/cache"
	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/fetch"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/observability"
	"github.com/lhartmann/forcefield/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "forcefield"

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// newCache selects the cache backend: Redis when configured, otherwise
// the local file cache. Falls back to a null cache when the file cache
// directory cannot be determined.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		return cache.NewRedisCacheFromURL(ctx, cfg.Cache.RedisURL)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// readGraph loads a graph from a local file or an HTTP URL.
// Remote graphs go through the fetch client so they are cached by URL.
func readGraph(ctx context.Context, cfg config.Config, input string) (*graph.Graph, error) {
	if fetch.IsURL(input) {
		c, err := newCache(ctx, cfg, false)
		if err != nil {
			return nil, err
		}
		defer c.Close()
		return fetch.New(c).Graph(ctx, input)
	}

	observability.Pipeline().OnLoadStart(ctx, input)
	g, err := graph.ReadFile(input)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, input, 0, 0, err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, input, len(g.Nodes), len(g.Edges), nil)
	return g, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/forcefield/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{errors.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the input's extension is stripped. If output ends
// in a known format extension, that extension is stripped. This is used
// when generating multiple files (e.g. graph.svg, graph.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if errors.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
