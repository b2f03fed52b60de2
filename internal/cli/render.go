package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/fetch"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/layout"
	"github.com/lhartmann/forcefield/pkg/pipeline"
	"github.com/lhartmann/forcefield/pkg/render"
)

// newRenderCmd creates the render command for generating output files.
// It accepts either a graph.json (the layout is computed first) or a
// layout.json produced by the layout command.
func newRenderCmd() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph or layout to SVG, DOT, JSON, or PNG",
		Long: `Render a graph or layout to one or more output formats.

The input may be a graph.json (the layout is computed on the fly, with
caching) or a layout.json written by the 'layout' command. One file is
written per requested format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			applyConfig(cmd.Context(), &opts)
			if fetch.IsURL(args[0]) && output == "" {
				output = strings.TrimSuffix(path.Base(args[0]), path.Ext(args[0]))
				if output == "" || output == "/" || output == "." {
					output = "graph"
				}
			}
			return runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw node labels")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "color theme: light (default), dark")
	cmd.Flags().Float64Var(&opts.EdgeWidth, "edge-width", 0, "base edge stroke width")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender loads the input, renders the requested formats, and writes
// one file per format.
func runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	track := newProgress(logger)

	runner, err := newRunner(ctx, configFromContext(ctx), noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, l, err := loadInput(ctx, input)
	if err != nil {
		return err
	}

	var (
		artifacts map[string][]byte
		cacheHit  bool
	)
	if l != nil {
		logger.Debugf("Input %s is a precomputed layout", input)
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, l, opts)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		g = l.Graph
	} else {
		logger.Debugf("Input %s is a graph, computing layout first", input)
		result, execErr := runner.Execute(ctx, g, opts)
		if execErr != nil {
			return fmt.Errorf("render: %w", execErr)
		}
		artifacts = result.Artifacts
		cacheHit = result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}

	track.done(fmt.Sprintf("Rendered %d format(s)", len(paths)))

	printSuccess("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(g.Nodes), len(g.Edges), cacheHit)

	return nil
}

// loadInput reads the input as a layout first and falls back to a graph.
// URLs are always treated as graphs. Exactly one of the returned values
// is non-nil on success.
func loadInput(ctx context.Context, path string) (*graph.Graph, *layout.Layout, error) {
	if fetch.IsURL(path) {
		g, err := readGraph(ctx, configFromContext(ctx), path)
		return g, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if l, err := render.ParseJSON(data); err == nil {
		return nil, l, nil
	}
	g, err := graph.Unmarshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return nil, nil, err
	}
	return g, nil, nil
}

// writeArtifacts writes one file per format and returns the paths written.
// With a single format the output flag names the file directly; with
// several it acts as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := output
		if path == "" || len(formats) > 1 {
			path = basePath(output, input) + "." + format
		}
		if err := apperrors.ValidatePath(path); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
