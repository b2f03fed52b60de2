package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lhartmann/forcefield/pkg/cache"
	apperrors "github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/pipeline"
	"github.com/lhartmann/forcefield/pkg/render"
)

// newLayoutCmd creates the layout command for computing graph layouts.
func newLayoutCmd() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a force-directed layout for a graph",
		Long: `Compute a force-directed layout for a graph.

The layout command takes a graph.json file and runs the force simulation
until it cools. The output is a layout.json file (same format as
'render -f json') that can be rendered to SVG/DOT/PNG using 'render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfig(cmd.Context(), &opts)
			return runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the simulation flags shared by layout, render,
// demo, and watch. Zero values defer to the config file and built-in
// defaults.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width (default 800)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height (default 600)")
	cmd.Flags().Float64Var(&opts.Charge, "charge", 0, "many-body strength, negative repels (default -30)")
	cmd.Flags().Float64Var(&opts.LinkDistance, "link-distance", 0, "target edge length (default 30)")
	cmd.Flags().BoolVar(&opts.Collide, "collide", false, "resolve node overlaps")
	cmd.Flags().Float64Var(&opts.Jitter, "jitter", 0, "organic position noise amplitude")
	cmd.Flags().Int64Var(&opts.JitterSeed, "jitter-seed", 0, "noise seed for reproducible jitter")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", 0, "cap on simulation ticks (0 = run to convergence)")
}

// applyConfig fills unset options from the loaded configuration.
// Explicit flag values win; zero values fall through to the config file,
// and from there to the built-in defaults.
func applyConfig(ctx context.Context, opts *pipeline.Options) {
	base := configFromContext(ctx).PipelineOptions()
	if opts.Width == 0 {
		opts.Width = base.Width
	}
	if opts.Height == 0 {
		opts.Height = base.Height
	}
	if opts.Charge == 0 {
		opts.Charge = base.Charge
	}
	if opts.LinkDistance == 0 {
		opts.LinkDistance = base.LinkDistance
	}
	if !opts.Collide {
		opts.Collide = base.Collide
	}
	if opts.Jitter == 0 {
		opts.Jitter = base.Jitter
	}
	if opts.JitterSeed == 0 {
		opts.JitterSeed = base.JitterSeed
	}
	if opts.MaxTicks == 0 {
		opts.MaxTicks = base.MaxTicks
	}
	if opts.Theme == "" {
		opts.Theme = base.Theme
	}
	if !opts.Labels {
		opts.Labels = base.Labels
	}
	if opts.EdgeWidth == 0 {
		opts.EdgeWidth = base.EdgeWidth
	}
}

// runLayout loads the graph, computes the layout, and writes output.
func runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := readGraph(ctx, configFromContext(ctx), input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := newRunner(ctx, configFromContext(ctx), noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	graphData, err := graph.Marshal(g)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, cache.Hash(graphData), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := apperrors.ValidatePath(outputPath); err != nil {
		return err
	}

	data, err := render.RenderJSON(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(g.Nodes), len(g.Edges), cacheHit)
	printDetail("%d ticks · final alpha %.4f", l.Stats.Ticks, l.Stats.FinalAlpha)
	printNewline()
	printNextStep("Render", "forcefield render "+outputPath)

	return nil
}
