package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lhartmann/forcefield/internal/demo"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/pipeline"
)

// newDemoCmd creates the demo command for generating example datasets.
// Without arguments it lists the available datasets; with a name it
// writes the dataset as graph.json or renders it directly.
func newDemoCmd() *cobra.Command {
	var (
		output string
		size   int
		render bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Generate a built-in example dataset",
		Long: `Generate a built-in example dataset.

Without arguments the available datasets are listed. With a name, the
dataset is written as graph.json, or rendered directly to SVG with
--render.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listDatasets()
			}
			applyConfig(cmd.Context(), &opts)
			return runDemo(cmd.Context(), args[0], size, output, render, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json or <name>.svg)")
	cmd.Flags().IntVarP(&size, "nodes", "n", 0, fmt.Sprintf("approximate node count (default %d)", demo.DefaultSize))
	cmd.Flags().BoolVar(&render, "render", false, "render to SVG instead of writing graph.json")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "draw node labels (with --render)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "color theme: light (default), dark (with --render)")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// listDatasets prints the dataset catalog.
func listDatasets() error {
	printInfo("Available datasets:")
	for _, name := range demo.Names() {
		printKeyValue(name, demo.Describe(name))
	}
	printNewline()
	printNextStep("Generate", "forcefield demo ring")
	return nil
}

// runDemo builds the dataset and either writes the graph or renders it.
func runDemo(ctx context.Context, name string, size int, output string, doRender bool, opts pipeline.Options) error {
	g, err := demo.Build(name, size)
	if err != nil {
		return err
	}

	if !doRender {
		path := output
		if path == "" {
			path = name + ".json"
		}
		if err := graph.WriteFile(g, path); err != nil {
			return err
		}
		printSuccess("Generated dataset %q", name)
		printFile(path)
		printStats(len(g.Nodes), len(g.Edges), false)
		printNewline()
		printNextStep("Render", "forcefield render "+path)
		return nil
	}

	if output == "" {
		output = name + ".svg"
	}
	opts.Formats = parseFormats("")

	runner, err := newRunner(ctx, configFromContext(ctx), false)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output, name+".json")
	if err != nil {
		return err
	}

	printSuccess("Rendered dataset %q", name)
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(g.Nodes), len(g.Edges), result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}
