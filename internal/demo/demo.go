// Package demo generates small deterministic graphs for trying out the
// layout pipeline without supplying your own data.
//
// Every dataset is a pure function of its name and size, so repeated
// builds produce byte-identical graphs and the pipeline cache stays warm
// across runs.
package demo

import (
	"fmt"
	"sort"

	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/graph"
)

// DefaultSize is the node count used when the caller passes size <= 0.
const DefaultSize = 24

// builder constructs a dataset with roughly n nodes.
type builder func(g *graph.Graph, n int)

var datasets = map[string]builder{
	"cluster":   buildCluster,
	"ring":      buildRing,
	"grid":      buildGrid,
	"tree":      buildTree,
	"bipartite": buildBipartite,
}

// descriptions holds a one-line summary per dataset, shown by the CLI.
var descriptions = map[string]string{
	"cluster":   "three dense communities with sparse bridges",
	"ring":      "a single cycle",
	"grid":      "a rectangular lattice",
	"tree":      "a complete binary tree",
	"bipartite": "two groups with cross edges only",
}

// Names returns the available dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line summary for a dataset, or "".
func Describe(name string) string {
	return descriptions[name]
}

// Build constructs the named dataset with roughly size nodes.
// A size of zero or less selects DefaultSize.
func Build(name string, size int) (*graph.Graph, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return nil, err
	}
	build, ok := datasets[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"unknown dataset %q (available: %v)", name, Names())
	}
	if size <= 0 {
		size = DefaultSize
	}

	g := graph.New(name)
	// Stable id so identical builds hash identically in the cache.
	g.ID = fmt.Sprintf("demo-%s-%d", name, size)
	build(g, size)
	return g, nil
}

// buildCluster creates three communities with dense internal edges and a
// single bridge between consecutive communities.
func buildCluster(g *graph.Graph, n int) {
	const communities = 3
	per := n / communities
	if per < 2 {
		per = 2
	}

	for c := 0; c < communities; c++ {
		group := fmt.Sprintf("c%d", c)
		for i := 0; i < per; i++ {
			// The first node of each community is a hub with a larger
			// collision radius, visible with collide enabled.
			radius := 0.0
			if i == 0 {
				radius = 14
			}
			g.AddNode(graph.Node{
				ID:     fmt.Sprintf("%s-n%d", group, i),
				Group:  group,
				Radius: radius,
			})
		}
		// Dense-ish interior: each node links to the next two.
		for i := 0; i < per; i++ {
			for step := 1; step <= 2; step++ {
				j := i + step
				if j < per {
					g.AddEdge(fmt.Sprintf("%s-n%d", group, i), fmt.Sprintf("%s-n%d", group, j))
				}
			}
		}
	}

	// Sparse bridges between consecutive communities, longer than the
	// interior edges so the communities visibly separate.
	for c := 0; c < communities; c++ {
		next := (c + 1) % communities
		g.Edges = append(g.Edges, graph.Edge{
			Source:   fmt.Sprintf("c%d-n0", c),
			Target:   fmt.Sprintf("c%d-n0", next),
			Distance: 90,
			Strength: 0.3,
		})
	}
}

// buildRing creates a single cycle of n nodes.
func buildRing(g *graph.Graph, n int) {
	if n < 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		g.AddNode(graph.Node{ID: fmt.Sprintf("n%d", i)})
	}
	for i := 0; i < n; i++ {
		g.AddEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", (i+1)%n))
	}
}

// buildGrid creates a rectangular lattice close to n nodes.
func buildGrid(g *graph.Graph, n int) {
	cols := 1
	for cols*cols < n {
		cols++
	}
	rows := (n + cols - 1) / cols

	id := func(r, c int) string { return fmt.Sprintf("r%dc%d", r, c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.AddNode(graph.Node{ID: id(r, c)})
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				g.AddEdge(id(r, c), id(r, c+1))
			}
			if r+1 < rows {
				g.AddEdge(id(r, c), id(r+1, c))
			}
		}
	}
}

// buildTree creates a complete binary tree with n nodes. The root is
// pinned at the origin so the tree fans out around the frame center.
func buildTree(g *graph.Graph, n int) {
	if n < 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		node := graph.Node{ID: fmt.Sprintf("n%d", i)}
		if i == 0 {
			node.Pin(0, 0)
		}
		g.AddNode(node)
	}
	for i := 1; i < n; i++ {
		parent := (i - 1) / 2
		g.AddEdge(fmt.Sprintf("n%d", parent), fmt.Sprintf("n%d", i))
	}
}

// buildBipartite creates two groups where edges only cross groups.
// Each left node connects to two right nodes.
func buildBipartite(g *graph.Graph, n int) {
	half := n / 2
	if half < 2 {
		half = 2
	}
	for i := 0; i < half; i++ {
		g.AddNode(graph.Node{ID: fmt.Sprintf("l%d", i), Group: "left"})
	}
	for i := 0; i < half; i++ {
		g.AddNode(graph.Node{ID: fmt.Sprintf("r%d", i), Group: "right"})
	}
	for i := 0; i < half; i++ {
		g.AddEdge(fmt.Sprintf("l%d", i), fmt.Sprintf("r%d", i))
		g.AddEdge(fmt.Sprintf("l%d", i), fmt.Sprintf("r%d", (i+1)%half))
	}
}
