// Package layout turns a graph into positioned nodes by assembling the
// standard force set and running the simulation to completion.
//
// The package sits between the raw kernel (pkg/force) and the rendering
// sinks (pkg/render): callers hand it a graph.Graph and Options, and get
// back the same graph with x/y set on every node plus run statistics.
package layout

import (
	"context"
	"math"
	"time"

	"github.com/lhartmann/forcefield/pkg/force"
	"github.com/lhartmann/forcefield/pkg/graph"
)

// Stats describes one layout run.
type Stats struct {
	Ticks      int           `json:"ticks"`
	Duration   time.Duration `json:"duration"`
	FinalAlpha float64       `json:"final_alpha"`
}

// Layout is a positioned graph with its frame and run statistics.
type Layout struct {
	Graph  *graph.Graph `json:"graph"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Stats  Stats        `json:"stats"`
}

// ticksPerCancelCheck bounds how long a run can overshoot a cancelled
// context.
const ticksPerCancelCheck = 16

// Compute runs a force layout over g, mutating node positions in place
// and returning the positioned layout. The context cancels a long run
// between ticks.
func Compute(ctx context.Context, g *graph.Graph, opts Options) (*Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	b, err := graph.Bind(g)
	if err != nil {
		return nil, err
	}

	sim, err := assemble(b, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	for !sim.Completed() {
		if opts.Sim.MaxTicks > 0 && sim.Ticks() >= opts.Sim.MaxTicks {
			break
		}
		if sim.Ticks()%ticksPerCancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		sim.Tick()
	}

	if err := b.Sync(); err != nil {
		return nil, err
	}
	if opts.Jitter > 0 {
		jitter(g, opts.Jitter, opts.JitterSeed)
	}
	frame(g, opts)

	return &Layout{
		Graph:  g,
		Width:  opts.Width,
		Height: opts.Height,
		Stats: Stats{
			Ticks:      sim.Ticks(),
			Duration:   time.Since(start),
			FinalAlpha: sim.Alpha(),
		},
	}, nil
}

// assemble builds the simulation with the standard force set: many-body
// repulsion, link attraction, centering on the origin, and optional
// collision. Forces act in origin-centered coordinates; frame translates
// into the output frame afterwards.
func assemble(b *graph.Binding, opts Options) (*force.Simulation, error) {
	links := b.Links()
	if opts.LinkDistance > 0 {
		for i := range links {
			if links[i].Distance == 0 {
				links[i].Distance = opts.LinkDistance
			}
		}
	}

	forces := []force.Force{
		force.NewManyBody(force.WithStrength(opts.Charge)),
		force.NewLink(links),
		force.NewCenter(0, 0),
	}
	if opts.Collide {
		forces = append(forces,
			force.NewCollide(opts.CollideRadius, force.WithRadii(b.Radii())))
	}

	return force.New(opts.Sim, b.Entities(), forces...)
}

// frame maps origin-centered positions into the output frame: translation
// to the frame center always, plus uniform scaling when Fit is set and the
// layout spills over the padded frame. Pinned nodes are mapped like any
// other so the picture stays coherent.
func frame(g *graph.Graph, opts Options) {
	if len(g.Nodes) == 0 {
		return
	}

	cx, cy := opts.Width/2, opts.Height/2
	scale := 1.0
	if opts.Fit {
		var extent float64
		for i := range g.Nodes {
			extent = math.Max(extent, math.Abs(g.Nodes[i].X)/math.Max(cx-DefaultFramePadding, 1))
			extent = math.Max(extent, math.Abs(g.Nodes[i].Y)/math.Max(cy-DefaultFramePadding, 1))
		}
		if extent > 1 {
			scale = 1 / extent
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.X = n.X*scale + cx
		n.Y = n.Y*scale + cy
	}
}
