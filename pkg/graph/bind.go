package graph

import (
	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/force"
)

// Binding bridges the string-identified graph model and the dense
// integer-indexed entities the force kernel works on. Entity i corresponds
// to g.Nodes[i]; the entity ID is that index. Sync copies simulated
// positions back onto the nodes.
type Binding struct {
	graph    *Graph
	entities []*force.Entity
	links    []force.Link
}

// Bind validates the graph and derives entities and links from it.
// Node positions, velocities, and pins carry over; edge distance and
// strength carry over with zero meaning "layout default".
func Bind(g *Graph) (*Binding, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	index := make(map[string]int64, len(g.Nodes))
	entities := make([]*force.Entity, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		index[n.ID] = int64(i)
		entities[i] = &force.Entity{
			ID: int64(i),
			X:  n.X, Y: n.Y,
			VX: n.VX, VY: n.VY,
			FX: n.FX, FY: n.FY,
		}
	}

	links := make([]force.Link, len(g.Edges))
	for i, e := range g.Edges {
		links[i] = force.Link{
			Source:   index[e.Source],
			Target:   index[e.Target],
			Distance: e.Distance,
			Strength: e.Strength,
		}
	}

	return &Binding{graph: g, entities: entities, links: links}, nil
}

// Entities returns the kernel entities, index-aligned with the graph's
// nodes.
func (b *Binding) Entities() []*force.Entity { return b.entities }

// Links returns the kernel links derived from the graph's edges.
func (b *Binding) Links() []force.Link { return b.links }

// Radii returns per-entity collision radii keyed by entity id, covering
// only nodes that set an explicit radius.
func (b *Binding) Radii() map[int64]float64 {
	radii := make(map[int64]float64)
	for i := range b.graph.Nodes {
		if r := b.graph.Nodes[i].Radius; r > 0 {
			radii[int64(i)] = r
		}
	}
	return radii
}

// BindPayloads returns caller payloads index-aligned with the graph's
// nodes (and therefore with a Binding's entities), pulled from byID.
// Nodes absent from the map get the zero value. This keeps arbitrary
// caller records attached to kernel indices without widening Entity.
func BindPayloads[T any](g *Graph, byID map[string]T) []T {
	out := make([]T, len(g.Nodes))
	for i := range g.Nodes {
		out[i] = byID[g.Nodes[i].ID]
	}
	return out
}

// Sync copies entity positions and velocities back onto the graph's nodes.
// Fails if the graph's node count changed since Bind.
func (b *Binding) Sync() error {
	if len(b.graph.Nodes) != len(b.entities) {
		return errors.New(errors.ErrCodeInvalidGraph,
			"graph changed since bind: %d nodes, %d entities", len(b.graph.Nodes), len(b.entities))
	}
	for i, e := range b.entities {
		n := &b.graph.Nodes[i]
		n.X, n.Y = e.X, e.Y
		n.VX, n.VY = e.VX, e.VY
	}
	return nil
}
