package graph

import (
	"github.com/lhartmann/forcefield/pkg/errors"
)

// Validate checks structural invariants: well-formed unique node IDs, edge
// endpoints that resolve to nodes, and no self loops. A nil-safe empty
// graph is valid.
func (g *Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i := range g.Nodes {
		id := g.Nodes[i].ID
		// IDs travel through DOT output and cache keys, so the shared
		// validator also rejects control characters and oversized ids.
		if err := errors.ValidateNodeID(id); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", id)
		}
		seen[id] = struct{}{}
		if r := g.Nodes[i].Radius; r < 0 {
			return errors.New(errors.ErrCodeInvalidGraph, "node %q has negative radius %v", id, r)
		}
	}

	for _, e := range g.Edges {
		if _, ok := seen[e.Source]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "edge %s->%s: unknown source", e.Source, e.Target)
		}
		if _, ok := seen[e.Target]; !ok {
			return errors.New(errors.ErrCodeUnknownNode, "edge %s->%s: unknown target", e.Source, e.Target)
		}
		if e.Source == e.Target {
			return errors.New(errors.ErrCodeInvalidGraph, "edge %s->%s is a self loop", e.Source, e.Target)
		}
	}
	return nil
}
