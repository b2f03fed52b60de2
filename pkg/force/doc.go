// Package force implements an iterative force-directed layout simulation.
//
// The simulation positions a set of entities (graph nodes) in 2D space by
// repeatedly applying a configurable set of force terms and integrating the
// resulting velocities. Connected entities cluster, unconnected entities
// repel, and the whole system cools down over time until it converges.
//
// # Architecture
//
// The package is built from four pieces:
//
//   - Entity: a simulated point with position, velocity and an optional
//     pinned position (used for user-dragged nodes).
//   - Force: a pluggable term contributing to per-tick velocity changes.
//     Built-in terms: Center, ManyBody, Link, Collide, TowardsX, TowardsY,
//     and a Func adapter for custom terms.
//   - Quadtree: a Barnes-Hut spatial index shared by the many-body and
//     collision terms, giving O(n log n) evaluation instead of O(n²).
//   - Simulation: the driver owning the cooling schedule (alpha), exposing
//     Tick, Reheat, Completed and Run.
//
// # Cooling
//
// Each tick advances alpha one geometric decay step toward AlphaTarget:
//
//	alpha += (alphaTarget - alpha) * alphaDecay
//
// The simulation is complete once alpha falls below AlphaMin. With the
// default settings this happens after roughly 300 ticks. Reheat resets
// alpha to AlphaInit, letting the layout react to topology edits or drags.
//
// # Determinism
//
// The kernel contains no randomness. Entities without an initial position
// are placed on a deterministic phyllotaxis spiral, and coincident points
// are separated by a fixed epsilon displacement. Two runs over identical
// inputs produce identical output.
//
// # Usage
//
//	entities := []*force.Entity{{ID: 0}, {ID: 1}}
//	sim, err := force.New(force.DefaultConfig(), entities,
//	    force.NewCenter(400, 300),
//	    force.NewManyBody(),
//	    force.NewLink([]force.Link{{Source: 0, Target: 1}}),
//	)
//	if err != nil {
//	    return err
//	}
//	sim.Run()
//	// entities now hold converged positions
package force
