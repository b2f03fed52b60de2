package force

import "math"

// A Force is one pluggable term contributing to entities' per-tick velocity
// (or, for global recentering, position) changes.
//
// Initialize is called once when the force is attached to a simulation, with
// the full entity slice. Forces resolve per-entity parameters (strengths,
// radii, link endpoints) into dense index-aligned slices here, so Apply does
// no map lookups or accessor calls on the hot path.
//
// Apply is called once per tick with the current alpha. Implementations
// mutate entity velocities in place; they must not add or remove entities.
type Force interface {
	Initialize(entities []*Entity) error
	Apply(alpha float64)
}

// Func adapts a plain function into a custom Force. The function receives
// the entity slice captured at Initialize and the current alpha.
type Func func(entities []*Entity, alpha float64)

// NewFunc wraps fn as a Force.
func NewFunc(fn Func) Force {
	return &funcForce{fn: fn}
}

type funcForce struct {
	fn       Func
	entities []*Entity
}

func (f *funcForce) Initialize(entities []*Entity) error {
	f.entities = entities
	return nil
}

func (f *funcForce) Apply(alpha float64) {
	f.fn(f.entities, alpha)
}

// jiggle is the deterministic displacement used to separate coincident
// points. Force layouts conventionally use a random jiggle here; a fixed
// epsilon keeps the kernel bit-reproducible across runs.
const jiggle = 1e-6

// jiggleFor returns a jiggle-sized displacement whose direction is unique
// to entity index i, on the same golden-angle spiral as the initial
// placement. Pairwise forces can share one displacement per pair, but
// per-entity evaluation (many-body) needs distinct directions, or
// coincident bodies see identical forces and drift in lockstep forever.
func jiggleFor(i int) (float64, float64) {
	angle := float64(i) * initialAngle
	return jiggle * math.Cos(angle), jiggle * math.Sin(angle)
}
