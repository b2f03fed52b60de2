package force

import (
	"math"
)

// initialRadius and initialAngle place entities without a starting position
// on a phyllotaxis spiral. The golden-angle spiral spreads points evenly
// with no two coincident, which keeps the first many-body evaluation stable
// and, unlike random placement, is fully deterministic.
const initialRadius = 10.0

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulation drives a set of force terms over a set of entities.
//
// A simulation is either Active (alpha above AlphaMin) or Complete. Tick
// advances alpha one decay step and integrates; once Complete, ticks are
// no-ops aside from re-asserting pinned positions. Reheat returns a
// Complete simulation to Active.
//
// A Simulation owns no goroutines and does no I/O; callers drive it one
// Tick per animation frame, or call Run to converge synchronously. Distinct
// simulations are fully independent and need no locking.
type Simulation struct {
	cfg      Config
	alpha    float64
	entities []*Entity
	forces   []Force
	ticks    int
}

// New builds a simulation over the given entities and force terms. Entities
// still at the origin are assigned deterministic phyllotaxis positions.
// Each force's Initialize runs here; a failure (for example a strict link
// force seeing an unknown id) aborts construction.
//
// The force set is fixed for the simulation's lifetime: replacing terms
// after a graph edit means building a new simulation, which also re-derives
// any spatial indexes.
func New(cfg Config, entities []*Entity, forces ...Force) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for i, e := range entities {
		if e.X == 0 && e.Y == 0 && !e.Pinned() {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			e.X = radius * math.Cos(angle)
			e.Y = radius * math.Sin(angle)
		}
	}

	for _, f := range forces {
		if err := f.Initialize(entities); err != nil {
			return nil, err
		}
	}

	sim := &Simulation{
		cfg:      cfg,
		alpha:    cfg.AlphaInit,
		entities: entities,
		forces:   forces,
	}
	if len(entities) == 0 {
		// Nothing to move: born complete.
		sim.alpha = 0
	}
	return sim, nil
}

// Alpha returns the current cooling temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// Ticks returns how many non-trivial ticks have run.
func (s *Simulation) Ticks() int { return s.ticks }

// Entities returns the simulated entities. The slice is shared with the
// caller; positions update in place on every tick.
func (s *Simulation) Entities() []*Entity { return s.entities }

// Completed reports whether alpha has fallen below AlphaMin.
func (s *Simulation) Completed() bool { return s.alpha < s.cfg.AlphaMin }

// Reheat resets alpha to AlphaInit, returning the simulation to the Active
// state. Used when the topology changes or the user starts dragging a node,
// so the rest of the graph can react.
func (s *Simulation) Reheat() { s.alpha = s.cfg.AlphaInit }

// Tick advances the simulation one timestep: one alpha decay step, one
// Apply per force term, then semi-implicit Euler integration with velocity
// decay. Pinned entities have their position re-asserted and velocity
// zeroed instead of integrating.
//
// Once the simulation is Complete, Tick only re-asserts pins.
func (s *Simulation) Tick() {
	if s.Completed() {
		s.applyPins()
		return
	}

	s.alpha += (s.cfg.AlphaTarget - s.alpha) * s.cfg.AlphaDecay

	for _, f := range s.forces {
		f.Apply(s.alpha)
	}

	for _, e := range s.entities {
		if e.FX != nil {
			e.X = *e.FX
			e.VX = 0
		} else {
			e.X += e.VX
			e.VX *= s.cfg.VelocityDecay
		}
		if e.FY != nil {
			e.Y = *e.FY
			e.VY = 0
		} else {
			e.Y += e.VY
			e.VY *= s.cfg.VelocityDecay
		}
	}
	s.ticks++
}

// Run ticks synchronously until the simulation completes (or the MaxTicks
// cap is hit), returning the entities at their final positions. Appropriate
// for static layouts where nothing renders per frame. With default
// coefficients the alpha schedule terminates after ~300 ticks regardless of
// graph content.
func (s *Simulation) Run() []*Entity {
	for !s.Completed() {
		if s.cfg.MaxTicks > 0 && s.ticks >= s.cfg.MaxTicks {
			break
		}
		s.Tick()
	}
	return s.entities
}

func (s *Simulation) applyPins() {
	for _, e := range s.entities {
		if e.FX != nil {
			e.X = *e.FX
			e.VX = 0
		}
		if e.FY != nil {
			e.Y = *e.FY
			e.VY = 0
		}
	}
}
