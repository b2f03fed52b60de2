package layout

import (
	"github.com/lhartmann/forcefield/pkg/force"
	"github.com/lhartmann/forcefield/pkg/graph"
)

// Stepper drives the simulation one tick at a time. Compute is the
// batch path; interactive callers that want to observe convergence use
// a Stepper instead.
type Stepper struct {
	graph   *graph.Graph
	binding *graph.Binding
	sim     *force.Simulation
	opts    Options
}

// NewStepper binds the graph and assembles the standard force set
// without running any ticks.
func NewStepper(g *graph.Graph, opts Options) (*Stepper, error) {
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
	return &Stepper{graph: g, binding: b, sim: sim, opts: opts}, nil
}

// Step advances the simulation one tick and reports whether it is still
// running. A completed or tick-capped simulation returns false.
func (s *Stepper) Step() bool {
	if s.sim.Completed() {
		return false
	}
	if s.opts.Sim.MaxTicks > 0 && s.sim.Ticks() >= s.opts.Sim.MaxTicks {
		return false
	}
	s.sim.Tick()
	return true
}

// Alpha returns the current cooling temperature.
func (s *Stepper) Alpha() float64 { return s.sim.Alpha() }

// Ticks returns the number of ticks advanced so far.
func (s *Stepper) Ticks() int { return s.sim.Ticks() }

// Reheat restarts the cooling schedule so the simulation runs again.
func (s *Stepper) Reheat() { s.sim.Reheat() }

// Snapshot writes the current positions back to the graph, maps them
// into the output frame, and returns the resulting layout. The graph is
// shared with the caller of NewStepper; repeated snapshots re-sync from
// the live simulation, so the layout always reflects the latest tick.
func (s *Stepper) Snapshot() (*Layout, error) {
	if err := s.binding.Sync(); err != nil {
		return nil, err
	}
	frame(s.graph, s.opts)
	return &Layout{
		Graph:  s.graph,
		Width:  s.opts.Width,
		Height: s.opts.Height,
		Stats: Stats{
			Ticks:      s.sim.Ticks(),
			FinalAlpha: s.sim.Alpha(),
		},
	}, nil
}
