package force

// DefaultAxisStrength is the per-tick pull toward an axis target when none
// is given. Kept deliberately gentle so axis targeting composes with link
// and many-body terms instead of overpowering them.
const DefaultAxisStrength = 0.1

type axis int

const (
	axisX axis = iota
	axisY
)

// Axial pulls each entity toward a target scalar coordinate on one axis.
// Used for constrained one-dimensional layouts such as axis label
// decluttering, where entities may only slide along a line.
type Axial struct {
	axis     axis
	target   float64
	targets  map[int64]float64
	strength float64
	entities []*Entity
	resolved []float64
}

// AxialOption configures a TowardsX/TowardsY force.
type AxialOption func(*Axial)

// WithAxisStrength sets the fraction of the remaining offset converted to
// velocity per tick (scaled by alpha).
func WithAxisStrength(s float64) AxialOption {
	return func(a *Axial) { a.strength = s }
}

// WithAxisTargets sets per-entity targets by entity id. Entities absent
// from the map keep the uniform target.
func WithAxisTargets(byID map[int64]float64) AxialOption {
	return func(a *Axial) { a.targets = byID }
}

// NewTowardsX creates a force pulling entities toward the x coordinate.
func NewTowardsX(x float64, opts ...AxialOption) *Axial {
	return newAxial(axisX, x, opts...)
}

// NewTowardsY creates a force pulling entities toward the y coordinate.
func NewTowardsY(y float64, opts ...AxialOption) *Axial {
	return newAxial(axisY, y, opts...)
}

func newAxial(ax axis, target float64, opts ...AxialOption) *Axial {
	a := &Axial{axis: ax, target: target, strength: DefaultAxisStrength}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize implements Force.
func (a *Axial) Initialize(entities []*Entity) error {
	a.entities = entities
	a.resolved = make([]float64, len(entities))
	for i, e := range entities {
		a.resolved[i] = a.target
		if t, ok := a.targets[e.ID]; ok {
			a.resolved[i] = t
		}
	}
	return nil
}

// Apply implements Force.
func (a *Axial) Apply(alpha float64) {
	for i, e := range a.entities {
		if a.axis == axisX {
			e.VX += (a.resolved[i] - e.X) * a.strength * alpha
		} else {
			e.VY += (a.resolved[i] - e.Y) * a.strength * alpha
		}
	}
}
