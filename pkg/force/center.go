package force

import "gonum.org/v1/gonum/spatial/r2"

// Center pulls the centroid of all free entities toward a fixed point by
// shifting every free entity uniformly. This is a global recentering, not a
// per-node attractive force: relative positions are preserved exactly.
type Center struct {
	point    r2.Vec
	strength float64
	entities []*Entity
}

// CenterOption configures a Center force.
type CenterOption func(*Center)

// WithCenterStrength sets the fraction of the centroid offset corrected per
// tick. 1 recenters fully every tick.
func WithCenterStrength(s float64) CenterOption {
	return func(c *Center) { c.strength = s }
}

// NewCenter creates a centering force targeting (cx, cy).
func NewCenter(cx, cy float64, opts ...CenterOption) *Center {
	c := &Center{point: r2.Vec{X: cx, Y: cy}, strength: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize implements Force.
func (c *Center) Initialize(entities []*Entity) error {
	c.entities = entities
	return nil
}

// Apply implements Force. Alpha is ignored: recentering is a coordinate
// correction, not a cooling-scaled force.
func (c *Center) Apply(float64) {
	var mean r2.Vec
	n := 0
	for _, e := range c.entities {
		if e.Pinned() {
			continue
		}
		mean = r2.Add(mean, r2.Vec{X: e.X, Y: e.Y})
		n++
	}
	if n == 0 {
		return
	}
	shift := r2.Scale(c.strength, r2.Sub(c.point, r2.Scale(1/float64(n), mean)))
	for _, e := range c.entities {
		if e.Pinned() {
			continue
		}
		e.X += shift.X
		e.Y += shift.Y
	}
}
