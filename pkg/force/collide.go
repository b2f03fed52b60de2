package force

import "math"

// Collide resolves entity overlap by treating each entity as a circle and
// pushing overlapping pairs apart proportionally to the overlap. Neighbor
// candidates come from the same quadtree machinery as the many-body force,
// built over predicted (position + velocity) coordinates.
type Collide struct {
	radius     float64
	radii      map[int64]float64
	strength   float64
	iterations int
	entities   []*Entity
	resolved   []float64
}

// CollideOption configures a Collide force.
type CollideOption func(*Collide)

// WithRadii sets per-entity radii by entity id, resolved into a dense slice
// at Initialize. Entities absent from the map keep the uniform radius.
func WithRadii(byID map[int64]float64) CollideOption {
	return func(c *Collide) { c.radii = byID }
}

// WithCollideStrength scales how much of each overlap is corrected per
// iteration, in (0, 1].
func WithCollideStrength(s float64) CollideOption {
	return func(c *Collide) { c.strength = s }
}

// WithCollideIterations sets how many separation passes run per tick.
func WithCollideIterations(n int) CollideOption {
	return func(c *Collide) { c.iterations = n }
}

// NewCollide creates a collision force with the given uniform radius.
func NewCollide(radius float64, opts ...CollideOption) *Collide {
	c := &Collide{radius: radius, strength: 1, iterations: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize implements Force.
func (c *Collide) Initialize(entities []*Entity) error {
	c.entities = entities
	c.resolved = make([]float64, len(entities))
	for i, e := range entities {
		c.resolved[i] = c.radius
		if r, ok := c.radii[e.ID]; ok {
			c.resolved[i] = r
		}
	}
	return nil
}

// Apply implements Force. Alpha is ignored: overlap is a hard constraint
// that should hold at any temperature.
func (c *Collide) Apply(float64) {
	for range c.iterations {
		tree := buildQuadtree(c.entities,
			func(e *Entity) (float64, float64) { return e.X + e.VX, e.Y + e.VY },
			nil, c.resolved)

		for i, e := range c.entities {
			c.separate(tree, i, e)
		}
	}
}

func (c *Collide) separate(t *quadtree, i int, e *Entity) {
	xi := e.X + e.VX
	yi := e.Y + e.VY
	ri := c.resolved[i]

	t.visit(func(n *quadnode) bool {
		// Prune cells that cannot hold a circle overlapping this one.
		reach := ri + n.radius
		if n.x > xi+reach || n.x+n.size < xi-reach ||
			n.y > yi+reach || n.y+n.size < yi-reach {
			return false
		}
		if !n.leaf() {
			return true
		}
		for _, j := range n.indices {
			// Each unordered pair is handled once.
			if j <= i {
				continue
			}
			rj := c.resolved[j]
			o := c.entities[j]
			dx := xi - o.X - o.VX
			dy := yi - o.Y - o.VY
			if dx == 0 && dy == 0 {
				dx, dy = jiggle, jiggle
			}
			l := dx*dx + dy*dy
			r := ri + rj
			if l >= r*r {
				continue
			}
			l = math.Sqrt(l)
			k := (r - l) / l * c.strength
			dx *= k
			dy *= k
			// Split the correction by area so the larger circle moves less.
			wj := rj * rj / (ri*ri + rj*rj)
			e.VX += dx * wj
			e.VY += dy * wj
			o.VX -= dx * (1 - wj)
			o.VY -= dy * (1 - wj)
		}
		return false
	})
}
