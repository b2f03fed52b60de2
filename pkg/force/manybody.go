package force

import "math"

// DefaultManyBodyStrength is the per-entity charge when none is given.
// Negative by convention: entities repel.
const DefaultManyBodyStrength = -30

// DefaultTheta is the Barnes-Hut accuracy/speed cutoff. A cell whose side
// length is smaller than theta times its distance is treated as a single
// aggregate charge.
const DefaultTheta = 0.9

// ManyBody approximates pairwise charge interaction between every pair of
// entities with a Barnes-Hut quadtree, reducing the O(n²) sum to
// O(n log n). Far-away cells contribute as a single aggregate charge at
// their center of charge; nearby bodies are evaluated individually.
type ManyBody struct {
	strength  float64
	strengths map[int64]float64
	theta2    float64
	distMin2  float64
	distMax2  float64
	entities  []*Entity
	resolved  []float64
}

// ManyBodyOption configures a ManyBody force.
type ManyBodyOption func(*ManyBody)

// WithStrength sets the uniform charge. Negative repels, positive attracts.
func WithStrength(s float64) ManyBodyOption {
	return func(m *ManyBody) { m.strength = s }
}

// WithStrengths sets per-entity charges by entity id. Entities absent from
// the map keep the uniform charge. The map is resolved into a dense slice
// at Initialize.
func WithStrengths(byID map[int64]float64) ManyBodyOption {
	return func(m *ManyBody) { m.strengths = byID }
}

// WithTheta sets the Barnes-Hut cutoff. Lower is more accurate and slower;
// zero degenerates to the exact O(n²) sum.
func WithTheta(theta float64) ManyBodyOption {
	return func(m *ManyBody) { m.theta2 = theta * theta }
}

// WithDistanceMin clamps the minimum interaction distance, guarding against
// the near-singularity when two bodies coincide.
func WithDistanceMin(d float64) ManyBodyOption {
	return func(m *ManyBody) { m.distMin2 = d * d }
}

// WithDistanceMax limits the interaction range. Bodies further apart than d
// ignore each other.
func WithDistanceMax(d float64) ManyBodyOption {
	return func(m *ManyBody) { m.distMax2 = d * d }
}

// NewManyBody creates a many-body force with repulsive default charge.
func NewManyBody(opts ...ManyBodyOption) *ManyBody {
	m := &ManyBody{
		strength: DefaultManyBodyStrength,
		theta2:   DefaultTheta * DefaultTheta,
		distMin2: 1,
		distMax2: math.Inf(1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize implements Force, resolving per-entity charges into a dense
// index-aligned slice.
func (m *ManyBody) Initialize(entities []*Entity) error {
	m.entities = entities
	m.resolved = make([]float64, len(entities))
	for i, e := range entities {
		m.resolved[i] = m.strength
		if s, ok := m.strengths[e.ID]; ok {
			m.resolved[i] = s
		}
	}
	return nil
}

// Apply implements Force. The tree is rebuilt from current positions every
// tick; caching across ticks trades layout fidelity for speed and is not
// worth the drift for typical graph sizes.
func (m *ManyBody) Apply(alpha float64) {
	if len(m.entities) == 0 {
		return
	}
	tree := buildQuadtree(m.entities, func(e *Entity) (float64, float64) { return e.X, e.Y }, m.resolved, nil)

	for i, e := range m.entities {
		m.applyTo(tree, i, e, alpha)
	}
}

func (m *ManyBody) applyTo(t *quadtree, i int, e *Entity, alpha float64) {
	t.visit(func(n *quadnode) bool {
		if n.count == 0 {
			return false
		}
		dx := n.center.X - e.X
		dy := n.center.Y - e.Y
		l := dx*dx + dy*dy

		// Far cell: apply the aggregate and prune.
		if n.size*n.size < m.theta2*l && !n.leaf() {
			if l < m.distMax2 {
				if dx == 0 && dy == 0 {
					dx, dy = jiggleFor(i)
					l = dx*dx + dy*dy
				}
				if l < m.distMin2 {
					l = math.Sqrt(m.distMin2 * l)
				}
				w := n.value * alpha / l
				e.VX += dx * w
				e.VY += dy * w
			}
			return false
		}
		if !n.leaf() {
			return true
		}

		// Leaf: evaluate resident bodies individually.
		for _, j := range n.indices {
			if j == i {
				continue
			}
			dx := t.px[j] - e.X
			dy := t.py[j] - e.Y
			if dx == 0 && dy == 0 {
				// Seen from entity i, a coincident body j sits at j's own
				// jiggle direction, so i and j repel along different rays.
				dx, dy = jiggleFor(j)
			}
			l := dx*dx + dy*dy
			if l >= m.distMax2 {
				continue
			}
			if l < m.distMin2 {
				l = math.Sqrt(m.distMin2 * l)
			}
			w := m.resolved[j] * alpha / l
			e.VX += dx * w
			e.VY += dy * w
		}
		return false
	})
}
