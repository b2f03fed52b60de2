package force

import (
	"fmt"
	"math"
)

// DefaultLinkDistance is the target length for links that do not set one.
const DefaultLinkDistance = 30

// Link is one attraction constraint between two entities, identified by
// entity id. Distance and Strength of zero mean "use the default": distance
// 30 and strength 1/min(degree(source), degree(target)), so links attached
// to highly connected entities pull more gently.
type Link struct {
	Source   int64   `json:"source"`
	Target   int64   `json:"target"`
	Distance float64 `json:"distance,omitempty"`
	Strength float64 `json:"strength,omitempty"`
}

// resolvedLink is a link with endpoints and coefficients resolved at
// Initialize, so Apply touches no maps.
type resolvedLink struct {
	source, target     *Entity
	distance, strength float64
	bias               float64
}

// Links nudges both endpoints of each link toward satisfying the link's
// target distance. The correction is velocity-based rather than strictly
// Hookean, and is split between the endpoints by relative degree: the
// endpoint with more links moves less.
type Links struct {
	links      []Link
	strict     bool
	iterations int
	resolved   []resolvedLink
	dropped    int
}

// LinkOption configures a Links force.
type LinkOption func(*Links)

// WithStrictLinks makes Initialize fail when a link references an entity id
// not present in the simulation. The default policy drops such links
// silently, which matches what interactive layouts conventionally do; the
// count of dropped links stays queryable via Dropped.
func WithStrictLinks() LinkOption {
	return func(l *Links) { l.strict = true }
}

// WithLinkIterations sets how many relaxation passes run per tick. More
// iterations give stiffer link constraints at higher cost.
func WithLinkIterations(n int) LinkOption {
	return func(l *Links) { l.iterations = n }
}

// NewLink creates a link attraction force over the given links.
func NewLink(links []Link, opts ...LinkOption) *Links {
	l := &Links{links: links, iterations: 1}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize implements Force. Endpoints are resolved by id, degrees are
// counted over the surviving links, and default distance/strength/bias are
// fixed here once.
func (l *Links) Initialize(entities []*Entity) error {
	byID := make(map[int64]*Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	l.resolved = l.resolved[:0]
	l.dropped = 0
	degree := make(map[int64]int)
	for _, lk := range l.links {
		if byID[lk.Source] == nil || byID[lk.Target] == nil {
			if l.strict {
				return fmt.Errorf("link %d->%d references unknown entity", lk.Source, lk.Target)
			}
			l.dropped++
			continue
		}
		degree[lk.Source]++
		degree[lk.Target]++
	}

	for _, lk := range l.links {
		src, dst := byID[lk.Source], byID[lk.Target]
		if src == nil || dst == nil {
			continue
		}
		ds, dt := degree[lk.Source], degree[lk.Target]
		r := resolvedLink{
			source:   src,
			target:   dst,
			distance: lk.Distance,
			strength: lk.Strength,
			bias:     float64(ds) / float64(ds+dt),
		}
		if r.distance == 0 {
			r.distance = DefaultLinkDistance
		}
		if r.strength == 0 {
			r.strength = 1 / float64(min(ds, dt))
		}
		l.resolved = append(l.resolved, r)
	}
	return nil
}

// Dropped returns how many links were discarded at Initialize because an
// endpoint id had no entity.
func (l *Links) Dropped() int { return l.dropped }

// Apply implements Force.
func (l *Links) Apply(alpha float64) {
	for range l.iterations {
		for _, lk := range l.resolved {
			// Work on predicted positions so consecutive links in one
			// pass see each other's corrections.
			x := lk.target.X + lk.target.VX - lk.source.X - lk.source.VX
			y := lk.target.Y + lk.target.VY - lk.source.Y - lk.source.VY
			if x == 0 && y == 0 {
				x, y = jiggle, jiggle
			}
			dist := math.Sqrt(x*x + y*y)
			k := (dist - lk.distance) / dist * alpha * lk.strength
			x *= k
			y *= k
			lk.target.VX -= x * lk.bias
			lk.target.VY -= y * lk.bias
			lk.source.VX += x * (1 - lk.bias)
			lk.source.VY += y * (1 - lk.bias)
		}
	}
}
