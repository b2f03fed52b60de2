package force

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// maxQuadDepth bounds subdivision. Once reached, a leaf accepts any number
// of (near-)coincident bodies instead of splitting further.
const maxQuadDepth = 32

// quadnode is one square cell of the Barnes-Hut tree. Cells carry the
// aggregate charge (value), the |charge|-weighted center used for the
// far-field approximation, and the maximum body radius in the subtree used
// by collision pruning.
type quadnode struct {
	x, y, size float64

	center r2.Vec
	value  float64
	weight float64
	radius float64
	count  int

	indices  []int
	children *[4]*quadnode
}

func (n *quadnode) leaf() bool { return n.children == nil }

// quadtree is a spatial index over entity positions. The position accessor
// is captured at build time so the collision force can index predicted
// (position + velocity) coordinates while many-body indexes current ones.
type quadtree struct {
	root   *quadnode
	px, py []float64
	values []float64
	radii  []float64
}

// buildQuadtree constructs the tree over all entities. pos extracts the
// indexed coordinate; values carries per-entity charge and radii per-entity
// collision radius. Either slice may be nil when the caller does not need
// that aggregate.
func buildQuadtree(entities []*Entity, pos func(*Entity) (float64, float64), values, radii []float64) *quadtree {
	if len(entities) == 0 {
		return &quadtree{}
	}

	t := &quadtree{
		px:     make([]float64, len(entities)),
		py:     make([]float64, len(entities)),
		values: values,
		radii:  radii,
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, e := range entities {
		x, y := pos(e)
		t.px[i], t.py[i] = x, y
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	// Square cell covering all bodies, padded so boundary points never
	// land exactly on the far edge.
	size := math.Max(maxX-minX, maxY-minY) + 1
	t.root = &quadnode{x: minX, y: minY, size: size}

	for i := range entities {
		t.insert(t.root, i, 0)
	}
	return t
}

func (t *quadtree) valueOf(i int) float64 {
	if t.values == nil {
		return 0
	}
	return t.values[i]
}

func (t *quadtree) radiusOf(i int) float64 {
	if t.radii == nil {
		return 0
	}
	return t.radii[i]
}

func (t *quadtree) insert(n *quadnode, i int, depth int) {
	t.aggregate(n, i)

	if n.leaf() {
		if len(n.indices) == 0 || depth >= maxQuadDepth || t.coincident(n.indices[0], i) {
			n.indices = append(n.indices, i)
			return
		}
		// Split: push the resident body down, then place the new one.
		old := n.indices
		n.indices = nil
		n.children = &[4]*quadnode{}
		for _, j := range old {
			t.insert(t.childFor(n, j), j, depth+1)
		}
	}
	t.insert(t.childFor(n, i), i, depth+1)
}

// aggregate folds body i into the cell's running aggregates. The center is
// weighted by |charge| when charges are present, falling back to a plain
// positional mean for unweighted (collision) trees.
func (t *quadtree) aggregate(n *quadnode, i int) {
	p := r2.Vec{X: t.px[i], Y: t.py[i]}
	w := math.Abs(t.valueOf(i))
	if w == 0 {
		w = 1
	}
	total := n.weight + w
	n.center = r2.Add(r2.Scale(n.weight/total, n.center), r2.Scale(w/total, p))
	n.weight = total
	n.value += t.valueOf(i)
	n.radius = math.Max(n.radius, t.radiusOf(i))
	n.count++
}

// childFor routes body i to the proper quadrant, creating it on demand.
func (t *quadtree) childFor(n *quadnode, i int) *quadnode {
	half := n.size / 2
	qx, qy := n.x, n.y
	q := 0
	if t.px[i] >= n.x+half {
		q |= 1
		qx += half
	}
	if t.py[i] >= n.y+half {
		q |= 2
		qy += half
	}
	if n.children[q] == nil {
		n.children[q] = &quadnode{x: qx, y: qy, size: half}
	}
	return n.children[q]
}

func (t *quadtree) coincident(i, j int) bool {
	return t.px[i] == t.px[j] && t.py[i] == t.py[j]
}

// visit walks the tree, calling fn for each cell. Returning false prunes
// the subtree below the cell.
func (t *quadtree) visit(fn func(n *quadnode) bool) {
	if t.root == nil {
		return
	}
	var walk func(n *quadnode)
	walk = func(n *quadnode) {
		if !fn(n) || n.leaf() {
			return
		}
		for _, ch := range n.children {
			if ch != nil {
				walk(ch)
			}
		}
	}
	walk(t.root)
}
