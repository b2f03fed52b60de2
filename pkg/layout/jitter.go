package layout

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lhartmann/forcefield/pkg/graph"
)

// jitterFrequency controls how fast the noise field varies across the
// layout. Low values keep neighboring nodes drifting together, which
// reads as organic rather than noisy.
const jitterFrequency = 0.01

// jitter displaces every free node by smooth two-dimensional noise with
// the given amplitude. Pinned nodes stay put. Deterministic per seed.
func jitter(g *graph.Graph, amplitude float64, seed int64) {
	noise := opensimplex.New(seed)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Pinned() {
			continue
		}
		// Offset the second sample so dx and dy decorrelate.
		n.X += amplitude * noise.Eval2(n.X*jitterFrequency, n.Y*jitterFrequency)
		n.Y += amplitude * noise.Eval2(n.X*jitterFrequency+100, n.Y*jitterFrequency+100)
	}
}
