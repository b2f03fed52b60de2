package graph

import (
	"github.com/google/uuid"
)

// =============================================================================
// Graph - Node-Link Serialization Model
// =============================================================================

// Graph is the canonical serialization format for node-link graphs.
// Used for file IO, API responses, storage, and caching.
//
// The format is human-readable and round-trip safe: read, lay out, write,
// re-read preserves every field the layout did not touch.
type Graph struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one vertex of the graph. Position and velocity are optional on
// input: absent coordinates are assigned deterministically when the layout
// starts. FX/FY, when set, pin the node at that exact position for the
// whole run.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"` // Display label (defaults to ID)
	Group string `json:"group,omitempty"` // Cluster/category tag for styling

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	VX float64 `json:"vx,omitempty"`
	VY float64 `json:"vy,omitempty"`

	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`

	Radius float64        `json:"radius,omitempty"` // Collision radius
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Pinned reports whether the node has a fixed position on either axis.
func (n *Node) Pinned() bool { return n.FX != nil || n.FY != nil }

// Pin fixes the node at (x, y).
func (n *Node) Pin(x, y float64) {
	n.FX, n.FY = &x, &y
}

// Unpin releases a fixed position.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// Edge is one undirected link between two nodes, identified by node ID.
// Distance and Strength of zero mean "use the layout defaults".
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Distance float64 `json:"distance,omitempty"`
	Strength float64 `json:"strength,omitempty"`
	Value    float64 `json:"value,omitempty"` // Weight for styling (stroke width etc.)
}

// New creates an empty named graph with a fresh id.
func New(name string) *Graph {
	return &Graph{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// AddNode appends a node. Duplicate IDs are caught by Validate, not here.
func (g *Graph) AddNode(n Node) {
	g.Nodes = append(g.Nodes, n)
}

// AddEdge appends an edge between two node IDs.
func (g *Graph) AddEdge(source, target string) {
	g.Edges = append(g.Edges, Edge{Source: source, Target: target})
}

// Node returns a pointer to the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Degree returns the number of edges touching each node, keyed by node ID.
// Every node appears in the result, isolated ones with degree zero.
func (g *Graph) Degree() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for i := range g.Nodes {
		deg[g.Nodes[i].ID] = 0
	}
	for _, e := range g.Edges {
		if _, ok := deg[e.Source]; ok {
			deg[e.Source]++
		}
		if _, ok := deg[e.Target]; ok {
			deg[e.Target]++
		}
	}
	return deg
}
