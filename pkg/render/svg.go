package render

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/layout"
)

// Theme is a named color scheme for the SVG sink.
type Theme struct {
	Background string
	Edge       string
	Node       string
	Label      string
	// Palette colors nodes by group, assigned in sorted group order so
	// output stays deterministic.
	Palette []string
}

// Light is the default theme.
var Light = Theme{
	Background: "#ffffff",
	Edge:       "#999999",
	Node:       "#4682b4",
	Label:      "#333333",
	Palette: []string{
		"#4682b4", "#e45756", "#54a24b", "#f2a900",
		"#9467bd", "#17becf", "#e377c2", "#8c564b",
	},
}

// Dark is a dark-background variant of Light.
var Dark = Theme{
	Background: "#1e1e1e",
	Edge:       "#555555",
	Node:       "#6baed6",
	Label:      "#dddddd",
	Palette: []string{
		"#6baed6", "#fc8d62", "#8dd3c7", "#ffd92f",
		"#bc80bd", "#80b1d3", "#fb8072", "#b3de69",
	},
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      Theme
	labels     bool
	edgeWidth  float64
	nodeRadius float64
}

// WithTheme sets the color scheme.
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithLabels draws each node's display label next to it.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithEdgeWidth sets the base stroke width for edges. Edges carrying a
// Value scale their width by it.
func WithEdgeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.edgeWidth = w } }

// WithNodeRadius sets the circle radius for nodes without an explicit one.
func WithNodeRadius(radius float64) SVGOption { return func(r *svgRenderer) { r.nodeRadius = radius } }

// RenderSVG renders a positioned layout to a self-contained SVG document.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{theme: Light, edgeWidth: 1, nodeRadius: 5}
	for _, opt := range opts {
		opt(&r)
	}

	colors := r.groupColors(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)

	byID := make(map[string]*graph.Node, len(l.Graph.Nodes))
	for i := range l.Graph.Nodes {
		byID[l.Graph.Nodes[i].ID] = &l.Graph.Nodes[i]
	}

	buf.WriteString(`  <g stroke-linecap="round">` + "\n")
	for _, e := range l.Graph.Edges {
		src, dst := byID[e.Source], byID[e.Target]
		if src == nil || dst == nil {
			continue
		}
		width := r.edgeWidth
		if e.Value > 0 {
			width *= e.Value
		}
		fmt.Fprintf(&buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
			src.X, src.Y, dst.X, dst.Y, r.theme.Edge, width)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g>\n")
	for i := range l.Graph.Nodes {
		n := &l.Graph.Nodes[i]
		radius := r.nodeRadius
		if n.Radius > 0 {
			radius = n.Radius
		}
		fill := r.theme.Node
		if c, ok := colors[n.Group]; ok {
			fill = c
		}
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" id="node-%s"/>`+"\n",
			n.X, n.Y, radius, fill, escape(n.ID))
		if r.labels {
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f" font-size="11" font-family="sans-serif" fill="%s">%s</text>`+"\n",
				n.X+radius+3, n.Y+4, r.theme.Label, escape(n.DisplayLabel()))
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// groupColors assigns palette colors to group names in sorted order.
// Ungrouped nodes keep the theme's base node color.
func (r *svgRenderer) groupColors(l *layout.Layout) map[string]string {
	seen := make(map[string]struct{})
	for i := range l.Graph.Nodes {
		if g := l.Graph.Nodes[i].Group; g != "" {
			seen[g] = struct{}{}
		}
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	colors := make(map[string]string, len(groups))
	for i, g := range groups {
		colors[g] = r.theme.Palette[i%len(r.theme.Palette)]
	}
	return colors
}

// escape replaces the XML metacharacters that can appear in user ids and
// labels.
func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
