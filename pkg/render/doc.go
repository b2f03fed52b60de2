// Package render turns positioned layouts into visual artifacts.
//
// Three sinks are provided:
//   - SVG: self-contained vector output, built directly from node and edge
//     positions. Deterministic for a given layout and option set.
//   - DOT: Graphviz interchange, with rasterization to SVG or PNG through
//     goccy/go-graphviz.
//   - JSON: the positioned layout itself, for external viewers.
package render
