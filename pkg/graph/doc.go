// Package graph defines the serializable node-link graph model that feeds
// the force simulation.
//
// A Graph carries string-identified Nodes and Edges plus free-form metadata,
// and is the canonical interchange format for files, the HTTP API, and the
// cache. The force kernel works on dense integer-indexed entities; Bind
// translates between the two worlds and copies positions back after a
// layout run.
package graph
