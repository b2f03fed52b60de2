package cache

import "time"

// Cache TTLs per entry kind. Layouts and artifacts are deterministic
// functions of their inputs, so the TTLs exist to bound disk and Redis
// growth, not to manage staleness.
const (
	// TTLGraph applies to parsed graph entries.
	TTLGraph = 24 * time.Hour

	// TTLLayout applies to computed layout entries.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered artifact entries.
	TTLArtifact = 7 * 24 * time.Hour
)
