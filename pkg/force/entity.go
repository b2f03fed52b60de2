package force

// Entity is a simulated point participating in the layout.
//
// Position and velocity are mutated on every tick. FX/FY, when non-nil, pin
// the entity to a fixed position: the integrator copies the pinned
// coordinate over and zeroes the velocity each step, so pinned entities are
// excluded from force-driven movement while still exerting forces on their
// neighbors. Pinning is how callers implement node dragging.
//
// Entities are created by the caller before the simulation starts. The
// kernel never allocates or discards them.
type Entity struct {
	ID int64    `json:"id"`
	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	VX float64  `json:"vx"`
	VY float64  `json:"vy"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`
}

// Pin fixes the entity at (x, y). The entity stops moving under
// integration until Unpin is called.
func (e *Entity) Pin(x, y float64) {
	e.FX = &x
	e.FY = &y
	e.X = x
	e.Y = y
	e.VX = 0
	e.VY = 0
}

// Unpin releases a pinned entity so forces move it again.
func (e *Entity) Unpin() {
	e.FX = nil
	e.FY = nil
}

// Pinned reports whether the entity has a fixed position on either axis.
func (e *Entity) Pinned() bool {
	return e.FX != nil || e.FY != nil
}
