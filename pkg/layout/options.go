package layout

import (
	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/force"
)

// Frame and force defaults.
const (
	DefaultWidth        = 800.0
	DefaultHeight       = 600.0
	DefaultFramePadding = 20.0
)

// Options configures a layout run. The zero value is not usable directly;
// call ValidateAndSetDefaults or go through New.
type Options struct {
	// Frame size for the final coordinate space. The layout is centered
	// in the frame; with Fit set, it is also scaled to stay inside it.
	Width  float64
	Height float64
	Fit    bool

	// Charge is the many-body strength. Zero means the default repulsion.
	Charge float64

	// LinkDistance overrides the target distance of every edge that does
	// not set its own. Zero keeps the kernel default.
	LinkDistance float64

	// Collide enables circle collision using per-node radii.
	// CollideRadius is the radius for nodes that do not set one.
	Collide       bool
	CollideRadius float64

	// Jitter displaces final positions with smooth noise, giving gallery
	// renders a hand-placed look. Zero disables the pass. Deterministic
	// for a fixed seed.
	Jitter     float64
	JitterSeed int64

	// Sim carries the cooling schedule. Zero value is replaced by
	// force.DefaultConfig.
	Sim force.Config
}

// DefaultOptions returns options for a standard 800x600 layout.
func DefaultOptions() Options {
	return Options{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Fit:           true,
		Charge:        force.DefaultManyBodyStrength,
		CollideRadius: 5,
		Sim:           force.DefaultConfig(),
	}
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// values no layout can work with.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame size %vx%v is negative", o.Width, o.Height)
	}
	if o.Charge == 0 {
		o.Charge = force.DefaultManyBodyStrength
	}
	if o.LinkDistance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "link distance %v is negative", o.LinkDistance)
	}
	if o.Collide && o.CollideRadius <= 0 {
		o.CollideRadius = 5
	}
	if o.Jitter < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jitter %v is negative", o.Jitter)
	}
	if o.Sim == (force.Config{}) {
		o.Sim = force.DefaultConfig()
	}
	return o.Sim.Validate()
}
