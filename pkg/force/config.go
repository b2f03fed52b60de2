package force

import (
	"fmt"
	"math"
)

// Default cooling and integration coefficients. AlphaDecay is chosen so the
// simulation reaches AlphaMin after about 300 ticks, matching the
// conventional budget for interactive force layouts.
const (
	DefaultAlphaInit     = 1.0
	DefaultAlphaMin      = 0.001
	DefaultAlphaTarget   = 0.0
	DefaultVelocityDecay = 0.6
)

// DefaultAlphaDecay returns 1 - AlphaMin^(1/300), the decay rate that
// drains alpha from 1 to AlphaMin in 300 ticks.
func DefaultAlphaDecay() float64 {
	return 1 - math.Pow(DefaultAlphaMin, 1.0/300)
}

// Config holds the simulation coefficients. The zero value is not usable;
// start from DefaultConfig and override fields as needed.
type Config struct {
	// AlphaInit is the starting (and Reheat) temperature, in (0, 1].
	AlphaInit float64

	// AlphaMin is the completion threshold. The simulation is complete
	// once alpha falls below it.
	AlphaMin float64

	// AlphaDecay is the per-tick geometric decay rate toward AlphaTarget.
	AlphaDecay float64

	// AlphaTarget is the value alpha decays toward. It must stay below
	// AlphaMin for the simulation to ever complete; interactive callers
	// raise it temporarily while dragging and restore it afterwards.
	AlphaTarget float64

	// VelocityDecay is the fraction of velocity retained after each
	// integration step. Lower values mean heavier damping.
	VelocityDecay float64

	// MaxTicks caps Run. Zero means no cap beyond the alpha schedule.
	// The cap is a safety net for configurations where AlphaTarget is at
	// or above AlphaMin and the alpha schedule alone never terminates.
	MaxTicks int
}

// DefaultConfig returns the standard coefficients.
func DefaultConfig() Config {
	return Config{
		AlphaInit:     DefaultAlphaInit,
		AlphaMin:      DefaultAlphaMin,
		AlphaDecay:    DefaultAlphaDecay(),
		AlphaTarget:   DefaultAlphaTarget,
		VelocityDecay: DefaultVelocityDecay,
	}
}

// Validate checks the coefficients are inside their working ranges.
func (c Config) Validate() error {
	if c.AlphaInit <= 0 || c.AlphaInit > 1 {
		return fmt.Errorf("alpha init %v outside (0, 1]", c.AlphaInit)
	}
	if c.AlphaMin <= 0 || c.AlphaMin >= 1 {
		return fmt.Errorf("alpha min %v outside (0, 1)", c.AlphaMin)
	}
	if c.AlphaDecay <= 0 || c.AlphaDecay >= 1 {
		return fmt.Errorf("alpha decay %v outside (0, 1)", c.AlphaDecay)
	}
	if c.AlphaTarget < 0 || c.AlphaTarget >= 1 {
		return fmt.Errorf("alpha target %v outside [0, 1)", c.AlphaTarget)
	}
	if c.VelocityDecay <= 0 || c.VelocityDecay > 1 {
		return fmt.Errorf("velocity decay %v outside (0, 1]", c.VelocityDecay)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max ticks %d negative", c.MaxTicks)
	}
	return nil
}
