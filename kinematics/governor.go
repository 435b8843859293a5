package kinematics

import (
	"fmt"
	"math"
)

const (
	DefaultMultiplier    = 1.0
	DefaultMinMultiplier = 0.25
	DefaultMaxMultiplier = 4.0
	DefaultStepFactor    = 2.0
)

// Governor holds the global multiplier applied to every angular velocity.
// Steps are multiplicative and clamped, so no sequence of commands can take
// the multiplier outside [min, max].
type Governor struct {
	multiplier float64
	min        float64
	max        float64
	factor     float64
}

// NewGovernor returns a governor at 1.0 bounded to [0.25, 4.0], stepping by 2.
func NewGovernor() Governor {
	return Governor{
		multiplier: DefaultMultiplier,
		min:        DefaultMinMultiplier,
		max:        DefaultMaxMultiplier,
		factor:     DefaultStepFactor,
	}
}

// NewGovernorWithBounds builds a governor from explicit settings.
func NewGovernorWithBounds(initial, minimum, maximum, factor float64) (Governor, error) {
	for _, v := range [...]float64{initial, minimum, maximum, factor} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Governor{}, fmt.Errorf("governor settings must be finite, got %v", v)
		}
	}
	switch {
	case !(minimum > 0):
		return Governor{}, fmt.Errorf("governor minimum %v must be positive", minimum)
	case minimum > maximum:
		return Governor{}, fmt.Errorf("governor minimum %v exceeds maximum %v", minimum, maximum)
	case !(initial >= minimum && initial <= maximum):
		return Governor{}, fmt.Errorf("governor initial %v outside [%v, %v]", initial, minimum, maximum)
	case !(factor > 1):
		return Governor{}, fmt.Errorf("governor step factor %v must be greater than 1", factor)
	}
	return Governor{multiplier: initial, min: minimum, max: maximum, factor: factor}, nil
}

// Multiplier returns the current multiplier.
func (g Governor) Multiplier() float64 {
	return g.multiplier
}

// Bounds returns the clamp range.
func (g Governor) Bounds() (minimum, maximum float64) {
	return g.min, g.max
}

// Increase multiplies by the step factor, clamped to the maximum.
func (g *Governor) Increase() {
	g.multiplier = min(g.max, g.multiplier*g.factor)
}

// Decrease divides by the step factor, clamped to the minimum.
func (g *Governor) Decrease() {
	g.multiplier = max(g.min, g.multiplier/g.factor)
}
