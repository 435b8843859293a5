package kinematics

// SpinState is the self-rotation of an entity about its own centre.
// The sign of AngularVelocity encodes the direction.
type SpinState struct {
	AngularVelocity float64 `yaml:"angular_velocity"`
	Phase           float64 `yaml:"phase"`
}

// NewSpinState returns a spin at the base rate in the given direction,
// starting at InitialStep when initialStep is set.
func NewSpinState(direction Direction, initialStep bool) SpinState {
	s := SpinState{AngularVelocity: direction.AngularVelocity()}
	if initialStep {
		s.Phase = InitialStep
	}
	return s
}

// Advance rotates the phase by AngularVelocity * multiplier * dt.
func (s *SpinState) Advance(multiplier, dt float64) {
	s.Phase = wrapAngle(s.Phase + s.AngularVelocity*multiplier*dt)
}

// Reverse flips the spin direction, keeping the magnitude.
func (s *SpinState) Reverse() {
	s.AngularVelocity = -s.AngularVelocity
}

// Direction reports the sense of the spin. A zero velocity counts as counter-clockwise.
func (s SpinState) Direction() Direction {
	if s.AngularVelocity < 0 {
		return Clockwise
	}
	return CounterClockwise
}
