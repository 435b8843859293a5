package kinematics

import "math"

// OrbitState is the revolution of an entity around an anchor point.
// Position is derived from Anchor, Radius and Phase and is never integrated,
// so it cannot drift off the circle.
type OrbitState struct {
	Anchor          Vec3      `yaml:"anchor"`
	AngularVelocity float64   `yaml:"angular_velocity"`
	Direction       Direction `yaml:"direction"`
	Radius          float64   `yaml:"radius"`
	Phase           float64   `yaml:"phase"`
	Position        Vec3      `yaml:"position"`
}

// NewOrbitState anchors a revolution at anchor, at the base rate for direction,
// starting at InitialStep when initialStep is set.
func NewOrbitState(anchor Vec3, direction Direction, radius float64, initialStep bool) OrbitState {
	o := OrbitState{
		Anchor:          anchor,
		AngularVelocity: direction.AngularVelocity(),
		Direction:       direction,
		Radius:          radius,
	}
	if initialStep {
		o.Phase = InitialStep
	}
	o.Position = o.PositionAt(o.Phase)
	return o
}

// Advance moves the phase by AngularVelocity * multiplier * dt and
// recomputes Position on the circle around the current anchor.
func (o *OrbitState) Advance(multiplier, dt float64) {
	phase := wrapAngle(o.Phase + o.AngularVelocity*multiplier*dt)
	o.Phase = phase
	o.Position = o.PositionAt(phase)
}

// PositionAt returns the point at phase on the orbit circle, at the anchor's depth.
func (o OrbitState) PositionAt(phase float64) Vec3 {
	sin, cos := math.Sincos(phase)
	return Vec3{
		X: o.Anchor.X + o.Radius*cos,
		Y: o.Anchor.Y + o.Radius*sin,
		Z: o.Anchor.Z,
	}
}

// RadialError is the distance of Position from the orbit circle.
func (o OrbitState) RadialError() float64 {
	return math.Abs(o.Position.XY().Distance(o.Anchor.XY()) - o.Radius)
}
