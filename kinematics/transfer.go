package kinematics

import "math"

// Candidate is a gear the orbiting entity may transfer onto.
type Candidate struct {
	Position Vec2
	Spin     SpinState
	Bounds   Rect
}

// Eligible reports whether o may transfer onto c: c must not be the gear o
// already orbits, and o's position must lie inside c's bounds.
func (o OrbitState) Eligible(c Candidate) bool {
	if c.Position == o.Anchor.XY() {
		return false
	}
	return c.Bounds.Contains(o.Position.XY())
}

// Transfer re-anchors o onto c if it is eligible and reports whether it did.
// An ineligible candidate leaves o untouched.
func Transfer(o *OrbitState, c Candidate) bool {
	if !o.Eligible(c) {
		return false
	}
	o.MoveOntoGear(c.Position, c.Spin)
	return true
}

// MoveOntoGear re-anchors the orbit on a gear at position spinning with spin.
// The anchor keeps its depth, the revolution takes the gear's angular velocity,
// the direction reverses, and the phase is recomputed by TransferPhase.
// When the phase is undefined (the entity sits on the new anchor) the current
// phase is kept. Position is re-derived at once.
func (o *OrbitState) MoveOntoGear(position Vec2, spin SpinState) {
	anchor := position.Extend(o.Anchor.Z)
	direction := o.Direction.Opposite()

	phase, ok := TransferPhase(o.Position.XY(), position, direction)
	if !ok {
		phase = o.Phase
	}

	o.Anchor = anchor
	o.AngularVelocity = spin.AngularVelocity
	o.Direction = direction
	o.Phase = phase
	o.Position = o.PositionAt(phase)
}

// TransferPhase computes the starting phase on a new anchor for an entity at
// from. The angle of the unit vector from `from` to anchor is taken as
// atan(y/x), shifted by π when x is negative, then offset by InitialStep:
// subtracted for a counter-clockwise direction, added for clockwise.
// ok is false when from and anchor coincide.
func TransferPhase(from, anchor Vec2, direction Direction) (phase float64, ok bool) {
	unit, ok := anchor.Sub(from).Normalize()
	if !ok {
		return 0, false
	}

	angle := math.Atan(unit.Y / unit.X)
	if unit.X < 0 {
		angle += math.Pi
	}

	if direction == CounterClockwise {
		angle -= InitialStep
	} else {
		angle += InitialStep
	}
	return angle, true
}
