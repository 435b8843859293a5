package kinematics

//go:generate go tool stringer -type=Direction

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the sense of rotation, viewed with +Y up.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

const (
	// BaseRate is the magnitude of every spin and revolution, 30°/s.
	BaseRate = 30 * math.Pi / 180
	// InitialStep offsets a starting phase and the phase after a transfer, 15°.
	InitialStep = 15 * math.Pi / 180
)

// Opposite returns the reverse direction. Opposite(Opposite(d)) == d.
func (d Direction) Opposite() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// AngularVelocity maps the direction to a signed base rate:
// clockwise is negative, counter-clockwise positive.
func (d Direction) AngularVelocity() float64 {
	if d == Clockwise {
		return -BaseRate
	}
	return BaseRate
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case Clockwise:
		return []byte("clockwise"), nil
	case CounterClockwise:
		return []byte("counter_clockwise"), nil
	}
	return nil, fmt.Errorf("invalid direction %d", int(d))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "clockwise", "cw":
		*d = Clockwise
	case "counter_clockwise", "counterclockwise", "counter-clockwise", "ccw":
		*d = CounterClockwise
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}
