package game

import "github.com/plus3/gearjump/kinematics"

// GearSnapshot is the observable state of one gear.
type GearSnapshot struct {
	Id        uint64               `yaml:"id"`
	Position  kinematics.Vec2      `yaml:"position"`
	Rotation  float64              `yaml:"rotation"`
	Direction kinematics.Direction `yaml:"direction"`
}

// PlayerSnapshot is the observable state of the player.
type PlayerSnapshot struct {
	Position  kinematics.Vec3      `yaml:"position"`
	Anchor    kinematics.Vec3      `yaml:"anchor"`
	Phase     float64              `yaml:"phase"`
	Radius    float64              `yaml:"radius"`
	Direction kinematics.Direction `yaml:"direction"`
}

// Snapshot is a copy of the session state after a tick, suitable for
// printing or comparing.
type Snapshot struct {
	Tick       uint64          `yaml:"tick"`
	Multiplier float64         `yaml:"multiplier"`
	Gears      []GearSnapshot  `yaml:"gears"`
	Player     *PlayerSnapshot `yaml:"player,omitempty"`
}

// Snapshot captures the current state. Gears are listed in registration order.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       s.Scheduler.Ticks(),
		Multiplier: s.governor.Get().Multiplier(),
	}

	for id, candidate := range s.Registry.All() {
		snap.Gears = append(snap.Gears, GearSnapshot{
			Id:        uint64(id),
			Position:  candidate.Position,
			Rotation:  candidate.Spin.Phase,
			Direction: candidate.Spin.Direction(),
		})
	}

	if orbit := s.PlayerOrbit(); orbit != nil {
		snap.Player = &PlayerSnapshot{
			Position:  orbit.Position,
			Anchor:    orbit.Anchor,
			Phase:     orbit.Phase,
			Radius:    orbit.Radius,
			Direction: orbit.Direction,
		}
	}

	return snap
}
