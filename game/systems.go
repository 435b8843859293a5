package game

import (
	"log"

	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/kinematics"
)

// Stats counts session events for debug panels and headless reports.
type Stats struct {
	Jumps        int
	Transfers    int
	SpeedChanges int
	LastTransfer ecs.EntityId
}

// SpeedSystem applies queued speed commands to the governor. It runs first,
// so every advance in a tick reads the same multiplier.
type SpeedSystem struct {
	Input    *ecs.Singleton[Input]
	Governor *ecs.Singleton[kinematics.Governor]
	Stats    *ecs.Singleton[Stats]
	Logger   *log.Logger
}

func (s *SpeedSystem) Execute(frame *ecs.UpdateFrame) {
	governor := s.Governor.Get()
	for _, action := range s.Input.Get().take(isSpeedAction) {
		before := governor.Multiplier()
		switch action {
		case ActionSpeedUp:
			governor.Increase()
		case ActionSpeedDown:
			governor.Decrease()
		}
		if governor.Multiplier() != before {
			s.Stats.Get().SpeedChanges++
			s.Logger.Printf("tick %d: speed %.2fx -> %.2fx", frame.Tick, before, governor.Multiplier())
		}
	}
}

// SpinSystem turns every gear in place.
type SpinSystem struct {
	Spins    *ecs.Table[Spin]
	Governor *ecs.Singleton[kinematics.Governor]
}

func (s *SpinSystem) Execute(frame *ecs.UpdateFrame) {
	multiplier := s.Governor.Get().Multiplier()
	for _, spin := range s.Spins.Iter() {
		spin.Advance(multiplier, frame.DeltaTime)
	}
}

// OrbitSystem revolves every orbiting entity around its anchor.
type OrbitSystem struct {
	Orbits   *ecs.Table[Orbit]
	Governor *ecs.Singleton[kinematics.Governor]
}

func (s *OrbitSystem) Execute(frame *ecs.UpdateFrame) {
	multiplier := s.Governor.Get().Multiplier()
	for _, orbit := range s.Orbits.Iter() {
		orbit.Advance(multiplier, frame.DeltaTime)
	}
}

// JumpSystem turns queued jump actions into transfer attempts. Several jumps
// queued for the same tick collapse into one attempt, like a single key press.
// The transfer is deferred to the frame's command flush, after every advance
// of the tick, so the orbit is never observed half re-anchored.
type JumpSystem struct {
	Input      *ecs.Singleton[Input]
	Stats      *ecs.Singleton[Stats]
	Players    *ecs.Table[Player]
	Orbits     *ecs.Table[Orbit]
	Transforms *ecs.Table[Transform]
	Registry   *GearRegistry
	Logger     *log.Logger
}

func (s *JumpSystem) Execute(frame *ecs.UpdateFrame) {
	if len(s.Input.Get().take(isJumpAction)) == 0 {
		return
	}

	tick := frame.Tick
	frame.Commands.Defer(func() {
		s.Stats.Get().Jumps++
		for id := range s.Players.Iter() {
			s.jump(tick, id)
		}
	})
}

func (s *JumpSystem) jump(tick uint64, player ecs.EntityId) {
	orbit := s.Orbits.Get(player)
	if orbit == nil {
		return
	}

	hit, ok := s.Registry.QueryContaining(orbit.Position.XY(), orbit.Anchor.XY())
	if !ok || !kinematics.Transfer(orbit, hit.Candidate) {
		s.Logger.Printf("tick %d: jump missed at (%.1f, %.1f)", tick, orbit.Position.X, orbit.Position.Y)
		return
	}

	if transform := s.Transforms.Get(player); transform != nil {
		transform.Position = orbit.Position
	}

	stats := s.Stats.Get()
	stats.Transfers++
	stats.LastTransfer = hit.Id
	s.Logger.Printf("tick %d: transferred onto gear %d at (%.1f, %.1f), now %s",
		tick, hit.Id.Index(), hit.Candidate.Position.X, hit.Candidate.Position.Y, orbit.Direction)
}

// TransformSystem copies spin phases and orbit positions into transforms for renderers.
type TransformSystem struct {
	Transforms *ecs.Table[Transform]
	Spins      *ecs.Table[Spin]
	Orbits     *ecs.Table[Orbit]
}

func (s *TransformSystem) Execute(frame *ecs.UpdateFrame) {
	for id, spin := range s.Spins.Iter() {
		if transform := s.Transforms.Get(id); transform != nil {
			transform.Rotation = spin.Phase
		}
	}
	for id, orbit := range s.Orbits.Iter() {
		if transform := s.Transforms.Get(id); transform != nil {
			transform.Position = orbit.Position
		}
	}
}
