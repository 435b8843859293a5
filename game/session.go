package game

import (
	"io"
	"log"

	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/kinematics"
)

// Session is one play session: a world populated from a level, the systems
// that drive it, and the session-wide singletons.
type Session struct {
	World      *ecs.World
	Scheduler  *ecs.Scheduler
	Components *Components
	Registry   *GearRegistry
	Player     ecs.EntityId

	governor *ecs.Singleton[kinematics.Governor]
	input    *ecs.Singleton[Input]
	stats    *ecs.Singleton[Stats]
	logger   *log.Logger
	ended    bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session events (speed changes, jumps) to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession spawns level into a fresh world and registers the systems in
// tick order: speed, spin, orbit, jump, transform.
func NewSession(level *Level, opts ...Option) (*Session, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	governor, err := level.NewGovernor()
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	components := NewComponents(world)

	s := &Session{
		World:      world,
		Scheduler:  ecs.NewScheduler(world),
		Components: components,
		Registry:   NewGearRegistry(components),
		governor:   ecs.NewSingleton(world, governor),
		input:      ecs.NewSingleton[Input](world),
		stats:      ecs.NewSingleton[Stats](world),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	spawner := &Spawner{
		World:      world,
		Components: components,
		Registry:   s.Registry,
		GearSprite: level.Sprite(),
	}
	s.Player, err = spawner.SpawnLevel(level)
	if err != nil {
		return nil, err
	}

	s.Scheduler.Register(&SpeedSystem{
		Input:    s.input,
		Governor: s.governor,
		Stats:    s.stats,
		Logger:   s.logger,
	})
	s.Scheduler.Register(&SpinSystem{Spins: components.Spins, Governor: s.governor})
	s.Scheduler.Register(&OrbitSystem{Orbits: components.Orbits, Governor: s.governor})
	s.Scheduler.Register(&JumpSystem{
		Input:      s.input,
		Stats:      s.stats,
		Players:    components.Players,
		Orbits:     components.Orbits,
		Transforms: components.Transforms,
		Registry:   s.Registry,
		Logger:     s.logger,
	})
	s.Scheduler.Register(&TransformSystem{
		Transforms: components.Transforms,
		Spins:      components.Spins,
		Orbits:     components.Orbits,
	})

	s.logger.Printf("session started: %d gears, player orbiting (%.1f, %.1f)",
		s.Registry.Len(), level.playerAnchor().X, level.playerAnchor().Y)
	return s, nil
}

// Trigger queues an action for the next tick. Ignored once the session ended.
func (s *Session) Trigger(action Action) {
	if s.ended {
		return
	}
	s.input.Get().Push(action)
}

// Tick advances the session by dt seconds. Ignored once the session ended.
func (s *Session) Tick(dt float64) {
	if s.ended {
		return
	}
	s.Scheduler.Once(dt)
}

// Governor returns the session's speed governor.
func (s *Session) Governor() *kinematics.Governor {
	return s.governor.Get()
}

// PlayerOrbit returns the player's orbit, or nil once the session ended.
func (s *Session) PlayerOrbit() *kinematics.OrbitState {
	return s.Components.Orbits.Get(s.Player)
}

// Stats returns the session's event counters.
func (s *Session) Stats() Stats {
	return *s.stats.Get()
}

// End despawns every session-scoped entity, clears the gear registry and
// drops the session singletons. Further ticks and triggers are no-ops.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true

	var scoped []ecs.EntityId
	for id := range s.Components.Scoped.Iter() {
		scoped = append(scoped, id)
	}
	for _, id := range scoped {
		s.Registry.Unregister(id)
		s.World.Despawn(id)
	}

	ecs.RemoveSingleton[Input](s.World)
	ecs.RemoveSingleton[kinematics.Governor](s.World)
	ecs.RemoveSingleton[Stats](s.World)

	s.logger.Printf("session ended after %d ticks, %d despawned", s.Scheduler.Ticks(), len(scoped))
}

// Ended reports whether End has been called.
func (s *Session) Ended() bool {
	return s.ended
}
