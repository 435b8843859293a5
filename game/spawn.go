package game

import (
	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/kinematics"
)

// GearSpec is a request to spawn a gear.
type GearSpec struct {
	Position    kinematics.Vec2      `yaml:"position"`
	InitialStep bool                 `yaml:"initial_step"`
	Direction   kinematics.Direction `yaml:"direction"`
}

// PlayerSpec is a request to spawn the player. The orbit is anchored either at
// the gear with index Gear in the level, or at an explicit Position.
type PlayerSpec struct {
	Gear        *int                 `yaml:"gear,omitempty"`
	Position    *kinematics.Vec2     `yaml:"position,omitempty"`
	Radius      float64              `yaml:"radius"`
	InitialStep bool                 `yaml:"initial_step"`
	Direction   kinematics.Direction `yaml:"direction"`
}

// PlayerSprite matches the player's animation cell: 300px frames drawn at 0.2.
var PlayerSprite = Sprite{Kind: SpritePlayer, Width: 300, Height: 300, Scale: 0.2}

// Spawner creates level entities on a world.
type Spawner struct {
	World      *ecs.World
	Components *Components
	Registry   *GearRegistry
	GearSprite Sprite
}

// SpawnGear creates a gear with its spin, sprite and bounding box, and
// registers it. The bounding box is centred on the gear and sized from the
// sprite's scaled extents.
func (s *Spawner) SpawnGear(spec GearSpec) ecs.EntityId {
	c := s.Components
	id := s.World.Spawn()

	spin := kinematics.NewSpinState(spec.Direction, spec.InitialStep)
	width, height := s.GearSprite.Extents()

	c.Gears.Insert(id, Gear{Direction: spec.Direction})
	c.Spins.Insert(id, spin)
	c.Transforms.Insert(id, Transform{
		Position: spec.Position.Extend(GearDepth),
		Rotation: spin.Phase,
		Scale:    s.GearSprite.Scale,
	})
	c.Bounds.Insert(id, BoundingBox{Rect: kinematics.RectFromCenter(spec.Position, width, height)})
	c.Sprites.Insert(id, s.GearSprite)
	c.Names.Insert(id, "Gear")
	c.Scoped.Insert(id, Scoped{})

	s.Registry.Register(id)
	return id
}

// SpawnPlayer creates the player revolving around anchor at the player depth layer.
func (s *Spawner) SpawnPlayer(anchor kinematics.Vec2, spec PlayerSpec) ecs.EntityId {
	c := s.Components
	id := s.World.Spawn()

	orbit := kinematics.NewOrbitState(anchor.Extend(PlayerDepth), spec.Direction, spec.Radius, spec.InitialStep)

	c.Players.Insert(id, Player{})
	c.Orbits.Insert(id, orbit)
	c.Transforms.Insert(id, Transform{Position: orbit.Position, Scale: PlayerSprite.Scale})
	c.Sprites.Insert(id, PlayerSprite)
	c.Names.Insert(id, "Player")
	c.Scoped.Insert(id, Scoped{})
	return id
}

// SpawnLevel validates level and spawns its gears, then its player.
// Returns the player entity.
func (s *Spawner) SpawnLevel(level *Level) (ecs.EntityId, error) {
	if err := level.Validate(); err != nil {
		return 0, err
	}

	for _, gear := range level.Gears {
		s.SpawnGear(gear)
	}

	anchor := level.playerAnchor()
	return s.SpawnPlayer(anchor, *level.Player), nil
}
