package game

import (
	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/kinematics"
)

// Depth layers, matching the draw order of the renderers.
const (
	GearDepth   = 1.0
	PlayerDepth = 5.0
)

// Transform is what renderers read each tick: world position and orientation.
type Transform struct {
	Position kinematics.Vec3
	Rotation float64
	Scale    float64
}

// Gear tags a spinning gear entity.
type Gear struct {
	Direction kinematics.Direction
}

// Player tags the orbiting player entity.
type Player struct{}

// Spin is a gear's self-rotation.
type Spin = kinematics.SpinState

// Orbit is the player's revolution around its current gear.
type Orbit = kinematics.OrbitState

// BoundingBox is the region a player must be inside to jump onto a gear.
// It is fixed at spawn time.
type BoundingBox struct {
	kinematics.Rect
}

// SpriteKind selects how a renderer draws an entity.
type SpriteKind int

const (
	SpriteGear SpriteKind = iota
	SpritePlayer
)

// Sprite carries the visual extents renderers and bounding boxes derive from.
type Sprite struct {
	Kind   SpriteKind
	Width  float64
	Height float64
	Scale  float64
}

// Extents returns the scaled width and height.
func (s Sprite) Extents() (width, height float64) {
	return s.Width * s.Scale, s.Height * s.Scale
}

// Name labels an entity for debug panels.
type Name string

// Scoped marks entities owned by the play session; they are despawned when it ends.
type Scoped struct{}

// Components bundles the tables a session registers on its world.
type Components struct {
	Transforms *ecs.Table[Transform]
	Gears      *ecs.Table[Gear]
	Players    *ecs.Table[Player]
	Spins      *ecs.Table[Spin]
	Orbits     *ecs.Table[Orbit]
	Bounds     *ecs.Table[BoundingBox]
	Sprites    *ecs.Table[Sprite]
	Names      *ecs.Table[Name]
	Scoped     *ecs.Table[Scoped]
}

// NewComponents registers every game table on w.
func NewComponents(w *ecs.World) *Components {
	return &Components{
		Transforms: ecs.NewTable[Transform](w),
		Gears:      ecs.NewTable[Gear](w),
		Players:    ecs.NewTable[Player](w),
		Spins:      ecs.NewTable[Spin](w),
		Orbits:     ecs.NewTable[Orbit](w),
		Bounds:     ecs.NewTable[BoundingBox](w),
		Sprites:    ecs.NewTable[Sprite](w),
		Names:      ecs.NewTable[Name](w),
		Scoped:     ecs.NewTable[Scoped](w),
	}
}
