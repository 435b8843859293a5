package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/plus3/gearjump/kinematics"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is wrapped by every level validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// SpriteSpec sizes the gear sprite; bounding boxes derive from it.
type SpriteSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

// GovernorSpec configures the speed governor.
type GovernorSpec struct {
	Initial float64 `yaml:"initial"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Factor  float64 `yaml:"factor"`
}

// Level describes everything spawned when a play session starts.
type Level struct {
	GearSprite SpriteSpec   `yaml:"gear_sprite"`
	Governor   GovernorSpec `yaml:"governor"`
	Gears      []GearSpec   `yaml:"gears"`
	Player     *PlayerSpec  `yaml:"player"`
}

// DefaultLevel is the classic layout: two meshed gears with the
// player circling the first one.
func DefaultLevel() *Level {
	offset := 100/math.Sqrt2 - 8
	first := 0
	return &Level{
		GearSprite: SpriteSpec{Width: 180, Height: 180, Scale: 1},
		Governor: GovernorSpec{
			Initial: kinematics.DefaultMultiplier,
			Min:     kinematics.DefaultMinMultiplier,
			Max:     kinematics.DefaultMaxMultiplier,
			Factor:  kinematics.DefaultStepFactor,
		},
		Gears: []GearSpec{
			{Position: kinematics.V2(offset, offset), InitialStep: true, Direction: kinematics.Clockwise},
			{Position: kinematics.V2(-offset, -offset), InitialStep: false, Direction: kinematics.CounterClockwise},
		},
		Player: &PlayerSpec{
			Gear:      &first,
			Radius:    92,
			Direction: kinematics.CounterClockwise,
		},
	}
}

// ParseLevel decodes a YAML level. Sprite and governor keys left out keep
// DefaultLevel's values; a gears list or player block replaces the default
// one entirely. Unknown keys are rejected.
func ParseLevel(data []byte) (*Level, error) {
	level := DefaultLevel()
	level.Player = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(level); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}
	if level.Player == nil {
		level.Player = DefaultLevel().Player
	}

	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

// LoadLevel reads and parses a YAML level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}

	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return level, nil
}

// Marshal encodes the level as YAML.
func (l *Level) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}

// Validate checks that the level can be spawned.
func (l *Level) Validate() error {
	sprite := l.GearSprite
	if !positive(sprite.Width) || !positive(sprite.Height) || !positive(sprite.Scale) {
		return fmt.Errorf("%w: gear sprite extents must be positive and finite", ErrInvalidLevel)
	}

	if _, err := l.NewGovernor(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}

	if len(l.Gears) == 0 {
		return fmt.Errorf("%w: no gears", ErrInvalidLevel)
	}

	seen := make(map[kinematics.Vec2]int, len(l.Gears))
	for i, gear := range l.Gears {
		if !finite(gear.Position) {
			return fmt.Errorf("%w: gear %d position (%g, %g) is not finite",
				ErrInvalidLevel, i, gear.Position.X, gear.Position.Y)
		}
		if prev, ok := seen[gear.Position]; ok {
			return fmt.Errorf("%w: gears %d and %d share position (%g, %g)",
				ErrInvalidLevel, prev, i, gear.Position.X, gear.Position.Y)
		}
		seen[gear.Position] = i
	}

	p := l.Player
	switch {
	case p == nil:
		return fmt.Errorf("%w: no player", ErrInvalidLevel)
	case !positive(p.Radius):
		return fmt.Errorf("%w: player radius %g must be positive and finite", ErrInvalidLevel, p.Radius)
	case (p.Gear == nil) == (p.Position == nil):
		return fmt.Errorf("%w: player needs exactly one of gear or position", ErrInvalidLevel)
	case p.Gear != nil && (*p.Gear < 0 || *p.Gear >= len(l.Gears)):
		return fmt.Errorf("%w: player gear %d out of range", ErrInvalidLevel, *p.Gear)
	case p.Position != nil && !finite(*p.Position):
		return fmt.Errorf("%w: player position (%g, %g) is not finite",
			ErrInvalidLevel, p.Position.X, p.Position.Y)
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(v kinematics.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// NewGovernor builds the governor described by the level.
func (l *Level) NewGovernor() (kinematics.Governor, error) {
	g := l.Governor
	return kinematics.NewGovernorWithBounds(g.Initial, g.Min, g.Max, g.Factor)
}

// Sprite returns the gear sprite component for this level.
func (l *Level) Sprite() Sprite {
	return Sprite{
		Kind:   SpriteGear,
		Width:  l.GearSprite.Width,
		Height: l.GearSprite.Height,
		Scale:  l.GearSprite.Scale,
	}
}

func (l *Level) playerAnchor() kinematics.Vec2 {
	if l.Player.Position != nil {
		return *l.Player.Position
	}
	return l.Gears[*l.Player.Gear].Position
}
