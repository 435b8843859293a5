package game_test

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/game"
	"github.com/plus3/gearjump/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoGearLevel places gears at (100, 0) and (-100, 0) with the player on the
// first one at radius 92, phase 0.
func twoGearLevel(spriteSize float64) *game.Level {
	first := 0
	level := game.DefaultLevel()
	level.GearSprite = game.SpriteSpec{Width: spriteSize, Height: spriteSize, Scale: 1}
	level.Gears = []game.GearSpec{
		{Position: kinematics.V2(100, 0), Direction: kinematics.Clockwise},
		{Position: kinematics.V2(-100, 0), Direction: kinematics.CounterClockwise},
	}
	level.Player = &game.PlayerSpec{Gear: &first, Radius: 92, Direction: kinematics.CounterClockwise}
	return level
}

func newSession(t *testing.T, level *game.Level, opts ...game.Option) *game.Session {
	t.Helper()
	session, err := game.NewSession(level, opts...)
	require.NoError(t, err)
	return session
}

func TestNewSessionSpawnsLevel(t *testing.T) {
	session := newSession(t, game.DefaultLevel())

	assert.Equal(t, 3, session.World.Len())
	assert.Equal(t, 2, session.Registry.Len())
	assert.Equal(t, 2, session.Components.Gears.Len())
	assert.Equal(t, 1, session.Components.Players.Len())
	assert.Equal(t, 3, session.Components.Scoped.Len())

	orbit := session.PlayerOrbit()
	require.NotNil(t, orbit)
	offset := 100/math.Sqrt2 - 8
	assert.InDelta(t, offset, orbit.Anchor.X, 1e-9)
	assert.InDelta(t, offset, orbit.Anchor.Y, 1e-9)
	assert.Equal(t, game.PlayerDepth, orbit.Anchor.Z)
	assert.Equal(t, 92.0, orbit.Radius)
	assert.Equal(t, kinematics.CounterClockwise, orbit.Direction)

	for id := range session.Components.Gears.Iter() {
		transform := session.Components.Transforms.Get(id)
		require.NotNil(t, transform)
		assert.Equal(t, game.GearDepth, transform.Position.Z)

		bounds := session.Components.Bounds.Get(id)
		require.NotNil(t, bounds)
		width, height := bounds.Size()
		assert.InDelta(t, 180, width, 1e-9)
		assert.InDelta(t, 180, height, 1e-9)
		center := bounds.Center()
		assert.InDelta(t, transform.Position.X, center.X, 1e-9)
		assert.InDelta(t, transform.Position.Y, center.Y, 1e-9)
	}
}

func TestNewSessionRejectsInvalidLevel(t *testing.T) {
	level := game.DefaultLevel()
	level.Gears = nil

	_, err := game.NewSession(level)
	assert.ErrorIs(t, err, game.ErrInvalidLevel)
}

func TestSessionTickAdvancesOrbit(t *testing.T) {
	session := newSession(t, twoGearLevel(180))

	session.Tick(1.0)

	orbit := session.PlayerOrbit()
	assert.InDelta(t, math.Pi/6, orbit.Phase, 1e-9)
	assert.InDelta(t, 179.67, orbit.Position.X, 0.01)
	assert.InDelta(t, 46.0, orbit.Position.Y, 0.01)
	assert.Equal(t, game.PlayerDepth, orbit.Position.Z)

	transform := session.Components.Transforms.Get(session.Player)
	assert.Equal(t, orbit.Position, transform.Position, "transform follows the orbit")

	for id, spin := range session.Components.Spins.Iter() {
		assert.Equal(t, spin.Phase, session.Components.Transforms.Get(id).Rotation)
	}
}

func TestSessionSpeedChangeAppliesBeforeAdvance(t *testing.T) {
	session := newSession(t, twoGearLevel(180))

	session.Trigger(game.ActionSpeedUp)
	session.Tick(1.0)

	assert.Equal(t, 2.0, session.Governor().Multiplier())
	orbit := session.PlayerOrbit()
	assert.InDelta(t, math.Pi/3, orbit.Phase, 1e-9, "the same tick runs at the new multiplier")
	assert.InDelta(t, 146.0, orbit.Position.X, 1e-9)
	assert.InDelta(t, 92*math.Sin(math.Pi/3), orbit.Position.Y, 1e-9)
	assert.Equal(t, 1, session.Stats().SpeedChanges)
}

func TestSessionSpeedSaturates(t *testing.T) {
	session := newSession(t, twoGearLevel(180))

	for range 5 {
		session.Trigger(game.ActionSpeedUp)
	}
	session.Tick(0)
	assert.Equal(t, 4.0, session.Governor().Multiplier())
	assert.Equal(t, 2, session.Stats().SpeedChanges, "saturated presses are not counted")

	for range 6 {
		session.Trigger(game.ActionSpeedDown)
	}
	session.Tick(0)
	assert.Equal(t, 0.25, session.Governor().Multiplier())
}

func TestSessionJumpOutsideBoundsIsNoop(t *testing.T) {
	var buf bytes.Buffer
	session := newSession(t, twoGearLevel(180), game.WithLogger(log.New(&buf, "", 0)))

	before := *session.PlayerOrbit()
	session.Trigger(game.ActionJump)
	session.Tick(0)

	after := *session.PlayerOrbit()
	assert.Equal(t, before, after)
	assert.Equal(t, kinematics.V2(192, 0), after.Position.XY())

	stats := session.Stats()
	assert.Equal(t, 1, stats.Jumps)
	assert.Equal(t, 0, stats.Transfers)
	assert.Contains(t, buf.String(), "jump missed")
}

func TestSessionJumpTransfersOntoGear(t *testing.T) {
	session := newSession(t, twoGearLevel(600))

	var target ecs.EntityId
	for id, candidate := range session.Registry.All() {
		if candidate.Position == kinematics.V2(-100, 0) {
			target = id
		}
	}
	require.False(t, target.IsZero())

	session.Trigger(game.ActionJump)
	session.Tick(0)

	orbit := session.PlayerOrbit()
	assert.Equal(t, kinematics.Vec3{X: -100, Y: 0, Z: game.PlayerDepth}, orbit.Anchor)
	assert.Equal(t, kinematics.Clockwise, orbit.Direction)
	assert.InDelta(t, math.Pi+kinematics.InitialStep, orbit.Phase, 1e-9)
	assert.InDelta(t, kinematics.CounterClockwise.AngularVelocity(), orbit.AngularVelocity, 1e-12,
		"revolution takes the new gear's rate")
	assert.Equal(t, 92.0, orbit.Radius)
	assert.Less(t, orbit.RadialError(), 1e-9)

	transform := session.Components.Transforms.Get(session.Player)
	assert.Equal(t, orbit.Position, transform.Position, "transform is updated at commit")

	stats := session.Stats()
	assert.Equal(t, 1, stats.Transfers)
	assert.Equal(t, target, stats.LastTransfer)
}

func TestSessionJumpCommitsAfterAdvance(t *testing.T) {
	session := newSession(t, twoGearLevel(600))

	moved := kinematics.NewOrbitState(kinematics.V2(100, 0).Extend(game.PlayerDepth), kinematics.CounterClockwise, 92, false)
	moved.Advance(1.0, 1.0)
	want, ok := kinematics.TransferPhase(moved.Position.XY(), kinematics.V2(-100, 0), kinematics.Clockwise)
	require.True(t, ok)

	session.Trigger(game.ActionJump)
	session.Tick(1.0)

	orbit := session.PlayerOrbit()
	assert.InDelta(t, want, orbit.Phase, 1e-9, "phase is computed from the advanced position")
	assert.Equal(t, -100.0, orbit.Anchor.X)
}

func TestSessionJumpBackAndForth(t *testing.T) {
	session := newSession(t, twoGearLevel(600))

	for i := range 10 {
		session.Trigger(game.ActionJump)
		session.Tick(0.1)

		orbit := session.PlayerOrbit()
		assert.Less(t, orbit.RadialError(), 1e-9)
		if i%2 == 0 {
			assert.Equal(t, -100.0, orbit.Anchor.X)
		} else {
			assert.Equal(t, 100.0, orbit.Anchor.X)
		}
	}
	assert.Equal(t, 10, session.Stats().Transfers)
}

func TestSessionJumpsInOneTickMakeOneAttempt(t *testing.T) {
	session := newSession(t, twoGearLevel(600))

	session.Trigger(game.ActionJump)
	session.Trigger(game.ActionJump)
	session.Trigger(game.ActionJump)
	session.Tick(0)

	orbit := session.PlayerOrbit()
	assert.Equal(t, -100.0, orbit.Anchor.X, "player stays on the gear it jumped to")
	assert.Equal(t, kinematics.Clockwise, orbit.Direction)

	stats := session.Stats()
	assert.Equal(t, 1, stats.Jumps)
	assert.Equal(t, 1, stats.Transfers)

	session.Trigger(game.ActionJump)
	session.Tick(0)
	assert.Equal(t, 100.0, session.PlayerOrbit().Anchor.X, "a jump on the next tick transfers again")
}

func TestSessionEndDespawnsScopedEntities(t *testing.T) {
	session := newSession(t, game.DefaultLevel())
	unscoped := session.World.Spawn()

	session.Tick(0.5)
	session.End()

	assert.True(t, session.Ended())
	assert.Equal(t, 1, session.World.Len())
	assert.True(t, session.World.Alive(unscoped))
	assert.Equal(t, 0, session.Registry.Len())
	assert.Nil(t, session.PlayerOrbit())

	_, ok := ecs.ReadSingleton[kinematics.Governor](session.World)
	assert.False(t, ok)
	_, ok = ecs.ReadSingleton[game.Input](session.World)
	assert.False(t, ok)

	session.Trigger(game.ActionJump)
	session.Tick(1.0)
	assert.Equal(t, uint64(1), session.Scheduler.Ticks(), "ticks after End are ignored")

	session.End()
}

func TestSessionSnapshot(t *testing.T) {
	session := newSession(t, twoGearLevel(180))
	session.Tick(1.0)

	snap := session.Snapshot()
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, 1.0, snap.Multiplier)
	require.Len(t, snap.Gears, 2)
	assert.Equal(t, kinematics.V2(100, 0), snap.Gears[0].Position)
	assert.Equal(t, kinematics.Clockwise, snap.Gears[0].Direction)
	assert.InDelta(t, -math.Pi/6, snap.Gears[0].Rotation, 1e-9)
	assert.Equal(t, kinematics.CounterClockwise, snap.Gears[1].Direction)

	require.NotNil(t, snap.Player)
	assert.InDelta(t, math.Pi/6, snap.Player.Phase, 1e-9)
	assert.Equal(t, 92.0, snap.Player.Radius)

	session.End()
	snap = session.Snapshot()
	assert.Empty(t, snap.Gears)
	assert.Nil(t, snap.Player)
}
