package kinematics_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/plus3/gearjump/kinematics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const epsilon = 1e-9

func TestDirectionOpposite(t *testing.T) {
	for _, d := range []kinematics.Direction{kinematics.Clockwise, kinematics.CounterClockwise} {
		t.Run(d.String(), func(t *testing.T) {
			assert.NotEqual(t, d, d.Opposite())
			assert.Equal(t, d, d.Opposite().Opposite())
		})
	}
}

func TestDirectionAngularVelocity(t *testing.T) {
	assert.InDelta(t, -math.Pi/6, kinematics.Clockwise.AngularVelocity(), epsilon)
	assert.InDelta(t, math.Pi/6, kinematics.CounterClockwise.AngularVelocity(), epsilon)
	assert.Equal(t, "Direction(7)", kinematics.Direction(7).String())
}

func TestDirectionText(t *testing.T) {
	tests := []struct {
		input string
		want  kinematics.Direction
	}{
		{"clockwise", kinematics.Clockwise},
		{"CW", kinematics.Clockwise},
		{"counter_clockwise", kinematics.CounterClockwise},
		{"counterclockwise", kinematics.CounterClockwise},
		{" ccw ", kinematics.CounterClockwise},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d kinematics.Direction
			require.NoError(t, d.UnmarshalText([]byte(tt.input)))
			assert.Equal(t, tt.want, d)
		})
	}

	var d kinematics.Direction
	assert.Error(t, d.UnmarshalText([]byte("sideways")))

	_, err := kinematics.Direction(9).MarshalText()
	assert.Error(t, err)

	out, err := yaml.Marshal(map[string]kinematics.Direction{"d": kinematics.CounterClockwise})
	require.NoError(t, err)
	assert.Equal(t, "d: counter_clockwise\n", string(out))
}

func TestSpinAdvance(t *testing.T) {
	spin := kinematics.NewSpinState(kinematics.Clockwise, false)
	assert.Zero(t, spin.Phase)

	spin.Advance(1.0, 1.0)
	assert.InDelta(t, -math.Pi/6, spin.Phase, epsilon)

	spin.Advance(2.0, 0.5)
	assert.InDelta(t, -math.Pi/3, spin.Phase, epsilon)
	assert.Equal(t, kinematics.Clockwise, spin.Direction())

	stepped := kinematics.NewSpinState(kinematics.CounterClockwise, true)
	assert.InDelta(t, math.Pi/12, stepped.Phase, epsilon)
}

func TestSpinReverse(t *testing.T) {
	spin := kinematics.NewSpinState(kinematics.CounterClockwise, false)
	spin.Reverse()
	assert.Equal(t, kinematics.Clockwise, spin.Direction())
	assert.InDelta(t, -kinematics.BaseRate, spin.AngularVelocity, epsilon)
}

func TestSpinWrapKeepsOrientation(t *testing.T) {
	spin := kinematics.NewSpinState(kinematics.CounterClockwise, false)
	unwrapped := 0.0
	for range 1000 {
		spin.Advance(4.0, 1.0/60.0)
		unwrapped += spin.AngularVelocity * 4.0 / 60.0
	}

	assert.Less(t, math.Abs(spin.Phase), 2*math.Pi)
	assert.InDelta(t, math.Cos(unwrapped), math.Cos(spin.Phase), 1e-9)
	assert.InDelta(t, math.Sin(unwrapped), math.Sin(spin.Phase), 1e-9)
}

func TestOrbitOneTickScenario(t *testing.T) {
	orbit := kinematics.NewOrbitState(kinematics.Vec3{Z: 5}, kinematics.CounterClockwise, 92, false)
	assert.InDelta(t, 92, orbit.Position.X, epsilon)
	assert.InDelta(t, 0, orbit.Position.Y, epsilon)
	assert.InDelta(t, math.Pi/6, orbit.AngularVelocity, epsilon)

	orbit.Advance(1.0, 1.0)

	assert.InDelta(t, math.Pi/6, orbit.Phase, epsilon)
	assert.InDelta(t, 79.67, orbit.Position.X, 0.01)
	assert.InDelta(t, 46.0, orbit.Position.Y, 1e-6)
	assert.Equal(t, 5.0, orbit.Position.Z)
}

func TestOrbitStaysOnCircleOverManyTicks(t *testing.T) {
	orbit := kinematics.NewOrbitState(kinematics.Vec3{X: 62.7, Y: -13, Z: 5}, kinematics.Clockwise, 92, true)

	for i := range 10_000 {
		orbit.Advance(float64(i%4)+0.25, 1.0/60.0)
		require.InDelta(t, 0, orbit.RadialError(), 1e-9, "tick %d", i)
	}

	// A moving anchor is followed exactly on the next advance.
	orbit.Anchor = kinematics.Vec3{X: -500, Y: 500, Z: 5}
	orbit.Advance(1, 0)
	assert.InDelta(t, 0, orbit.RadialError(), 1e-9)
}

func TestTransferPhaseQuadrants(t *testing.T) {
	step := kinematics.InitialStep
	tests := []struct {
		name      string
		anchor    kinematics.Vec2
		direction kinematics.Direction
		want      float64
	}{
		{"first quadrant ccw", kinematics.V2(1, 1), kinematics.CounterClockwise, math.Pi/4 - step},
		{"first quadrant cw", kinematics.V2(1, 1), kinematics.Clockwise, math.Pi/4 + step},
		{"negative x adds pi", kinematics.V2(-1, -1), kinematics.Clockwise, math.Pi/4 + math.Pi + step},
		{"second quadrant", kinematics.V2(-1, 1), kinematics.CounterClockwise, -math.Pi/4 + math.Pi - step},
		{"straight up", kinematics.V2(0, 3), kinematics.CounterClockwise, math.Pi/2 - step},
		{"straight down", kinematics.V2(0, -3), kinematics.Clockwise, -math.Pi/2 + step},
		{"straight left", kinematics.V2(-2, 0), kinematics.Clockwise, math.Pi + step},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, ok := kinematics.TransferPhase(kinematics.Vec2{}, tt.anchor, tt.direction)
			require.True(t, ok)
			assert.InDelta(t, tt.want, phase, epsilon)
		})
	}

	_, ok := kinematics.TransferPhase(kinematics.V2(4, 4), kinematics.V2(4, 4), kinematics.Clockwise)
	assert.False(t, ok)
}

// orbitingRight builds the two-gear scenario: player revolving counter-clockwise
// around (100, 0) at radius 92, currently at (192, 0).
func orbitingRight() kinematics.OrbitState {
	return kinematics.NewOrbitState(kinematics.V2(100, 0).Extend(5), kinematics.CounterClockwise, 92, false)
}

func clockwiseGear(position kinematics.Vec2, size float64) kinematics.Candidate {
	return kinematics.Candidate{
		Position: position,
		Spin:     kinematics.NewSpinState(kinematics.Clockwise, false),
		Bounds:   kinematics.RectFromCenter(position, size, size),
	}
}

func TestTransferOutsideRegionIsNoop(t *testing.T) {
	orbit := orbitingRight()
	before := orbit

	gear := clockwiseGear(kinematics.V2(-100, 0), 180)
	require.False(t, gear.Bounds.Contains(orbit.Position.XY()))

	assert.False(t, kinematics.Transfer(&orbit, gear))
	assert.Equal(t, before, orbit)
}

func TestTransferInsideRegion(t *testing.T) {
	orbit := orbitingRight()
	require.InDelta(t, 192, orbit.Position.X, epsilon)

	gear := clockwiseGear(kinematics.V2(-100, 0), 600)
	require.True(t, gear.Bounds.Contains(orbit.Position.XY()))

	require.True(t, kinematics.Transfer(&orbit, gear))

	assert.Equal(t, kinematics.Vec3{X: -100, Y: 0, Z: 5}, orbit.Anchor, "anchor keeps the player's depth")
	assert.InDelta(t, -math.Pi/6, orbit.AngularVelocity, epsilon, "velocity taken from the gear")
	assert.Equal(t, kinematics.Clockwise, orbit.Direction, "direction reversed")
	assert.InDelta(t, math.Pi+kinematics.InitialStep, orbit.Phase, epsilon)
	assert.Equal(t, 92.0, orbit.Radius)
	assert.InDelta(t, 0, orbit.RadialError(), 1e-9)

	orbit.Advance(1, 1)
	assert.InDelta(t, math.Pi+kinematics.InitialStep-math.Pi/6, orbit.Phase, epsilon)
	assert.InDelta(t, 0, orbit.RadialError(), 1e-9)
}

func TestTransferOntoOwnAnchorIsNoop(t *testing.T) {
	orbit := orbitingRight()
	orbit.Advance(1, 0.37)
	before := orbit

	gear := clockwiseGear(kinematics.V2(100, 0), 10_000)
	assert.False(t, kinematics.Transfer(&orbit, gear))
	assert.Equal(t, before, orbit, "bit-for-bit unchanged")
}

func TestTransferDegenerateKeepsPhase(t *testing.T) {
	orbit := kinematics.NewOrbitState(kinematics.Vec3{Z: 5}, kinematics.CounterClockwise, 100, false)
	require.Equal(t, kinematics.V2(100, 0), orbit.Position.XY())

	gear := clockwiseGear(kinematics.V2(100, 0), 50)
	require.True(t, kinematics.Transfer(&orbit, gear))

	assert.False(t, math.IsNaN(orbit.Phase))
	assert.Zero(t, orbit.Phase)
	assert.Equal(t, kinematics.Vec3{X: 100, Z: 5}, orbit.Anchor)
	assert.Equal(t, kinematics.Clockwise, orbit.Direction)
	assert.InDelta(t, 200, orbit.Position.X, epsilon)
}

func TestRectContains(t *testing.T) {
	r := kinematics.RectFromCenter(kinematics.V2(10, 20), 4, -6)
	w, h := r.Size()
	assert.Equal(t, 4.0, w)
	assert.Equal(t, 6.0, h)
	assert.Equal(t, kinematics.V2(10, 20), r.Center())

	assert.True(t, r.Contains(kinematics.V2(10, 20)))
	assert.True(t, r.Contains(kinematics.V2(12, 23)), "edges are inside")
	assert.False(t, r.Contains(kinematics.V2(12.001, 20)))
	assert.False(t, r.Contains(kinematics.V2(10, 16.9)))
}

func TestGovernorDefaults(t *testing.T) {
	g := kinematics.NewGovernor()
	assert.Equal(t, 1.0, g.Multiplier())
	lo, hi := g.Bounds()
	assert.Equal(t, 0.25, lo)
	assert.Equal(t, 4.0, hi)
}

func TestGovernorIncreaseClamps(t *testing.T) {
	g := kinematics.NewGovernor()
	want := []float64{2, 4, 4, 4, 4}
	for i, w := range want {
		g.Increase()
		assert.Equal(t, w, g.Multiplier(), "press %d", i+1)
	}
}

func TestGovernorDecreaseClamps(t *testing.T) {
	g := kinematics.NewGovernor()
	want := []float64{0.5, 0.25, 0.25, 0.25}
	for i, w := range want {
		g.Decrease()
		assert.Equal(t, w, g.Multiplier(), "press %d", i+1)
	}
}

func TestGovernorNeverEscapesBounds(t *testing.T) {
	g := kinematics.NewGovernor()
	for i := range 500 {
		if (i*7919)%3 == 0 {
			g.Decrease()
		} else {
			g.Increase()
		}
		require.GreaterOrEqual(t, g.Multiplier(), 0.25)
		require.LessOrEqual(t, g.Multiplier(), 4.0)
	}
}

func TestGovernorWithBounds(t *testing.T) {
	g, err := kinematics.NewGovernorWithBounds(1, 0.5, 3, 1.5)
	require.NoError(t, err)
	g.Increase()
	assert.Equal(t, 1.5, g.Multiplier())
	g.Increase()
	g.Increase()
	assert.Equal(t, 3.0, g.Multiplier())

	invalid := [][4]float64{
		{1, 0, 4, 2},
		{1, 4, 0.25, 2},
		{5, 0.25, 4, 2},
		{1, 0.25, 4, 1},
		{math.NaN(), 0.25, 4, 2},
		{1, math.NaN(), 4, 2},
		{1, 0.25, math.Inf(1), 2},
		{math.Inf(1), 0.25, math.Inf(1), 2},
		{1, 0.25, 4, math.NaN()},
		{1, 0.25, 4, math.Inf(1)},
	}
	for _, args := range invalid {
		t.Run(fmt.Sprint(args), func(t *testing.T) {
			_, err := kinematics.NewGovernorWithBounds(args[0], args[1], args[2], args[3])
			assert.Error(t, err)
		})
	}
}
