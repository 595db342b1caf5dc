package physics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/physics"
)

func TestBallFloorBounceExample(t *testing.T) {
	box := physics.Box{W: 800, H: 600}
	b := &physics.Ball{X: 30, Y: 570, VX: 740 * 2.0 / 240, VY: -10, Radius: 30, Gravity: 0.5}

	var hit physics.Wall
	var tick int
	for tick = 1; tick <= 100; tick++ {
		hit = b.Step(box)
		if hit&physics.Bottom != 0 {
			break
		}
	}
	require.Equal(t, 39, tick, "first floor contact")
	assert.Equal(t, 570.0, b.Y)
	assert.Equal(t, -9.5, b.VY)
}

func TestBallClampAndSpeed(t *testing.T) {
	tests := []struct {
		name string
		ball physics.Ball
		wall physics.Wall
		x, y float64
	}{
		{"left", physics.Ball{X: 12, Y: 300, VX: -5, Radius: 10}, physics.Left, 10, 300},
		{"right", physics.Ball{X: 795, Y: 300, VX: 8, Radius: 10}, physics.Right, 790, 300},
		{"top", physics.Ball{X: 400, Y: 11, VY: -4, Radius: 10}, physics.Top, 400, 10},
		{"bottom", physics.Ball{X: 400, Y: 585, VY: 7, Radius: 10, Gravity: 0.5}, physics.Bottom, 400, 590},
		{"corner", physics.Ball{X: 3, Y: 3, VX: -2, VY: -2, Radius: 5}, physics.Left | physics.Top, 5, 5},
	}
	box := physics.Box{W: 800, H: 600}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.ball
			vx, vy := b.VX, b.VY+b.Gravity
			speed := math.Hypot(vx, vy)

			hit := b.Step(box)
			assert.Equal(t, tt.wall, hit, "walls %s", hit)
			assert.Equal(t, tt.x, b.X)
			assert.Equal(t, tt.y, b.Y)
			assert.InDelta(t, speed, math.Hypot(b.VX, b.VY), 1e-12, "speed preserved")
		})
	}
}

func TestBallNoDoubleFlip(t *testing.T) {
	// Resting in contact and already moving away: velocity keeps its sign.
	b := physics.Ball{X: 10, Y: 300, VX: 3, Radius: 10}
	b.X -= 3 // next step lands exactly on the wall
	hit := b.Step(physics.Box{W: 800, H: 600})
	assert.Equal(t, physics.Left, hit)
	assert.Equal(t, 3.0, b.VX)
}

func TestBallStaysInside(t *testing.T) {
	box := physics.Box{W: 800, H: 600}
	b := &physics.Ball{X: 30, Y: 570, VX: 740 * 2.0 / 240, VY: -10, Radius: 30, Gravity: 0.5}
	for i := 0; i < 5000; i++ {
		b.Step(box)
		require.True(t, b.X >= b.Radius && b.X <= box.W-b.Radius, "x=%v at tick %d", b.X, i)
		require.True(t, b.Y >= b.Radius && b.Y <= box.H-b.Radius, "y=%v at tick %d", b.Y, i)
	}
}

func TestWallString(t *testing.T) {
	assert.Equal(t, "none", physics.Wall(0).String())
	assert.Equal(t, "left|bottom", (physics.Left | physics.Bottom).String())
}

func TestCrossed(t *testing.T) {
	p := geom.PlaneFromOffset(geom.V(-2, 1, -1), 1)
	a := geom.V(0, 0, 0) // f = -1/√6
	b := geom.V(0, 2, 0) // f = +1/√6
	assert.True(t, physics.Crossed(p, a, b))
	assert.True(t, physics.Crossed(p, b, a))
	assert.False(t, physics.Crossed(p, a, a))
	floor := geom.Plane{Point: geom.V(0, 1, 0), Normal: geom.YAxis}
	assert.False(t, physics.Crossed(floor, a, geom.V(3, 1, 2)), "touching is not crossing")
	assert.InDelta(t, -1/math.Sqrt(6), physics.SignedDistance(p, a), 1e-12)
}

func TestCrossingDetectorDebounce(t *testing.T) {
	d := &physics.CrossingDetector{Planes: []physics.NamedPlane{
		{Name: "A", Plane: geom.Plane{Normal: geom.XAxis}},
		{Name: "B", Plane: geom.Plane{Point: geom.V(0, 5, 0), Normal: geom.YAxis}},
	}}
	prev := []geom.Vec3{geom.V(-1, 0, 0), geom.V(-1, 0, 0)}
	curr := []geom.Vec3{geom.V(-1, 0, 0), geom.V(1, 0, 0)} // second point crosses A

	np, ok := d.Check(prev, curr)
	require.True(t, ok)
	assert.Equal(t, "A", np.Name)
	assert.Equal(t, "A", d.Last)

	// Crossing A again is ignored.
	_, ok = d.Check(curr, prev)
	assert.False(t, ok)

	// B is still reported, after which A is live again.
	np, ok = d.Check([]geom.Vec3{geom.V(0, 4, 0)}, []geom.Vec3{geom.V(0, 6, 0)})
	require.True(t, ok)
	assert.Equal(t, "B", np.Name)
	_, ok = d.Check(curr, prev)
	assert.True(t, ok)
	assert.Equal(t, 3, d.Count)

	d.Reset()
	assert.Equal(t, "", d.Last)
	assert.Zero(t, d.Count)
}
