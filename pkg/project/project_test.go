package project_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/project"
)

func camera() project.Camera {
	return project.NewCamera(5, 100, 800, 600)
}

func TestProject(t *testing.T) {
	tests := []struct {
		name  string
		p     geom.Vec3
		wantX float64
		wantY float64
	}{
		{"origin", geom.Zero, 400, 300},
		{"unit xy", geom.V(1, 1, 0), 500, 200},
		{"far away shrinks", geom.V(1, 1, 5), 450, 250},
		{"near grows", geom.V(1, 0, -2.5), 600, 300},
	}
	c := camera()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Project(tt.p)
			assert.True(t, ok)
			assert.InDelta(t, tt.wantX, got.X, 1e-9)
			assert.InDelta(t, tt.wantY, got.Y, 1e-9)
		})
	}
}

func TestProjectBehindEye(t *testing.T) {
	c := camera()
	for _, z := range []float64{-5, -6, -100} {
		_, ok := c.Project(geom.V(0, 0, z))
		assert.False(t, ok, "z=%v should not project", z)
	}
	_, ok := c.Project(geom.V(0, 0, -4.999))
	assert.True(t, ok)
}

func TestProjectYawPitch(t *testing.T) {
	c := camera()
	c.Yaw = math.Pi / 2
	// A quarter yaw turns +z onto −x.
	got, ok := c.Project(geom.V(0, 0, 1))
	assert.True(t, ok)
	assert.InDelta(t, 300, got.X, 1e-9)
	assert.InDelta(t, 300, got.Y, 1e-9)

	c = camera()
	c.Pitch = math.Pi / 2
	// A quarter pitch turns −z onto +y.
	got, ok = c.Project(geom.V(0, 0, -1))
	assert.True(t, ok)
	assert.InDelta(t, 400, got.X, 1e-9)
	assert.InDelta(t, 200, got.Y, 1e-9)
}

func TestProjectAllAlignment(t *testing.T) {
	c := camera()
	pts := []geom.Vec3{geom.V(1, 0, 0), geom.V(0, 0, -10), geom.V(0, 1, 0)}
	out, ok := c.ProjectAll(pts)
	assert.Len(t, out, 3)
	assert.Equal(t, []bool{true, false, true}, ok)
	assert.InDelta(t, 200, out[2].Y, 1e-9)
}

func TestFlatRoundTrip(t *testing.T) {
	f := project.Flat{Scale: 50, CenterX: 400, CenterY: 300}
	p := f.Map(2, -1)
	assert.Equal(t, project.Point2{X: 500, Y: 350}, p)
	x, y := f.Unmap(p)
	assert.InDelta(t, 2, x, 1e-12)
	assert.InDelta(t, -1, y, 1e-12)
}

func TestOrbit(t *testing.T) {
	eye, rot := project.Orbit(250, 200, 0)
	assert.True(t, eye.ApproxEqual(geom.V(250, 200, 0), 1e-12))
	assert.InDelta(t, 1, rot.Det3(), 1e-9)
	assert.True(t, rot.IsAffine())

	// Columns stay unit length for any angle.
	_, rot = project.Orbit(250, 200, 1.3)
	for c := 0; c < 3; c++ {
		col := geom.V(rot[0][c], rot[1][c], rot[2][c])
		assert.InDelta(t, 1, col.Len(), 1e-9)
	}
}

func TestLookAtOrigin(t *testing.T) {
	c := project.Camera{Distance: 500, Scale: 1, CenterX: 400, CenterY: 300}
	for _, a := range []float64{0, 0.7, 2.5} {
		eye, view := project.Orbit(250, 200, a)
		p, ok := c.Look(eye, view, geom.Zero)
		assert.True(t, ok)
		assert.InDelta(t, 400, p.X, 1e-6)
		assert.InDelta(t, 300, p.Y, 1e-6)

		// A point above the origin appears above the centre.
		q, ok := c.Look(eye, view, geom.V(0, 50, 0))
		assert.True(t, ok)
		assert.Less(t, q.Y, 300.0)

		// Behind the eye.
		_, ok = c.Look(eye, view, eye.Scale(2))
		assert.False(t, ok)
	}
}
