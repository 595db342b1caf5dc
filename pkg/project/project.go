// Package project maps 3D points onto a 2D drawing surface.
package project

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/rigid/pkg/geom"
)

// Epsilon is the smallest admissible value of D+z.
const Epsilon = 1e-9

// Point2 is a screen-space point.
type Point2 struct {
	X, Y float64
}

// Camera is a simple perspective camera looking down −z from distance
// D. Yaw turns the scene about Y and Pitch about X before projection.
type Camera struct {
	Distance float64 `yaml:"distance"`
	Scale    float64 `yaml:"scale"`
	CenterX  float64 `yaml:"center_x"`
	CenterY  float64 `yaml:"center_y"`
	Yaw      float64 `yaml:"yaw"`   // radians
	Pitch    float64 `yaml:"pitch"` // radians
}

// NewCamera returns a camera centred on a w×h surface.
func NewCamera(distance, scale float64, w, h int) Camera {
	return Camera{Distance: distance, Scale: scale, CenterX: float64(w) / 2, CenterY: float64(h) / 2}
}

// view returns the yaw-then-pitch rotation.
func (c Camera) view() mgl64.Mat3 {
	return mgl64.Rotate3DX(c.Pitch).Mul3(mgl64.Rotate3DY(-c.Yaw))
}

// Project maps p to screen space. ok is false when the point sits at or
// behind the eye (D+z ≤ Epsilon); callers skip it.
func (c Camera) Project(p geom.Vec3) (Point2, bool) {
	v := mgl64.Vec3{p.X, p.Y, p.Z}
	if c.Yaw != 0 || c.Pitch != 0 {
		v = c.view().Mul3x1(v)
	}
	denom := c.Distance + v[2]
	if denom <= Epsilon {
		return Point2{}, false
	}
	f := c.Distance / denom
	return Point2{
		X: c.CenterX + v[0]*c.Scale*f,
		Y: c.CenterY - v[1]*c.Scale*f,
	}, true
}

// ProjectAll projects every point. The result is index-aligned with ps;
// ok[i] reports whether out[i] is valid.
func (c Camera) ProjectAll(ps []geom.Vec3) (out []Point2, ok []bool) {
	out = make([]Point2, len(ps))
	ok = make([]bool, len(ps))
	for i, p := range ps {
		out[i], ok[i] = c.Project(p)
	}
	return out, ok
}

// Flat is an orthographic mapping for the planar demos: x grows right,
// y grows up.
type Flat struct {
	Scale   float64
	CenterX float64
	CenterY float64
}

// Map converts plane coordinates to screen coordinates.
func (f Flat) Map(x, y float64) Point2 {
	return Point2{X: x*f.Scale + f.CenterX, Y: f.CenterY - y*f.Scale}
}

// Unmap is the inverse of Map.
func (f Flat) Unmap(p Point2) (x, y float64) {
	if f.Scale == 0 {
		return 0, 0
	}
	return (p.X - f.CenterX) / f.Scale, (f.CenterY - p.Y) / f.Scale
}

// Look projects p as seen from eye, where view is a world-to-camera
// rotation and the camera looks down its local −z. Distance acts as the
// focal length.
func (c Camera) Look(eye geom.Vec3, view geom.Mat4, p geom.Vec3) (Point2, bool) {
	v := view.ApplyVector(p.Sub(eye))
	return c.Project(geom.V(v.X, v.Y, -v.Z-c.Distance))
}

// Orbit returns the eye position of a camera circling the origin at the
// given radius and height, and the world-to-camera rotation that points
// it at the origin with +y up.
func Orbit(radius, height, angle float64) (eye geom.Vec3, rot geom.Mat4) {
	eye = geom.V(radius*math.Cos(angle), height, radius*math.Sin(angle))
	e := mgl64.Vec3{eye.X, eye.Y, eye.Z}
	// QuatLookAtV expects an up vector perpendicular to the view
	// direction.
	dir := e.Mul(-1).Normalize()
	up := dir.Cross(mgl64.Vec3{0, 1, 0}).Cross(dir).Normalize()
	q := mgl64.QuatLookAtV(e, mgl64.Vec3{}, up)
	m := q.Mat4()
	rot = geom.Identity()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rot[r][c] = m.At(r, c)
		}
	}
	return eye, rot
}
