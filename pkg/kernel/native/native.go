// Package native implements kernel.Kernel with closed-form formulas on
// geom.Mat4: Rodrigues' rotation, Householder reflection and the screw
// composition of the two.
package native

import (
	"math"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*NativeKernel)(nil)

// NativeKernel implements kernel.Kernel without external dependencies.
type NativeKernel struct{}

// New returns a new NativeKernel.
func New() *NativeKernel {
	return &NativeKernel{}
}

func (k *NativeKernel) Name() string { return "native" }

// Translate moves points by v.
func (k *NativeKernel) Translate(v geom.Vec3) geom.Mat4 {
	return geom.Translation(v)
}

// Scale scales about the origin.
func (k *NativeKernel) Scale(v geom.Vec3) geom.Mat4 {
	return geom.Scaling(v)
}

// rodrigues returns R = cosθ·I + sinθ·[d]× + (1−cosθ)·ddᵀ for unit d.
func rodrigues(d geom.Vec3, angle float64) [3][3]float64 {
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := d.X, d.Y, d.Z
	return [3][3]float64{
		{c + x*x*t, x*y*t - z*s, x*z*t + y*s},
		{y*x*t + z*s, c + y*y*t, y*z*t - x*s},
		{z*x*t - y*s, z*y*t + x*s, c + z*z*t},
	}
}

// pivot conjugates the linear map l by a translation to p, giving
// T(p)·L·T(−p). The translation column is p − L·p.
func pivot(l [3][3]float64, p geom.Vec3) geom.Mat4 {
	lp := geom.Vec3{
		X: l[0][0]*p.X + l[0][1]*p.Y + l[0][2]*p.Z,
		Y: l[1][0]*p.X + l[1][1]*p.Y + l[1][2]*p.Z,
		Z: l[2][0]*p.X + l[2][1]*p.Y + l[2][2]*p.Z,
	}
	return geom.FromLinear(l, p.Sub(lp))
}

// Rotate rotates by angle about the line, right-handed around its
// direction. A zero direction gives the identity.
func (k *NativeKernel) Rotate(axis geom.Line, angle float64) geom.Mat4 {
	d := axis.Dir.Normalize()
	if d.IsZero() {
		return geom.Identity()
	}
	return pivot(rodrigues(d, angle), axis.Point)
}

// Reflect builds I − 2nnᵀ with translation 2(n·P0)n. A zero normal gives
// the identity.
func (k *NativeKernel) Reflect(p geom.Plane) geom.Mat4 {
	n := p.Normal.Normalize()
	if n.IsZero() {
		return geom.Identity()
	}
	l := [3][3]float64{
		{1 - 2*n.X*n.X, -2 * n.X * n.Y, -2 * n.X * n.Z},
		{-2 * n.Y * n.X, 1 - 2*n.Y*n.Y, -2 * n.Y * n.Z},
		{-2 * n.Z * n.X, -2 * n.Z * n.Y, 1 - 2*n.Z*n.Z},
	}
	return geom.FromLinear(l, n.Scale(2*n.Dot(p.Point)))
}

// Screw adds the axial advance to the pivoted rotation's translation.
func (k *NativeKernel) Screw(axis geom.Line, angle, pitch float64) geom.Mat4 {
	d := axis.Dir.Normalize()
	if d.IsZero() {
		return geom.Identity()
	}
	m := pivot(rodrigues(d, angle), axis.Point)
	h := d.Scale(kernel.Advance(angle, pitch))
	m[0][3] += h.X
	m[1][3] += h.Y
	m[2][3] += h.Z
	return m
}
