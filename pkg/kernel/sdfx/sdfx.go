// Package sdfx implements the kernel.Kernel interface using the
// transform builders of the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// SdfxKernel implements kernel.Kernel using sdf.M44.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

func (k *SdfxKernel) Name() string { return "sdfx" }

func vec(v geom.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func unvec(v v3.Vec) geom.Vec3 {
	return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// unwrap reads an affine sdf.M44 back into a geom.Mat4. The M44 fields
// are private, so the columns are recovered by mapping the origin and
// the unit basis points.
func unwrap(m sdf.M44) geom.Mat4 {
	o := unvec(m.MulPosition(v3.Vec{}))
	ex := unvec(m.MulPosition(v3.Vec{X: 1})).Sub(o)
	ey := unvec(m.MulPosition(v3.Vec{Y: 1})).Sub(o)
	ez := unvec(m.MulPosition(v3.Vec{Z: 1})).Sub(o)
	return geom.FromLinear([3][3]float64{
		{ex.X, ey.X, ez.X},
		{ex.Y, ey.Y, ez.Y},
		{ex.Z, ey.Z, ez.Z},
	}, o)
}

// pivoted returns T(p)·m·T(−p).
func pivoted(m sdf.M44, p geom.Vec3) sdf.M44 {
	return sdf.Translate3d(vec(p)).Mul(m).Mul(sdf.Translate3d(vec(p.Neg())))
}

// Translate moves points by v.
func (k *SdfxKernel) Translate(v geom.Vec3) geom.Mat4 {
	return unwrap(sdf.Translate3d(vec(v)))
}

// Scale scales about the origin.
func (k *SdfxKernel) Scale(v geom.Vec3) geom.Mat4 {
	return unwrap(sdf.Scale3d(vec(v)))
}

// Rotate pivots sdf.Rotate3d about the line's point.
func (k *SdfxKernel) Rotate(axis geom.Line, angle float64) geom.Mat4 {
	d := axis.Dir.Normalize()
	if d.IsZero() {
		return geom.Identity()
	}
	return unwrap(pivoted(sdf.Rotate3d(vec(d), angle), axis.Point))
}

// Reflect composes a half turn about the normal with a point inversion.
func (k *SdfxKernel) Reflect(p geom.Plane) geom.Mat4 {
	n := p.Normal.Normalize()
	if n.IsZero() {
		return geom.Identity()
	}
	m := sdf.Scale3d(v3.Vec{X: -1, Y: -1, Z: -1}).Mul(sdf.Rotate3d(vec(n), math.Pi))
	return unwrap(pivoted(m, p.Point))
}

// Screw translates the pivoted rotation along the axis.
func (k *SdfxKernel) Screw(axis geom.Line, angle, pitch float64) geom.Mat4 {
	d := axis.Dir.Normalize()
	if d.IsZero() {
		return geom.Identity()
	}
	rot := pivoted(sdf.Rotate3d(vec(d), angle), axis.Point)
	advance := sdf.Translate3d(vec(d.Scale(kernel.Advance(angle, pitch))))
	return unwrap(advance.Mul(rot))
}
