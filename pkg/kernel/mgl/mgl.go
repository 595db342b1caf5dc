// Package mgl implements kernel.Kernel on top of go-gl/mathgl's mgl64
// homogeneous matrices.
package mgl

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*MglKernel)(nil)

// MglKernel implements kernel.Kernel using mgl64.
type MglKernel struct{}

// New returns a new MglKernel.
func New() *MglKernel {
	return &MglKernel{}
}

func (k *MglKernel) Name() string { return "mgl" }

// toVec converts a geom.Vec3 to an mgl64.Vec3.
func toVec(v geom.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// FromMat4 converts a column-major mgl64.Mat4 into a geom.Mat4.
func FromMat4(m mgl64.Mat4) geom.Mat4 {
	var r geom.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m.At(i, j)
		}
	}
	return r
}

// ToMat4 converts a geom.Mat4 into a column-major mgl64.Mat4.
func ToMat4(m geom.Mat4) mgl64.Mat4 {
	var r mgl64.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[j*4+i] = m[i][j]
		}
	}
	return r
}

func translate(v geom.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(v.X, v.Y, v.Z)
}

// pivoted returns T(p)·m·T(−p).
func pivoted(m mgl64.Mat4, p geom.Vec3) mgl64.Mat4 {
	return translate(p).Mul4(m).Mul4(translate(p.Neg()))
}

func (k *MglKernel) Translate(v geom.Vec3) geom.Mat4 {
	return FromMat4(translate(v))
}

func (k *MglKernel) Scale(v geom.Vec3) geom.Mat4 {
	return FromMat4(mgl64.Scale3D(v.X, v.Y, v.Z))
}

func (k *MglKernel) Rotate(axis geom.Line, angle float64) geom.Mat4 {
	d := axis.Dir.Normalize()
	if d.IsZero() {
		return geom.Identity()
	}
	return FromMat4(pivoted(mgl64.HomogRotate3D(angle, toVec(d)), axis.Point))
}

// Reflect uses −R(n, π) = I − 2nnᵀ: a half turn about the normal
// followed by a point inversion.
func (k *MglKernel) Reflect(p geom.Plane) geom.Mat4 {
	n := p.Normal.Normalize()
	if n.IsZero() {
		return geom.Identity()
	}
	m := mgl64.Scale3D(-1, -1, -1).Mul4(mgl64.HomogRotate3D(math.Pi, toVec(n)))
	return FromMat4(pivoted(m, p.Point))
}

func (k *MglKernel) Screw(axis geom.Line, angle, pitch float64) geom.Mat4 {
	d := axis.Dir.Normalize()
	if d.IsZero() {
		return geom.Identity()
	}
	rot := pivoted(mgl64.HomogRotate3D(angle, toVec(d)), axis.Point)
	return FromMat4(translate(d.Scale(kernel.Advance(angle, pitch))).Mul4(rot))
}
