// Package kernel defines the abstract operator kernel interface.
// Implementations (native, sdfx, mgl) build the affine matrices for the
// rigid and affine operators used by every scene. The kernel abstraction
// allows swapping math backends without changing the rest of the system.
package kernel

import (
	"math"

	"github.com/chazu/rigid/pkg/geom"
)

// Kernel builds homogeneous matrices for the geometric operators.
// Angles are in radians. Axis directions and plane normals need not be
// normalized; implementations normalize them and degrade to the identity
// when they are zero.
type Kernel interface {
	// Name identifies the backend in logs and configuration.
	Name() string

	Translate(v geom.Vec3) geom.Mat4
	Scale(v geom.Vec3) geom.Mat4

	// Rotate pivots about axis.Point: T(P)·R(d, θ)·T(−P).
	Rotate(axis geom.Line, angle float64) geom.Mat4

	// Reflect mirrors across the plane; points on the plane are fixed.
	Reflect(p geom.Plane) geom.Mat4

	// Screw rotates about axis and advances along it by pitch per full
	// turn, so the axial translation is (pitch/2π)·angle.
	Screw(axis geom.Line, angle, pitch float64) geom.Mat4
}

// Advance returns the axial translation of a screw motion with the given
// pitch after turning through angle.
func Advance(angle, pitch float64) float64 {
	return pitch / (2 * math.Pi) * angle
}
