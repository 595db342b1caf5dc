package xform

import (
	"math"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// EaseInOut maps linear progress in [0,1] onto a quadratic
// ease-in/ease-out curve. Values outside the range are clamped.
func EaseInOut(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Clamp01 clamps t to [0,1].
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// LerpPoints interpolates each point of from toward the matching point
// of to. The slices must have equal length.
func LerpPoints(from, to []geom.Vec3, t float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(from))
	for i := range from {
		out[i] = from[i].Lerp(to[i], t)
	}
	return out
}

// Partial returns the matrix of t carried a fraction f of the way: the
// angle of rotations and screws is scaled by f, translations and scales
// are interpolated from the identity. Reflections have no continuous
// path and snap at f = 1.
func Partial(k kernel.Kernel, t Transform, f float64) geom.Mat4 {
	switch t.Kind {
	case Rotation, Helicoidal:
		return t.WithAngle(t.Angle * f).Matrix(k)
	case Translation:
		return k.Translate(t.Vec.Scale(f))
	case Scale:
		one := geom.V(1, 1, 1)
		return k.Scale(one.Lerp(t.Vec, f))
	case Reflection, Matrix:
		if f >= 1 {
			return t.Matrix(k)
		}
		return geom.Identity()
	}
	return geom.Identity()
}
