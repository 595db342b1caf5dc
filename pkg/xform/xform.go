// Package xform describes geometric operators as plain values and
// realizes them as matrices through a kernel. A Transform carries only
// its defining data, so it can be logged, hashed, compared and replayed.
package xform

import (
	"fmt"
	"math"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// Kind enumerates the operator families.
type Kind int

const (
	Identity Kind = iota
	Translation
	Scale
	Rotation
	Reflection
	Helicoidal
	Matrix // a literal matrix supplied by the caller
)

func (k Kind) String() string {
	switch k {
	case Identity:
		return "identity"
	case Translation:
		return "translation"
	case Scale:
		return "scale"
	case Rotation:
		return "rotation"
	case Reflection:
		return "reflection"
	case Helicoidal:
		return "helicoidal"
	case Matrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Transform is a named operator with its geometric data. Only the fields
// relevant to Kind are read.
type Transform struct {
	Kind  Kind       `json:"kind"`
	Name  string     `json:"name,omitempty"`
	Axis  geom.Line  `json:"axis"`  // Rotation, Helicoidal
	Angle float64    `json:"angle"` // radians; Rotation, Helicoidal
	Pitch float64    `json:"pitch"` // advance per full turn; Helicoidal
	Plane geom.Plane `json:"plane"` // Reflection
	Vec   geom.Vec3  `json:"vec"`   // Translation offset or Scale factors
	M     geom.Mat4  `json:"m"`     // Matrix
}

// Rotate returns a rotation by angle radians about axis.
func Rotate(axis geom.Line, angle float64) Transform {
	return Transform{Kind: Rotation, Axis: axis, Angle: angle}
}

// RotateDeg is Rotate with the angle in degrees.
func RotateDeg(axis geom.Line, deg float64) Transform {
	return Rotate(axis, deg*math.Pi/180)
}

// Reflect returns a reflection across p.
func Reflect(p geom.Plane) Transform {
	return Transform{Kind: Reflection, Plane: p}
}

// Screw returns a helicoidal motion about axis advancing pitch per turn.
func Screw(axis geom.Line, angle, pitch float64) Transform {
	return Transform{Kind: Helicoidal, Axis: axis, Angle: angle, Pitch: pitch}
}

// Translate returns a translation by v.
func Translate(v geom.Vec3) Transform {
	return Transform{Kind: Translation, Vec: v}
}

// ScaleBy returns a scale about the origin by v.
func ScaleBy(v geom.Vec3) Transform {
	return Transform{Kind: Scale, Vec: v}
}

// Literal wraps an existing matrix.
func Literal(m geom.Mat4) Transform {
	return Transform{Kind: Matrix, M: m}
}

// Named returns a copy of t carrying name.
func (t Transform) Named(name string) Transform {
	t.Name = name
	return t
}

// WithAngle returns a copy of t with its angle replaced. It is how
// animated rotations and screws are re-parameterized every tick.
func (t Transform) WithAngle(a float64) Transform {
	t.Angle = a
	return t
}

// Matrix realizes t with k.
func (t Transform) Matrix(k kernel.Kernel) geom.Mat4 {
	switch t.Kind {
	case Translation:
		return k.Translate(t.Vec)
	case Scale:
		return k.Scale(t.Vec)
	case Rotation:
		return k.Rotate(t.Axis, t.Angle)
	case Reflection:
		return k.Reflect(t.Plane)
	case Helicoidal:
		return k.Screw(t.Axis, t.Angle, t.Pitch)
	case Matrix:
		return t.M
	default:
		return geom.Identity()
	}
}

func (t Transform) String() string {
	label := t.Kind.String()
	if t.Name != "" {
		label = t.Name
	}
	switch t.Kind {
	case Translation, Scale:
		return fmt.Sprintf("%s %v", label, t.Vec)
	case Rotation:
		return fmt.Sprintf("%s %.2f° about %v through %v", label, t.Angle*180/math.Pi, t.Axis.Dir, t.Axis.Point)
	case Reflection:
		return fmt.Sprintf("%s in plane n=%v through %v", label, t.Plane.Normal, t.Plane.Point)
	case Helicoidal:
		return fmt.Sprintf("%s %.2f° about %v through %v, pitch %g", label, t.Angle*180/math.Pi, t.Axis.Dir, t.Axis.Point, t.Pitch)
	}
	return label
}
