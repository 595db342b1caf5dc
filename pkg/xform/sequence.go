package xform

import (
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// Sequence is an ordered list of transforms in application order.
type Sequence []Transform

// Matrix composes the sequence: the first transform acts first.
func (s Sequence) Matrix(k kernel.Kernel) geom.Mat4 {
	ms := make([]geom.Mat4, len(s))
	for i, t := range s {
		ms[i] = t.Matrix(k)
	}
	return geom.Chain(ms...)
}

// Steps returns the cumulative matrices of s: entry 0 is the identity
// and entry i applies the first i transforms. The result has len(s)+1
// entries.
func (s Sequence) Steps(k kernel.Kernel) []geom.Mat4 {
	out := make([]geom.Mat4, 0, len(s)+1)
	acc := geom.Identity()
	out = append(out, acc)
	for _, t := range s {
		acc = acc.Then(t.Matrix(k))
		out = append(out, acc)
	}
	return out
}

// Apply maps every point through the composed sequence.
func (s Sequence) Apply(k kernel.Kernel, ps []geom.Vec3) []geom.Vec3 {
	return s.Matrix(k).ApplyAll(ps)
}
