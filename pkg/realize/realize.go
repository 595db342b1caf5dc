// Package realize walks a plan's step sequence and produces, for every
// prefix of it, the cumulative matrix and the transformed bodies using a
// geometry kernel.
package realize

import (
	"fmt"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/plan"
)

// Frame is the state of every body after a prefix of the steps.
type Frame struct {
	Index  int            `json:"index"` // 0 is the untransformed state
	Step   string         `json:"step"`  // name of the last applied step
	Matrix geom.Mat4      `json:"matrix"`
	Meshes []*kernel.Mesh `json:"meshes"`
}

// Result holds one frame per step plus the initial frame.
type Result struct {
	Kernel string   `json:"kernel"`
	Frames []*Frame `json:"frames"`
}

// Final returns the last frame, or nil for an empty result.
func (r *Result) Final() *Frame {
	if r == nil || len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}

// accumulator holds the running product of step matrices.
type accumulator struct {
	m geom.Mat4
}

func newAccumulator() *accumulator {
	return &accumulator{m: geom.Identity()}
}

// push applies next after everything accumulated so far.
func (a *accumulator) push(next geom.Mat4) {
	a.m = a.m.Then(next)
}

// Realize builds the frames for p with kernel k. It is read-only and
// never mutates the plan. A plan with no bodies still yields matrices.
func Realize(p *plan.Plan, k kernel.Kernel) (*Result, error) {
	if p == nil {
		return nil, nil
	}
	if k == nil {
		return nil, fmt.Errorf("realize: nil kernel")
	}

	base := make([]*kernel.Mesh, 0, len(p.Bodies))
	for _, b := range p.Bodies {
		m, err := b.Mesh()
		if err != nil {
			return nil, fmt.Errorf("realize: body %s: %w", b.ID.Short(), err)
		}
		base = append(base, m)
	}

	res := &Result{Kernel: k.Name()}
	acc := newAccumulator()
	res.Frames = append(res.Frames, makeFrame(0, "", acc.m, base))

	for i, s := range p.Steps {
		m := s.Transform.Matrix(k)
		if !m.IsAffine() {
			return nil, fmt.Errorf("realize: step %q produced a non-affine matrix", s.Name)
		}
		acc.push(m)
		res.Frames = append(res.Frames, makeFrame(i+1, s.Name, acc.m, base))
	}
	return res, nil
}

func makeFrame(index int, step string, m geom.Mat4, base []*kernel.Mesh) *Frame {
	f := &Frame{Index: index, Step: step, Matrix: m, Meshes: make([]*kernel.Mesh, len(base))}
	for i, b := range base {
		f.Meshes[i] = b.Transformed(m)
	}
	return f
}
