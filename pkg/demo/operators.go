package demo

import (
	"fmt"
	"math"
	"time"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/report"
	"github.com/chazu/rigid/pkg/xform"
)

// Operator selects the transform of the cube-operators demo.
type Operator int

const (
	OpRotate Operator = iota
	OpReflect
	OpScrew
)

func (o Operator) String() string {
	switch o {
	case OpRotate:
		return "rotation"
	case OpReflect:
		return "reflection"
	case OpScrew:
		return "screw"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator accepts the names printed by String.
func ParseOperator(s string) (Operator, error) {
	for _, o := range []Operator{OpRotate, OpReflect, OpScrew} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Next cycles through the operators in declaration order.
func (o Operator) Next() Operator {
	return (o + 1) % (OpScrew + 1)
}

// Operators returns the cube-operators scene behind d, if d runs one.
func (d *Demo) Operators() (*CubeOperators, bool) {
	s, ok := d.Scene.(*CubeOperators)
	return s, ok
}

// SelectOperator picks the named operator and path mode of a
// cube-operators demo, before it is driven.
func (d *Demo) SelectOperator(name string, truePath bool) error {
	s, ok := d.Operators()
	if !ok {
		return fmt.Errorf("demo %s has no operators", d.Name)
	}
	op, err := ParseOperator(name)
	if err != nil {
		return err
	}
	s.SetOperator(op)
	s.TruePath = truePath
	return nil
}

// The three operators act on the unit cube at the origin:
// a half turn about s = {x=2, y=1}, the reflection in the plane through
// (0,1,0) spanned by (-2,4,-2) and (-1,-1,1), and a half screw turn
// about D = (-t, 1-t, t) advancing 2/π per radian.
var (
	axisS  = geom.Line{Point: geom.V(2, 1, 0), Dir: geom.ZAxis}
	planeC = geom.Plane{Point: geom.V(0, 1, 0), Normal: geom.V(2, 4, 6)}
	axisD  = geom.Line{Point: geom.V(0, 1, 0), Dir: geom.V(-1, -1, 1)}
)

const cubeOperatorsDuration = 1600 * time.Millisecond

// CubeOperators animates the cube from its rest position to its image
// under the selected operator with an ease-in-out curve.
type CubeOperators struct {
	k    kernel.Kernel
	view view

	Operator Operator
	// TruePath follows the operator's own motion (turning through the
	// partial angle) instead of straight lines between start and image.
	TruePath bool

	base     *kernel.Mesh
	target   *kernel.Mesh
	current  *kernel.Mesh
	progress float64
}

func newCubeOperators(cfg config.Config, k kernel.Kernel) (*Demo, error) {
	s := &CubeOperators{
		k:    k,
		view: centred(surface{cfg.Width, cfg.Height}, 8, 60),
		base: cubeAt(geom.Zero),
	}
	s.SetOperator(OpRotate)
	return &Demo{Scene: s, Timeline: anim.Timeline{Duration: cubeOperatorsDuration}}, nil
}

// Transform returns the selected operator.
func (s *CubeOperators) Transform() xform.Transform {
	switch s.Operator {
	case OpReflect:
		return xform.Reflect(planeC).Named("C")
	case OpScrew:
		return xform.Screw(axisD, math.Pi, 4).Named("D")
	}
	return xform.Rotate(axisS, math.Pi).Named("s")
}

// SetOperator selects an operator and puts the cube back at rest.
func (s *CubeOperators) SetOperator(o Operator) {
	s.Operator = o
	s.target = s.base.Transformed(s.Transform().Matrix(s.k))
	s.view.offset = geom.Zero
	if o == OpRotate {
		s.view.offset = geom.V(-1, -0.5, 0)
	}
	s.Reset()
}

func (s *CubeOperators) Reset() {
	s.progress = 0
	s.current = s.base.Transformed(geom.Identity())
}

func (s *CubeOperators) Advance(f anim.Frame) bool {
	s.progress = f.Progress
	t := xform.EaseInOut(f.Progress)
	if s.TruePath {
		s.current = s.base.Transformed(xform.Partial(s.k, s.Transform(), t))
	} else {
		s.current = &kernel.Mesh{
			Name:   s.base.Name,
			Points: xform.LerpPoints(s.base.Points, s.target.Points, t),
			Edges:  s.base.Edges,
		}
	}
	return true
}

// Current returns the cube as last drawn.
func (s *CubeOperators) Current() *kernel.Mesh { return s.current }

// Target returns the cube's final image.
func (s *CubeOperators) Target() *kernel.Mesh { return s.target }

func (s *CubeOperators) Draw(c canvas.Canvas) {
	c.Clear(canvas.White)
	s.reference(c)
	s.view.mesh(c, s.target, canvas.Gray, 0.3, false)
	s.view.mesh(c, s.current, canvas.Blue, 1, false)
	for _, p := range s.current.Points {
		s.view.dot(c, p, 4, canvas.Red)
	}
}

// reference draws the axis or plane of the current operator.
func (s *CubeOperators) reference(c canvas.Canvas) {
	c.SetStroke(canvas.Gray)
	c.SetLineWidth(1)
	c.SetDash(dashed)
	defer c.SetDash(nil)

	var label string
	var at geom.Vec3
	switch s.Operator {
	case OpRotate:
		s.view.line(c, geom.V(2, 1, -2), geom.V(2, 1, 2))
		label, at = "s", geom.V(2, 1, -2)
	case OpReflect:
		quad := []geom.Vec3{geom.V(1, 1, 1), geom.V(-1, 1, -1), geom.V(-1, 1, 1), geom.V(1, 1, -1)}
		pts, ok := s.view.all(quad)
		if ok[0] && ok[1] && ok[2] && ok[3] {
			c.SetAlpha(0.2)
			c.SetFill(canvas.Blue)
			c.Polyline(pts, true)
			c.SetAlpha(1)
		}
		label, at = "C", quad[0]
	case OpScrew:
		s.view.line(c, geom.V(2, -1, -2), geom.V(-2, 3, 2))
		label, at = "D", geom.V(2, -1, -2)
	}
	if p, ok := s.view.at(at); ok {
		c.SetFill(canvas.Black)
		c.Text(nudge(p, 10, 0), label)
	}
}

// Status reports the operator, progress and the path of corner 6.
func (s *CubeOperators) Status() report.Status {
	return report.Status{Title: "Cube operators"}.
		Add("operator", s.Operator.String(), "").
		Add("progress", s.progress*100, "%").
		Add("position", s.current.Points[6], "").
		With(s.Operator.String(), s.Transform().Matrix(s.k))
}
