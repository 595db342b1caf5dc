package demo

import (
	"math"
	"time"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/report"
	"github.com/chazu/rigid/pkg/trail"
)

const (
	topDuration = 8 * time.Second
	topSpins    = 4 // turns about r per turn about s
)

var (
	axisR   = geom.Line{Point: geom.V(1, 2, 0), Dir: geom.V(1, -1, 0)}
	topAxis = geom.Line{Point: geom.V(2, 1, 0), Dir: geom.ZAxis}
)

// SpinningTop composes a spin about r with a revolution of r about s:
// M = T2·T1, where T1 turns four times about r and T2 once about s.
type SpinningTop struct {
	k    kernel.Kernel
	view view

	top   *kernel.Mesh
	path  *trail.Path
	m     geom.Mat4
	angle float64
}

func newSpinningTop(cfg config.Config, k kernel.Kernel) (*Demo, error) {
	v := centred(surface{cfg.Width, cfg.Height}, 6, 60)
	v.offset = geom.V(-1.5, -1.5, 0)
	s := &SpinningTop{
		k:    k,
		view: v,
		top:  kernel.Cone(0.3, 0.5, 20).Transformed(geom.Translation(axisR.Point)),
		path: trail.New(cfg.TrailCap),
	}
	s.Reset()
	return &Demo{Scene: s, Timeline: anim.Timeline{Duration: topDuration}}, nil
}

// Matrix returns M at progress p.
func (s *SpinningTop) Matrix(p float64) geom.Mat4 {
	t1 := s.k.Rotate(axisR, topSpins*2*math.Pi*p)
	t2 := s.k.Rotate(topAxis, 2*math.Pi*p)
	return geom.Chain(t1, t2)
}

func (s *SpinningTop) Reset() {
	s.m = geom.Identity()
	s.angle = 0
	s.path.Clear()
	s.path.Push(s.Marker())
}

func (s *SpinningTop) Advance(f anim.Frame) bool {
	s.m = s.Matrix(f.Progress)
	s.angle = 2 * math.Pi * f.Progress
	s.path.Push(s.Marker())
	return true
}

// Apex returns the top's tip.
func (s *SpinningTop) Apex() geom.Vec3 { return s.m.Apply(s.top.Points[0]) }

// Marker returns the tracked point on the rim.
func (s *SpinningTop) Marker() geom.Vec3 { return s.m.Apply(s.top.Points[1]) }

// Trail returns the marker's path so far.
func (s *SpinningTop) Trail() []geom.Vec3 { return s.path.Points() }

func (s *SpinningTop) Draw(c canvas.Canvas) {
	c.Clear(canvas.White)

	// r travels with T2 only.
	t2 := s.k.Rotate(topAxis, s.angle)
	c.SetLineWidth(1)
	c.SetDash(dashed)
	c.SetStroke(canvas.Green)
	s.view.line(c, t2.Apply(axisR.Point.Sub(axisR.Dir)), t2.Apply(axisR.Point.Add(axisR.Dir)))
	c.SetStroke(canvas.Red)
	s.view.line(c, geom.V(2, 1, -2), geom.V(2, 1, 3))
	c.SetDash(nil)

	c.SetStroke(canvas.Purple)
	s.view.polyline(c, s.path.Points())
	s.view.mesh(c, s.top.Transformed(s.m), canvas.Blue, 1, false)
	s.view.dot(c, s.Apex(), 5, canvas.Green)
	s.view.dot(c, s.Marker(), 5, canvas.Red)
}

func (s *SpinningTop) Status() report.Status {
	return report.Status{Title: "Spinning top"}.
		Add("angle", s.angle*180/math.Pi, "°").
		Add("apex", s.Apex(), "").
		Add("marker", s.Marker(), "").
		With("M", s.m)
}
