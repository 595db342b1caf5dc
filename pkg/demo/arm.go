package demo

import (
	"math"
	"time"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/project"
	"github.com/chazu/rigid/pkg/report"
)

const (
	armDuration = 2 * time.Second
	armL1       = 2.0
	armL2       = 3.0
	armScale    = 80.0
)

// Joint angles in degrees, elbow relative to the upper arm.
var (
	shoulderFrom, shoulderTo = -90.0, 30.0
	elbowFrom, elbowTo       = 0.0, -30.0
)

var zAxis = geom.Line{Dir: geom.ZAxis}

// Arm is a planar two-link arm posed by forward kinematics. The plane
// uses screen orientation, y growing down, so positive angles turn
// clockwise on screen.
type Arm struct {
	k      kernel.Kernel
	cx, cy float64

	a1, a2      float64 // radians
	m1, m2      geom.Mat4
	elbow, hand geom.Vec3
}

func newArm(cfg config.Config, k kernel.Kernel) (*Demo, error) {
	s := &Arm{k: k, cx: float64(cfg.Width) / 2, cy: float64(cfg.Height) / 2}
	s.Reset()
	return &Demo{Scene: s, Timeline: anim.Timeline{Duration: armDuration}}, nil
}

// Pose sets the joint angles, in radians, and solves the joints.
//
//	M1 = Rz(a1)
//	M2 = Rz(a1)·T(L1,0,0)·Rz(a2)
//	elbow = M1·(L1,0,0), hand = M2·(L2,0,0)
func (s *Arm) Pose(a1, a2 float64) {
	s.a1, s.a2 = a1, a2
	s.m1 = s.k.Rotate(zAxis, a1)
	s.m2 = geom.Chain(s.k.Rotate(zAxis, a2), s.k.Translate(geom.V(armL1, 0, 0)), s.m1)
	s.elbow = s.m1.Apply(geom.V(armL1, 0, 0))
	s.hand = s.m2.Apply(geom.V(armL2, 0, 0))
}

func (s *Arm) Reset() {
	s.Pose(shoulderFrom*math.Pi/180, elbowFrom*math.Pi/180)
}

func (s *Arm) Advance(f anim.Frame) bool {
	lerp := func(a, b float64) float64 { return (a + (b-a)*f.Progress) * math.Pi / 180 }
	s.Pose(lerp(shoulderFrom, shoulderTo), lerp(elbowFrom, elbowTo))
	return true
}

// Elbow returns the elbow position in arm units.
func (s *Arm) Elbow() geom.Vec3 { return s.elbow }

// Hand returns the hand position in arm units.
func (s *Arm) Hand() geom.Vec3 { return s.hand }

func (s *Arm) at(p geom.Vec3) project.Point2 {
	return project.Point2{X: s.cx + p.X*armScale, Y: s.cy + p.Y*armScale}
}

func (s *Arm) Draw(c canvas.Canvas) {
	c.Clear(canvas.White)
	c.SetLineWidth(1)
	c.SetStroke(canvas.LightGray)
	c.Circle(s.at(geom.Zero), (armL1+armL2)*armScale, false)

	c.SetLineWidth(8)
	c.SetStroke(canvas.Blue)
	c.Line(s.at(geom.Zero), s.at(s.elbow))
	c.SetStroke(canvas.Green)
	c.Line(s.at(s.elbow), s.at(s.hand))

	c.SetFill(canvas.Black)
	c.Circle(s.at(geom.Zero), 8, true)
	c.Circle(s.at(s.elbow), 6, true)
	c.SetFill(canvas.Red)
	c.Circle(s.at(s.hand), 6, true)
}

func (s *Arm) Status() report.Status {
	deg := func(a float64) float64 { return a * 180 / math.Pi }
	return report.Status{Title: "Two-link arm"}.
		Add("arm", deg(s.a1), "°").
		Add("forearm", deg(s.a2), "°").
		Add("hand", s.hand, "").
		With("M1", s.m1).
		With("M2", s.m2)
}
