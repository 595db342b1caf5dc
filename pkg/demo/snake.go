package demo

import (
	"image/color"
	"math"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/physics"
	"github.com/chazu/rigid/pkg/report"
)

const (
	snakeStep   = 0.05 // radians per tick
	snakePitch  = 2    // axial advance per full turn
	snakePoints = 30
)

var (
	planeA = geom.PlaneFromOffset(geom.V(-2, 1, -1), 1)
	planeB = geom.PlaneFromOffset(geom.V(0, 1, 1), 1)
)

// Snake moves a polyline along a screw about D. When any of its points
// passes through plane A or B it is reflected in plane C, and the
// reflection is kept for the rest of the run: the drawn snake is
// R·Mh(θ)·basis, where R is the product of every reflection so far.
type Snake struct {
	k    kernel.Kernel
	view view

	basis  *kernel.Mesh
	points []geom.Vec3
	theta  float64
	refl   geom.Mat4
	detect physics.CrossingDetector
}

func newSnake(cfg config.Config, k kernel.Kernel) (*Demo, error) {
	v := centred(surface{cfg.Width, cfg.Height}, 8, 50)
	v.offset = geom.V(0, -1.5, 0)
	s := &Snake{
		k:     k,
		view:  v,
		basis: kernel.Polyline(geom.V(0, 1, 0), geom.V(0, 3.9, 0), snakePoints),
		detect: physics.CrossingDetector{Planes: []physics.NamedPlane{
			{Name: "A", Plane: planeA},
			{Name: "B", Plane: planeB},
		}},
	}
	s.Reset()
	return &Demo{Scene: s}, nil
}

func (s *Snake) screw(theta float64) geom.Mat4 {
	return s.k.Screw(axisD, theta, snakePitch)
}

func (s *Snake) Reset() {
	s.theta = 0
	s.refl = geom.Identity()
	s.detect.Reset()
	s.points = append([]geom.Vec3(nil), s.basis.Points...)
}

func (s *Snake) Advance(anim.Frame) bool {
	s.theta += snakeStep
	next := s.screw(s.theta).Then(s.refl).ApplyAll(s.basis.Points)
	if _, hit := s.detect.Check(s.points, next); hit {
		s.refl = s.refl.Then(s.k.Reflect(planeC))
		next = s.screw(s.theta).Then(s.refl).ApplyAll(s.basis.Points)
	}
	s.points = next
	return true
}

// Points returns the snake's current points, head first.
func (s *Snake) Points() []geom.Vec3 { return s.points }

// Reflections returns the number of reflections since Reset.
func (s *Snake) Reflections() int { return s.detect.Count }

// LastPlane returns the plane that caused the latest reflection, or ""
// for none.
func (s *Snake) LastPlane() string { return s.detect.Last }

// Matrix returns the full transform applied to the basis.
func (s *Snake) Matrix() geom.Mat4 { return s.screw(s.theta).Then(s.refl) }

func (s *Snake) Counters() map[string]int {
	return map[string]int{"reflections": s.detect.Count}
}

func (s *Snake) Draw(c canvas.Canvas) {
	c.Clear(canvas.White)
	s.view.axes(c, 2)

	c.SetLineWidth(1)
	c.SetDash(dashed)
	c.SetAlpha(0.4)
	for i, pl := range []geom.Plane{planeA, planeB, planeC} {
		c.SetStroke([]color.Color{canvas.Blue, canvas.Green, canvas.Orange}[i])
		s.view.polyline(c, planeGrid(pl))
	}
	c.SetAlpha(1)
	c.SetStroke(canvas.Purple)
	s.view.line(c, geom.V(3, -2, -3), geom.V(-3, 4, 3))
	c.SetDash(nil)

	c.SetStroke(canvas.Red)
	c.SetLineWidth(4)
	s.view.polyline(c, s.points)
	s.view.dot(c, s.points[0], 8, canvas.Black)
}

// planeGrid samples the plane over x in [-3,3] and y in [-1,4], keeping
// points with |z| < 3.
func planeGrid(pl geom.Plane) []geom.Vec3 {
	n := pl.Normal
	if math.Abs(n.Z) < 1e-9 {
		return nil
	}
	d := n.Dot(pl.Point)
	var out []geom.Vec3
	for x := -3.0; x <= 3; x += 0.5 {
		for y := -1.0; y <= 4; y += 0.5 {
			z := (d - n.X*x - n.Y*y) / n.Z
			if math.Abs(z) < 3 {
				out = append(out, geom.V(x, y, z))
			}
		}
	}
	return out
}

func (s *Snake) Status() report.Status {
	last := s.detect.Last
	if last == "" {
		last = "-"
	}
	return report.Status{Title: "Snake"}.
		Add("turns", s.theta/(2*math.Pi), "").
		Add("reflections", s.detect.Count, "").
		Add("last plane", last, "").
		With("M", s.Matrix())
}
