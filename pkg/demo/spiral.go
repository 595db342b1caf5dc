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
	"github.com/chazu/rigid/pkg/trail"
)

const (
	spiralRadius     = 20.0
	spiralScale      = 2.0
	semicircleLength = 4 * time.Second
)

// Spiral traces semicircles on the x axis, each of twice the radius of
// the one before and on the other side of the axis. Every semicircle
// starts where the previous one ended, so the path is continuous. The
// scene finishes once the next semicircle would leave the surface.
type Spiral struct {
	flat  project.Flat
	limit float64 // half the surface width, in pixels

	radius  float64
	dir     float64 // +1 above the axis, -1 below
	start   geom.Vec3
	from    time.Duration // elapsed time at the start of this semicircle
	count   int           // completed semicircles
	point   geom.Vec3
	path    *trail.Path
	stopped bool
}

func newSpiral(cfg config.Config, _ kernel.Kernel) (*Demo, error) {
	s := &Spiral{
		flat:  project.Flat{Scale: spiralScale, CenterX: float64(cfg.Width) / 2, CenterY: float64(cfg.Height) / 2},
		limit: float64(cfg.Width) / 2,
		path:  trail.New(0),
	}
	s.Reset()
	return &Demo{Scene: s}, nil
}

func (s *Spiral) Reset() {
	s.radius = spiralRadius
	s.dir = 1
	s.start = geom.V(-spiralRadius, 0, 0)
	s.from = 0
	s.count = 0
	s.point = s.start
	s.stopped = false
	s.path.Clear()
	s.path.Push(s.point)
}

// centre returns the centre of the current semicircle.
func (s *Spiral) centre() geom.Vec3 {
	return s.start.Add(geom.V(s.dir*s.radius, 0, 0))
}

// At returns the point at progress p along the current semicircle.
func (s *Spiral) At(p float64) geom.Vec3 {
	a := -p * math.Pi
	if s.dir > 0 {
		a = math.Pi - p*math.Pi
	}
	c := s.centre()
	return geom.V(c.X+s.radius*math.Cos(a), s.radius*math.Sin(a), 0)
}

func (s *Spiral) Advance(f anim.Frame) bool {
	if s.stopped {
		return false
	}
	// A long tick may finish more than one semicircle.
	for f.Elapsed-s.from >= semicircleLength {
		s.point = s.At(1)
		s.path.Push(s.point)
		s.count++
		s.start = s.point
		s.radius *= 2
		s.dir = -s.dir
		s.from += semicircleLength
		if s.radius*spiralScale >= s.limit {
			s.stopped = true
			return false
		}
	}
	s.point = s.At(float64(f.Elapsed-s.from) / float64(semicircleLength))
	s.path.Push(s.point)
	return true
}

// Semicircles returns the number of completed semicircles.
func (s *Spiral) Semicircles() int { return s.count }

// Radius returns the radius of the semicircle being traced.
func (s *Spiral) Radius() float64 { return s.radius }

// Point returns the particle.
func (s *Spiral) Point() geom.Vec3 { return s.point }

// Path returns every point visited.
func (s *Spiral) Path() []geom.Vec3 { return s.path.Points() }

func (s *Spiral) Counters() map[string]int {
	return map[string]int{"semicircles": s.count}
}

func (s *Spiral) Draw(c canvas.Canvas) {
	w, h := c.Size()
	c.Clear(canvas.White)
	c.SetStroke(canvas.Gray)
	c.SetLineWidth(2)
	c.Line(project.Point2{X: 0, Y: s.flat.CenterY}, project.Point2{X: float64(w), Y: s.flat.CenterY})
	c.Line(project.Point2{X: s.flat.CenterX, Y: 0}, project.Point2{X: s.flat.CenterX, Y: float64(h)})

	if !s.stopped {
		ctr := s.centre()
		c.SetLineWidth(1)
		c.SetAlpha(0.3)
		c.SetDash(dashed)
		start, end := math.Pi, 2*math.Pi
		if s.dir < 0 {
			start, end = 0, math.Pi
		}
		c.Arc(s.flat.Map(ctr.X, ctr.Y), s.radius*spiralScale, start, end)
		c.SetDash(nil)
		c.SetAlpha(1)
	}

	pts := s.path.Points()
	screen := make([]project.Point2, len(pts))
	for i, p := range pts {
		screen[i] = s.flat.Map(p.X, p.Y)
	}
	c.SetStroke(canvas.Blue)
	c.SetLineWidth(2)
	c.Polyline(screen, false)
	c.SetFill(canvas.Red)
	c.Circle(s.flat.Map(s.point.X, s.point.Y), 8, true)
}

func (s *Spiral) Status() report.Status {
	return report.Status{Title: "Spiral"}.
		Add("radius", s.radius, "").
		Add("semicircle", s.count+1, "").
		Add("position", s.point, "")
}
