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
	hypoDuration = 4 * time.Second
	hypoOuter    = 100.0
	hypoInner    = 25.0
)

// Hypocycloid rolls a circle of radius r without slipping inside a
// fixed circle of radius R. Its centre turns by φ about the origin while
// it spins by ρ = −(R−r)/r·φ about itself.
type Hypocycloid struct {
	flat project.Flat

	phi    float64
	centre geom.Vec3
	marker geom.Vec3
	path   *trail.Path
	cycle  int
}

func newHypocycloid(cfg config.Config, _ kernel.Kernel) (*Demo, error) {
	w, h := float64(cfg.Width), float64(cfg.Height)
	scale := math.Min(3, math.Min(w, h)/(2*hypoOuter*1.05))
	s := &Hypocycloid{
		flat: project.Flat{Scale: scale, CenterX: w / 2, CenterY: h / 2},
		path: trail.New(cfg.TrailCap),
	}
	s.Reset()
	return &Demo{Scene: s, Timeline: anim.Timeline{Duration: hypoDuration, Loop: true}}, nil
}

// Place puts the rolling circle at angle phi.
func (s *Hypocycloid) Place(phi float64) {
	s.phi = phi
	d := hypoOuter - hypoInner
	rho := -d / hypoInner * phi
	s.centre = geom.V(d*math.Cos(phi), d*math.Sin(phi), 0)
	s.marker = s.centre.Add(geom.V(hypoInner*math.Cos(rho), hypoInner*math.Sin(rho), 0))
}

func (s *Hypocycloid) Reset() {
	s.cycle = 0
	s.path.Clear()
	s.Place(0)
	s.path.Push(s.marker)
}

func (s *Hypocycloid) Advance(f anim.Frame) bool {
	s.cycle = f.Cycle
	s.Place(2 * math.Pi * f.Progress)
	s.path.Push(s.marker)
	return true
}

// Marker returns the tracked point on the rolling circle.
func (s *Hypocycloid) Marker() geom.Vec3 { return s.marker }

// Centre returns the centre of the rolling circle.
func (s *Hypocycloid) Centre() geom.Vec3 { return s.centre }

// Trail returns the recent marker positions, oldest first.
func (s *Hypocycloid) Trail() []geom.Vec3 { return s.path.Points() }

func (s *Hypocycloid) Counters() map[string]int {
	return map[string]int{"turns": s.cycle}
}

func (s *Hypocycloid) at(p geom.Vec3) project.Point2 { return s.flat.Map(p.X, p.Y) }

func (s *Hypocycloid) Draw(c canvas.Canvas) {
	c.Clear(canvas.White)
	c.SetLineWidth(2)
	c.SetStroke(canvas.Gray)
	c.Circle(s.at(geom.Zero), hypoOuter*s.flat.Scale, false)
	c.SetStroke(canvas.Blue)
	c.Circle(s.at(s.centre), hypoInner*s.flat.Scale, false)
	c.SetLineWidth(1)
	c.Line(s.at(s.centre), s.at(s.marker))

	pts := s.path.Points()
	screen := make([]project.Point2, len(pts))
	for i, p := range pts {
		screen[i] = s.at(p)
	}
	c.SetStroke(canvas.Purple)
	c.SetLineWidth(2)
	c.Polyline(screen, false)

	c.SetFill(canvas.Red)
	c.Circle(s.at(s.marker), 5, true)
}

func (s *Hypocycloid) Status() report.Status {
	return report.Status{Title: "Hypocycloid"}.
		Add("angle", s.phi*180/math.Pi, "°").
		Add("turns", s.cycle, "").
		Add("marker", s.marker, "")
}
