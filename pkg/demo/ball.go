package demo

import (
	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/physics"
	"github.com/chazu/rigid/pkg/project"
	"github.com/chazu/rigid/pkg/report"
)

var (
	ballBox   = physics.Box{W: 800, H: 600}
	ballStart = physics.Ball{X: 30, Y: 570, VX: 740 * 2.0 / 240, VY: -10, Radius: 30, Gravity: 0.5}
)

const ballGrid = 50

// Ball bounces a disc inside a fixed 800×600 box, one integration step
// per tick. Coordinates are screen pixels with y growing down; the box
// is scaled to the surface.
type Ball struct {
	ball    physics.Ball
	last    physics.Wall
	bounces int
	scale   float64
}

func newBall(cfg config.Config, _ kernel.Kernel) (*Demo, error) {
	sx := float64(cfg.Width) / ballBox.W
	sy := float64(cfg.Height) / ballBox.H
	s := &Ball{scale: sx}
	if sy < sx {
		s.scale = sy
	}
	s.Reset()
	return &Demo{Scene: s}, nil
}

func (s *Ball) Reset() {
	s.ball = ballStart
	s.last = 0
	s.bounces = 0
}

func (s *Ball) Advance(anim.Frame) bool {
	if hit := s.ball.Step(ballBox); hit != 0 {
		s.last = hit
		s.bounces++
	}
	return true
}

// State returns the ball.
func (s *Ball) State() physics.Ball { return s.ball }

// Bounces returns the number of ticks with wall contact since Reset.
func (s *Ball) Bounces() int { return s.bounces }

func (s *Ball) Counters() map[string]int {
	return map[string]int{"bounces": s.bounces}
}

func (s *Ball) at(x, y float64) project.Point2 {
	return project.Point2{X: x * s.scale, Y: y * s.scale}
}

func (s *Ball) Draw(c canvas.Canvas) {
	c.Clear(canvas.Night)
	c.SetStroke(canvas.Gray)
	c.SetLineWidth(1)
	c.SetAlpha(0.3)
	for x := 0.0; x <= ballBox.W; x += ballGrid {
		c.Line(s.at(x, 0), s.at(x, ballBox.H))
	}
	for y := 0.0; y <= ballBox.H; y += ballGrid {
		c.Line(s.at(0, y), s.at(ballBox.W, y))
	}
	c.SetAlpha(1)
	c.SetFill(canvas.Orange)
	c.Circle(s.at(s.ball.X, s.ball.Y), s.ball.Radius*s.scale, true)
}

func (s *Ball) Status() report.Status {
	return report.Status{Title: "Bouncing ball"}.
		Add("position", geom.V(s.ball.X, s.ball.Y, 0), "").
		Add("velocity", geom.V(s.ball.VX, s.ball.VY, 0), "").
		Add("bounces", s.bounces, "")
}
