package demo

import (
	"embed"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/engine"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/project"
	"github.com/chazu/rigid/pkg/realize"
	"github.com/chazu/rigid/pkg/report"
)

//go:embed scripts/*.lisp
var scripts embed.FS

// Script returns the source of a bundled transform script.
func Script(name string) (string, error) {
	b, err := scripts.ReadFile("scripts/" + name + ".lisp")
	if err != nil {
		return "", fmt.Errorf("no bundled script %q", name)
	}
	return string(b), nil
}

// Step is one precomputed stage of a stepped demo.
type Step struct {
	Name   string
	Matrix geom.Mat4
}

// StepScene draws a base mesh under each of a list of cumulative
// matrices in turn. The untransformed mesh stays visible as a ghost.
type StepScene struct {
	title    string
	view     view
	base     []*kernel.Mesh
	steps    []Step
	index    int
	markers  []marker
	matrices []report.Matrix
	label    func(i int) string
}

type marker struct {
	name string
	at   geom.Vec3
}

// stepCamera is the draggable camera of the stepped demos: yaw and pitch
// come from the configuration.
func stepCamera(cfg config.Config) view {
	return view{cam: cfg.View()}
}

func (s *StepScene) Reset()     { s.index = 0 }
func (s *StepScene) Index() int { return s.index }
func (s *StepScene) Len() int   { return len(s.steps) }

func (s *StepScene) Step() bool {
	if s.index >= len(s.steps)-1 {
		return false
	}
	s.index++
	return true
}

// Steps returns the stages.
func (s *StepScene) Steps() []Step { return s.steps }

// Current returns the active stage.
func (s *StepScene) Current() Step { return s.steps[s.index] }

// Camera returns the projection camera.
func (s *StepScene) Camera() project.Camera { return s.view.cam }

// SetCamera replaces the projection camera, for orbiting the view.
func (s *StepScene) SetCamera(c project.Camera) { s.view.cam = c }

func (s *StepScene) Draw(c canvas.Canvas) {
	c.Clear(canvas.White)
	s.view.axes(c, 3)
	for _, m := range s.markers {
		s.view.dot(c, m.at, 6, canvas.Orange)
		if p, ok := s.view.at(m.at); ok {
			c.Text(nudge(p, 10, 0), m.name)
		}
	}
	cur := s.steps[s.index].Matrix
	for _, b := range s.base {
		s.view.mesh(c, b, canvas.Green, 0.3, true)
		s.view.mesh(c, b.Transformed(cur), canvas.Red, 1, true)
	}
}

func (s *StepScene) Status() report.Status {
	st := report.Status{Title: s.title}
	if s.label != nil {
		st = st.Add("step", s.label(s.index), "")
	} else {
		st = st.Add("step", s.steps[s.index].Name, "")
	}
	st.Matrices = append(st.Matrices, s.matrices...)
	return st
}

// FromScript evaluates a transform script and returns a stepped demo
// with one stage per script step after the untransformed one.
func FromScript(title, source string, cfg config.Config, k kernel.Kernel) (*Demo, error) {
	p, evalErrs, err := engine.NewEngine().Evaluate(source)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("script errors: %s", strings.Join(msgs, "; "))
	}
	res, err := realize.Realize(p, k)
	if err != nil {
		return nil, err
	}
	s := &StepScene{title: title, view: stepCamera(cfg)}
	first := res.Frames[0]
	s.base = first.Meshes
	if len(s.base) == 0 {
		s.base = []*kernel.Mesh{cubeAt(geom.Zero)}
	}
	for _, f := range res.Frames {
		name := f.Step
		if f.Index == 0 {
			name = "original"
		}
		s.steps = append(s.steps, Step{Name: name, Matrix: f.Matrix})
	}
	for _, st := range p.Steps {
		s.matrices = append(s.matrices, report.Matrix{Name: st.Name, M: st.Transform.Matrix(k)})
	}
	s.matrices = append(s.matrices, report.Matrix{Name: "final", M: res.Final().Matrix})
	return &Demo{Stepper: s}, nil
}

func bundled(title, script string) factory {
	return func(cfg config.Config, k kernel.Kernel) (*Demo, error) {
		src, err := Script(script)
		if err != nil {
			return nil, err
		}
		return FromScript(title, src, cfg, k)
	}
}

var (
	newComposite     = bundled("Composite", "composite")
	newReflectRotate = bundled("Reflect + rotate", "reflect-rotate")
)

// Points of the arc demo: the cube centred on A travels about C toward
// B.
var (
	arcA = geom.V(2, -2, -3)
	arcB = geom.V(2, 1, 0)
	arcC = geom.V(0, -1, -1)
)

const arcStepDeg = 30

func newArc(cfg config.Config, k kernel.Kernel) (*Demo, error) {
	ca, cb := arcA.Sub(arcC), arcB.Sub(arcC)
	axis := geom.Line{Point: arcC, Dir: ca.Cross(cb).Normalize()}
	maxDeg := ca.Angle(cb) * 180 / math.Pi

	s := &StepScene{
		title:   "Circular arc",
		view:    stepCamera(cfg),
		base:    []*kernel.Mesh{cubeAt(arcA)},
		markers: []marker{{"C", arcC}},
	}
	for deg := 0.0; ; deg += arcStepDeg {
		if deg > maxDeg-1e-9 {
			deg = maxDeg
		}
		s.steps = append(s.steps, Step{
			Name:   fmt.Sprintf("%.1f° / %.1f°", deg, maxDeg),
			Matrix: k.Rotate(axis, deg*math.Pi/180),
		})
		if deg >= maxDeg {
			break
		}
	}
	s.matrices = []report.Matrix{{Name: "rotation", M: k.Rotate(axis, arcStepDeg*math.Pi/180)}}
	return &Demo{Stepper: s}, nil
}
