package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/demo"
	"github.com/chazu/rigid/pkg/engine"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/plan"
	"github.com/chazu/rigid/pkg/realize"
	"github.com/chazu/rigid/pkg/report"
)

// colorPalette is a default palette used to assign distinct colors to bodies.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the control surface shared by the CLI and the live viewer. It
// owns open demo sessions and a script engine. Session commands must run
// on the scheduler's goroutine; the session table itself is safe for
// concurrent use.
type App struct {
	cfg     config.Config
	clock   anim.Scheduler
	engine  *engine.Engine
	kernel  kernel.Kernel
	printer *report.Printer

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id   string
	demo *demo.Demo
	ctl  demo.Controller
}

// MeshData is the JSON-serializable wireframe of one body.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"` // pairs of vertex indices, one per edge
	BodyName string    `json:"bodyName"`
	Color    string    `json:"color"`
}

// StepData is one cumulative step of an evaluated script.
type StepData struct {
	Name   string    `json:"name"`
	Matrix geom.Mat4 `json:"matrix"`
	Grid   string    `json:"grid"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a script.
type EvalResult struct {
	Steps    []StepData      `json:"steps"`
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// StatusData describes an open session.
type StatusData struct {
	ID    string              `json:"id"`
	Demo  string              `json:"demo"`
	State anim.AnimationState `json:"state"`
	Line  string              `json:"line"`
	Text  string              `json:"text"`
}

// NewApp creates an App whose animations run on clock.
func NewApp(cfg config.Config, clock anim.Scheduler) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k, err := config.NewKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:      cfg,
		clock:    clock,
		engine:   engine.NewEngine(),
		kernel:   k,
		printer:  report.NewPrinter(cfg.Language),
		sessions: make(map[string]*session),
	}, nil
}

// Demos lists the demos that can be opened.
func (a *App) Demos() []demo.Info {
	return demo.List()
}

// Open builds a fresh instance of the named demo and returns its
// session ID. The demo starts idle.
func (a *App) Open(name string) (string, error) {
	d, err := demo.New(name, a.cfg)
	if err != nil {
		return "", err
	}
	s := &session{id: uuid.NewString(), demo: d}
	s.ctl = d.Controller(a.clock, a.cfg.Speed)
	a.mu.Lock()
	a.sessions[s.id] = s
	a.mu.Unlock()
	logging.Info("opened %s as %s", name, s.id)
	return s.id, nil
}

// Sessions returns the open session IDs in sorted order.
func (a *App) Sessions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, 0, len(a.sessions))
	for id := range a.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (a *App) session(id string) (*session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no session %q", id)
	}
	return s, nil
}

// Close stops a session and forgets it.
func (a *App) Close(id string) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	s.ctl.Pause()
	a.mu.Lock()
	delete(a.sessions, id)
	a.mu.Unlock()
	return nil
}

// Start runs or resumes a session.
func (a *App) Start(id string) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	s.ctl.Start()
	return nil
}

// Pause freezes a session.
func (a *App) Pause(id string) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	s.ctl.Pause()
	return nil
}

// Toggle pauses a running session and starts any other.
func (a *App) Toggle(id string) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	s.ctl.Toggle()
	return nil
}

// Reset returns a session to its initial state.
func (a *App) Reset(id string) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	s.ctl.Reset()
	return nil
}

// Step advances a stepped demo by one step. It reports false at the
// last step.
func (a *App) Step(id string) (bool, error) {
	s, err := a.session(id)
	if err != nil {
		return false, err
	}
	sd, ok := s.ctl.(*anim.StepDriver)
	if !ok {
		return false, fmt.Errorf("demo %s is not stepped", s.demo.Name)
	}
	return sd.Step(), nil
}

// Speed sets the autoplay speed of a stepped demo, clamped to [1,100].
func (a *App) Speed(id string, speed int) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	sd, ok := s.ctl.(*anim.StepDriver)
	if !ok {
		return fmt.Errorf("demo %s is not stepped", s.demo.Name)
	}
	sd.SetSpeed(speed)
	return nil
}

func (a *App) operators(id string) (*session, *demo.CubeOperators, error) {
	s, err := a.session(id)
	if err != nil {
		return nil, nil, err
	}
	co, ok := s.demo.Operators()
	if !ok {
		return nil, nil, fmt.Errorf("demo %s has no operators", s.demo.Name)
	}
	return s, co, nil
}

// SetOperator selects the cube-operators transform by name and resets
// the session.
func (a *App) SetOperator(id, name string) error {
	s, co, err := a.operators(id)
	if err != nil {
		return err
	}
	op, err := demo.ParseOperator(name)
	if err != nil {
		return err
	}
	co.SetOperator(op)
	s.ctl.Reset()
	logging.Debug("session %s: operator %s", id, op)
	return nil
}

// SetTruePath switches cube-operators between straight-line and
// true-path interpolation and resets the session.
func (a *App) SetTruePath(id string, on bool) error {
	s, co, err := a.operators(id)
	if err != nil {
		return err
	}
	co.TruePath = on
	s.ctl.Reset()
	return nil
}

// Draw renders a session onto c.
func (a *App) Draw(id string, c canvas.Canvas) error {
	s, err := a.session(id)
	if err != nil {
		return err
	}
	s.ctl.Draw(c)
	return nil
}

// Demo returns the demo behind a session.
func (a *App) Demo(id string) (*demo.Demo, error) {
	s, err := a.session(id)
	if err != nil {
		return nil, err
	}
	return s.demo, nil
}

// Status returns the driver state and the localized status text.
func (a *App) Status(id string) (StatusData, error) {
	s, err := a.session(id)
	if err != nil {
		return StatusData{}, err
	}
	st := s.demo.Status()
	return StatusData{
		ID:    id,
		Demo:  s.demo.Name,
		State: s.ctl.Snapshot(),
		Line:  a.printer.Line(st),
		Text:  a.printer.Text(st),
	}, nil
}

// Evaluate takes a transform script and returns the cumulative step
// matrices, the final bodies, and any errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Steps:    []StepData{},
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a plan.
	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		logging.Error("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the result format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	for _, w := range engine.Lint(p) {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:    w.Line,
			Col:     w.Col,
			Message: w.Message,
		})
	}

	// Step 3: Realize the cumulative matrices and bodies.
	res, err := realizePlan(p, a.kernel)
	if err != nil {
		logging.Error("Realize error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "realization failed: " + err.Error()})
		return result
	}

	for _, f := range res.Frames {
		name := f.Step
		if f.Index == 0 {
			name = "original"
		}
		result.Steps = append(result.Steps, StepData{Name: name, Matrix: f.Matrix, Grid: report.Grid(f.Matrix)})
	}

	// Step 4: Convert the final bodies to MeshData.
	for i, m := range res.Final().Meshes {
		result.Meshes = append(result.Meshes, meshData(m, colorPalette[i%len(colorPalette)]))
	}
	return result
}

// realizePlan runs realize.Realize and turns a panic into an error, the
// way the engine treats a panicking script.
func realizePlan(p *plan.Plan, k kernel.Kernel) (res *realize.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("panic during realization: %v", r)
		}
	}()
	return realize.Realize(p, k)
}

func meshData(m *kernel.Mesh, color string) MeshData {
	md := MeshData{
		Vertices: make([]float32, 0, 3*len(m.Points)),
		Indices:  make([]uint32, 0, 2*len(m.Edges)),
		BodyName: m.Name,
		Color:    color,
	}
	for _, p := range m.Points {
		md.Vertices = append(md.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
	}
	for _, e := range m.Edges {
		md.Indices = append(md.Indices, uint32(e[0]), uint32(e[1]))
	}
	return md
}
