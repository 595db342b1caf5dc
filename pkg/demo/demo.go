// Package demo assembles the shared pipeline into the individual
// demonstrations. Each demo is either a continuous anim.Scene run on a
// Timeline or a discrete anim.Stepper, and owns all of its state.
package demo

import (
	"fmt"
	"sort"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/report"
)

// Info describes a registered demo.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stepped     bool   `json:"stepped"`
}

// Demo is a freshly built demo instance. Exactly one of Scene and
// Stepper is set.
type Demo struct {
	Info
	Scene    anim.Scene
	Timeline anim.Timeline
	Stepper  anim.Stepper
}

// Controller is the command surface shared by anim.Driver and
// anim.StepDriver.
type Controller interface {
	Start()
	Pause()
	Toggle()
	Reset()
	State() anim.Phase
	Snapshot() anim.AnimationState
	Draw(c canvas.Canvas)
}

// Controller wraps the demo in the driver that fits it.
func (d *Demo) Controller(s anim.Scheduler, speed int) Controller {
	if d.Stepper != nil {
		return anim.NewStepDriver(d.Name, s, d.Stepper, speed)
	}
	return anim.NewDriver(d.Name, s, d.Scene, d.Timeline)
}

// Status returns the demo's own description of its state, or just its
// title when it has none.
func (d *Demo) Status() report.Status {
	var target interface{} = d.Scene
	if d.Stepper != nil {
		target = d.Stepper
	}
	if r, ok := target.(report.Reporter); ok {
		return r.Status()
	}
	return report.Status{Title: d.Name}
}

type factory func(cfg config.Config, k kernel.Kernel) (*Demo, error)

type entry struct {
	info Info
	make factory
}

var registry = map[string]entry{}

func register(name, desc string, stepped bool, f factory) {
	if _, dup := registry[name]; dup {
		panic("demo: duplicate registration of " + name)
	}
	registry[name] = entry{info: Info{Name: name, Description: desc, Stepped: stepped}, make: f}
}

func init() {
	register("cube-operators", "unit cube carried to its image under a rotation, reflection or screw", false, newCubeOperators)
	register("arc", "cube carried about C from A toward B in 30 degree steps", true, newArc)
	register("composite", "rotation, then scale, then translation of a cube", true, newComposite)
	register("reflect-rotate", "reflection in x-y=1 followed by a 30 degree rotation", true, newReflectRotate)
	register("spinning-top", "top turning four times about r while r turns once about s", false, newSpinningTop)
	register("snake", "snake on a screw path, reflected in C when it crosses A or B", false, newSnake)
	register("ball", "ball bouncing elastically in an 800x600 box under gravity", false, newBall)
	register("arm", "two-link arm forward kinematics", false, newArm)
	register("spiral", "semicircles of doubling radius joined end to end", false, newSpiral)
	register("hypocycloid", "circle of radius 25 rolling inside a circle of radius 100", false, newHypocycloid)
	register("rolling-ring", "circle rolling around a ring tilted 60 degrees, as 3D poses", false, newRollingRing)
}

// List returns every demo sorted by name.
func List() []Info {
	out := make([]Info, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the description of a demo.
func Lookup(name string) (Info, bool) {
	e, ok := registry[name]
	return e.info, ok
}

// New builds a fresh instance of the named demo.
func New(name string, cfg config.Config) (*Demo, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown demo %q", name)
	}
	k, err := config.NewKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	d, err := e.make(cfg, k)
	if err != nil {
		return nil, fmt.Errorf("demo %s: %w", name, err)
	}
	d.Info = e.info
	logging.Debug("demo %s built with %s kernel", name, k.Name())
	return d, nil
}
