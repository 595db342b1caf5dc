package anim

import (
	"time"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/canvas"
)

// Stepper is a demo made of precomputed discrete steps.
type Stepper interface {
	Reset()
	// Step advances one step and reports whether it did; false at the
	// last step.
	Step() bool
	Index() int
	Len() int
	Draw(c canvas.Canvas)
}

// Speed bounds for StepDriver.
const (
	MinSpeed = 1
	MaxSpeed = 100
)

// StepInterval returns the autoplay period for a speed in [1,100].
func StepInterval(speed int) time.Duration {
	return time.Duration(MaxSpeed+1-clampSpeed(speed)) * 10 * time.Millisecond
}

func clampSpeed(s int) int {
	if s < MinSpeed {
		return MinSpeed
	}
	if s > MaxSpeed {
		return MaxSpeed
	}
	return s
}

// StepDriver steps a Stepper by hand or on an autoplay timer.
type StepDriver struct {
	Name    string
	sched   Scheduler
	stepper Stepper
	speed   int

	// OnStep, if set, runs after every successful step.
	OnStep func(index int)

	phase      Phase
	last       time.Time
	pending    Handle
	hasPending bool
}

// NewStepDriver returns an idle step driver at the given speed.
func NewStepDriver(name string, s Scheduler, st Stepper, speed int) *StepDriver {
	return &StepDriver{Name: name, sched: s, stepper: st, speed: clampSpeed(speed)}
}

// Stepper returns the driven stepper.
func (d *StepDriver) Stepper() Stepper { return d.stepper }

// Speed returns the autoplay speed.
func (d *StepDriver) Speed() int { return d.speed }

// SetSpeed clamps and stores a new autoplay speed.
func (d *StepDriver) SetSpeed(s int) { d.speed = clampSpeed(s) }

// State returns the current phase.
func (d *StepDriver) State() Phase { return d.phase }

// Step advances one step by hand. At the last step it returns false and
// the driver completes.
func (d *StepDriver) Step() bool {
	if d.phase == Completed {
		return false
	}
	if !d.stepper.Step() {
		d.complete()
		return false
	}
	if d.OnStep != nil {
		d.OnStep(d.stepper.Index())
	}
	if d.stepper.Index() >= d.stepper.Len()-1 {
		d.complete()
	}
	return true
}

// Start begins autoplay. The first step happens one interval later.
func (d *StepDriver) Start() {
	switch d.phase {
	case Running:
		return
	case Completed:
		d.Reset()
	}
	d.last = d.sched.Now()
	d.setPhase(Running)
	d.schedule()
}

// Pause stops autoplay, keeping the current step.
func (d *StepDriver) Pause() {
	if d.phase != Running {
		return
	}
	d.cancel()
	d.setPhase(Paused)
}

// Toggle pauses a running driver and starts any other.
func (d *StepDriver) Toggle() {
	if d.phase == Running {
		d.Pause()
	} else {
		d.Start()
	}
}

// Reset returns to the first step.
func (d *StepDriver) Reset() {
	d.cancel()
	d.stepper.Reset()
	d.setPhase(Idle)
}

// Draw renders the current step.
func (d *StepDriver) Draw(c canvas.Canvas) {
	d.stepper.Draw(c)
}

// Snapshot returns the driver's state.
func (d *StepDriver) Snapshot() AnimationState {
	st := AnimationState{
		Phase:     d.phase,
		StepIndex: d.stepper.Index(),
		Steps:     d.stepper.Len(),
	}
	if n := d.stepper.Len(); n > 1 {
		st.Progress = float64(d.stepper.Index()) / float64(n-1)
	}
	return st
}

func (d *StepDriver) complete() {
	d.cancel()
	d.setPhase(Completed)
}

func (d *StepDriver) setPhase(p Phase) {
	if d.phase != p {
		logging.Debug("anim: %s %s -> %s", d.Name, d.phase, p)
	}
	d.phase = p
}

func (d *StepDriver) schedule() {
	if d.hasPending {
		return
	}
	d.pending = d.sched.Schedule(d.onTick)
	d.hasPending = true
}

func (d *StepDriver) cancel() {
	if d.hasPending {
		d.sched.Cancel(d.pending)
		d.hasPending = false
	}
}

func (d *StepDriver) onTick(now time.Time) {
	d.hasPending = false
	if d.phase != Running {
		return
	}
	if now.Sub(d.last) >= StepInterval(d.speed) {
		d.last = now
		if !d.Step() {
			return
		}
		if d.phase != Running {
			return
		}
	}
	d.schedule()
}
