package anim

import (
	"time"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/canvas"
)

// Driver runs a Scene on a Timeline. It is not safe for concurrent use;
// call it from the scheduler's goroutine.
type Driver struct {
	Name     string
	sched    Scheduler
	scene    Scene
	timeline Timeline

	// OnFrame, if set, runs after the scene advances; typically a redraw.
	OnFrame func(Frame)

	phase    Phase
	start    time.Time
	elapsed  time.Duration
	progress float64
	tick     int
	cycle    int

	pending    Handle
	hasPending bool
}

// NewDriver returns an idle driver.
func NewDriver(name string, s Scheduler, scene Scene, tl Timeline) *Driver {
	return &Driver{Name: name, sched: s, scene: scene, timeline: tl}
}

// Scene returns the driven scene.
func (d *Driver) Scene() Scene { return d.scene }

// Timeline returns the driver's timeline.
func (d *Driver) Timeline() Timeline { return d.timeline }

// State returns the current phase.
func (d *Driver) State() Phase { return d.phase }

// Start begins running from the current elapsed time. Starting a
// completed driver resets it first; starting a running one is a no-op.
func (d *Driver) Start() {
	switch d.phase {
	case Running:
		return
	case Paused:
		d.Resume()
		return
	case Completed:
		d.Reset()
	}
	d.start = d.sched.Now().Add(-d.elapsed)
	d.setPhase(Running)
	d.schedule()
}

// Pause freezes elapsed time and cancels the pending tick.
func (d *Driver) Pause() {
	if d.phase != Running {
		return
	}
	d.elapsed = d.sched.Now().Sub(d.start)
	d.cancel()
	d.setPhase(Paused)
}

// Resume continues a paused driver without a jump: the start time is
// shifted so elapsed picks up where it stopped.
func (d *Driver) Resume() {
	if d.phase != Paused {
		return
	}
	d.start = d.sched.Now().Add(-d.elapsed)
	d.setPhase(Running)
	d.schedule()
}

// Toggle pauses a running driver and starts or resumes any other.
func (d *Driver) Toggle() {
	if d.phase == Running {
		d.Pause()
	} else {
		d.Start()
	}
}

// Reset cancels any pending tick, resets the scene and returns to Idle.
func (d *Driver) Reset() {
	d.cancel()
	d.scene.Reset()
	d.elapsed, d.progress, d.tick, d.cycle = 0, 0, 0, 0
	d.setPhase(Idle)
}

// Draw renders the scene's current state.
func (d *Driver) Draw(c canvas.Canvas) {
	d.scene.Draw(c)
}

// Snapshot returns the driver's state for display or tests.
func (d *Driver) Snapshot() AnimationState {
	st := AnimationState{
		Phase:    d.phase,
		Progress: d.progress,
		Elapsed:  d.elapsed,
		Tick:     d.tick,
		Cycle:    d.cycle,
	}
	if c, ok := d.scene.(Counted); ok {
		st.Counters = c.Counters()
	}
	return st
}

func (d *Driver) setPhase(p Phase) {
	if d.phase != p {
		logging.Debug("anim: %s %s -> %s", d.Name, d.phase, p)
	}
	d.phase = p
}

func (d *Driver) schedule() {
	if d.hasPending {
		return
	}
	d.pending = d.sched.Schedule(d.onTick)
	d.hasPending = true
}

func (d *Driver) cancel() {
	if d.hasPending {
		d.sched.Cancel(d.pending)
		d.hasPending = false
	}
}

func (d *Driver) onTick(now time.Time) {
	d.hasPending = false
	if d.phase != Running {
		return
	}

	elapsed := now.Sub(d.start)
	progress, cycle, done := d.timeline.At(elapsed)
	f := Frame{
		Elapsed:  elapsed,
		Progress: progress,
		Delta:    elapsed - d.elapsed,
		Tick:     d.tick,
		Cycle:    cycle,
	}
	d.elapsed, d.progress, d.cycle = elapsed, progress, cycle
	d.tick++

	more := d.scene.Advance(f)
	if d.OnFrame != nil {
		d.OnFrame(f)
	}
	if done || !more {
		d.setPhase(Completed)
		return
	}
	d.schedule()
}
