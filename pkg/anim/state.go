package anim

import (
	"fmt"
	"time"

	"github.com/chazu/rigid/pkg/canvas"
)

// Phase is a driver's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Frame is what a scene sees on each tick.
type Frame struct {
	Elapsed  time.Duration // total running time, pauses excluded
	Progress float64       // in [0,1]; 0 for unbounded timelines
	Delta    time.Duration // running time since the previous tick
	Tick     int           // 0 for the first tick after Start
	Cycle    int           // completed loops of a looping timeline
}

// Scene is a demo the Driver can run.
type Scene interface {
	// Reset restores the initial state.
	Reset()
	// Advance updates the scene for f and returns false when the scene
	// has finished on its own.
	Advance(f Frame) bool
	Draw(c canvas.Canvas)
}

// Counted is implemented by scenes that expose event counters, such as
// a reflection count.
type Counted interface {
	Counters() map[string]int
}

// Timeline maps elapsed time to progress. A zero Duration is unbounded:
// progress stays 0 and the scene decides when it is done.
type Timeline struct {
	Duration time.Duration
	Loop     bool
}

// At returns progress and completed cycles at elapsed, and whether a
// bounded timeline has run out.
func (tl Timeline) At(elapsed time.Duration) (progress float64, cycle int, done bool) {
	if tl.Duration <= 0 {
		return 0, 0, false
	}
	if tl.Loop {
		cycle = int(elapsed / tl.Duration)
		rem := elapsed - time.Duration(cycle)*tl.Duration
		return float64(rem) / float64(tl.Duration), cycle, false
	}
	if elapsed >= tl.Duration {
		return 1, 0, true
	}
	return float64(elapsed) / float64(tl.Duration), 0, false
}

// AnimationState is an inspectable snapshot of a driver.
type AnimationState struct {
	Phase     Phase          `json:"phase"`
	Progress  float64        `json:"progress"`
	Elapsed   time.Duration  `json:"elapsed"`
	Tick      int            `json:"tick"`
	Cycle     int            `json:"cycle"`
	StepIndex int            `json:"step_index"`
	Steps     int            `json:"steps,omitempty"`
	Counters  map[string]int `json:"counters,omitempty"`
}
