package anim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const frame = 10 * time.Millisecond

// fakeScene records the frames it sees.
type fakeScene struct {
	frames []anim.Frame
	resets int
	stopAt int // Advance returns false on this tick; 0 never
}

func (s *fakeScene) Reset()               { s.frames = nil; s.resets++ }
func (s *fakeScene) Draw(c canvas.Canvas) {}
func (s *fakeScene) Advance(f anim.Frame) bool {
	s.frames = append(s.frames, f)
	return s.stopAt == 0 || len(s.frames) < s.stopAt
}
func (s *fakeScene) Counters() map[string]int {
	return map[string]int{"frames": len(s.frames)}
}

func (s *fakeScene) last() anim.Frame { return s.frames[len(s.frames)-1] }

func TestTimelineAt(t *testing.T) {
	tests := []struct {
		name     string
		tl       anim.Timeline
		elapsed  time.Duration
		progress float64
		cycle    int
		done     bool
	}{
		{"bounded mid", anim.Timeline{Duration: time.Second}, 250 * time.Millisecond, 0.25, 0, false},
		{"bounded end", anim.Timeline{Duration: time.Second}, time.Second, 1, 0, true},
		{"bounded past end", anim.Timeline{Duration: time.Second}, 3 * time.Second, 1, 0, true},
		{"loop wraps", anim.Timeline{Duration: time.Second, Loop: true}, 2500 * time.Millisecond, 0.5, 2, false},
		{"unbounded", anim.Timeline{}, time.Hour, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c, done := tt.tl.At(tt.elapsed)
			assert.InDelta(t, tt.progress, p, 1e-12)
			assert.Equal(t, tt.cycle, c)
			assert.Equal(t, tt.done, done)
		})
	}
}

func TestDriverRunsToCompletion(t *testing.T) {
	clk := anim.NewManual(epoch)
	sc := &fakeScene{}
	d := anim.NewDriver("t", clk, sc, anim.Timeline{Duration: 100 * time.Millisecond})

	assert.Equal(t, anim.Idle, d.State())
	d.Start()
	assert.Equal(t, anim.Running, d.State())
	assert.Equal(t, 1, clk.Pending())

	clk.Frames(20, frame)
	assert.Equal(t, anim.Completed, d.State())
	assert.Len(t, sc.frames, 10)
	assert.Equal(t, 1.0, sc.last().Progress)
	assert.Equal(t, 0, clk.Pending(), "no tick after completion")
}

func TestDriverSinglePendingTick(t *testing.T) {
	clk := anim.NewManual(epoch)
	d := anim.NewDriver("t", clk, &fakeScene{}, anim.Timeline{})
	d.Start()
	d.Start()
	d.Pause()
	d.Resume()
	d.Resume()
	d.Toggle()
	d.Toggle()
	assert.Equal(t, 1, clk.Pending())

	d.Reset()
	assert.Equal(t, 0, clk.Pending())
}

func TestDriverPauseResumeNoJump(t *testing.T) {
	clk := anim.NewManual(epoch)
	sc := &fakeScene{}
	d := anim.NewDriver("t", clk, sc, anim.Timeline{Duration: time.Second})

	d.Start()
	clk.Frames(30, frame) // 300ms
	d.Pause()
	assert.Equal(t, anim.Paused, d.State())
	before := d.Snapshot()
	assert.InDelta(t, 0.3, before.Progress, 1e-9)

	// Time passes while paused; nothing ticks.
	clk.Advance(5 * time.Second)
	assert.Len(t, sc.frames, 30)

	d.Resume()
	clk.Advance(frame)
	f := sc.last()
	assert.Equal(t, 310*time.Millisecond, f.Elapsed)
	assert.Equal(t, frame, f.Delta)
	assert.InDelta(t, 0.31, f.Progress, 1e-9)
}

func TestDriverLoopCountsCycles(t *testing.T) {
	clk := anim.NewManual(epoch)
	sc := &fakeScene{}
	d := anim.NewDriver("t", clk, sc, anim.Timeline{Duration: 100 * time.Millisecond, Loop: true})
	d.Start()
	clk.Frames(25, frame)
	assert.Equal(t, anim.Running, d.State())
	assert.Equal(t, 2, d.Snapshot().Cycle)
	assert.InDelta(t, 0.5, sc.last().Progress, 1e-9)
}

func TestDriverSceneFinishes(t *testing.T) {
	clk := anim.NewManual(epoch)
	sc := &fakeScene{stopAt: 3}
	d := anim.NewDriver("t", clk, sc, anim.Timeline{})
	d.Start()
	clk.Frames(10, frame)
	assert.Equal(t, anim.Completed, d.State())
	assert.Len(t, sc.frames, 3)
	assert.Equal(t, 3, d.Snapshot().Counters["frames"])
}

func TestDriverResetClearsState(t *testing.T) {
	clk := anim.NewManual(epoch)
	sc := &fakeScene{}
	d := anim.NewDriver("t", clk, sc, anim.Timeline{Duration: time.Second})
	d.Start()
	clk.Frames(5, frame)
	d.Reset()

	st := d.Snapshot()
	assert.Equal(t, anim.Idle, st.Phase)
	assert.Zero(t, st.Progress)
	assert.Zero(t, st.Tick)
	assert.Equal(t, 1, sc.resets)

	// A fresh start begins at tick 0.
	d.Start()
	clk.Advance(frame)
	assert.Equal(t, 0, sc.last().Tick)
	assert.Equal(t, frame, sc.last().Elapsed)
}

func TestDriverRestartAfterCompletion(t *testing.T) {
	clk := anim.NewManual(epoch)
	sc := &fakeScene{}
	d := anim.NewDriver("t", clk, sc, anim.Timeline{Duration: 20 * time.Millisecond})
	calls := 0
	d.OnFrame = func(anim.Frame) { calls++ }
	d.Start()
	clk.Frames(5, frame)
	require.Equal(t, anim.Completed, d.State())
	assert.Equal(t, 2, calls)

	d.Start()
	assert.Equal(t, anim.Running, d.State())
	assert.Equal(t, 1, sc.resets)
}

// fakeStepper has n steps.
type fakeStepper struct {
	i, n int
}

func (s *fakeStepper) Reset()             { s.i = 0 }
func (s *fakeStepper) Index() int         { return s.i }
func (s *fakeStepper) Len() int           { return s.n }
func (s *fakeStepper) Draw(canvas.Canvas) {}
func (s *fakeStepper) Step() bool {
	if s.i >= s.n-1 {
		return false
	}
	s.i++
	return true
}

func TestStepInterval(t *testing.T) {
	assert.Equal(t, 1000*time.Millisecond, anim.StepInterval(1))
	assert.Equal(t, 10*time.Millisecond, anim.StepInterval(100))
	assert.Equal(t, 510*time.Millisecond, anim.StepInterval(50))
	assert.Equal(t, anim.StepInterval(1), anim.StepInterval(-7))
	assert.Equal(t, anim.StepInterval(100), anim.StepInterval(1000))
}

func TestStepDriverManual(t *testing.T) {
	st := &fakeStepper{n: 3}
	d := anim.NewStepDriver("s", anim.NewManual(epoch), st, 50)
	assert.True(t, d.Step())
	assert.True(t, d.Step())
	assert.Equal(t, anim.Completed, d.State())
	assert.False(t, d.Step(), "no step past the last")
	assert.Equal(t, 2, d.Snapshot().StepIndex)
	assert.Equal(t, 1.0, d.Snapshot().Progress)

	d.Reset()
	assert.Equal(t, 0, st.Index())
	assert.Equal(t, anim.Idle, d.State())
}

func TestStepDriverAutoplay(t *testing.T) {
	clk := anim.NewManual(epoch)
	st := &fakeStepper{n: 4}
	d := anim.NewStepDriver("s", clk, st, 91) // 100ms per step
	var seen []int
	d.OnStep = func(i int) { seen = append(seen, i) }

	d.Start()
	clk.Frames(9, frame)
	assert.Equal(t, 0, st.Index())
	clk.Advance(frame)
	assert.Equal(t, 1, st.Index())

	d.Pause()
	clk.Frames(50, frame)
	assert.Equal(t, 1, st.Index())
	assert.Equal(t, 0, clk.Pending())

	d.Start()
	clk.Frames(50, frame)
	assert.Equal(t, anim.Completed, d.State())
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 0, clk.Pending())
}

func TestManualCancelDuringDrain(t *testing.T) {
	clk := anim.NewManual(epoch)
	var ran []int
	var h2 anim.Handle
	clk.Schedule(func(time.Time) { ran = append(ran, 1); clk.Cancel(h2) })
	h2 = clk.Schedule(func(time.Time) { ran = append(ran, 2) })
	clk.Advance(frame)
	assert.Equal(t, []int{1}, ran)
}

func TestFrameLoopRunsPostedAndScheduled(t *testing.T) {
	loop := anim.NewFrameLoop(200)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = loop.Run(ctx)
	}()
	require.NoError(t, loop.Post(ctx, func() {
		loop.Schedule(func(time.Time) { close(done) })
	}))

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("scheduled callback never ran")
	}
}
