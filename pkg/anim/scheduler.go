// Package anim drives scenes through time. A Driver owns one scene and
// its AnimationState and asks a Scheduler for at most one callback at a
// time. Everything a driver touches runs on the scheduler's goroutine.
package anim

import (
	"context"
	"sort"
	"time"
)

// Handle identifies a scheduled callback.
type Handle uint64

// Scheduler runs callbacks on the next frame. Implementations call every
// callback on a single goroutine.
type Scheduler interface {
	Now() time.Time
	// Schedule arranges for fn to run once on the next frame.
	Schedule(fn func(now time.Time)) Handle
	// Cancel drops a pending callback. Unknown handles are ignored.
	Cancel(h Handle)
}

// queue is the pending-callback table shared by both schedulers.
type queue struct {
	next    Handle
	pending map[Handle]func(time.Time)
}

func (q *queue) add(fn func(time.Time)) Handle {
	if q.pending == nil {
		q.pending = make(map[Handle]func(time.Time))
	}
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *queue) remove(h Handle) {
	delete(q.pending, h)
}

// drain runs everything pending at call time in scheduling order.
// Callbacks scheduled while draining wait for the next frame.
func (q *queue) drain(now time.Time) {
	if len(q.pending) == 0 {
		return
	}
	hs := make([]Handle, 0, len(q.pending))
	for h := range q.pending {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
	for _, h := range hs {
		fn, ok := q.pending[h]
		if !ok {
			continue // cancelled by an earlier callback
		}
		delete(q.pending, h)
		fn(now)
	}
}

// ---------------------------------------------------------------------------
// Manual
// ---------------------------------------------------------------------------

// Manual is a virtual-clock scheduler. Time moves only when Advance is
// called, which makes it suitable for tests and offline rendering.
type Manual struct {
	now time.Time
	q   queue
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) Schedule(fn func(time.Time)) Handle { return m.q.add(fn) }

func (m *Manual) Cancel(h Handle) { m.q.remove(h) }

// Pending returns the number of callbacks waiting for the next frame.
func (m *Manual) Pending() int { return len(m.q.pending) }

// Advance moves the clock forward by d and runs one frame.
func (m *Manual) Advance(d time.Duration) {
	m.now = m.now.Add(d)
	m.q.drain(m.now)
}

// Frames runs n frames of length d.
func (m *Manual) Frames(n int, d time.Duration) {
	for i := 0; i < n; i++ {
		m.Advance(d)
	}
}

// ---------------------------------------------------------------------------
// FrameLoop
// ---------------------------------------------------------------------------

// FrameLoop is a real-time scheduler driven by a ticker. Schedule and
// Cancel may only be called from callbacks or from functions passed to
// Post; other goroutines hand work to the loop through Post.
type FrameLoop struct {
	interval time.Duration
	cmds     chan func()
	q        queue
}

var _ Scheduler = (*FrameLoop)(nil)

// NewFrameLoop returns a loop ticking fps times a second.
func NewFrameLoop(fps int) *FrameLoop {
	if fps <= 0 {
		fps = 60
	}
	return &FrameLoop{
		interval: time.Second / time.Duration(fps),
		cmds:     make(chan func(), 16),
	}
}

func (l *FrameLoop) Now() time.Time { return time.Now() }

func (l *FrameLoop) Schedule(fn func(time.Time)) Handle { return l.q.add(fn) }

func (l *FrameLoop) Cancel(h Handle) { l.q.remove(h) }

// Interval returns the frame period.
func (l *FrameLoop) Interval() time.Duration { return l.interval }

// Post queues fn to run on the loop goroutine. It blocks when the
// command buffer is full and gives up when ctx is done.
func (l *FrameLoop) Post(ctx context.Context, fn func()) error {
	select {
	case l.cmds <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes frames and posted commands until ctx is cancelled.
func (l *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.cmds:
			fn()
		case now := <-ticker.C:
			l.q.drain(now)
		}
	}
}
