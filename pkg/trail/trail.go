// Package trail records the recent history of a moving point.
package trail

import "github.com/chazu/rigid/pkg/geom"

// DefaultCap is the trail length used by the rolling demos.
const DefaultCap = 500

// Path is a FIFO of points. Once Cap points are held, each Push evicts
// the oldest. A Cap of 0 keeps every point.
type Path struct {
	cap   int
	head  int // total pushes
	tail  int // index of the oldest live push
	slots []geom.Vec3
}

// New returns an empty path holding at most capacity points; 0 means
// unbounded.
func New(capacity int) *Path {
	if capacity < 0 {
		capacity = 0
	}
	p := &Path{cap: capacity}
	if capacity > 0 {
		p.slots = make([]geom.Vec3, capacity)
	}
	return p
}

// Cap returns the capacity, 0 when unbounded.
func (p *Path) Cap() int { return p.cap }

// Len returns the number of points held.
func (p *Path) Len() int { return p.head - p.tail }

// Push appends x, evicting the oldest point when full.
func (p *Path) Push(x geom.Vec3) {
	if p.cap == 0 {
		p.slots = append(p.slots, x)
		p.head++
		return
	}
	if p.head-p.tail >= p.cap {
		p.tail++
	}
	p.slots[p.head%p.cap] = x
	p.head++
}

// At returns the i-th point, oldest first.
func (p *Path) At(i int) geom.Vec3 {
	if p.cap == 0 {
		return p.slots[p.tail+i]
	}
	return p.slots[(p.tail+i)%p.cap]
}

// Last returns the newest point.
func (p *Path) Last() (geom.Vec3, bool) {
	if p.Len() == 0 {
		return geom.Vec3{}, false
	}
	return p.At(p.Len() - 1), true
}

// Points returns a copy of the points, oldest first.
func (p *Path) Points() []geom.Vec3 {
	out := make([]geom.Vec3, p.Len())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

// Clear empties the path, keeping its capacity.
func (p *Path) Clear() {
	p.head, p.tail = 0, 0
	if p.cap == 0 {
		p.slots = p.slots[:0]
	}
}
