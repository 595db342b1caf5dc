// Package physics holds the event predicates the demos react to: a ball
// bouncing elastically inside a box and points crossing planes.
package physics

import "strings"

// Wall is a bit set of box sides.
type Wall uint8

const (
	Left Wall = 1 << iota
	Right
	Top
	Bottom
)

func (w Wall) String() string {
	if w == 0 {
		return "none"
	}
	var parts []string
	for _, s := range []struct {
		w    Wall
		name string
	}{{Left, "left"}, {Right, "right"}, {Top, "top"}, {Bottom, "bottom"}} {
		if w&s.w != 0 {
			parts = append(parts, s.name)
		}
	}
	return strings.Join(parts, "|")
}

// Box is the region [0,W]×[0,H] in screen coordinates, y growing down.
type Box struct {
	W, H float64
}

// Ball is a disc moving under constant gravity. Units are pixels and
// ticks.
type Ball struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Gravity float64 // added to VY every tick
}

// Step integrates one tick with explicit Euler (velocity first, then
// position) and resolves wall contact. A wall is in contact when the
// ball touches or passes it; the position is clamped onto the wall and
// the velocity component pointing into it is negated, so speed is
// unchanged. Step returns the walls hit this tick.
func (b *Ball) Step(box Box) Wall {
	b.VY += b.Gravity
	b.X += b.VX
	b.Y += b.VY

	var hit Wall
	if b.X-b.Radius <= 0 {
		b.X = b.Radius
		if b.VX < 0 {
			b.VX = -b.VX
		}
		hit |= Left
	}
	if b.X+b.Radius >= box.W {
		b.X = box.W - b.Radius
		if b.VX > 0 {
			b.VX = -b.VX
		}
		hit |= Right
	}
	if b.Y-b.Radius <= 0 {
		b.Y = b.Radius
		if b.VY < 0 {
			b.VY = -b.VY
		}
		hit |= Top
	}
	if b.Y+b.Radius >= box.H {
		b.Y = box.H - b.Radius
		if b.VY > 0 {
			b.VY = -b.VY
		}
		hit |= Bottom
	}
	return hit
}

// Energy returns kinetic plus potential energy per unit mass, with
// height measured up from the floor.
func (b *Ball) Energy(box Box) float64 {
	return 0.5*(b.VX*b.VX+b.VY*b.VY) + b.Gravity*(box.H-b.Y)
}
