package geom

// Line is an infinite line through Point along Dir. Dir need not be
// normalized; consumers normalize it.
type Line struct {
	Point Vec3
	Dir   Vec3
}

// LineThrough returns the line through a and b.
func LineThrough(a, b Vec3) Line {
	return Line{Point: a, Dir: b.Sub(a)}
}

// At returns the point Point + t·Dir.
func (l Line) At(t float64) Vec3 {
	return l.Point.Add(l.Dir.Scale(t))
}

// Plane is the set of points X with Normal·(X − Point) = 0.
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// PlaneFromOffset returns the plane n·X = d. The normal need not be unit
// length: the plane point is chosen so that the equation holds for the
// given n and d as written.
func PlaneFromOffset(n Vec3, d float64) Plane {
	l2 := n.Dot(n)
	if l2 == 0 {
		return Plane{Normal: n}
	}
	return Plane{Point: n.Scale(d / l2), Normal: n}
}

// Unit returns the plane's unit normal and its offset d along it, so
// that the plane is n̂·X = d.
func (p Plane) Unit() (n Vec3, d float64) {
	n = p.Normal.Normalize()
	return n, n.Dot(p.Point)
}

// SignedDistance returns n̂·X − d: positive on the side the normal
// points to, zero on the plane.
func (p Plane) SignedDistance(x Vec3) float64 {
	n, d := p.Unit()
	return n.Dot(x) - d
}
