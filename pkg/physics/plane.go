package physics

import (
	"github.com/chazu/rigid/pkg/geom"
)

// SignedDistance returns n̂·x − d for the plane.
func SignedDistance(p geom.Plane, x geom.Vec3) float64 {
	return p.SignedDistance(x)
}

// Crossed reports whether the segment prev→curr crosses the plane. A
// point lying on the plane is not a crossing.
func Crossed(p geom.Plane, prev, curr geom.Vec3) bool {
	return p.SignedDistance(prev)*p.SignedDistance(curr) < 0
}

// NamedPlane is a plane the detector watches.
type NamedPlane struct {
	Name  string
	Plane geom.Plane
}

// CrossingDetector reports when a tracked point set moves through one of
// its planes. It remembers the last plane it reported and ignores
// further crossings of that plane until another plane is crossed. There
// is no interpolation to the moment of impact: a crossing is seen after
// the fact, on the first tick whose positions straddle the plane.
type CrossingDetector struct {
	Planes []NamedPlane
	Last   string // name of the last reported plane, "" for none
	Count  int    // crossings reported since Reset
}

// Reset forgets the last plane and the count.
func (d *CrossingDetector) Reset() {
	d.Last = ""
	d.Count = 0
}

// Check compares every point's previous and current position. It
// returns the first plane, in Planes order, that any point crossed and
// that differs from Last. prev and curr must be index-aligned.
func (d *CrossingDetector) Check(prev, curr []geom.Vec3) (NamedPlane, bool) {
	n := len(prev)
	if len(curr) < n {
		n = len(curr)
	}
	for _, np := range d.Planes {
		if np.Name == d.Last {
			continue
		}
		for i := 0; i < n; i++ {
			if Crossed(np.Plane, prev[i], curr[i]) {
				d.Last = np.Name
				d.Count++
				return np, true
			}
		}
	}
	return NamedPlane{}, false
}
