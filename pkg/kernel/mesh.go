package kernel

import (
	"math"

	"github.com/chazu/rigid/pkg/geom"
)

// Mesh is a wireframe: a point set plus the index pairs that connect
// them. Scenes transform meshes whole and hand them to a canvas.
type Mesh struct {
	Name   string      `json:"name"`
	Points []geom.Vec3 `json:"points"`
	Edges  [][2]int    `json:"edges"`
}

// VertexCount returns the number of points.
func (m *Mesh) VertexCount() int {
	return len(m.Points)
}

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// IsEmpty returns true if the mesh has no points.
func (m *Mesh) IsEmpty() bool {
	return len(m.Points) == 0
}

// Transformed returns a copy of the mesh with every point mapped by t.
// Edges are shared with the receiver.
func (m *Mesh) Transformed(t geom.Mat4) *Mesh {
	return &Mesh{
		Name:   m.Name,
		Points: t.ApplyAll(m.Points),
		Edges:  m.Edges,
	}
}

// Centroid returns the mean of the mesh points.
func (m *Mesh) Centroid() geom.Vec3 {
	var c geom.Vec3
	if len(m.Points) == 0 {
		return c
	}
	for _, p := range m.Points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(m.Points)))
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// cubeEdges connects the eight corners produced by Cube.
var cubeEdges = [][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Cube returns an axis-aligned cube with the given edge length centred
// on center. Corners 0-3 form the bottom face, 4-7 the top.
func Cube(size float64, center geom.Vec3) *Mesh {
	h := size / 2
	corners := []geom.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	edges := make([][2]int, len(cubeEdges))
	copy(edges, cubeEdges)
	return &Mesh{Name: "cube", Points: corners, Edges: edges}
}

// Cone returns a cone with its apex at the origin opening along +Z: the
// apex is point 0, followed by segments rim points at the given height
// and radius. Every rim point connects to the apex and to its
// neighbour.
func Cone(radius, height float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	pts := make([]geom.Vec3, 0, segments+1)
	pts = append(pts, geom.Vec3{})
	edges := make([][2]int, 0, 2*segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, geom.Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a), Z: height})
		next := 1 + (i+1)%segments
		edges = append(edges, [2]int{0, 1 + i}, [2]int{1 + i, next})
	}
	return &Mesh{Name: "cone", Points: pts, Edges: edges}
}

// Polyline returns count points evenly spaced from a to b, joined in
// order.
func Polyline(a, b geom.Vec3, count int) *Mesh {
	if count < 2 {
		count = 2
	}
	pts := make([]geom.Vec3, count)
	edges := make([][2]int, 0, count-1)
	for i := range pts {
		pts[i] = a.Lerp(b, float64(i)/float64(count-1))
		if i > 0 {
			edges = append(edges, [2]int{i - 1, i})
		}
	}
	return &Mesh{Name: "polyline", Points: pts, Edges: edges}
}

// Circle returns a closed loop of segments points of the given radius in
// the XY plane around the origin.
func Circle(radius float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	pts := make([]geom.Vec3, segments)
	edges := make([][2]int, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = geom.Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
		edges[i] = [2]int{i, (i + 1) % segments}
	}
	return &Mesh{Name: "circle", Points: pts, Edges: edges}
}
