package kernel

import (
	"testing"

	"github.com/chazu/rigid/pkg/geom"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
		want int
	}{
		{"empty", &Mesh{}, 0},
		{"cube", Cube(1, geom.Zero), 8},
		{"cone", Cone(0.3, 0.5, 20), 21},
		{"polyline", Polyline(geom.V(0, 1, 0), geom.V(0, 4, 0), 30), 30},
		{"circle", Circle(1, 16), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshEdgeCount(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
		want int
	}{
		{"empty", &Mesh{}, 0},
		{"cube", Cube(2, geom.Zero), 12},
		{"cone", Cone(1, 1, 8), 16},
		{"polyline", Polyline(geom.Zero, geom.XAxis, 5), 4},
		{"circle", Circle(1, 16), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.EdgeCount(); got != tt.want {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Points: []geom.Vec3{{X: 1, Y: 2, Z: 3}}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestCubeCentered(t *testing.T) {
	c := Cube(1, geom.V(2, -2, -3))
	if got := c.Centroid(); !got.ApproxEqual(geom.V(2, -2, -3), 1e-12) {
		t.Errorf("Centroid() = %v, want (2,-2,-3)", got)
	}
	for _, e := range c.Edges {
		if d := c.Points[e[0]].Dist(c.Points[e[1]]); d < 0.999 || d > 1.001 {
			t.Errorf("edge %v has length %v, want 1", e, d)
		}
	}
}

func TestPolylineEndpoints(t *testing.T) {
	p := Polyline(geom.V(0, 1, 0), geom.V(0, 4, 0), 30)
	if p.Points[0] != geom.V(0, 1, 0) || p.Points[29] != geom.V(0, 4, 0) {
		t.Errorf("endpoints = %v, %v", p.Points[0], p.Points[29])
	}
}

func TestTransformedLeavesOriginal(t *testing.T) {
	c := Cube(1, geom.Zero)
	moved := c.Transformed(geom.Translation(geom.V(5, 0, 0)))
	if c.Points[0] != geom.V(-0.5, -0.5, -0.5) {
		t.Fatalf("original mutated: %v", c.Points[0])
	}
	if moved.Points[0] != geom.V(4.5, -0.5, -0.5) {
		t.Errorf("moved corner = %v", moved.Points[0])
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. Every operator is the identity.
type stubKernel struct{}

func (k *stubKernel) Name() string                                { return "stub" }
func (k *stubKernel) Translate(geom.Vec3) geom.Mat4               { return geom.Identity() }
func (k *stubKernel) Scale(geom.Vec3) geom.Mat4                   { return geom.Identity() }
func (k *stubKernel) Rotate(geom.Line, float64) geom.Mat4         { return geom.Identity() }
func (k *stubKernel) Reflect(geom.Plane) geom.Mat4                { return geom.Identity() }
func (k *stubKernel) Screw(geom.Line, float64, float64) geom.Mat4 { return geom.Identity() }

var _ Kernel = (*stubKernel)(nil)

func TestAdvanceFullTurn(t *testing.T) {
	if got := Advance(2*3.141592653589793, 4); got < 3.9999999 || got > 4.0000001 {
		t.Errorf("Advance(2π, 4) = %v, want 4", got)
	}
}
