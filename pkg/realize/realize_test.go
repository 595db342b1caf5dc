package realize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/kernel/native"
	"github.com/chazu/rigid/pkg/kernel/sdfx"
	"github.com/chazu/rigid/pkg/plan"
	"github.com/chazu/rigid/pkg/realize"
	"github.com/chazu/rigid/pkg/xform"
)

func newKernel() kernel.Kernel {
	return native.New()
}

func TestNilPlan(t *testing.T) {
	res, err := realize.Realize(nil, newKernel())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEmptyPlanHasInitialFrame(t *testing.T) {
	res, err := realize.Realize(plan.New(), newKernel())
	require.NoError(t, err)
	require.Len(t, res.Frames, 1)
	assert.True(t, res.Final().Matrix.ApproxEqual(geom.Identity(), 0))
}

func TestSequenceExample(t *testing.T) {
	// p=(1,1,1): translate (1,0,0), scale (2,2,2), reflect in y=0 -> (4,-2,2).
	p := plan.New()
	p.AddBody(&plan.Body{Name: "pt", Kind: plan.BodyPolyline, Count: 2, At: geom.V(1, 1, 1), To: geom.V(1, 1, 1)})
	p.AddStep("move", xform.Translate(geom.XAxis), plan.SourceRef{})
	p.AddStep("grow", xform.ScaleBy(geom.V(2, 2, 2)), plan.SourceRef{})
	p.AddStep("mirror", xform.Reflect(geom.Plane{Normal: geom.YAxis}), plan.SourceRef{})

	res, err := realize.Realize(p, newKernel())
	require.NoError(t, err)
	require.Len(t, res.Frames, 4)

	want := []geom.Vec3{{X: 1, Y: 1, Z: 1}, {X: 2, Y: 1, Z: 1}, {X: 4, Y: 2, Z: 2}, {X: 4, Y: -2, Z: 2}}
	for i, f := range res.Frames {
		assert.Equal(t, i, f.Index)
		got := f.Meshes[0].Points[0]
		assert.True(t, got.ApproxEqual(want[i], 1e-12), "frame %d: got %v want %v", i, got, want[i])
	}
	assert.Equal(t, "mirror", res.Final().Step)
	assert.Equal(t, "native", res.Kernel)
}

func TestPlanIsNotMutated(t *testing.T) {
	p := plan.New()
	p.AddBody(&plan.Body{Name: "cube", Kind: plan.BodyCube, Size: 2})
	p.AddStep("r", xform.Rotate(geom.Line{Dir: geom.ZAxis}, math.Pi/2), plan.SourceRef{})

	before, err := p.Bodies[0].Mesh()
	require.NoError(t, err)
	_, err = realize.Realize(p, newKernel())
	require.NoError(t, err)
	after, err := p.Bodies[0].Mesh()
	require.NoError(t, err)
	assert.Equal(t, before.Points, after.Points)
}

func TestBackendsAgree(t *testing.T) {
	p := plan.New()
	p.AddBody(&plan.Body{Name: "cube", Kind: plan.BodyCube, Size: 1, At: geom.V(2, -2, -3)})
	p.AddStep("r", xform.RotateDeg(geom.Line{Point: geom.V(-1, 1, 0), Dir: geom.V(1, -1, 1)}, 30), plan.SourceRef{})
	p.AddStep("h", xform.Screw(geom.Line{Dir: geom.ZAxis}, math.Pi/2, 2), plan.SourceRef{})

	a, err := realize.Realize(p, native.New())
	require.NoError(t, err)
	b, err := realize.Realize(p, sdfx.New())
	require.NoError(t, err)
	for i := range a.Frames {
		assert.True(t, a.Frames[i].Matrix.ApproxEqual(b.Frames[i].Matrix, 1e-9), "frame %d differs", i)
	}
}

func TestBadBody(t *testing.T) {
	p := plan.New()
	p.AddBody(&plan.Body{Name: "x", Kind: plan.BodyKind(99)})
	_, err := realize.Realize(p, newKernel())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "realize: body")
}

func TestNilKernel(t *testing.T) {
	_, err := realize.Realize(plan.New(), nil)
	require.Error(t, err)
}
