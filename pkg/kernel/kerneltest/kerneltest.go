// Package kerneltest provides a conformance suite that every
// kernel.Kernel backend runs from its own tests.
package kerneltest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
)

// Tolerance is the absolute error allowed by the suite.
const Tolerance = 1e-9

var samplePoints = []geom.Vec3{
	{X: 1, Y: 0, Z: 0},
	{X: 0.5, Y: -2, Z: 3},
	{X: -4, Y: 1, Z: 0.25},
	{X: 2, Y: -2, Z: -3},
}

var sampleAxes = []geom.Line{
	{Point: geom.Vec3{}, Dir: geom.Vec3{Z: 1}},
	{Point: geom.Vec3{X: 2, Y: 1}, Dir: geom.Vec3{Z: 1}},
	{Point: geom.Vec3{X: -1, Y: 1}, Dir: geom.Vec3{X: 1, Y: -1, Z: 1}},
	{Point: geom.Vec3{Y: 1}, Dir: geom.Vec3{X: -1, Y: -1, Z: 1}},
	{Point: geom.Vec3{X: 1, Y: 2}, Dir: geom.Vec3{X: 1, Y: -1}},
}

var samplePlanes = []geom.Plane{
	{Point: geom.Vec3{}, Normal: geom.Vec3{Y: 1}},
	{Point: geom.Vec3{Y: 1}, Normal: geom.Vec3{X: 2, Y: 4, Z: 6}},
	geom.PlaneFromOffset(geom.Vec3{X: 1, Y: -1}, 1),
	geom.PlaneFromOffset(geom.Vec3{X: -2, Y: 1, Z: -1}, 1),
}

var sampleAngles = []float64{0, math.Pi / 6, math.Pi / 2, math.Pi, 4.1, -2 * math.Pi / 3}

// transpose3 and mul3 work on the linear part only.
func transpose3(a [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[j][i]
		}
	}
	return r
}

func mul3(a, b [3][3]float64) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return r
}

// Run executes the full conformance suite against k.
func Run(t *testing.T, k kernel.Kernel) {
	t.Run("RotationOrthogonal", func(t *testing.T) { testRotationOrthogonal(t, k) })
	t.Run("RotationPivotFixed", func(t *testing.T) { testPivotFixed(t, k) })
	t.Run("RotationHalfTurn", func(t *testing.T) { testHalfTurn(t, k) })
	t.Run("ReflectionInvolution", func(t *testing.T) { testReflectionInvolution(t, k) })
	t.Run("ReflectionFixesPlane", func(t *testing.T) { testReflectionFixesPlane(t, k) })
	t.Run("ReflectionExample", func(t *testing.T) { testReflectionExample(t, k) })
	t.Run("ScrewFullTurn", func(t *testing.T) { testScrewFullTurn(t, k) })
	t.Run("ScrewSumsTranslations", func(t *testing.T) { testScrewSums(t, k) })
	t.Run("Affine", func(t *testing.T) { testAffine(t, k) })
	t.Run("ZeroDirection", func(t *testing.T) { testZeroDirection(t, k) })
	t.Run("TranslateScale", func(t *testing.T) { testTranslateScale(t, k) })
}

func testRotationOrthogonal(t *testing.T, k kernel.Kernel) {
	for _, axis := range sampleAxes {
		for _, a := range sampleAngles {
			m := k.Rotate(axis, a)
			l := m.Linear()
			rtr := mul3(transpose3(l), l)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					want := 0.0
					if i == j {
						want = 1
					}
					assert.InDelta(t, want, rtr[i][j], Tolerance, "RᵀR[%d][%d] axis=%v θ=%v", i, j, axis.Dir, a)
				}
			}
			assert.InDelta(t, 1, m.Det3(), Tolerance, "det(R) axis=%v θ=%v", axis.Dir, a)
		}
	}
}

func testPivotFixed(t *testing.T, k kernel.Kernel) {
	for _, axis := range sampleAxes {
		for _, a := range sampleAngles {
			got := k.Rotate(axis, a).Apply(axis.Point)
			assert.True(t, got.ApproxEqual(axis.Point, Tolerance), "pivot %v moved to %v", axis.Point, got)
			// Every point on the axis is fixed too.
			on := axis.At(2.5)
			assert.True(t, k.Rotate(axis, a).Apply(on).ApproxEqual(on, Tolerance), "axis point %v moved", on)
		}
	}
}

func testHalfTurn(t *testing.T, k kernel.Kernel) {
	axis := geom.Line{Dir: geom.ZAxis}
	got := k.Rotate(axis, math.Pi).Apply(geom.V(1, 0, 0))
	require.True(t, got.ApproxEqual(geom.V(-1, 0, 0), Tolerance), "R(z, π)·(1,0,0) = %v", got)

	quarter := k.Rotate(axis, math.Pi/2).Apply(geom.V(1, 0, 0))
	require.True(t, quarter.ApproxEqual(geom.V(0, 1, 0), Tolerance), "rotation is not right-handed: %v", quarter)
}

func testReflectionInvolution(t *testing.T, k kernel.Kernel) {
	for _, pl := range samplePlanes {
		m := k.Reflect(pl)
		for _, p := range samplePoints {
			twice := m.Apply(m.Apply(p))
			assert.True(t, twice.ApproxEqual(p, Tolerance), "Ref(Ref(%v)) = %v", p, twice)
		}
		assert.InDelta(t, -1, m.Det3(), Tolerance)
	}
}

func testReflectionFixesPlane(t *testing.T, k kernel.Kernel) {
	for _, pl := range samplePlanes {
		m := k.Reflect(pl)
		n := pl.Normal.Normalize()
		// Build two in-plane directions.
		u := n.Cross(geom.XAxis)
		if u.Len() < 1e-6 {
			u = n.Cross(geom.YAxis)
		}
		v := n.Cross(u)
		for _, s := range []float64{-2, 0, 1.5} {
			on := pl.Point.Add(u.Scale(s)).Add(v.Scale(1 - s))
			got := m.Apply(on)
			assert.True(t, got.ApproxEqual(on, Tolerance), "plane point %v moved to %v", on, got)
		}
	}
}

func testReflectionExample(t *testing.T, k kernel.Kernel) {
	m := k.Reflect(geom.Plane{Normal: geom.V(0, 1, 0)})
	got := m.Apply(geom.V(1, 1, 0))
	require.True(t, got.ApproxEqual(geom.V(1, -1, 0), Tolerance), "got %v", got)
}

func testScrewFullTurn(t *testing.T, k kernel.Kernel) {
	for _, axis := range sampleAxes {
		d := axis.Dir.Normalize()
		for _, pitch := range []float64{2, 4, -1.5} {
			for _, a := range []float64{0, 0.7, 2} {
				m0 := k.Screw(axis, a, pitch)
				m1 := k.Screw(axis, a+2*math.Pi, pitch)
				for _, p := range samplePoints {
					diff := m1.Apply(p).Sub(m0.Apply(p))
					assert.True(t, diff.ApproxEqual(d.Scale(pitch), 1e-8),
						"full turn moved %v by %v, want %v", p, diff, d.Scale(pitch))
				}
			}
		}
	}
}

func testScrewSums(t *testing.T, k kernel.Kernel) {
	axis := geom.Line{Point: geom.V(0, 1, 0), Dir: geom.V(-1, -1, 1)}
	a, pitch := 1.3, 4.0
	want := k.Translate(axis.Dir.Normalize().Scale(kernel.Advance(a, pitch))).Mul(k.Rotate(axis, a))
	got := k.Screw(axis, a, pitch)
	assert.True(t, got.ApproxEqual(want, Tolerance), "screw\n%v\nwant\n%v", got, want)
}

func testAffine(t *testing.T, k kernel.Kernel) {
	ms := []geom.Mat4{
		k.Translate(geom.V(1, -2, -3)),
		k.Scale(geom.V(3, -2, 0.5)),
		k.Rotate(sampleAxes[2], 0.5),
		k.Reflect(samplePlanes[1]),
		k.Screw(sampleAxes[3], 2, 4),
	}
	for i, m := range ms {
		assert.True(t, m.IsAffine(), "operator %d is not affine:\n%v", i, m)
	}
}

func testZeroDirection(t *testing.T, k kernel.Kernel) {
	id := geom.Identity()
	assert.True(t, k.Rotate(geom.Line{Point: geom.V(1, 2, 3)}, 1).ApproxEqual(id, 0))
	assert.True(t, k.Reflect(geom.Plane{Point: geom.V(1, 2, 3)}).ApproxEqual(id, 0))
	assert.True(t, k.Screw(geom.Line{}, 1, 2).ApproxEqual(id, 0))
}

func testTranslateScale(t *testing.T, k kernel.Kernel) {
	p := geom.V(1, 1, 1)
	assert.True(t, k.Translate(geom.V(1, -2, -3)).Apply(p).ApproxEqual(geom.V(2, -1, -2), Tolerance))
	assert.True(t, k.Scale(geom.V(3, -2, 0.5)).Apply(p).ApproxEqual(geom.V(3, -2, 0.5), Tolerance))
}

// Agree checks that two kernels build the same matrices for every
// sample operator.
func Agree(t *testing.T, a, b kernel.Kernel) {
	for _, axis := range sampleAxes {
		for _, ang := range sampleAngles {
			assert.True(t, a.Rotate(axis, ang).ApproxEqual(b.Rotate(axis, ang), Tolerance),
				"%s and %s disagree on rotation about %v by %v", a.Name(), b.Name(), axis.Dir, ang)
			assert.True(t, a.Screw(axis, ang, 2).ApproxEqual(b.Screw(axis, ang, 2), Tolerance),
				"%s and %s disagree on screw about %v by %v", a.Name(), b.Name(), axis.Dir, ang)
		}
	}
	for _, pl := range samplePlanes {
		assert.True(t, a.Reflect(pl).ApproxEqual(b.Reflect(pl), Tolerance),
			"%s and %s disagree on reflection in %v", a.Name(), b.Name(), pl.Normal)
	}
}
