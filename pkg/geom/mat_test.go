package geom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityApply(t *testing.T) {
	p := V(1.5, -2, 3)
	if got := Identity().Apply(p); got != p {
		t.Fatalf("I·p = %v, want %v", got, p)
	}
}

func TestMulAssociative(t *testing.T) {
	a := Translation(V(1, 2, 3))
	b := Scaling(V(2, -1, 0.5))
	c := Mat4{
		{0, -1, 0, 4},
		{1, 0, 0, -2},
		{0, 0, 1, 1},
		{0, 0, 0, 1},
	}
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	if !left.ApproxEqual(right, 1e-12) {
		t.Fatalf("(AB)C != A(BC):\n%v\n%v", left, right)
	}
}

func TestChainAppliesInOrder(t *testing.T) {
	s := Scaling(V(2, 2, 2))
	tr := Translation(V(1, 0, 0))
	p := V(1, 0, 0)

	// Scale first, then translate: 1*2 + 1 = 3.
	if got := Chain(s, tr).Apply(p); !got.ApproxEqual(V(3, 0, 0), 1e-12) {
		t.Errorf("Chain(scale, translate) = %v, want (3,0,0)", got)
	}
	// Translate first, then scale: (1+1)*2 = 4.
	if got := Chain(tr, s).Apply(p); !got.ApproxEqual(V(4, 0, 0), 1e-12) {
		t.Errorf("Chain(translate, scale) = %v, want (4,0,0)", got)
	}
	if got := s.Then(tr); got != tr.Mul(s) {
		t.Error("Then must left-multiply")
	}
	if Chain() != Identity() {
		t.Error("empty chain must be identity")
	}
}

func TestDeterminant(t *testing.T) {
	m := Scaling(V(3, -2, 0.5)).Then(Translation(V(7, 8, 9)))
	assert.InDelta(t, -3, m.Determinant(), 1e-12)
	assert.InDelta(t, -3, m.Det3(), 1e-12)
	assert.True(t, m.IsAffine())
}

func TestTransposeTwice(t *testing.T) {
	m := Translation(V(1, 2, 3)).Then(Scaling(V(4, 5, 6)))
	if m.Transpose().Transpose() != m {
		t.Fatal("transpose is not an involution")
	}
}

func TestApplyVectorIgnoresTranslation(t *testing.T) {
	m := Translation(V(10, 10, 10))
	if got := m.ApplyVector(V(1, 2, 3)); got != V(1, 2, 3) {
		t.Fatalf("ApplyVector = %v", got)
	}
}

func TestMatrixString(t *testing.T) {
	s := Identity().String()
	lines := strings.Split(s, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	if lines[0] != "[   1.0000   0.0000   0.0000   0.0000 ]" {
		t.Errorf("row 0 = %q", lines[0])
	}
	neg := Scaling(V(-1e-9, 1, 1)).String()
	if strings.Contains(neg, "-0.0000") {
		t.Errorf("negative zero leaked into %q", neg)
	}
}

func TestPlaneFromOffset(t *testing.T) {
	// x - y = 1
	p := PlaneFromOffset(V(1, -1, 0), 1)
	assert.InDelta(t, 0, p.SignedDistance(V(1, 0, 0)), 1e-12)
	assert.InDelta(t, 0, p.SignedDistance(V(3, 2, 5)), 1e-12)
	n, d := p.Unit()
	assert.InDelta(t, 1, n.Len(), 1e-12)
	assert.InDelta(t, 1/1.4142135623730951, d, 1e-12)
}
