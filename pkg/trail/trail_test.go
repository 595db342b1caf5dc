package trail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/trail"
)

func pt(i int) geom.Vec3 { return geom.V(float64(i), 0, 0) }

func TestCappedEviction(t *testing.T) {
	p := trail.New(trail.DefaultCap)
	for i := 0; i < 600; i++ {
		p.Push(pt(i))
	}
	require.Equal(t, 500, p.Len())
	pts := p.Points()
	assert.Equal(t, pt(100), pts[0], "oldest surviving point")
	assert.Equal(t, pt(599), pts[499])
	for i := 1; i < len(pts); i++ {
		require.Equal(t, pts[i-1].X+1, pts[i].X, "order at %d", i)
	}
	last, ok := p.Last()
	assert.True(t, ok)
	assert.Equal(t, pt(599), last)
}

func TestBelowCap(t *testing.T) {
	p := trail.New(5)
	p.Push(pt(1))
	p.Push(pt(2))
	assert.Equal(t, []geom.Vec3{pt(1), pt(2)}, p.Points())
}

func TestUnbounded(t *testing.T) {
	p := trail.New(0)
	for i := 0; i < 1000; i++ {
		p.Push(pt(i))
	}
	assert.Equal(t, 1000, p.Len())
	assert.Equal(t, pt(0), p.At(0))
	assert.Equal(t, 0, p.Cap())
}

func TestClear(t *testing.T) {
	for _, c := range []int{0, 3} {
		p := trail.New(c)
		for i := 0; i < 7; i++ {
			p.Push(pt(i))
		}
		p.Clear()
		assert.Equal(t, 0, p.Len())
		_, ok := p.Last()
		assert.False(t, ok)
		p.Push(pt(9))
		assert.Equal(t, []geom.Vec3{pt(9)}, p.Points())
	}
}
