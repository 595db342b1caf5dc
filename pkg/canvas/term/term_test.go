package term_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/canvas/term"
	"github.com/chazu/rigid/pkg/project"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestHorizontalLine(t *testing.T) {
	s := newScreen(t, 80, 24)
	c := term.New(s, 800, 240) // 10×10 logical units per cell
	c.Clear(canvas.White)
	c.Line(project.Point2{X: 0, Y: 100}, project.Point2{X: 199, Y: 100})
	for x := 0; x < 20; x++ {
		assert.Equal(t, '•', runeAt(s, x, 10), "cell %d", x)
	}
	assert.NotEqual(t, '•', runeAt(s, 20, 10))
	assert.NotEqual(t, '•', runeAt(s, 5, 9))
}

func TestDashedLineSkipsCells(t *testing.T) {
	s := newScreen(t, 80, 24)
	c := term.New(s, 80, 24)
	c.SetDash([]float64{2, 2})
	c.Line(project.Point2{X: 0, Y: 0}, project.Point2{X: 9, Y: 0})
	assert.Equal(t, '•', runeAt(s, 0, 0))
	assert.NotEqual(t, '•', runeAt(s, 1, 0))
	assert.Equal(t, '•', runeAt(s, 2, 0))
}

func TestOffscreenIgnored(t *testing.T) {
	s := newScreen(t, 10, 5)
	c := term.New(s, 10, 5)
	assert.NotPanics(t, func() {
		c.Line(project.Point2{X: -50, Y: -50}, project.Point2{X: 50, Y: 50})
		c.Circle(project.Point2{X: 100, Y: 100}, 3, true)
	})
}

func TestText(t *testing.T) {
	s := newScreen(t, 40, 10)
	c := term.New(s, 40, 10)
	c.Text(project.Point2{X: 2, Y: 3}, "step 3")
	assert.Equal(t, 's', runeAt(s, 2, 3))
	assert.Equal(t, '3', runeAt(s, 7, 3))
}

func TestCircleMarksRing(t *testing.T) {
	s := newScreen(t, 40, 40)
	c := term.New(s, 40, 40)
	c.Circle(project.Point2{X: 20, Y: 20}, 10, false)
	assert.Equal(t, '•', runeAt(s, 30, 20))
	assert.NotEqual(t, '•', runeAt(s, 20, 20))
	marked := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if runeAt(s, x, y) == '•' {
				marked++
			}
		}
	}
	assert.Greater(t, marked, 40, "ring covers its circumference")
}
