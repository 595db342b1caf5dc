package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chazu/rigid/pkg/geom"
)

func TestGrid(t *testing.T) {
	got := Grid(geom.Identity())
	want := "[   1.0000   0.0000   0.0000   0.0000 ]\n" +
		"[   0.0000   1.0000   0.0000   0.0000 ]\n" +
		"[   0.0000   0.0000   1.0000   0.0000 ]\n" +
		"[   0.0000   0.0000   0.0000   1.0000 ]\n"
	assert.Equal(t, want, got)
}

func TestLineEnglish(t *testing.T) {
	s := Status{Title: "Snake"}.
		Add("turns", 1.25, "").
		Add("reflections", 3, "").
		Add("last plane", "A", "")
	got := NewPrinter("en").Line(s)
	assert.Equal(t, "Snake | turns: 1.25 | reflections: 3 | last plane: A", got)
}

func TestLinePortuguese(t *testing.T) {
	s := Status{Title: "Snake"}.Add("turns", 1.25, "").Add("reflections", 3, "")
	got := NewPrinter("pt-BR").Line(s)
	assert.Equal(t, "Serpente | voltas: 1,25 | reflexões: 3", got)
}

func TestValueVector(t *testing.T) {
	got := NewPrinter("en").Value(geom.V(1, -2.5, 0))
	assert.Equal(t, "(1.00; -2.50; 0.00)", got)
}

func TestTextIncludesMatrices(t *testing.T) {
	s := Status{Title: "Composite"}.With("final", geom.Translation(geom.V(1, -2, -3)))
	got := NewPrinter("en").Text(s)
	assert.True(t, strings.HasPrefix(got, "Composite\n"))
	assert.Contains(t, got, "final:\n")
	assert.Contains(t, got, "[   1.0000   0.0000   0.0000   1.0000 ]")
	assert.Contains(t, got, "[   0.0000   1.0000   0.0000  -2.0000 ]")
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	assert.Equal(t, "en", NewPrinter("not a tag!").Language().String())
}
