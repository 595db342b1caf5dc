// Package canvas defines the drawing surface the demos render onto.
// Backends live in subpackages: raster (PNG), pdf (flipbook pages) and
// term (terminal cells).
package canvas

import (
	"fmt"
	"image/color"

	"github.com/chazu/rigid/pkg/project"
)

// Canvas is a fixed-size 2D surface in pixel-like units with y growing
// downward. Style setters affect subsequent drawing calls.
type Canvas interface {
	Size() (w, h int)
	Clear(c color.Color)

	SetStroke(c color.Color)
	SetFill(c color.Color)
	SetLineWidth(w float64)
	SetAlpha(a float64)
	// SetDash sets a dash pattern; nil or empty means solid.
	SetDash(pattern []float64)

	Line(a, b project.Point2)
	Polyline(ps []project.Point2, closed bool)
	Circle(center project.Point2, r float64, fill bool)
	// Arc strokes the arc from start to end radians, measured clockwise
	// on screen from +x.
	Arc(center project.Point2, r, start, end float64)
	// Text draws s with its baseline at at, in the fill colour.
	Text(at project.Point2, s string)
}

// Common colors.
var (
	Black     = color.RGBA{0, 0, 0, 255}
	White     = color.RGBA{255, 255, 255, 255}
	Red       = color.RGBA{220, 40, 40, 255}
	Green     = color.RGBA{40, 160, 60, 255}
	Blue      = color.RGBA{40, 80, 220, 255}
	Gray      = color.RGBA{150, 150, 150, 255}
	Orange    = color.RGBA{240, 140, 20, 255}
	Purple    = color.RGBA{140, 60, 200, 255}
	LightGray = color.RGBA{225, 225, 225, 255}
	Night     = color.RGBA{26, 26, 46, 255}
)

// Masked draws the polyline through the valid points of ps, breaking it
// wherever ok is false.
func Masked(c Canvas, ps []project.Point2, ok []bool) {
	var run []project.Point2
	flush := func() {
		if len(run) > 1 {
			c.Polyline(run, false)
		}
		run = run[:0]
	}
	for i, p := range ps {
		if !ok[i] {
			flush()
			continue
		}
		run = append(run, p)
	}
	flush()
}

// Edges strokes every edge whose two endpoints projected.
func Edges(c Canvas, ps []project.Point2, ok []bool, edges [][2]int) {
	for _, e := range edges {
		if ok[e[0]] && ok[e[1]] {
			c.Line(ps[e[0]], ps[e[1]])
		}
	}
}

// RGBA converts c to 8-bit components.
func RGBA(c color.Color) (r, g, b, a uint8) {
	if c == nil {
		return 0, 0, 0, 0
	}
	nc := color.RGBAModel.Convert(c).(color.RGBA)
	return nc.R, nc.G, nc.B, nc.A
}

// Hex renders c as #rrggbb.
func Hex(c color.Color) string {
	r, g, b, _ := RGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
