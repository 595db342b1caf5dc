// Package term draws canvas frames into terminal cells with tcell. The
// logical canvas is scaled onto the screen's cell grid.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/project"
)

// Canvas is a canvas.Canvas over a tcell.Screen. Row 0 and the bottom
// row stay free for status text drawn with Text.
type Canvas struct {
	s    tcell.Screen
	w, h int // logical size

	style tcell.Style
	fill  tcell.Style
	dash  []float64
	glyph rune
}

var _ canvas.Canvas = (*Canvas)(nil)

// New wraps s with a logical w×h canvas.
func New(s tcell.Screen, w, h int) *Canvas {
	c := &Canvas{s: s, w: w, h: h, glyph: '•'}
	c.SetStroke(canvas.Black)
	c.SetFill(canvas.Black)
	return c
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

// cell maps a logical point to a screen cell.
func (c *Canvas) cell(p project.Point2) (int, int) {
	cols, rows := c.s.Size()
	x := int(math.Floor(p.X * float64(cols) / float64(c.w)))
	y := int(math.Floor(p.Y * float64(rows) / float64(c.h)))
	return x, y
}

func (c *Canvas) set(x, y int, r rune, st tcell.Style) {
	cols, rows := c.s.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.s.SetContent(x, y, r, nil, st)
}

// Clear blanks the screen. The terminal's own background is kept, so
// bg is ignored.
func (c *Canvas) Clear(bg color.Color) {
	c.s.Clear()
}

func toColor(col color.Color) tcell.Color {
	r, g, b, _ := canvas.RGBA(col)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (c *Canvas) SetStroke(col color.Color) {
	c.style = tcell.StyleDefault.Foreground(toColor(col))
}

func (c *Canvas) SetFill(col color.Color) {
	c.fill = tcell.StyleDefault.Foreground(toColor(col))
}

// SetLineWidth picks a heavier glyph for thick lines.
func (c *Canvas) SetLineWidth(w float64) {
	if w >= 2 {
		c.glyph = '█'
	} else {
		c.glyph = '•'
	}
}

// SetAlpha dims faint strokes.
func (c *Canvas) SetAlpha(a float64) {
	c.style = c.style.Dim(a < 0.5)
}

func (c *Canvas) SetDash(pattern []float64) { c.dash = pattern }

// Line rasterizes with Bresenham's algorithm. Dashed lines skip every
// other cell.
func (c *Canvas) Line(a, b project.Point2) {
	x0, y0 := c.cell(a)
	x1, y1 := c.cell(b)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for i := 0; ; i++ {
		if len(c.dash) == 0 || i%2 == 0 {
			c.set(x0, y0, c.glyph, c.style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) Polyline(ps []project.Point2, closed bool) {
	for i := 1; i < len(ps); i++ {
		c.Line(ps[i-1], ps[i])
	}
	if closed && len(ps) > 2 {
		c.Line(ps[len(ps)-1], ps[0])
	}
}

func (c *Canvas) Circle(center project.Point2, r float64, fill bool) {
	if fill {
		x, y := c.cell(center)
		c.set(x, y, '●', c.fill)
		if cx, _ := c.cell(project.Point2{X: center.X + r, Y: center.Y}); cx == x {
			return
		}
	}
	c.Arc(center, r, 0, 2*math.Pi)
}

func (c *Canvas) Arc(center project.Point2, r, start, end float64) {
	const segs = 48
	step := (end - start) / segs
	prev := project.Point2{X: center.X + r*math.Cos(start), Y: center.Y + r*math.Sin(start)}
	for i := 1; i <= segs; i++ {
		a := start + float64(i)*step
		p := project.Point2{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
		c.Line(prev, p)
		prev = p
	}
}

// Text writes s starting at the cell containing at.
func (c *Canvas) Text(at project.Point2, s string) {
	x, y := c.cell(at)
	DrawText(c.s, x, y, c.fill, s)
}

// DrawText writes str into consecutive cells.
func DrawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	i := 0
	for _, r := range str {
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
