// Package raster draws onto an in-memory RGBA image with draw2d and
// encodes frames as PNG.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/project"
)

// Canvas is a canvas.Canvas backed by an image.RGBA.
type Canvas struct {
	img *image.RGBA
	gc  *draw2dimg.GraphicContext

	stroke color.Color
	fill   color.Color
	alpha  float64
}

var _ canvas.Canvas = (*Canvas)(nil)

// New returns a white w×h canvas.
func New(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := &Canvas{img: img, gc: draw2dimg.NewGraphicContext(img), alpha: 1}
	c.SetStroke(canvas.Black)
	c.SetFill(canvas.Black)
	c.SetLineWidth(1)
	c.Clear(canvas.White)
	return c
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear(bg color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (c *Canvas) SetStroke(col color.Color) {
	c.stroke = col
	c.gc.SetStrokeColor(c.faded(col))
}

func (c *Canvas) SetFill(col color.Color) {
	c.fill = col
	c.gc.SetFillColor(c.faded(col))
}

func (c *Canvas) SetLineWidth(w float64) { c.gc.SetLineWidth(w) }

// SetAlpha scales the alpha of subsequent strokes and fills.
func (c *Canvas) SetAlpha(a float64) {
	c.alpha = math.Max(0, math.Min(1, a))
	c.gc.SetStrokeColor(c.faded(c.stroke))
	c.gc.SetFillColor(c.faded(c.fill))
}

func (c *Canvas) SetDash(pattern []float64) {
	c.gc.SetLineDash(pattern, 0)
}

func (c *Canvas) faded(col color.Color) color.Color {
	r, g, b, a := canvas.RGBA(col)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(float64(a) * c.alpha))}
}

func (c *Canvas) Line(a, b project.Point2) {
	c.gc.BeginPath()
	c.gc.MoveTo(a.X, a.Y)
	c.gc.LineTo(b.X, b.Y)
	c.gc.Stroke()
}

func (c *Canvas) Polyline(ps []project.Point2, closed bool) {
	if len(ps) < 2 {
		return
	}
	c.gc.BeginPath()
	c.gc.MoveTo(ps[0].X, ps[0].Y)
	for _, p := range ps[1:] {
		c.gc.LineTo(p.X, p.Y)
	}
	if closed {
		c.gc.Close()
	}
	c.gc.Stroke()
}

func (c *Canvas) Circle(center project.Point2, r float64, fill bool) {
	c.gc.BeginPath()
	draw2dkit.Circle(c.gc, center.X, center.Y, r)
	if fill {
		c.gc.Fill()
	} else {
		c.gc.Stroke()
	}
}

func (c *Canvas) Arc(center project.Point2, r, start, end float64) {
	c.gc.BeginPath()
	c.gc.MoveTo(center.X+r*math.Cos(start), center.Y+r*math.Sin(start))
	c.gc.ArcTo(center.X, center.Y, r, r, start, end-start)
	c.gc.Stroke()
}

// Text draws s with its baseline at at using a fixed 7×13 bitmap font.
func (c *Canvas) Text(at project.Point2, s string) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.faded(c.fill)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(s)
}

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Thumbnail returns a copy scaled to width w, keeping the aspect ratio.
func (c *Canvas) Thumbnail(w int) *image.RGBA {
	b := c.img.Bounds()
	if w <= 0 || b.Dx() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	h := int(math.Round(float64(b.Dy()) * float64(w) / float64(b.Dx())))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), c.img, b, draw.Over, nil)
	return dst
}
