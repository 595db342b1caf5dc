// Package pdf renders canvas frames as pages of a PDF document, one page
// per frame, in point units matching the canvas size.
package pdf

import (
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/project"
)

// Flipbook is a canvas.Canvas whose Clear starts a new page.
type Flipbook struct {
	pdf  *gofpdf.Fpdf
	w, h int

	stroke color.Color
	fill   color.Color
	dash   []float64
	alpha  float64
}

var _ canvas.Canvas = (*Flipbook)(nil)

// New returns an empty flipbook with w×h point pages.
func New(w, h int, title string) *Flipbook {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("helvetica", "", 9)
	pdf.SetProducer("rigid", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	f := &Flipbook{pdf: pdf, w: w, h: h, alpha: 1}
	f.SetStroke(canvas.Black)
	f.SetFill(canvas.Black)
	return f
}

// Pages returns the number of pages so far.
func (f *Flipbook) Pages() int { return f.pdf.PageCount() }

func (f *Flipbook) Size() (int, int) { return f.w, f.h }

// Clear begins a new page filled with bg.
func (f *Flipbook) Clear(bg color.Color) {
	f.pdf.AddPage()
	r, g, b, _ := canvas.RGBA(bg)
	f.pdf.SetFillColor(int(r), int(g), int(b))
	f.pdf.Rect(0, 0, float64(f.w), float64(f.h), "F")
	f.SetFill(f.fill)
	f.SetDash(f.dash)
	f.SetAlpha(f.alpha)
}

func (f *Flipbook) SetStroke(c color.Color) {
	f.stroke = c
	r, g, b, _ := canvas.RGBA(c)
	f.pdf.SetDrawColor(int(r), int(g), int(b))
}

func (f *Flipbook) SetFill(c color.Color) {
	f.fill = c
	r, g, b, _ := canvas.RGBA(c)
	f.pdf.SetFillColor(int(r), int(g), int(b))
	f.pdf.SetTextColor(int(r), int(g), int(b))
}

func (f *Flipbook) SetLineWidth(w float64) { f.pdf.SetLineWidth(w) }

func (f *Flipbook) SetAlpha(a float64) {
	f.alpha = math.Max(0, math.Min(1, a))
	if f.pdf.PageCount() > 0 {
		f.pdf.SetAlpha(f.alpha, "Normal")
	}
}

func (f *Flipbook) SetDash(pattern []float64) {
	f.dash = pattern
	if f.pdf.PageCount() > 0 {
		f.pdf.SetDashPattern(pattern, 0)
	}
}

func (f *Flipbook) ensurePage() {
	if f.pdf.PageCount() == 0 {
		f.Clear(canvas.White)
	}
}

func (f *Flipbook) Line(a, b project.Point2) {
	f.ensurePage()
	f.pdf.Line(a.X, a.Y, b.X, b.Y)
}

func (f *Flipbook) Polyline(ps []project.Point2, closed bool) {
	if len(ps) < 2 {
		return
	}
	f.ensurePage()
	f.pdf.MoveTo(ps[0].X, ps[0].Y)
	for _, p := range ps[1:] {
		f.pdf.LineTo(p.X, p.Y)
	}
	if closed {
		f.pdf.ClosePath()
	}
	f.pdf.DrawPath("D")
}

func (f *Flipbook) Circle(center project.Point2, r float64, fill bool) {
	f.ensurePage()
	style := "D"
	if fill {
		style = "F"
	}
	f.pdf.Circle(center.X, center.Y, r, style)
}

// Arc converts from screen radians (clockwise, y down) to gofpdf's
// counter-clockwise degrees.
func (f *Flipbook) Arc(center project.Point2, r, start, end float64) {
	f.ensurePage()
	deg := 180 / math.Pi
	f.pdf.Arc(center.X, center.Y, r, r, 0, -end*deg, -start*deg, "D")
}

func (f *Flipbook) Text(at project.Point2, s string) {
	f.ensurePage()
	f.pdf.Text(at.X, at.Y, s)
}

// Write finalizes the document into w.
func (f *Flipbook) Write(w io.Writer) error {
	if err := f.pdf.Output(w); err != nil {
		return errors.Wrap(err, "write flipbook")
	}
	return nil
}
