package canvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/chazu/rigid/pkg/project"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   string // "clear", "line", "polyline", "circle", "arc", "text"
	Points []project.Point2
	Radius float64
	Text   string
	Stroke color.Color
	Fill   bool
	Dashed bool
	Alpha  float64
}

// Recorder is a Canvas that stores calls instead of drawing them.
type Recorder struct {
	W, H int
	Ops  []Op

	stroke color.Color
	fill   color.Color
	width  float64
	alpha  float64
	dash   []float64
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder returns an empty w×h recorder.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, stroke: Black, fill: Black, width: 1, alpha: 1}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

// Clear drops everything recorded so far.
func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops[:0], Op{Kind: "clear", Stroke: c})
}

func (r *Recorder) SetStroke(c color.Color)   { r.stroke = c }
func (r *Recorder) SetFill(c color.Color)     { r.fill = c }
func (r *Recorder) SetLineWidth(w float64)    { r.width = w }
func (r *Recorder) SetAlpha(a float64)        { r.alpha = a }
func (r *Recorder) SetDash(pattern []float64) { r.dash = pattern }

func (r *Recorder) add(op Op) {
	if op.Stroke == nil {
		op.Stroke = r.stroke
	}
	op.Dashed = len(r.dash) > 0
	op.Alpha = r.alpha
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Line(a, b project.Point2) {
	r.add(Op{Kind: "line", Points: []project.Point2{a, b}})
}

func (r *Recorder) Polyline(ps []project.Point2, closed bool) {
	pts := append([]project.Point2(nil), ps...)
	if closed && len(pts) > 0 {
		pts = append(pts, pts[0])
	}
	r.add(Op{Kind: "polyline", Points: pts})
}

func (r *Recorder) Circle(center project.Point2, radius float64, fill bool) {
	op := Op{Kind: "circle", Points: []project.Point2{center}, Radius: radius, Fill: fill}
	if fill {
		op.Stroke = r.fill
	}
	r.add(op)
}

func (r *Recorder) Arc(center project.Point2, radius, start, end float64) {
	r.add(Op{Kind: "arc", Points: []project.Point2{center}, Radius: radius})
}

func (r *Recorder) Text(at project.Point2, s string) {
	r.add(Op{Kind: "text", Points: []project.Point2{at}, Text: s})
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the recorded text strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// String summarizes the recording, e.g. "clear=1 line=12 text=2".
func (r *Recorder) String() string {
	var b strings.Builder
	for _, k := range []string{"clear", "line", "polyline", "circle", "arc", "text"} {
		if n := r.Count(k); n > 0 {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%d", k, n)
		}
	}
	return b.String()
}
