package demo

import (
	"image/color"

	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/project"
)

var dashed = []float64{5, 5}

// view projects world points through a camera after shifting them by
// offset, which recentres a scene without moving the camera.
type view struct {
	cam    project.Camera
	offset geom.Vec3
}

func centred(cfg sized, distance, scale float64) view {
	w, h := cfg.size()
	return view{cam: project.NewCamera(distance, scale, w, h)}
}

type sized interface {
	size() (int, int)
}

func (v view) at(p geom.Vec3) (project.Point2, bool) {
	return v.cam.Project(p.Add(v.offset))
}

func (v view) all(ps []geom.Vec3) ([]project.Point2, []bool) {
	out := make([]project.Point2, len(ps))
	ok := make([]bool, len(ps))
	for i, p := range ps {
		out[i], ok[i] = v.at(p)
	}
	return out, ok
}

func (v view) line(c canvas.Canvas, a, b geom.Vec3) {
	pa, oka := v.at(a)
	pb, okb := v.at(b)
	if oka && okb {
		c.Line(pa, pb)
	}
}

func (v view) polyline(c canvas.Canvas, ps []geom.Vec3) {
	pts, ok := v.all(ps)
	canvas.Masked(c, pts, ok)
}

func (v view) dot(c canvas.Canvas, p geom.Vec3, r float64, col color.Color) {
	if q, ok := v.at(p); ok {
		c.SetFill(col)
		c.Circle(q, r, true)
	}
}

// mesh strokes the edges of m and, when dots is set, marks its points.
func (v view) mesh(c canvas.Canvas, m *kernel.Mesh, col color.Color, alpha float64, dots bool) {
	pts, ok := v.all(m.Points)
	c.SetAlpha(alpha)
	c.SetStroke(col)
	c.SetLineWidth(2)
	canvas.Edges(c, pts, ok, m.Edges)
	if dots {
		c.SetFill(col)
		for i, p := range pts {
			if ok[i] {
				c.Circle(p, 4, true)
			}
		}
	}
	c.SetAlpha(1)
}

// axes draws the coordinate axes in red, green and blue.
func (v view) axes(c canvas.Canvas, length float64) {
	c.SetLineWidth(3)
	c.SetDash(nil)
	for i, axis := range []geom.Vec3{geom.XAxis, geom.YAxis, geom.ZAxis} {
		col := []color.Color{canvas.Red, canvas.Green, canvas.Blue}[i]
		c.SetStroke(col)
		v.line(c, geom.Zero, axis.Scale(length))
		if p, ok := v.at(axis.Scale(length + 0.3)); ok {
			c.SetFill(col)
			c.Text(p, []string{"X", "Y", "Z"}[i])
		}
	}
}

// cubeAt returns the unit cube centred on p.
func cubeAt(p geom.Vec3) *kernel.Mesh {
	return kernel.Cube(1, p)
}

type surface struct {
	w, h int
}

func (s surface) size() (int, int) { return s.w, s.h }

// nudge offsets a screen point, for labels.
func nudge(p project.Point2, dx, dy float64) project.Point2 {
	return project.Point2{X: p.X + dx, Y: p.Y + dy}
}
