package demo

import (
	"image/color"
	"math"
	"time"

	"github.com/chazu/rigid/pkg/anim"
	"github.com/chazu/rigid/pkg/canvas"
	"github.com/chazu/rigid/pkg/config"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/project"
	"github.com/chazu/rigid/pkg/report"
	"github.com/chazu/rigid/pkg/scene3d"
	"github.com/chazu/rigid/pkg/trail"
)

const (
	ringDuration = 8 * time.Second
	ringOuter    = 100.0
	ringInner    = 25.0
	ringTilt     = math.Pi / 3
	ringFOV      = 50 * math.Pi / 180
)

// Node names of the rolling-ring scene graph.
const (
	NodeRing   = "ring"
	NodeSquare = "square"
	NodeRoller = "roller"
	NodeMarker = "marker"
)

var (
	xAxis = geom.Line{Dir: geom.XAxis}
	yAxis = geom.Line{Dir: geom.YAxis}
)

// RollingRing rolls a circle of radius r around the rim of a ring of
// radius R tilted by i about x. The scene is described as node poses so
// an external 3D scene graph can show it; Draw renders the same poses
// from an orbiting camera.
type RollingRing struct {
	k      kernel.Kernel
	cam    project.Camera
	meshes map[string]*kernel.Mesh
	graph  *scene3d.Memory
	path   *trail.Path

	phi     float64
	elapsed time.Duration
	centre  geom.Vec3
	marker  geom.Vec3
	tilt    geom.Mat4
	rot     geom.Mat4
}

func newRollingRing(cfg config.Config, k kernel.Kernel) (*Demo, error) {
	h := float64(cfg.Height)
	s := &RollingRing{
		k: k,
		cam: project.Camera{
			Distance: (h / 2) / math.Tan(ringFOV/2),
			Scale:    1,
			CenterX:  float64(cfg.Width) / 2,
			CenterY:  h / 2,
		},
		meshes: ringMeshes(k),
		graph:  scene3d.NewMemory(),
		path:   trail.New(cfg.TrailCap),
	}
	s.Reset()
	return &Demo{Scene: s, Timeline: anim.Timeline{Duration: ringDuration, Loop: true}}, nil
}

// ringMeshes builds every node's mesh in its local frame. The roller
// lies in the local YZ plane.
func ringMeshes(k kernel.Kernel) map[string]*kernel.Mesh {
	side := ringOuter * 1.2
	square := &kernel.Mesh{
		Name: NodeSquare,
		Points: []geom.Vec3{
			geom.V(-side, -side, 0), geom.V(side, -side, 0),
			geom.V(side, side, 0), geom.V(-side, side, 0),
		},
		Edges: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	}
	ring := kernel.Circle(ringOuter, 96)
	ring.Name = NodeRing
	roller := kernel.Circle(ringInner, 32).Transformed(k.Rotate(yAxis, math.Pi/2))
	roller.Name = NodeRoller
	marker := kernel.Cube(5, geom.Zero)
	marker.Name = NodeMarker
	return map[string]*kernel.Mesh{
		NodeRing:   ring,
		NodeSquare: square,
		NodeRoller: roller,
		NodeMarker: marker,
	}
}

// Meshes returns the local mesh of every node.
func (s *RollingRing) Meshes() map[string]*kernel.Mesh { return s.meshes }

// Place poses every node for the roller at angle phi around the ring.
//
//	P   = (R cos φ, R sin φ cos i, R sin φ sin i)
//	rot = Rx(i)·Ry(φ+π/2)·Rz(−ρ), ρ = (R/r)·φ
//	marker = rot·(0, r cos ρ, r sin ρ) + P
func (s *RollingRing) Place(phi float64) {
	s.phi = phi
	rho := ringOuter / ringInner * phi
	s.centre = geom.V(
		ringOuter*math.Cos(phi),
		ringOuter*math.Sin(phi)*math.Cos(ringTilt),
		ringOuter*math.Sin(phi)*math.Sin(ringTilt),
	)
	s.tilt = s.k.Rotate(xAxis, ringTilt)
	s.rot = geom.Chain(s.k.Rotate(zAxis, -rho), s.k.Rotate(yAxis, phi+math.Pi/2), s.tilt)
	s.marker = s.rot.ApplyVector(geom.V(0, ringInner*math.Cos(rho), ringInner*math.Sin(rho))).Add(s.centre)
	s.Pose(s.graph)
}

// Pose writes the current node poses into g.
func (s *RollingRing) Pose(g scene3d.Graph) {
	g.SetRotation(NodeRing, s.tilt)
	g.SetRotation(NodeSquare, s.tilt)
	g.SetPosition(NodeRoller, s.centre)
	g.SetRotation(NodeRoller, s.rot)
	g.SetPosition(NodeMarker, s.marker)
}

// Keyframe snapshots the poses at time t seconds.
func (s *RollingRing) Keyframe(t float64) scene3d.Keyframe {
	return s.graph.Snapshot(t)
}

func (s *RollingRing) Reset() {
	s.elapsed = 0
	s.path.Clear()
	s.Place(0)
	s.path.Push(s.marker)
}

func (s *RollingRing) Advance(f anim.Frame) bool {
	s.elapsed = f.Elapsed
	s.Place(2 * math.Pi * f.Progress)
	s.path.Push(s.marker)
	return true
}

// Centre returns the roller's centre.
func (s *RollingRing) Centre() geom.Vec3 { return s.centre }

// Marker returns the tracked point on the roller.
func (s *RollingRing) Marker() geom.Vec3 { return s.marker }

// Eye returns the orbiting camera position and its world-to-camera
// rotation.
func (s *RollingRing) Eye() (geom.Vec3, geom.Mat4) {
	return project.Orbit(250, 200, float64(s.elapsed.Milliseconds())*1e-4)
}

func (s *RollingRing) Draw(c canvas.Canvas) {
	c.Clear(canvas.Night)
	eye, view := s.Eye()
	look := func(ps []geom.Vec3) ([]project.Point2, []bool) {
		out := make([]project.Point2, len(ps))
		ok := make([]bool, len(ps))
		for i, p := range ps {
			out[i], ok[i] = s.cam.Look(eye, view, p)
		}
		return out, ok
	}

	c.SetLineWidth(2)
	for _, n := range []struct {
		name  string
		col   color.Color
		alpha float64
	}{
		{NodeSquare, canvas.Gray, 0.3},
		{NodeRing, canvas.LightGray, 1},
		{NodeRoller, canvas.Orange, 1},
		{NodeMarker, canvas.Red, 1},
	} {
		pose, ok := s.graph.Pose(n.name)
		if !ok {
			continue
		}
		m := s.meshes[n.name].Transformed(pose.Matrix())
		pts, vis := look(m.Points)
		c.SetAlpha(n.alpha)
		c.SetStroke(n.col)
		canvas.Edges(c, pts, vis, m.Edges)
	}
	c.SetAlpha(1)

	pts, vis := look(s.path.Points())
	c.SetStroke(canvas.Purple)
	canvas.Masked(c, pts, vis)
}

func (s *RollingRing) Status() report.Status {
	return report.Status{Title: "Rolling ring"}.
		Add("angle", s.phi*180/math.Pi, "°").
		Add("position", s.centre, "").
		Add("marker", s.marker, "").
		With("roller", s.rot)
}
