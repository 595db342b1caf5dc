package plan

import (
	"fmt"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/xform"
)

// BodyKind enumerates the wireframe primitives a script can declare.
type BodyKind int

const (
	BodyCube     BodyKind = iota // edge length Size, centred on At
	BodyCone                     // apex at At, radius Size, height Height
	BodyPolyline                 // Count points from At to To
	BodyCircle                   // radius Size in the XY plane, centred on At
)

func (k BodyKind) String() string {
	switch k {
	case BodyCube:
		return "cube"
	case BodyCone:
		return "cone"
	case BodyPolyline:
		return "polyline"
	case BodyCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// ParseBodyKind maps a script keyword to a BodyKind.
func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case "cube":
		return BodyCube, nil
	case "cone", "top":
		return BodyCone, nil
	case "polyline", "snake":
		return BodyPolyline, nil
	case "circle":
		return BodyCircle, nil
	}
	return 0, fmt.Errorf("unknown body kind %q, expected cube, cone, polyline or circle", s)
}

// Body is a rigid point set the plan's steps act on.
type Body struct {
	ID       ID        `json:"id"`
	Name     string    `json:"name"`
	Kind     BodyKind  `json:"kind"`
	Size     float64   `json:"size"`
	Height   float64   `json:"height,omitempty"`
	Count    int       `json:"count,omitempty"`
	Segments int       `json:"segments,omitempty"`
	At       geom.Vec3 `json:"at"`
	To       geom.Vec3 `json:"to"`
	Source   SourceRef `json:"source"`
}

// Mesh builds the body's wireframe in world coordinates.
func (b *Body) Mesh() (*kernel.Mesh, error) {
	var m *kernel.Mesh
	switch b.Kind {
	case BodyCube:
		m = kernel.Cube(b.Size, b.At)
	case BodyCone:
		m = kernel.Cone(b.Size, b.Height, b.Segments).Transformed(geom.Translation(b.At))
	case BodyPolyline:
		m = kernel.Polyline(b.At, b.To, b.Count)
	case BodyCircle:
		m = kernel.Circle(b.Size, b.Segments).Transformed(geom.Translation(b.At))
	default:
		return nil, fmt.Errorf("body %q has unsupported kind %v", b.Name, b.Kind)
	}
	m.Name = b.Name
	return m, nil
}

// Step is one named transform in the plan's sequence.
type Step struct {
	ID        ID              `json:"id"`
	Name      string          `json:"name"`
	Transform xform.Transform `json:"transform"`
	Hash      ContentHash     `json:"content_hash"`
	Source    SourceRef       `json:"source"`
}

// Plan is the top-level structure produced by script evaluation.
type Plan struct {
	Bodies    []*Body        `json:"bodies"`
	Steps     []*Step        `json:"steps"`
	NameIndex map[string]int `json:"name_index"` // step name -> index in Steps
	Version   uint64         `json:"version"`
}

// New creates an empty Plan.
func New() *Plan {
	return &Plan{NameIndex: make(map[string]int)}
}

// AddBody appends a body, assigning its ID from the name.
func (p *Plan) AddBody(b *Body) {
	if b.ID.IsZero() {
		b.ID = NewID("body/" + b.Name)
	}
	p.Bodies = append(p.Bodies, b)
}

// AddStep appends a step and indexes it by name. Unnamed steps are given
// a positional name. A repeated name points the index at the newest
// step; Validate reports it.
func (p *Plan) AddStep(name string, t xform.Transform, src SourceRef) *Step {
	if name == "" {
		name = fmt.Sprintf("step-%d", len(p.Steps)+1)
	}
	s := &Step{
		ID:        NewID(fmt.Sprintf("step/%d/%s", len(p.Steps), name)),
		Name:      name,
		Transform: t.Named(name),
		Hash:      HashTransform(t),
		Source:    src,
	}
	p.NameIndex[name] = len(p.Steps)
	p.Steps = append(p.Steps, s)
	return s
}

// Lookup returns the step with the given name, or nil.
func (p *Plan) Lookup(name string) *Step {
	i, ok := p.NameIndex[name]
	if !ok {
		return nil
	}
	return p.Steps[i]
}

// Body returns the body with the given name, or nil.
func (p *Plan) Body(name string) *Body {
	for _, b := range p.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Sequence returns the step transforms in order.
func (p *Plan) Sequence() xform.Sequence {
	seq := make(xform.Sequence, len(p.Steps))
	for i, s := range p.Steps {
		seq[i] = s.Transform
	}
	return seq
}

// StepCount returns the number of steps.
func (p *Plan) StepCount() int {
	return len(p.Steps)
}

// IsEmpty reports whether the plan has neither bodies nor steps.
func (p *Plan) IsEmpty() bool {
	return len(p.Bodies) == 0 && len(p.Steps) == 0
}
