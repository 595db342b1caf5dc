// Package scene3d defines the narrow interface the 3D demos use to move
// objects in an external scene graph, plus an in-memory graph that
// records poses for tests and keyframe export.
package scene3d

import (
	"sort"

	"github.com/chazu/rigid/pkg/geom"
)

// Graph is the part of a scene library the demos drive. Nodes are
// addressed by name; unknown names create the node.
type Graph interface {
	SetPosition(node string, p geom.Vec3)
	SetRotation(node string, r geom.Mat4)
}

// Pose is the placement of one node: a position and a rotation whose
// linear part is orthonormal.
type Pose struct {
	Position geom.Vec3 `json:"position"`
	Rotation geom.Mat4 `json:"rotation"`
}

// Matrix returns the node's world transform, rotation then translation.
func (p Pose) Matrix() geom.Mat4 {
	return p.Rotation.Then(geom.Translation(p.Position))
}

// Keyframe is a snapshot of every node's pose at a point in time.
type Keyframe struct {
	Time  float64         `json:"time"`
	Poses map[string]Pose `json:"poses"`
}

// Names returns the keyframe's node names in sorted order.
func (k Keyframe) Names() []string {
	names := make([]string, 0, len(k.Poses))
	for n := range k.Poses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Memory is a Graph that keeps poses in a map.
type Memory struct {
	poses map[string]Pose
	order []string
}

// NewMemory returns an empty graph.
func NewMemory() *Memory {
	return &Memory{poses: make(map[string]Pose)}
}

func (m *Memory) node(name string) Pose {
	p, ok := m.poses[name]
	if !ok {
		p = Pose{Rotation: geom.Identity()}
		m.order = append(m.order, name)
	}
	return p
}

func (m *Memory) SetPosition(name string, v geom.Vec3) {
	p := m.node(name)
	p.Position = v
	m.poses[name] = p
}

func (m *Memory) SetRotation(name string, r geom.Mat4) {
	p := m.node(name)
	p.Rotation = r
	m.poses[name] = p
}

// Pose returns the current pose of a node.
func (m *Memory) Pose(name string) (Pose, bool) {
	p, ok := m.poses[name]
	return p, ok
}

// Nodes returns node names in creation order.
func (m *Memory) Nodes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Snapshot copies the current poses into a keyframe.
func (m *Memory) Snapshot(t float64) Keyframe {
	k := Keyframe{Time: t, Poses: make(map[string]Pose, len(m.poses))}
	for n, p := range m.poses {
		k.Poses[n] = p
	}
	return k
}

// Reset forgets every node.
func (m *Memory) Reset() {
	m.poses = make(map[string]Pose)
	m.order = nil
}
