// Package gltfexport writes scene3d keyframes as a binary glTF file.
// Each registered mesh becomes a line primitive; each keyframe becomes a
// scene whose nodes place those meshes with a translation and a
// quaternion rotation.
package gltfexport

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/rigid/internal/logging"
	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/kernel"
	"github.com/chazu/rigid/pkg/scene3d"
)

// Exporter accumulates meshes and keyframes into one document.
type Exporter struct {
	doc    *gltf.Document
	meshes map[string]uint32
	order  []string
}

// New returns an exporter with an empty document.
func New() *Exporter {
	doc := gltf.NewDocument()
	doc.Scenes = nil
	doc.Scene = nil
	return &Exporter{doc: doc, meshes: make(map[string]uint32)}
}

// Document returns the document built so far.
func (e *Exporter) Document() *gltf.Document { return e.doc }

// Scenes returns the number of keyframes added.
func (e *Exporter) Scenes() int { return len(e.doc.Scenes) }

// AddMesh registers the wireframe drawn at node. The mesh points are in
// the node's local frame.
func (e *Exporter) AddMesh(node string, m *kernel.Mesh) error {
	if _, dup := e.meshes[node]; dup {
		return fmt.Errorf("mesh for node %q already added", node)
	}
	if m == nil || m.IsEmpty() || len(m.Edges) == 0 {
		return fmt.Errorf("mesh for node %q has no edges", node)
	}
	positions := make([][3]float32, len(m.Points))
	for i, p := range m.Points {
		positions[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	indices := make([]uint32, 0, 2*len(m.Edges))
	for _, ed := range m.Edges {
		indices = append(indices, uint32(ed[0]), uint32(ed[1]))
	}

	posAccessor := modeler.WritePosition(e.doc, positions)
	idxAccessor := modeler.WriteIndices(e.doc, indices)
	e.doc.Meshes = append(e.doc.Meshes, &gltf.Mesh{
		Name: node,
		Primitives: []*gltf.Primitive{
			{
				Indices:    gltf.Index(idxAccessor),
				Attributes: map[string]uint32{"POSITION": posAccessor},
				Mode:       gltf.PrimitiveLines,
			},
		},
	})
	e.meshes[node] = uint32(len(e.doc.Meshes) - 1)
	e.order = append(e.order, node)
	return nil
}

// AddKeyframe appends a scene placing every registered mesh whose node
// has a pose in k. Nodes without a pose are left out of that scene.
func (e *Exporter) AddKeyframe(name string, k scene3d.Keyframe) {
	scene := &gltf.Scene{Name: name}
	for _, node := range e.order {
		pose, ok := k.Poses[node]
		if !ok {
			continue
		}
		q := Quaternion(pose.Rotation)
		e.doc.Nodes = append(e.doc.Nodes, &gltf.Node{
			Name: fmt.Sprintf("%s@%s", node, name),
			Mesh: gltf.Index(e.meshes[node]),
			Translation: [3]float32{
				float32(pose.Position.X), float32(pose.Position.Y), float32(pose.Position.Z),
			},
			Rotation: [4]float32{float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W)},
			Scale:    [3]float32{1, 1, 1},
		})
		scene.Nodes = append(scene.Nodes, uint32(len(e.doc.Nodes)-1))
	}
	e.doc.Scenes = append(e.doc.Scenes, scene)
	if e.doc.Scene == nil {
		e.doc.Scene = gltf.Index(0)
	}
}

// Encode writes the document as binary glTF.
func (e *Exporter) Encode(w io.Writer) error {
	if len(e.doc.Scenes) == 0 {
		return errors.New("no keyframes to export")
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(e.doc); err != nil {
		return errors.Wrap(err, "encoding glTF")
	}
	logging.Info("glTF: %d meshes, %d scenes, %d nodes",
		len(e.doc.Meshes), len(e.doc.Scenes), len(e.doc.Nodes))
	return nil
}

// Quaternion converts the rotation part of a row-major matrix.
func Quaternion(m geom.Mat4) mgl64.Quat {
	l := m.Linear()
	var cm mgl64.Mat4
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cm[c*4+r] = l[r][c]
		}
	}
	cm[15] = 1
	return mgl64.Mat4ToQuat(cm).Normalize()
}
