package assets

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// ErrSceneNotFound is returned when a label names no scene in the document.
var ErrSceneNotFound = errors.New("scene not found")

// Node is one node of a loaded scene, with its local transform.
type Node struct {
	// Index is the node's index in the source document. It is stable across
	// loads of the same file.
	Index int
	Name  string
	// Parent is the Index of the parent node, or -1 for a scene root.
	Parent      int
	HasMesh     bool
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Scene is a flattened node hierarchy. Parents always precede their children.
type Scene struct {
	Name  string
	Index int
	Nodes []Node
}

// SplitLabel separates "file.glb#Scene0" into its path and label.
func SplitLabel(path string) (file, label string) {
	file, label, _ = strings.Cut(path, "#")
	return file, label
}

// selectScene picks the scene a label refers to. "SceneN" selects by index,
// any other label selects by name, and an empty label selects the document's
// default scene (or the first one).
func selectScene(doc *gltf.Document, label string) (int, error) {
	if label == "" {
		if doc.Scene != nil {
			return *doc.Scene, nil
		}
		if len(doc.Scenes) == 0 {
			return -1, nil
		}
		return 0, nil
	}

	if rest, ok := strings.CutPrefix(label, "Scene"); ok {
		if index, err := strconv.Atoi(rest); err == nil {
			if index < 0 || index >= len(doc.Scenes) {
				return 0, fmt.Errorf("%w: %s", ErrSceneNotFound, label)
			}
			return index, nil
		}
	}

	for i, scene := range doc.Scenes {
		if scene.Name == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrSceneNotFound, label)
}

// buildScene flattens the selected scene. A document without scenes yields
// every node that is nobody's child as a root.
func buildScene(doc *gltf.Document, label string) (*Scene, error) {
	index, err := selectScene(doc, label)
	if err != nil {
		return nil, err
	}

	scene := &Scene{Index: index}
	var roots []int
	if index >= 0 {
		scene.Name = doc.Scenes[index].Name
		roots = doc.Scenes[index].Nodes
	} else {
		roots = orphanNodes(doc)
	}

	visited := make(map[int]bool)
	var walk func(nodeIndex, parent int) error
	walk = func(nodeIndex, parent int) error {
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", nodeIndex)
		}
		if visited[nodeIndex] {
			return fmt.Errorf("node %d appears twice in the hierarchy", nodeIndex)
		}
		visited[nodeIndex] = true

		src := doc.Nodes[nodeIndex]
		node := Node{
			Index:   nodeIndex,
			Name:    src.Name,
			Parent:  parent,
			HasMesh: src.Mesh != nil,
		}
		node.Translation, node.Rotation, node.Scale = nodeTRS(src)
		scene.Nodes = append(scene.Nodes, node)

		for _, child := range src.Children {
			if err := walk(child, nodeIndex); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := walk(root, -1); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

func orphanNodes(doc *gltf.Document) []int {
	isChild := make([]bool, len(doc.Nodes))
	for _, node := range doc.Nodes {
		for _, child := range node.Children {
			if child >= 0 && child < len(isChild) {
				isChild[child] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTRS returns the node's local transform. A non-identity matrix takes
// precedence over the TRS properties; unset rotation and scale use the glTF
// defaults.
func nodeTRS(n *gltf.Node) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	if n.Matrix != identityMatrix && n.Matrix != [16]float64{} {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return Decompose(m)
	}

	translation := mgl32.Vec3{float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2])}

	rotation := mgl32.QuatIdent()
	if n.Rotation != [4]float64{} {
		rotation = mgl32.Quat{
			W: float32(n.Rotation[3]),
			V: mgl32.Vec3{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2])},
		}.Normalize()
	}

	scale := mgl32.Vec3{1, 1, 1}
	if n.Scale != [3]float64{} {
		scale = mgl32.Vec3{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])}
	}

	return translation, rotation, scale
}

// Decompose splits an affine matrix without shear into translation, rotation
// and scale.
func Decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	translation := m.Col(3).Vec3()

	x := m.Col(0).Vec3()
	y := m.Col(1).Vec3()
	z := m.Col(2).Vec3()
	scale := mgl32.Vec3{x.Len(), y.Len(), z.Len()}

	// A negative determinant means one axis is mirrored; put it on X.
	if x.Cross(y).Dot(z) < 0 {
		scale[0] = -scale[0]
	}

	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return translation, mgl32.QuatIdent(), scale
	}

	rot := mgl32.Mat3FromCols(x.Mul(1/scale[0]), y.Mul(1/scale[1]), z.Mul(1/scale[2]))
	rotation := mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
	if math.IsNaN(float64(rotation.W)) {
		rotation = mgl32.QuatIdent()
	}
	return translation, rotation, scale
}
