// Package scene holds the spatial components of the viewer: transforms and
// their hierarchy, cameras, lights, and instances of loaded scene assets.
package scene

import (
	"math"

	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
)

// Parent links an entity to the entity its Transform is relative to.
type Parent struct {
	Ref *ecs.EntityRef
}

// Name is a human readable label, taken from the source asset for scene nodes.
type Name struct {
	Value string
}

type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera renders the scene from its entity's GlobalTransform.
type Camera struct {
	Projection Projection
	// FovY is the vertical field of view in radians for Perspective, or the
	// vertical extent in world units for Orthographic.
	FovY float32
	Near float32
	Far  float32
}

// PerspectiveCamera returns a camera with a 45 degree vertical field of view.
func PerspectiveCamera() Camera {
	return Camera{
		Projection: Perspective,
		FovY:       math.Pi / 4,
		Near:       0.1,
		Far:        1000,
	}
}

// Color is linear RGB in [0, 1].
type Color struct {
	R, G, B float32
}

var White = Color{1, 1, 1}

// PointLight emits light in every direction from its entity's position.
type PointLight struct {
	Color     Color
	Intensity float32
	Range     float32
}

// DefaultPointLight returns a white light with a 20 unit range.
func DefaultPointLight() PointLight {
	return PointLight{
		Color:     White,
		Intensity: 200,
		Range:     20,
	}
}

// AmbientLight is a singleton lighting every surface uniformly.
type AmbientLight struct {
	Color      Color
	Brightness float32
}

// ClearColor is a singleton: the color the frame is cleared to before drawing.
type ClearColor struct {
	Color Color
}

// AssetServer exposes the asset server to systems as a singleton.
type AssetServer struct {
	*assets.Server
}

// SceneRoot asks for the scene behind Handle to be instanced as children of
// this entity once it has loaded.
type SceneRoot struct {
	Handle assets.Handle
}

// InstanceId identifies one spawned copy of a scene asset.
type InstanceId uint32

// SceneInstance marks a SceneRoot whose nodes have been spawned.
type SceneInstance struct {
	Id InstanceId
}

// SceneNode is attached to every entity spawned from a scene asset node.
type SceneNode struct {
	Instance InstanceId
	// Index is the node's index in the source document.
	Index   int
	HasMesh bool
}
