package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sceneview/assets"
)

var (
	// AxisX, AxisY and AxisZ are the world axes. Y is up.
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// Transform is an entity's position, orientation and scale relative to its
// parent, or to the world if it has none.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns the transform that changes nothing.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromXYZ returns an identity transform moved to (x, y, z).
func FromXYZ(x, y, z float32) Transform {
	t := Identity()
	t.Translation = mgl32.Vec3{x, y, z}
	return t
}

// FromTranslation returns an identity transform moved to v.
func FromTranslation(v mgl32.Vec3) Transform {
	t := Identity()
	t.Translation = v
	return t
}

// FromRotation returns a pure rotation.
func FromRotation(q mgl32.Quat) Transform {
	t := Identity()
	t.Rotation = q
	return t
}

// FromScale returns a pure scale.
func FromScale(v mgl32.Vec3) Transform {
	t := Identity()
	t.Scale = v
	return t
}

// FromMatrix splits an affine matrix without shear into a Transform.
func FromMatrix(m mgl32.Mat4) Transform {
	translation, rotation, scale := assets.Decompose(m)
	return Transform{Translation: translation, Rotation: rotation, Scale: scale}
}

// WithScale returns a copy with the scale replaced.
func (t Transform) WithScale(v mgl32.Vec3) Transform {
	t.Scale = v
	return t
}

// LookingAt returns a copy rotated so that its forward axis (-Z) points at
// target, with its up axis as close to up as possible. If target coincides
// with the translation, or up is parallel to the view direction, the
// rotation is left unchanged.
func (t Transform) LookingAt(target, up mgl32.Vec3) Transform {
	back := t.Translation.Sub(target)
	if back.Len() < 1e-6 {
		return t
	}
	back = back.Normalize()

	right := up.Cross(back)
	if right.Len() < 1e-6 {
		return t
	}
	right = right.Normalize()
	trueUp := back.Cross(right)

	t.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, trueUp, back).Mat4()).Normalize()
	return t
}

// Mul composes two transforms so that the result applies o first, then t.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		Translation: t.TransformPoint(o.Translation),
		Rotation:    t.Rotation.Mul(o.Rotation).Normalize(),
		Scale:       mulComponents(t.Scale, o.Scale),
	}
}

// TransformPoint maps a point from local to parent space.
func (t Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(mulComponents(t.Scale, p)).Add(t.Translation)
}

// Matrix returns the affine matrix translate * rotate * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Forward returns the direction the transform faces (-Z).
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisZ.Mul(-1))
}

// Up returns the transform's local +Y in parent space.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(AxisY)
}

// ApproxEqual reports whether translation, rotation and scale each lie within
// an absolute distance epsilon of o's. Rotations q and -q are considered
// equal.
func (t Transform) ApproxEqual(o Transform, epsilon float32) bool {
	if t.Translation.Sub(o.Translation).Len() > epsilon ||
		t.Scale.Sub(o.Scale).Len() > epsilon {
		return false
	}
	return t.Rotation.Sub(o.Rotation).Len() <= epsilon ||
		t.Rotation.Add(o.Rotation).Len() <= epsilon
}

func mulComponents(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// GlobalTransform is the world-space matrix of an entity, computed from its
// Transform and its parents' by PropagateTransformsSystem.
type GlobalTransform struct {
	Matrix mgl32.Mat4
}

// GlobalIdentity returns a GlobalTransform at the world origin.
func GlobalIdentity() GlobalTransform {
	return GlobalTransform{Matrix: mgl32.Ident4()}
}

// Translation returns the world-space position.
func (g GlobalTransform) Translation() mgl32.Vec3 {
	return g.Matrix.Col(3).Vec3()
}
