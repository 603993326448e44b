package rlbackend

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
	debugraygui "github.com/plus3/sceneview/ecs/debugui/raygui"
	"github.com/plus3/sceneview/scene"
)

type sceneViews struct {
	cameras *ecs.View[struct {
		*scene.Camera
		*scene.GlobalTransform
	}]
	instances *ecs.View[struct {
		*scene.SceneRoot
		*scene.SceneInstance
		*scene.GlobalTransform
	}]
	lights *ecs.View[struct {
		*scene.PointLight
		*scene.GlobalTransform
	}]
	nodes *ecs.View[struct {
		*scene.SceneNode
		*scene.GlobalTransform
	}]
}

func newSceneViews(storage *ecs.Storage) *sceneViews {
	return &sceneViews{
		cameras: ecs.NewView[struct {
			*scene.Camera
			*scene.GlobalTransform
		}](storage),
		instances: ecs.NewView[struct {
			*scene.SceneRoot
			*scene.SceneInstance
			*scene.GlobalTransform
		}](storage),
		lights: ecs.NewView[struct {
			*scene.PointLight
			*scene.GlobalTransform
		}](storage),
		nodes: ecs.NewView[struct {
			*scene.SceneNode
			*scene.GlobalTransform
		}](storage),
	}
}

type modelEntry struct {
	model  rl.Model
	failed bool
}

func (r *Runner) draw(storage *ecs.Storage, views *sceneViews) {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	var clearColor *scene.ClearColor
	background := rl.Black
	if storage.ReadSingleton(&clearColor) {
		background = toColor(clearColor.Color, 1)
	}
	rl.ClearBackground(background)

	tint := rl.White
	var ambient *scene.AmbientLight
	if storage.ReadSingleton(&ambient) {
		// Models are drawn unlit, so the ambient light only brightens them
		// from a base of 0.8.
		tint = toColor(scene.Color{
			R: min(ambient.Color.R*(0.8+ambient.Brightness), 1),
			G: min(ambient.Color.G*(0.8+ambient.Brightness), 1),
			B: min(ambient.Color.B*(0.8+ambient.Brightness), 1),
		}, 1)
	}

	// Only the first camera renders.
	for camera := range views.cameras.Values() {
		r.drawFrom(camera.Camera, camera.GlobalTransform, views, tint)
		break
	}

	if r.overlay != nil {
		debugraygui.Draw(r.overlay, 10, 10)
	}
}

func (r *Runner) drawFrom(camera *scene.Camera, eye *scene.GlobalTransform, views *sceneViews, tint rl.Color) {
	position := eye.Translation()
	forward := eye.Matrix.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
	up := eye.Matrix.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()

	projection := rl.CameraPerspective
	fovy := mgl32.RadToDeg(camera.FovY)
	if camera.Projection == scene.Orthographic {
		projection = rl.CameraOrthographic
		fovy = camera.FovY
	}

	rl.BeginMode3D(rl.Camera3D{
		Position:   toVector3(position),
		Target:     toVector3(position.Add(forward)),
		Up:         toVector3(up),
		Fovy:       fovy,
		Projection: projection,
	})
	// The camera transform may scale non-uniformly; use its exact inverse as
	// the view matrix rather than raylib's look-at.
	rl.SetMatrixModelview(toMatrix(eye.Matrix.Inv()))

	for instance := range views.instances.Values() {
		model, ok := r.model(instance.SceneRoot.Handle)
		if !ok {
			continue
		}
		model.Transform = toMatrix(instance.GlobalTransform.Matrix)
		rl.DrawModel(model, rl.Vector3{}, 1, tint)
	}

	for light := range views.lights.Values() {
		rl.DrawSphere(toVector3(light.GlobalTransform.Translation()), 0.1, toColor(light.PointLight.Color, 1))
	}

	if r.overlay != nil && r.overlay.Visible {
		for node := range views.nodes.Values() {
			color := rl.Yellow
			if !node.HasMesh {
				color = rl.Gray
			}
			rl.DrawCubeWires(toVector3(node.GlobalTransform.Translation()), 0.02, 0.02, 0.02, color)
		}
		rl.DrawGrid(10, 0.1)
	}

	rl.EndMode3D()
}

// model returns the raylib model behind a handle, loading it on first use.
// raylib reads the file again itself; the asset server only tells us that the
// file parsed.
func (r *Runner) model(handle assets.Handle) (rl.Model, bool) {
	if r.assets == nil || r.assets.State(handle) != assets.Loaded {
		return rl.Model{}, false
	}

	path := r.assets.FilePath(handle)
	entry, ok := r.models[path]
	if !ok {
		entry = &modelEntry{model: rl.LoadModel(path)}
		if entry.model.MeshCount == 0 {
			entry.failed = true
			r.logger.Warn("model has no drawable meshes", "path", path)
		} else {
			r.logger.Debug("model uploaded", "path", path, "meshes", entry.model.MeshCount)
		}
		r.models[path] = entry
	}
	return entry.model, !entry.failed
}

func (r *Runner) unloadModels() {
	for path, entry := range r.models {
		if !entry.failed {
			rl.UnloadModel(entry.model)
		}
		delete(r.models, path)
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toColor(c scene.Color, alpha float32) rl.Color {
	return rl.NewColor(
		uint8(c.R*255),
		uint8(c.G*255),
		uint8(c.B*255),
		uint8(alpha*255),
	)
}

// toMatrix converts a column-major mgl32 matrix. raylib names its fields by
// column-major index too, so M12..M14 hold the translation in both.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}
