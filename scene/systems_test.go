package scene_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/scene"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeModel saves a document with one scene: a root node with a mesh and a
// child offset by 0.3 on Y.
func writeModel(t *testing.T) string {
	t.Helper()
	doc := &gltf.Document{
		Asset:  gltf.Asset{Version: "2.0"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "Scene", Nodes: []int{0}}},
		Meshes: []*gltf.Mesh{{Name: "body"}},
		Nodes: []*gltf.Node{
			{Name: "body", Mesh: gltf.Index(0), Children: []int{1}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}},
			{Name: "screen", Translation: [3]float64{0, 0.3, 0}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}},
		},
	}
	dir := t.TempDir()
	require.NoError(t, gltf.Save(doc, filepath.Join(dir, "model.gltf")))
	return dir
}

func newSceneApp(t *testing.T, root string) (*app.App, *assets.Server) {
	t.Helper()
	server := assets.NewServer(root, nil, quietLogger())
	a := app.New(quietLogger())
	a.AddPlugin(scene.Plugin{Assets: server})
	return a, server
}

func waitAssets(t *testing.T, server *assets.Server) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Wait(ctx))
}

type nodeItem = struct {
	*scene.SceneNode
	*scene.Name
	*scene.GlobalTransform
}

func nodesByName(storage *ecs.Storage) map[string]nodeItem {
	nodes := map[string]nodeItem{}
	for item := range ecs.NewView[nodeItem](storage).Values() {
		nodes[item.Value] = item
	}
	return nodes
}

func TestPluginRequiresAssets(t *testing.T) {
	assert.Panics(t, func() {
		app.New(quietLogger()).AddPlugin(scene.Plugin{})
	})
}

func TestSceneRootIsInstancedUnderItsEntity(t *testing.T) {
	a, server := newSceneApp(t, writeModel(t))
	handle := server.Load("model.gltf#Scene0")
	waitAssets(t, server)

	rootId := a.Storage().Spawn(
		scene.FromXYZ(1, 0, 0),
		scene.GlobalIdentity(),
		scene.SceneRoot{Handle: handle},
	)
	root := a.Storage().CreateEntityRef(rootId)

	a.Update(0.016)
	a.Update(0.016)

	rootId, ok := a.Storage().ResolveEntityRef(root)
	require.True(t, ok)
	instance := ecs.ReadComponent[scene.SceneInstance](a.Storage(), rootId)
	require.NotNil(t, instance, "root gains a SceneInstance")

	nodes := nodesByName(a.Storage())
	require.Len(t, nodes, 2)
	assert.Equal(t, instance.Id, nodes["body"].Instance)
	assert.True(t, nodes["body"].HasMesh)
	assert.False(t, nodes["screen"].HasMesh)

	assertNear(t, mgl32.Vec3{1, 0, 0}, nodes["body"].Translation())
	assertNear(t, mgl32.Vec3{1, 0.3, 0}, nodes["screen"].Translation(),
		"got %v", nodes["screen"].Translation())

	// A root is instanced once.
	a.Update(0.016)
	assert.Len(t, nodesByName(a.Storage()), 2)
}

func TestSpawnerInstancesWithoutParent(t *testing.T) {
	a, server := newSceneApp(t, writeModel(t))
	var spawner *scene.SceneSpawner
	require.True(t, a.Storage().ReadSingleton(&spawner))

	id := spawner.Spawn(server.Load("model.gltf"))
	assert.Equal(t, 1, spawner.Pending())
	waitAssets(t, server)

	a.Update(0.016)
	assert.Equal(t, 0, spawner.Pending())
	assert.True(t, spawner.InstanceReady(id))

	a.Update(0.016)
	nodes := nodesByName(a.Storage())
	require.Len(t, nodes, 2)
	assert.Equal(t, id, nodes["screen"].Instance)
	assertNear(t, mgl32.Vec3{0, 0.3, 0}, nodes["screen"].Translation())

	anchors := 0
	for item := range ecs.NewView[struct {
		*scene.SceneRoot
		*scene.SceneInstance
	}](a.Storage()).Values() {
		assert.Equal(t, id, item.Id)
		anchors++
	}
	assert.Equal(t, 1, anchors)
}

func TestSpawnerWaitsForLoad(t *testing.T) {
	release := make(chan struct{})
	server := assets.NewServer("", func(string) (*gltf.Document, error) {
		<-release
		return &gltf.Document{
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes:  []*gltf.Node{{Name: "only"}},
		}, nil
	}, quietLogger())
	a := app.New(quietLogger())
	a.AddPlugin(scene.Plugin{Assets: server})

	var spawner *scene.SceneSpawner
	require.True(t, a.Storage().ReadSingleton(&spawner))
	id := spawner.Spawn(server.Load("late.glb"))

	a.Update(0.016)
	assert.False(t, spawner.InstanceReady(id))
	assert.Equal(t, 1, spawner.Pending())

	close(release)
	waitAssets(t, server)
	a.Update(0.016)
	assert.True(t, spawner.InstanceReady(id))
}

func TestSpawnerDropsFailedAssets(t *testing.T) {
	a, server := newSceneApp(t, t.TempDir())
	var spawner *scene.SceneSpawner
	require.True(t, a.Storage().ReadSingleton(&spawner))

	id := spawner.Spawn(server.Load("missing.glb"))
	rootId := a.Storage().Spawn(scene.Identity(), scene.GlobalIdentity(), scene.SceneRoot{Handle: server.Load("missing.glb#Scene0")})
	waitAssets(t, server)

	a.Update(0.016)
	a.Update(0.016)

	assert.Equal(t, 0, spawner.Pending())
	assert.False(t, spawner.InstanceReady(id))
	assert.Nil(t, ecs.ReadComponent[scene.SceneInstance](a.Storage(), rootId))
	assert.Empty(t, nodesByName(a.Storage()))
}

func TestPropagateTransforms(t *testing.T) {
	a, _ := newSceneApp(t, "")
	storage := a.Storage()

	parentId := storage.Spawn(scene.FromXYZ(0, 1, 0).WithScale(mgl32.Vec3{2, 2, 2}), scene.GlobalIdentity())
	parent := storage.CreateEntityRef(parentId)
	childId := storage.Spawn(scene.FromXYZ(1, 0, 0), scene.GlobalIdentity(), scene.Parent{Ref: parent})
	child := storage.CreateEntityRef(childId)
	grandchildId := storage.Spawn(scene.FromXYZ(0, 0, 1), scene.GlobalIdentity(), scene.Parent{Ref: child})
	orphanId := storage.Spawn(scene.FromXYZ(5, 0, 0), scene.GlobalIdentity(), scene.Parent{Ref: &ecs.EntityRef{}})

	a.Update(0.016)

	global := func(id ecs.EntityId) mgl32.Vec3 {
		return ecs.ReadComponent[scene.GlobalTransform](storage, id).Translation()
	}
	assertNear(t, mgl32.Vec3{0, 1, 0}, global(parentId))
	assertNear(t, mgl32.Vec3{2, 1, 0}, global(childId))
	assertNear(t, mgl32.Vec3{2, 1, 2}, global(grandchildId))
	assertNear(t, mgl32.Vec3{5, 0, 0}, global(orphanId), "unresolved parents are roots")

	// Moving the parent moves the whole subtree on the next frame.
	ecs.ReadComponent[scene.Transform](storage, parentId).Translation = mgl32.Vec3{0, 2, 0}
	a.Update(0.016)
	assertNear(t, mgl32.Vec3{2, 2, 2}, global(grandchildId))
}

func TestPropagateTransformsSurvivesCycles(t *testing.T) {
	a, _ := newSceneApp(t, "")
	storage := a.Storage()

	first := storage.Spawn(scene.FromXYZ(1, 0, 0), scene.GlobalIdentity(), scene.Parent{})
	second := storage.Spawn(scene.FromXYZ(1, 0, 0), scene.GlobalIdentity(), scene.Parent{Ref: storage.CreateEntityRef(first)})
	ecs.ReadComponent[scene.Parent](storage, first).Ref = storage.CreateEntityRef(second)

	assert.NotPanics(t, func() { a.Update(0.016) })
}
