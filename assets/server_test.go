package assets_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/sceneview/assets"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeConsole writes a two-scene document: "Console" with a body and a
// nested screen, and "Stand" with a single node. The default scene is Stand.
func writeConsole(t *testing.T) string {
	t.Helper()
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0"},
		Scene: gltf.Index(1),
		Scenes: []*gltf.Scene{
			{Name: "Console", Nodes: []int{0}},
			{Name: "Stand", Nodes: []int{2}},
		},
		Meshes: []*gltf.Mesh{{Name: "body"}},
		Nodes: []*gltf.Node{
			{Name: "body", Mesh: gltf.Index(0), Children: []int{1}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}},
			{Name: "screen", Translation: [3]float64{0, 0.3, 0}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}},
			{Name: "stand", Translation: [3]float64{0, -1, 0}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{2, 2, 2}},
		},
	}

	dir := t.TempDir()
	require.NoError(t, gltf.Save(doc, filepath.Join(dir, "console.gltf")))
	return dir
}

func waitLoaded(t *testing.T, server *assets.Server) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Wait(ctx))
}

func TestLoadLabeledScene(t *testing.T) {
	server := assets.NewServer(writeConsole(t), nil, quietLogger())

	h := server.Load("console.gltf#Scene0")
	assert.Equal(t, "console.gltf", h.Path())
	assert.Equal(t, "Scene0", h.Label())
	assert.Equal(t, "console.gltf#Scene0", h.String())
	waitLoaded(t, server)

	require.Equal(t, assets.Loaded, server.State(h))
	scene, ok := server.Scene(h)
	require.True(t, ok)
	assert.Equal(t, "Console", scene.Name)
	require.Len(t, scene.Nodes, 2)

	body, screen := scene.Nodes[0], scene.Nodes[1]
	assert.Equal(t, "body", body.Name)
	assert.Equal(t, -1, body.Parent)
	assert.True(t, body.HasMesh)
	assert.Equal(t, 0, screen.Parent)
	assert.False(t, screen.HasMesh)
	assert.InDelta(t, 0.3, screen.Translation.Y(), 1e-6)
}

func TestLoadWholeFileUsesDefaultScene(t *testing.T) {
	server := assets.NewServer(writeConsole(t), nil, quietLogger())

	h := server.Load("console.gltf")
	assert.Equal(t, "", h.Label())
	waitLoaded(t, server)

	scene, ok := server.Scene(h)
	require.True(t, ok)
	assert.Equal(t, "Stand", scene.Name)
	require.Len(t, scene.Nodes, 1)
	assert.Equal(t, 2, scene.Nodes[0].Index)
	assert.InDelta(t, 2, scene.Nodes[0].Scale.X(), 1e-6)
}

func TestLoadByName(t *testing.T) {
	server := assets.NewServer(writeConsole(t), nil, quietLogger())
	h := server.Load("console.gltf#Console")
	waitLoaded(t, server)

	scene, ok := server.Scene(h)
	require.True(t, ok)
	assert.Equal(t, 0, scene.Index)
}

func TestHandlesAreShared(t *testing.T) {
	server := assets.NewServer(writeConsole(t), nil, quietLogger())

	a := server.Load("console.gltf#Scene0")
	b := server.Load("console.gltf#Scene0")
	c := server.Load("console.gltf")
	waitLoaded(t, server)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsZero())
	assert.True(t, assets.Handle{}.IsZero())
	assert.Equal(t, assets.NotLoaded, server.State(assets.Handle{}))
}

func TestLoadFailures(t *testing.T) {
	server := assets.NewServer(writeConsole(t), nil, quietLogger())

	missingScene := server.Load("console.gltf#Scene9")
	missingFile := server.Load("nothing.glb")
	waitLoaded(t, server)

	assert.Equal(t, assets.Failed, server.State(missingScene))
	assert.ErrorIs(t, server.Err(missingScene), assets.ErrSceneNotFound)
	assert.Equal(t, assets.Failed, server.State(missingFile))
	assert.Error(t, server.Err(missingFile))

	_, ok := server.Scene(missingFile)
	assert.False(t, ok)
}

func TestOpenerErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	var opened []string
	server := assets.NewServer("models", func(path string) (*gltf.Document, error) {
		opened = append(opened, path)
		return nil, boom
	}, quietLogger())

	h := server.Load("a.glb#Scene0")
	waitLoaded(t, server)

	assert.Equal(t, []string{filepath.Join("models", "a.glb")}, opened)
	assert.ErrorIs(t, server.Err(h), boom)
	assert.Contains(t, server.Err(h).Error(), "a.glb#Scene0")
}

func TestSceneCycleFails(t *testing.T) {
	server := assets.NewServer("", func(string) (*gltf.Document, error) {
		return &gltf.Document{
			Scenes: []*gltf.Scene{{Nodes: []int{0}}},
			Nodes: []*gltf.Node{
				{Name: "a", Children: []int{1}},
				{Name: "b", Children: []int{0}},
			},
		}, nil
	}, quietLogger())

	h := server.Load("loop.gltf")
	waitLoaded(t, server)
	assert.Equal(t, assets.Failed, server.State(h))
}

func TestDocumentWithoutScenes(t *testing.T) {
	server := assets.NewServer("", func(string) (*gltf.Document, error) {
		return &gltf.Document{
			Nodes: []*gltf.Node{
				{Name: "root", Children: []int{1}},
				{Name: "child"},
				{Name: "loose"},
			},
		}, nil
	}, quietLogger())

	h := server.Load("bare.gltf")
	waitLoaded(t, server)

	scene, ok := server.Scene(h)
	require.True(t, ok)
	names := make([]string, 0, len(scene.Nodes))
	for _, node := range scene.Nodes {
		names = append(names, node.Name)
	}
	assert.Equal(t, []string{"root", "child", "loose"}, names)
}

func TestWaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	server := assets.NewServer("", func(string) (*gltf.Document, error) {
		<-release
		return &gltf.Document{}, nil
	}, quietLogger())
	server.Load("slow.glb")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, server.Wait(ctx), context.DeadlineExceeded)
}

func TestWaitCoversLoadsStartedWhileWaiting(t *testing.T) {
	release := make(chan struct{})
	server := assets.NewServer("", func(string) (*gltf.Document, error) {
		<-release
		return &gltf.Document{Scenes: []*gltf.Scene{{Name: "empty"}}}, nil
	}, quietLogger())
	first := server.Load("first.glb")

	waited := make(chan error, 1)
	go func() {
		waited <- server.Wait(context.Background())
	}()

	second := server.Load("second.glb")
	close(release)

	select {
	case err := <-waited:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return")
	}
	assert.Equal(t, assets.Loaded, server.State(first))
	assert.Equal(t, assets.Loaded, server.State(second))
}

func TestWaitAfterCancelledWait(t *testing.T) {
	release := make(chan struct{})
	server := assets.NewServer("", func(string) (*gltf.Document, error) {
		<-release
		return &gltf.Document{Scenes: []*gltf.Scene{{Name: "empty"}}}, nil
	}, quietLogger())
	server.Load("slow.glb")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, server.Wait(ctx), context.Canceled)

	close(release)
	waitLoaded(t, server)
	// Idle again: a second round of loads gets a fresh idle signal.
	server.Load("other.glb")
	waitLoaded(t, server)
	assert.NoError(t, server.Wait(context.Background()))
}

func TestFilePath(t *testing.T) {
	server := assets.NewServer("assets", nil, quietLogger())
	h := server.Load("/abs/model.glb#Scene0")
	assert.Equal(t, "/abs/model.glb", server.FilePath(h))

	relative := server.Load("model.glb")
	assert.Equal(t, filepath.Join("assets", "model.glb"), server.FilePath(relative))
	waitLoaded(t, server)
}
