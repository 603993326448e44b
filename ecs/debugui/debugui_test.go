package debugui_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Pose struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

type Label struct {
	Text string
}

type Marker struct{}

type Link struct {
	Target *Label
	Tags   []string
	Marker Marker
}

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Pose](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Marker](registry)
	return ecs.NewStorage(registry)
}

func TestInspectValue(t *testing.T) {
	lines := debugui.InspectValue(&Pose{
		Translation: mgl32.Vec3{1, 2, 3},
		Rotation:    mgl32.QuatIdent(),
	})
	assert.Equal(t, []string{
		"Translation: (1.000, 2.000, 3.000)",
		"Rotation:",
		"  W: 1.000",
		"  V: (0.000, 0.000, 0.000)",
	}, lines)

	assert.Equal(t, []string{`Text: "hi"`}, debugui.InspectValue(Label{Text: "hi"}))
	assert.Equal(t, []string{"(no fields)"}, debugui.InspectValue(Marker{}))
	assert.Equal(t, []string{"nil"}, debugui.InspectValue((*Label)(nil)))
	assert.Equal(t, []string{"42"}, debugui.InspectValue(42))
}

func TestInspectValueFieldKinds(t *testing.T) {
	lines := debugui.InspectValue(Link{Tags: []string{"a", "b"}})
	assert.Equal(t, []string{
		"Target: nil",
		"Tags: [2 items]",
		"Marker: {}",
	}, lines)
}

func TestInspectEntity(t *testing.T) {
	storage := newStorage()
	id := storage.Spawn(Label{Text: "sample"}, Marker{})

	views, err := debugui.InspectEntity(storage, id)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "debugui_test.Label", views[0].Type)
	assert.Equal(t, []string{`Text: "sample"`}, views[0].Lines)

	_, err = debugui.InspectEntity(storage, 0)
	assert.ErrorContains(t, err, "no entity selected")

	_, err = debugui.InspectEntity(storage, ecs.NewEntityId(12345, 0))
	assert.ErrorContains(t, err, "invalid archetype")

	storage.Delete(id)
	_, err = debugui.InspectEntity(storage, id)
	assert.ErrorContains(t, err, "deleted")
}

func TestOverlayUpdate(t *testing.T) {
	storage := newStorage()
	storage.Spawn(Label{Text: "a"})
	target := storage.Spawn(Label{Text: "b"}, Marker{})

	overlay := debugui.NewOverlay(4)
	overlay.Update(storage, 0.016)
	assert.Equal(t, 0, overlay.Stats().TotalEntityCount, "hidden overlays only time frames")
	assert.Len(t, overlay.Performance.History(), 1)

	overlay.Toggle()
	overlay.Entities.Select(target)
	overlay.Update(storage, 0.016)

	assert.Equal(t, 2, overlay.Stats().TotalEntityCount)
	assert.Len(t, overlay.Archetypes.Archetypes(), 2)
	assert.Equal(t, 2, overlay.Entities.Len())

	views, err := overlay.Inspected()
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestOverlayFiltersBySelectedArchetype(t *testing.T) {
	storage := newStorage()
	for range 3 {
		storage.Spawn(Label{})
	}
	marked := storage.Spawn(Marker{})

	overlay := debugui.NewOverlay(4)
	overlay.Visible = true
	overlay.Update(storage, 0.016)

	// Sorted by entity count, largest first.
	require.Len(t, overlay.Archetypes.Archetypes(), 2)
	overlay.Archetypes.SelectIndex(1)
	overlay.Update(storage, 0.016)

	require.Equal(t, 1, overlay.Entities.Len())
	assert.Equal(t, marked, overlay.Entities.Page()[0].ID)
}

func TestOverlaySystem(t *testing.T) {
	storage := newStorage()
	storage.Spawn(Label{})
	scheduler := ecs.NewScheduler(storage)

	overlay := debugui.NewOverlay(8)
	overlay.Visible = true
	debugui.Install(scheduler, overlay)

	scheduler.Once(0.02)
	scheduler.Once(0.04)

	assert.Equal(t, 1, overlay.Stats().TotalEntityCount)
	assert.InDelta(t, 30, overlay.Performance.Average(), 1e-3)

	var singleton *debugui.DebugOverlay
	require.True(t, storage.ReadSingleton(&singleton))
	assert.Same(t, overlay, singleton.Overlay)
}
