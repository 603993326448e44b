// Package debugui provides an on-screen diagnostics overlay for ECS
// applications: frame times, archetypes, a paged entity browser and a
// component inspector. The overlay state is kept up to date by an ECS system
// and drawn with raygui by whichever backend owns the window.
package debugui

import (
	"github.com/plus3/sceneview/ecs"
)

// Overlay is the state behind the diagnostics panel.
type Overlay struct {
	Visible     bool
	Performance *PerformanceStats
	Archetypes  *ArchetypeViewer
	Entities    *EntityBrowser

	stats      ecs.StorageStats
	inspected  []ComponentView
	inspectErr error

	// ArchetypeScroll and EntityScroll are the list scroll offsets kept
	// between frames by the drawing backend.
	ArchetypeScroll int32
	EntityScroll    int32
}

// NewOverlay creates a hidden overlay remembering historyFrames frame times.
func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{
		Performance: NewPerformanceStats(historyFrames),
		Archetypes:  NewArchetypeViewer(),
		Entities:    NewEntityBrowser(12),
	}
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Update records a frame and, while the overlay is visible, refreshes the
// archetype, entity and component views.
func (o *Overlay) Update(storage *ecs.Storage, deltaTime float64) {
	o.Performance.Record(float32(deltaTime))
	if !o.Visible {
		return
	}

	o.stats = storage.CollectStats()
	o.Archetypes.Refresh(o.stats)
	o.Entities.FilterArchetype(o.Archetypes.Selected())
	o.Entities.Refresh(storage)

	o.inspected, o.inspectErr = nil, nil
	if selected := o.Entities.GetSelectedEntity(); selected != 0 {
		o.inspected, o.inspectErr = InspectEntity(storage, selected)
	}
}

// Stats returns the storage summary taken by the last visible Update.
func (o *Overlay) Stats() ecs.StorageStats {
	return o.stats
}

// Inspected returns the components of the selected entity, or the reason
// they could not be read.
func (o *Overlay) Inspected() ([]ComponentView, error) {
	return o.inspected, o.inspectErr
}

// DebugOverlay exposes an Overlay to systems as a singleton.
type DebugOverlay struct {
	*Overlay
}

// OverlaySystem feeds the overlay once per frame.
type OverlaySystem struct {
	Overlay ecs.Singleton[DebugOverlay]
}

func (s *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	overlay := s.Overlay.Get()
	if overlay == nil || overlay.Overlay == nil {
		return
	}
	overlay.Update(frame.Storage, frame.DeltaTime)
}
