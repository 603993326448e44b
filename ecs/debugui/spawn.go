package debugui

import "github.com/plus3/sceneview/ecs"

// Install stores overlay as the DebugOverlay singleton and registers the
// system that feeds it. Register it on the last scheduler of a frame so the
// overlay sees that frame's changes.
func Install(scheduler *ecs.Scheduler, overlay *Overlay) {
	scheduler.Storage().AddSingleton(DebugOverlay{Overlay: overlay})
	scheduler.Register(&OverlaySystem{})
}
