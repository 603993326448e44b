// Package rlbackend runs an app.App in a raylib window: it turns raylib input
// into input events, and draws scene instances, lights and the debug overlay
// from the camera entity's point of view.
package rlbackend

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/ecs/debugui"
	"github.com/plus3/sceneview/input"
)

// Config describes the window.
type Config struct {
	Width  int
	Height int
	Title  string
	// FPS caps the frame rate. Zero leaves it uncapped.
	FPS  int
	MSAA bool
}

// Runner is an app.Runner that owns a raylib window. raylib must be driven
// from the main goroutine.
type Runner struct {
	config  Config
	assets  *assets.Server
	overlay *debugui.Overlay
	logger  *slog.Logger

	models map[string]*modelEntry
}

// New creates a runner drawing models loaded through server. overlay may be
// nil; otherwise F3 toggles it.
func New(config Config, server *assets.Server, overlay *debugui.Overlay, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		config:  config,
		assets:  server,
		overlay: overlay,
		logger:  logger.With("component", "rlbackend"),
		models:  make(map[string]*modelEntry),
	}
}

// Run opens the window and drives frames until the app exits, the window is
// closed or the context is done.
func (r *Runner) Run(ctx context.Context, a *app.App) error {
	if r.config.MSAA {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
	}
	rl.InitWindow(int32(r.config.Width), int32(r.config.Height), r.config.Title)
	defer rl.CloseWindow()
	defer r.unloadModels()

	// Escape is an ordinary key here; the app decides when to exit.
	rl.SetExitKey(0)
	if r.config.FPS > 0 {
		rl.SetTargetFPS(int32(r.config.FPS))
	}

	storage := a.Storage()
	keyboard := ecs.AddEvents[input.KeyboardInput](storage)
	mouse := ecs.AddEvents[input.MouseButtonInput](storage)
	exit := ecs.AddEvents[app.AppExit](storage)
	scene := newSceneViews(storage)

	r.logger.Info("window opened",
		"width", r.config.Width,
		"height", r.config.Height,
		"msaa", r.config.MSAA)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if rl.WindowShouldClose() {
			exit.Send(app.AppExit{})
		}
		pollInput(keyboard, mouse)
		if r.overlay != nil && rl.IsKeyPressed(rl.KeyF3) {
			r.overlay.Toggle()
		}

		done := a.Update(float64(rl.GetFrameTime()))
		r.draw(storage, scene)

		if done {
			return nil
		}
	}
}
