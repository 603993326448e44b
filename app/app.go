// Package app assembles an ECS storage and a set of staged schedulers into a
// runnable application. Plugins register components, singletons and systems;
// a Runner drives frames until something sends AppExit.
package app

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/plus3/sceneview/ecs"
)

// Stage orders the per-frame schedulers. Commands queued in a stage are
// flushed before the next stage runs.
type Stage int

const (
	// PreUpdate runs first. Input state is refreshed here.
	PreUpdate Stage = iota
	// Update holds application logic.
	Update
	// PostUpdate runs last. Scene instancing and transform propagation live here.
	PostUpdate

	stageCount
)

var stageNames = [stageCount]string{"PreUpdate", "Update", "PostUpdate"}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return "Stage(?)"
	}
	return stageNames[s]
}

// AppExit asks the application to stop. It is observed after the frame in
// which it was sent; systems keep running until then.
type AppExit struct{}

// Log exposes the application logger to systems as a singleton.
type Log struct {
	*slog.Logger
}

// Plugin bundles registrations that belong together.
type Plugin interface {
	Build(app *App)
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(app *App)

func (f PluginFunc) Build(app *App) { f(app) }

// Runner owns the frame loop.
type Runner interface {
	Run(ctx context.Context, app *App) error
}

// App is the top-level container: storage, one scheduler for startup systems
// and one per Stage.
type App struct {
	registry *ecs.ComponentRegistry
	storage  *ecs.Storage
	startup  *ecs.Scheduler
	stages   [stageCount]*ecs.Scheduler
	runner   Runner
	logger   *slog.Logger

	exit      *ecs.EventReader[AppExit]
	time      *ecs.Singleton[Time]
	plugins   map[reflect.Type]bool
	started   bool
	compactAt int
}

// DefaultCompactThreshold is the number of free storage slots at which Update
// compacts the storage before running the frame.
const DefaultCompactThreshold = 256

// New creates an empty App that logs through logger. A nil logger falls back
// to slog.Default().
func New(logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	a := &App{
		registry: registry,
		storage:  storage,
		startup:  ecs.NewScheduler(storage),
		logger:   logger,
		plugins:  make(map[reflect.Type]bool),

		compactAt: DefaultCompactThreshold,
	}
	for i := range a.stages {
		a.stages[i] = ecs.NewScheduler(storage)
	}

	storage.AddSingleton(Log{Logger: logger})
	a.time = ecs.NewSingleton[Time](storage)
	a.exit = ecs.NewEventReader[AppExit](storage)
	a.runner = &HeadlessRunner{}

	return a
}

// RegisterComponent registers T with the app's component registry.
func RegisterComponent[T any](a *App) {
	ecs.RegisterComponent[T](a.registry)
}

// Storage returns the app's ECS storage.
func (a *App) Storage() *ecs.Storage {
	return a.storage
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// AddPlugin builds the plugin. A plugin of a given type is only built once.
func (a *App) AddPlugin(plugin Plugin) *App {
	pluginType := reflect.TypeOf(plugin)
	if a.plugins[pluginType] {
		a.logger.Debug("plugin already added", "plugin", pluginType.String())
		return a
	}
	a.plugins[pluginType] = true
	plugin.Build(a)
	return a
}

// InsertSingleton stores a singleton, replacing any existing value of the same type.
func (a *App) InsertSingleton(value any) *App {
	a.storage.AddSingleton(value)
	return a
}

// AddStartupSystem registers a system that runs once, on the first Update,
// before any stage.
func (a *App) AddStartupSystem(system ecs.System) *App {
	a.startup.Register(system)
	return a
}

// AddSystem registers a per-frame system in the given stage. Systems in a
// stage run in registration order.
func (a *App) AddSystem(stage Stage, system ecs.System) *App {
	if stage < 0 || stage >= stageCount {
		panic("app: unknown stage " + stage.String())
	}
	a.stages[stage].Register(system)
	return a
}

// Scheduler returns the scheduler behind a stage, for packages that register
// their systems on an ecs.Scheduler directly.
func (a *App) Scheduler(stage Stage) *ecs.Scheduler {
	if stage < 0 || stage >= stageCount {
		panic("app: unknown stage " + stage.String())
	}
	return a.stages[stage]
}

// SetCompactThreshold sets how many free slots trigger compaction at the
// start of a frame. Zero or less disables compaction.
func (a *App) SetCompactThreshold(slots int) *App {
	a.compactAt = slots
	return a
}

// SetRunner replaces the frame loop used by Run.
func (a *App) SetRunner(runner Runner) *App {
	a.runner = runner
	return a
}

// Update advances the app by one frame of dt seconds and reports whether an
// AppExit event was sent during the frame. Entity ids from earlier frames may
// be stale afterwards; entity refs stay valid.
func (a *App) Update(dt float64) bool {
	if a.compactAt > 0 && a.storage.Holes() >= a.compactAt {
		reclaimed := a.storage.Compact()
		a.logger.Debug("storage compacted", "slots", reclaimed)
	}

	if !a.started {
		a.started = true
		a.startup.Once(0)
	}

	a.time.Get().advance(dt)

	for _, scheduler := range a.stages {
		scheduler.Once(dt)
	}

	exit := a.exit.Len() > 0
	a.exit.Clear()
	a.storage.UpdateEvents()

	return exit
}

// Run hands control to the runner until it returns.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app starting",
		"startup_systems", a.startup.Len(),
		"systems", a.SystemCount())
	err := a.runner.Run(ctx, a)
	a.logger.Info("app stopped", "frames", a.time.Get().Frame)
	return err
}

// SystemCount returns the number of per-frame systems across all stages.
func (a *App) SystemCount() int {
	count := 0
	for _, scheduler := range a.stages {
		count += scheduler.Len()
	}
	return count
}

// Stats returns scheduler statistics for each stage, in stage order.
func (a *App) Stats() []*ecs.SchedulerStats {
	stats := make([]*ecs.SchedulerStats, 0, len(a.stages))
	for _, scheduler := range a.stages {
		stats = append(stats, scheduler.GetStats())
	}
	return stats
}
