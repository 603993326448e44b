package app_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s *recordSystem) Execute(*ecs.UpdateFrame) {
	*s.log = append(*s.log, s.name)
}

func TestStartupRunsOnceBeforeStages(t *testing.T) {
	var log []string
	a := app.New(quietLogger())
	a.AddSystem(app.PostUpdate, &recordSystem{"post", &log})
	a.AddSystem(app.Update, &recordSystem{"update", &log})
	a.AddSystem(app.PreUpdate, &recordSystem{"pre", &log})
	a.AddStartupSystem(&recordSystem{"startup", &log})

	a.Update(0.1)
	a.Update(0.1)

	assert.Equal(t, []string{"startup", "pre", "update", "post", "pre", "update", "post"}, log)
	assert.Equal(t, 3, a.SystemCount())
	assert.Len(t, a.Stats(), 3)
}

type timeRecorder struct {
	Time ecs.Singleton[app.Time]
	seen []app.Time
}

func (s *timeRecorder) Execute(*ecs.UpdateFrame) {
	s.seen = append(s.seen, *s.Time.Get())
}

func TestTimeAdvancesBeforeStages(t *testing.T) {
	a := app.New(quietLogger())
	recorder := &timeRecorder{}
	a.AddSystem(app.Update, recorder)

	a.Update(0.5)
	a.Update(0.25)

	require.Len(t, recorder.seen, 2)
	assert.Equal(t, app.Time{Delta: 0.5, Elapsed: 0.5, Frame: 1}, recorder.seen[0])
	assert.Equal(t, app.Time{Delta: 0.25, Elapsed: 0.75, Frame: 2}, recorder.seen[1])
}

type exitAfter struct {
	Exit   ecs.EventWriter[app.AppExit]
	frames int
	runs   int
}

func (s *exitAfter) Execute(*ecs.UpdateFrame) {
	s.runs++
	if s.runs == s.frames {
		s.Exit.Send(app.AppExit{})
	}
}

func TestAppExitIsObservedAfterFrame(t *testing.T) {
	a := app.New(quietLogger())
	exit := &exitAfter{frames: 2}
	a.AddSystem(app.PreUpdate, exit)

	assert.False(t, a.Update(0))
	assert.True(t, a.Update(0))
	assert.False(t, a.Update(0), "an exit is reported once")
}

func TestHeadlessRunnerStopsOnExit(t *testing.T) {
	a := app.New(quietLogger())
	exit := &exitAfter{frames: 5}
	a.AddSystem(app.Update, exit)

	frames := 0
	a.SetRunner(&app.HeadlessRunner{
		AfterFrame: func(*app.App, time.Duration) { frames++ },
	})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 5, frames)
}

func TestHeadlessRunnerMaxFrames(t *testing.T) {
	a := app.New(quietLogger())
	before := 0
	a.SetRunner(&app.HeadlessRunner{
		MaxFrames:   3,
		BeforeFrame: func(*app.App) { before++ },
	})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, before)

	var clock *app.Time
	require.True(t, a.Storage().ReadSingleton(&clock))
	assert.Equal(t, uint64(3), clock.Frame)
}

func TestHeadlessRunnerContext(t *testing.T) {
	a := app.New(quietLogger())
	a.SetRunner(&app.HeadlessRunner{Interval: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Run(ctx), context.DeadlineExceeded)
}

type countingPlugin struct {
	builds *int
}

func (p countingPlugin) Build(a *app.App) {
	*p.builds++
	a.InsertSingleton(fmt.Sprintf("built %d", *p.builds))
}

func TestPluginBuiltOnce(t *testing.T) {
	builds := 0
	a := app.New(quietLogger())
	a.AddPlugin(countingPlugin{&builds}).AddPlugin(countingPlugin{&builds})
	assert.Equal(t, 1, builds)

	called := false
	a.AddPlugin(app.PluginFunc(func(*app.App) { called = true }))
	assert.True(t, called)
}

func TestUnknownStagePanics(t *testing.T) {
	a := app.New(nil)
	assert.NotNil(t, a.Logger())
	assert.Panics(t, func() { a.AddSystem(app.Stage(7), &recordSystem{}) })
	assert.Equal(t, "Stage(?)", app.Stage(7).String())
	assert.Equal(t, "Update", app.Update.String())
}

type position struct{ X float32 }

func TestUpdateCompactsStorage(t *testing.T) {
	a := app.New(quietLogger())
	app.RegisterComponent[position](a)
	a.SetCompactThreshold(2)
	storage := a.Storage()

	var ids []ecs.EntityId
	for i := range 4 {
		ids = append(ids, storage.Spawn(position{X: float32(i)}))
	}
	last := storage.CreateEntityRef(ids[3])

	storage.Delete(ids[0])
	a.Update(0.1)
	assert.Equal(t, 1, storage.Holes(), "below the threshold")

	storage.Delete(ids[1])
	a.Update(0.1)
	assert.Zero(t, storage.Holes())

	id, ok := storage.ResolveEntityRef(last)
	require.True(t, ok)
	assert.Equal(t, uint32(1), id.Index())
	assert.Equal(t, float32(3), ecs.ReadComponent[position](storage, id).X)
}

func TestCompactionDisabled(t *testing.T) {
	a := app.New(quietLogger())
	app.RegisterComponent[position](a)
	a.SetCompactThreshold(0)

	id := a.Storage().Spawn(position{})
	a.Storage().Spawn(position{})
	a.Storage().Delete(id)
	a.Update(0.1)
	assert.Equal(t, 1, a.Storage().Holes())
}
