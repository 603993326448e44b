package input_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInputApp(t *testing.T) (*app.App, *input.ButtonInput[input.KeyCode], *input.ButtonInput[input.MouseButton]) {
	t.Helper()
	a := app.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.AddPlugin(input.Plugin{})

	var keys *input.ButtonInput[input.KeyCode]
	var mouse *input.ButtonInput[input.MouseButton]
	require.True(t, a.Storage().ReadSingleton(&keys))
	require.True(t, a.Storage().ReadSingleton(&mouse))
	return a, keys, mouse
}

func TestPluginTracksKeyboard(t *testing.T) {
	a, keys, _ := newInputApp(t)

	ecs.SendEvent(a.Storage(), input.KeyboardInput{Key: input.KeySpace, State: input.Pressed})
	a.Update(0.016)
	assert.True(t, keys.JustPressed(input.KeySpace))

	a.Update(0.016)
	assert.True(t, keys.Pressed(input.KeySpace))
	assert.False(t, keys.JustPressed(input.KeySpace), "the event is not replayed on the second frame")

	ecs.SendEvent(a.Storage(), input.KeyboardInput{Key: input.KeySpace, State: input.Released})
	a.Update(0.016)
	assert.False(t, keys.Pressed(input.KeySpace))
	assert.True(t, keys.JustReleased(input.KeySpace))
}

func TestPluginTracksMouse(t *testing.T) {
	a, _, mouse := newInputApp(t)

	ecs.SendEvent(a.Storage(), input.MouseButtonInput{Button: input.MouseLeft, State: input.Pressed})
	ecs.SendEvent(a.Storage(), input.MouseButtonInput{Button: input.MouseLeft, State: input.Released})
	a.Update(0.016)

	assert.False(t, mouse.Pressed(input.MouseLeft))
	assert.True(t, mouse.JustPressed(input.MouseLeft))
	assert.True(t, mouse.JustReleased(input.MouseLeft))

	a.Update(0.016)
	assert.False(t, mouse.JustPressed(input.MouseLeft))
}
