package viewer_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/sceneview/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sceneview.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPresets(t *testing.T) {
	console, err := viewer.Preset(viewer.PresetConsole)
	require.NoError(t, err)
	assert.Equal(t, "console.glb#Scene0", console.ScenePath())
	assert.InDelta(t, 0.05, console.RootScale, 1e-9)
	assert.False(t, console.Motion)

	defaulted, err := viewer.Preset("")
	require.NoError(t, err)
	assert.Equal(t, console, defaulted)

	whole, err := viewer.Preset(viewer.PresetWhole)
	require.NoError(t, err)
	assert.Equal(t, "console.glb", whole.ScenePath())
	assert.Zero(t, whole.RootScale)
	assert.True(t, whole.Motion)

	_, err = viewer.Preset("cube")
	assert.ErrorContains(t, err, "console, whole")
}

func TestLoadOptionsOverlaysBase(t *testing.T) {
	path := writeConfig(t, `
model = "robot.glb"
log_full_events = true

[window]
title = "robot"

[ambient]
color = [0.5, 0.5, 1.0]
`)
	opts, err := viewer.LoadOptions(path, viewer.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "robot.glb", opts.Model)
	assert.Equal(t, "Scene0", opts.SubScene, "unset keys keep the base value")
	assert.True(t, opts.LogFullEvents)
	assert.Equal(t, "robot", opts.Window.Title)
	assert.Equal(t, 1280, opts.Window.Width)
	assert.Equal(t, [3]float32{0.5, 0.5, 1}, opts.Ambient.Color)
	assert.NoError(t, opts.Validate())
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := viewer.LoadOptions(writeConfig(t, "modle = \"typo.glb\"\n"), viewer.DefaultOptions())
	assert.ErrorContains(t, err, "modle")

	_, err = viewer.LoadOptions(writeConfig(t, "model = \n"), viewer.DefaultOptions())
	assert.Error(t, err)

	_, err = viewer.LoadOptions(filepath.Join(t.TempDir(), "absent.toml"), viewer.DefaultOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*viewer.Options)
	}{
		{"empty model", func(o *viewer.Options) { o.Model = " " }},
		{"labeled model", func(o *viewer.Options) { o.Model = "console.glb#Scene0" }},
		{"negative scale", func(o *viewer.Options) { o.RootScale = -1 }},
		{"zero window", func(o *viewer.Options) { o.Window.Width = 0 }},
		{"negative fps", func(o *viewer.Options) { o.Window.FPS = -1 }},
		{"ambient out of range", func(o *viewer.Options) { o.Ambient.Color[1] = 2 }},
		{"bad level", func(o *viewer.Options) { o.LogLevel = "loud" }},
	}

	assert.NoError(t, viewer.DefaultOptions().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := viewer.DefaultOptions()
			tt.modify(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}

func TestLevel(t *testing.T) {
	opts := viewer.DefaultOptions()
	opts.LogLevel = "debug"
	level, err := opts.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	opts.LogLevel = ""
	level, err = opts.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}
