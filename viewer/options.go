// Package viewer is the scene viewer itself: it loads a model twice, places a
// camera and a rotating light, logs input and exits on Escape.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// WindowOptions configures the window opened by a windowed runner.
type WindowOptions struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	FPS    int    `toml:"fps"`
}

// AmbientOptions configures the ambient light.
type AmbientOptions struct {
	Color      [3]float32 `toml:"color"`
	Brightness float32    `toml:"brightness"`
}

// Options selects what the viewer loads and how it behaves. It is stored as a
// singleton so systems can read it.
type Options struct {
	// Model is the glTF/GLB file, relative to the asset root.
	Model string `toml:"model"`
	// SubScene selects a scene of the model for the parented instance, e.g.
	// "Scene0". Empty loads the file's default scene. The secondary instance
	// always loads the default scene.
	SubScene string `toml:"sub_scene"`
	// RootScale scales the parent node uniformly. Zero leaves it unscaled.
	RootScale float32 `toml:"root_scale"`
	// Motion enables the scene-entity motion system.
	Motion bool `toml:"motion"`
	// LogFullEvents logs whole keyboard events instead of just the key code.
	LogFullEvents bool   `toml:"log_full_events"`
	DebugOverlay  bool   `toml:"debug_overlay"`
	LogLevel      string `toml:"log_level"`

	Window  WindowOptions  `toml:"window"`
	Ambient AmbientOptions `toml:"ambient"`
}

const (
	PresetConsole = "console"
	PresetWhole   = "whole"
)

// Presets returns the preset names in a stable order.
func Presets() []string {
	return []string{PresetConsole, PresetWhole}
}

// DefaultOptions returns the console preset.
func DefaultOptions() Options {
	return Options{
		Model:     "console.glb",
		SubScene:  "Scene0",
		RootScale: 0.05,
		LogLevel:  "info",
		Window: WindowOptions{
			Width:  1280,
			Height: 720,
			Title:  "sceneview",
			FPS:    60,
		},
		Ambient: AmbientOptions{
			Color:      [3]float32{1, 1, 1},
			Brightness: 1.0 / 5.0,
		},
	}
}

// Preset returns the named preset. "console" parents the model's first scene
// at a twentieth of its size; "whole" loads the whole file unscaled and turns
// motion on.
func Preset(name string) (Options, error) {
	opts := DefaultOptions()
	switch name {
	case PresetConsole, "":
	case PresetWhole:
		opts.SubScene = ""
		opts.RootScale = 0
		opts.Motion = true
	default:
		return Options{}, fmt.Errorf("unknown preset %q (want one of %s)", name, strings.Join(Presets(), ", "))
	}
	return opts, nil
}

// LoadOptions overlays the TOML file at path on base. Keys missing from the
// file keep base's values; unknown keys are an error.
func LoadOptions(path string, base Options) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	opts := base
	decoder := toml.NewDecoder(f).DisallowUnknownFields()
	if err := decoder.Decode(&opts); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Options{}, fmt.Errorf("config %s: %s", path, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Options{}, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
		}
		return Options{}, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}

// Validate reports the first invalid setting.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Model) == "" {
		return errors.New("model is empty")
	}
	if strings.Contains(o.Model, "#") {
		return fmt.Errorf("model %q: select a scene with sub_scene instead of a # label", o.Model)
	}
	if o.RootScale < 0 {
		return fmt.Errorf("root_scale %v is negative", o.RootScale)
	}
	if o.Window.Width <= 0 || o.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", o.Window.Width, o.Window.Height)
	}
	if o.Window.FPS < 0 {
		return fmt.Errorf("window fps %d is negative", o.Window.FPS)
	}
	if slices.ContainsFunc(o.Ambient.Color[:], func(c float32) bool { return c < 0 || c > 1 }) {
		return fmt.Errorf("ambient color %v is outside [0, 1]", o.Ambient.Color)
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. Empty means info.
func (o Options) Level() (slog.Level, error) {
	var level slog.Level
	if o.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// ScenePath is the asset path of the parented instance.
func (o Options) ScenePath() string {
	if o.SubScene == "" {
		return o.Model
	}
	return o.Model + "#" + o.SubScene
}
