package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/ecs"
	"github.com/plus3/sceneview/ecs/debugui"
	"github.com/plus3/sceneview/input"
	"github.com/plus3/sceneview/scene"
	"github.com/plus3/sceneview/viewer"
	"github.com/qmuntal/gltf"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the benchmark should run for.")
	rotators := flag.Int("rotators", 1000, "Extra rotating entities to spawn next to the light.")
	preset := flag.String("preset", viewer.PresetWhole, "Viewer preset: console or whole.")
	model := flag.String("model", "", "Model to load. Empty generates a synthetic glTF file.")
	nodes := flag.Int("nodes", 200, "Node count of the synthetic model.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu, mem or empty for none.")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(logger, *duration, *rotators, *preset, *model, *nodes, *profileMode); err != nil {
		logger.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, duration time.Duration, rotators int, preset, model string, nodes int, profileMode string) error {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profileMode)
	}

	opts, err := viewer.Preset(preset)
	if err != nil {
		return err
	}

	root := ""
	if model == "" {
		dir, err := os.MkdirTemp("", "sceneview-bench")
		if err != nil {
			return fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(dir)

		if err := writeSyntheticModel(filepath.Join(dir, "synthetic.gltf"), nodes); err != nil {
			return err
		}
		root = dir
		model = "synthetic.gltf"
	}
	opts.Model = model
	if err := opts.Validate(); err != nil {
		return err
	}

	diagnostics := &lineCounter{}
	server := assets.NewServer(root, nil, logger)
	overlay := debugui.NewOverlay(240)

	a := app.New(logger)
	a.AddPlugin(viewer.Plugin{Options: opts, Assets: server, Diagnostics: diagnostics})
	a.AddStartupSystem(&spawnRotatorsSystem{Count: rotators})
	debugui.Install(a.Scheduler(app.PostUpdate), overlay)

	report := &Report{
		Duration:  duration,
		Preset:    preset,
		Model:     opts.ScenePath(),
		Rotators:  rotators,
		Systems:   a.SystemCount(),
		FrameTime: Stats{Samples: make([]time.Duration, 0, 1<<16)},
	}

	synthetic := newSyntheticInput(a.Storage())
	a.SetRunner(&app.HeadlessRunner{
		BeforeFrame: synthetic.step,
		AfterFrame: func(_ *app.App, took time.Duration) {
			report.FrameTime.Samples = append(report.FrameTime.Samples, took)
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.FrameTime.Finalize()
	report.Frames = len(report.FrameTime.Samples)
	report.Storage = a.Storage().CollectStats()
	report.Stages = a.Stats()
	report.Overlay = overlay.Performance.Lines(report.Storage)
	report.DiagnosticLines = diagnostics.lines
	report.AssetState = server.State(server.Load(opts.ScenePath())).String()

	fmt.Println("--- Scene Viewer Benchmark ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return nil
}

// spawnRotatorsSystem adds Count extra rotating entities at startup so the
// rotation system has work to do.
type spawnRotatorsSystem struct {
	Count int
}

func (s *spawnRotatorsSystem) Execute(frame *ecs.UpdateFrame) {
	for i := range s.Count {
		frame.Commands.Spawn(
			scene.FromXYZ(float32(i%32), 0, float32(i/32)),
			scene.GlobalIdentity(),
			viewer.Rotates{},
		)
	}
}

// syntheticInput replays a fixed input pattern: Space held for a few frames,
// a left click, and key taps the keyboard logger records.
type syntheticInput struct {
	keyboard *ecs.Events[input.KeyboardInput]
	mouse    *ecs.Events[input.MouseButtonInput]
	frame    int
}

func newSyntheticInput(storage *ecs.Storage) *syntheticInput {
	return &syntheticInput{
		keyboard: ecs.AddEvents[input.KeyboardInput](storage),
		mouse:    ecs.AddEvents[input.MouseButtonInput](storage),
	}
}

func (s *syntheticInput) step(*app.App) {
	switch s.frame % 120 {
	case 10:
		s.keyboard.Send(input.KeyboardInput{Key: input.KeySpace, State: input.Pressed})
	case 20:
		s.keyboard.Send(input.KeyboardInput{Key: input.KeySpace, State: input.Released})
	case 30:
		s.mouse.Send(input.MouseButtonInput{Button: input.MouseLeft, State: input.Pressed})
	case 31:
		s.mouse.Send(input.MouseButtonInput{Button: input.MouseLeft, State: input.Released})
	case 40:
		s.keyboard.Send(input.KeyboardInput{Key: input.KeyA, State: input.Pressed})
	case 41:
		s.keyboard.Send(input.KeyboardInput{Key: input.KeyA, State: input.Released})
	}
	s.frame++
}

type lineCounter struct {
	lines int
}

func (c *lineCounter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			c.lines++
		}
	}
	return len(p), nil
}

var _ io.Writer = (*lineCounter)(nil)

// writeSyntheticModel writes a glTF file with one scene of nodes arranged in
// chains of four.
func writeSyntheticModel(path string, nodes int) error {
	doc := &gltf.Document{
		Asset:  gltf.Asset{Generator: "sceneview-bench", Version: "2.0"},
		Scene:  gltf.Index(0),
		Scenes: []*gltf.Scene{{Name: "Synthetic"}},
	}
	for i := range nodes {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        fmt.Sprintf("node%d", i),
			Translation: [3]float64{float64(i % 4), 0, 0},
			Rotation:    [4]float64{0, 0, 0, 1},
			Scale:       [3]float64{1, 1, 1},
		})
		if i%4 == 0 {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, i)
		} else {
			parent := doc.Nodes[i-1]
			parent.Children = append(parent.Children, i)
		}
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("write synthetic model: %w", err)
	}
	return nil
}
