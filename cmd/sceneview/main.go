package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/plus3/sceneview/app"
	"github.com/plus3/sceneview/assets"
	"github.com/plus3/sceneview/backend/rlbackend"
	"github.com/plus3/sceneview/ecs/debugui"
	"github.com/plus3/sceneview/viewer"
)

func init() {
	// raylib must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "TOML options file, applied on top of the preset.")
	preset := flag.String("preset", viewer.PresetConsole, "Named preset: console or whole.")
	model := flag.String("model", "", "Model path, overriding the preset and config.")
	motion := flag.Bool("motion", false, "Enable the scene-entity motion system.")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error.")
	debug := flag.Bool("debug", false, "Show the debug overlay (toggle with F3).")
	assetRoot := flag.String("assets", "assets", "Directory model paths are relative to.")
	flag.Parse()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts, err := buildOptions(*configPath, *preset)
	if err == nil {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "model":
				opts.Model = *model
			case "motion":
				opts.Motion = *motion
			case "log-level":
				opts.LogLevel = *logLevel
			case "debug":
				opts.DebugOverlay = *debug
			}
		})
		err = opts.Validate()
	}
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	lvl, _ := opts.Level()
	level.Set(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := assets.NewServer(*assetRoot, nil, logger)
	overlay := debugui.NewOverlay(120)
	overlay.Visible = opts.DebugOverlay

	a := app.New(logger)
	a.AddPlugin(viewer.Plugin{Options: opts, Assets: server})
	debugui.Install(a.Scheduler(app.PostUpdate), overlay)
	a.SetRunner(rlbackend.New(rlbackend.Config{
		Width:  opts.Window.Width,
		Height: opts.Window.Height,
		Title:  opts.Window.Title,
		FPS:    opts.Window.FPS,
		MSAA:   true,
	}, server, overlay, logger))

	logger.Info("starting viewer",
		"preset", *preset,
		"model", opts.ScenePath(),
		"motion", opts.Motion)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("viewer stopped", "error", err)
		return 1
	}
	return 0
}

func buildOptions(configPath, preset string) (viewer.Options, error) {
	opts, err := viewer.Preset(preset)
	if err != nil {
		return viewer.Options{}, err
	}
	if configPath == "" {
		return opts, nil
	}
	opts, err = viewer.LoadOptions(configPath, opts)
	if err != nil {
		return viewer.Options{}, fmt.Errorf("load options: %w", err)
	}
	return opts, nil
}
