package app

import (
	"context"
	"time"
)

// HeadlessRunner drives frames without a window, either on a fixed interval or,
// with a zero Interval, as fast as possible.
type HeadlessRunner struct {
	Interval time.Duration
	// MaxFrames stops the loop after that many frames. Zero means unbounded.
	MaxFrames int
	// BeforeFrame, if set, runs before each frame. Use it to inject input events.
	BeforeFrame func(app *App)
	// AfterFrame, if set, runs after each frame with that frame's duration.
	AfterFrame func(app *App, took time.Duration)
}

// Run loops until an AppExit is observed, MaxFrames is reached or the context
// is done. Context cancellation is returned as the context's error.
func (r *HeadlessRunner) Run(ctx context.Context, app *App) error {
	var ticks <-chan time.Time
	if r.Interval > 0 {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	lastTime := time.Now()
	for frames := 0; r.MaxFrames == 0 || frames < r.MaxFrames; frames++ {
		if ticks != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if r.BeforeFrame != nil {
			r.BeforeFrame(app)
		}

		start := time.Now()
		exit := app.Update(dt)
		if r.AfterFrame != nil {
			r.AfterFrame(app, time.Since(start))
		}

		if exit {
			return nil
		}
	}

	return nil
}
