//go:build !ebiten

package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"planet-synth/internal/app"
	"planet-synth/internal/core"
	"planet-synth/internal/logging"
	"planet-synth/internal/noise"
	"planet-synth/internal/render"
)

// The headless build renders the planet to the terminal instead of a window.
// Build with -tags ebiten for the interactive viewer.
func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 72, 36
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	boot := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	if err := cfg.LoadEnv(cfg.EnvFile, app.Explicit(flag.CommandLine)); err != nil {
		boot.Warn("environment", "err", err)
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	if err := run(cfg, log); err != nil {
		log.Error("preview failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, log *slog.Logger) error {
	defaults, err := cfg.Defaults()
	if err != nil {
		return err
	}
	field, err := noise.New(noise.Backend(cfg.Noise))
	if err != nil {
		return err
	}
	raster := render.NewRaster(cfg.Workers, logging.Discard())
	session := app.NewSession(defaults, raster, field, logging.Discard())
	if err := session.Generate(); err != nil {
		return err
	}
	defer session.Close()

	frame := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	// Terminal cells are roughly twice as tall as wide.
	raster.Camera.PixelAspect = 2
	step := core.NewFixedStep(cfg.TPS)
	frames := cfg.Frames
	if frames <= 0 {
		frames = 1
	}
	for i := 0; i < frames; {
		if !step.ShouldStep() {
			time.Sleep(step.Wait())
			continue
		}
		start := time.Now()
		if err := raster.Draw(frame, session.Objects()); err != nil {
			return err
		}
		if frames > 1 {
			fmt.Print("\033[H\033[2J")
		}
		fmt.Print(render.ASCII(frame))
		log.Info("frame", "n", i, "planet", session.Title(), "elapsed", time.Since(start).Round(time.Millisecond))
		if err := session.Tick(step.Seconds()); err != nil {
			return err
		}
		i++
	}
	return nil
}
