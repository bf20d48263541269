//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"planet-synth/internal/app"
	"planet-synth/internal/logging"
	"planet-synth/internal/noise"
	"planet-synth/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	boot := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	if err := cfg.LoadEnv(cfg.EnvFile, app.Explicit(flag.CommandLine)); err != nil {
		boot.Warn("environment", "err", err)
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	defaults, err := cfg.Defaults()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}
	field, err := noise.New(noise.Backend(cfg.Noise))
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	raster := render.NewRaster(cfg.Workers, log)
	session := app.NewSession(defaults, raster, field, log)
	if err := session.Generate(); err != nil {
		log.Error("generate", "err", err)
		os.Exit(1)
	}
	defer session.Close()

	game := app.New(session, raster, cfg.Width, cfg.Height, cfg.Scale, cfg.TPS, log)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("planet-synth - " + session.Title())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
