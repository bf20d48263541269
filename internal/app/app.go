//go:build ebiten

package app

import (
	"image"
	"log/slog"

	"planet-synth/internal/core"
	"planet-synth/internal/planet"
	"planet-synth/internal/render"
	"planet-synth/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

// Game adapts a planet session to the ebiten.Game interface.
type Game struct {
	session *Session
	raster  *render.Raster
	painter *render.FramePainter
	frame   *image.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *slog.Logger

	size   core.Size
	scale  int
	paused bool
	dt     float64
}

// New constructs a Game rendering session through raster at w*h pixels.
func New(session *Session, raster *render.Raster, w, h, scale, tps int, log *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		session: session,
		raster:  raster,
		painter: render.NewFramePainter(w, h),
		frame:   image.NewRGBA(image.Rect(0, 0, w, h)),
		hud:     ui.NewHUD(session, hudWidth),
		overlay: ui.NewOverlay(session),
		log:     log,
		size:    core.Size{W: w, H: h},
		scale:   scale,
		dt:      1 / float64(tps),
	}
}

// Update handles per-frame input and advances planet time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		g.regenerate(g.session.SwitchArchetype(planet.Barren))
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		g.regenerate(g.session.SwitchArchetype(planet.Terrestrial))
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		g.regenerate(g.session.SwitchArchetype(planet.Gas))
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.regenerate(g.session.Reseed())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.regenerate(g.session.Generate())
	}

	g.overlay.Update()
	g.hud.Update(g.size.W * g.scale)

	if !g.paused {
		if err := g.session.Tick(g.dt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) regenerate(err error) {
	if err != nil {
		g.log.Error("regenerate failed", "err", err)
		return
	}
	ebiten.SetWindowTitle("planet-synth - " + g.session.Title())
}

// Draw shades the current frame and paints the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.raster.Draw(g.frame, g.session.Objects()); err != nil {
		g.log.Error("draw", "err", err)
		return
	}
	g.painter.Blit(screen, g.frame, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.size.W*g.scale, g.size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size.W*g.scale + hudWidth, g.size.H * g.scale
}
