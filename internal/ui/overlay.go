//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"planet-synth/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// SurfaceSource supplies the overlay's surface map and info lines.
type SurfaceSource interface {
	SurfaceMap(w, h int) (*image.RGBA, bool)
	Parameters() core.ParameterSnapshot
}

const (
	mapW = 128
	mapH = 64
)

// Overlay draws optional debugging visuals on top of the rendered planet:
// an equirectangular surface map (M) and a planet info block (I).
type Overlay struct {
	src      SurfaceSource
	showMap  bool
	showInfo bool

	mapImg *ebiten.Image
	mapSig string
	pixel  *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(src SurfaceSource) *Overlay {
	o := &Overlay{src: src, showInfo: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles toggles and refreshes the cached map when the planet or
// its parameters change.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMap = !o.showMap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showInfo = !o.showInfo
	}
	if !o.showMap {
		return
	}
	sig := signature(o.src.Parameters())
	if o.mapImg != nil && sig == o.mapSig {
		return
	}
	frame, ok := o.src.SurfaceMap(mapW, mapH)
	if !ok {
		o.mapImg = nil
		return
	}
	if o.mapImg == nil {
		o.mapImg = ebiten.NewImage(mapW, mapH)
	}
	o.mapImg.WritePixels(frame.Pix)
	o.mapSig = sig
}

// signature joins every displayed value except the clock so the map is only
// rebuilt when something it depends on changes.
func signature(s core.ParameterSnapshot) string {
	var sb strings.Builder
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == "time" || p.Key == "state" {
				continue
			}
			sb.WriteString(p.Key)
			sb.WriteByte('=')
			sb.WriteString(p.Value)
			sb.WriteByte(';')
		}
	}
	return sb.String()
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showInfo {
		o.drawInfo(screen)
	}
	if o.showMap && o.mapImg != nil {
		bounds := screen.Bounds()
		op := &ebiten.DrawImageOptions{}
		x := float64(8)
		y := float64(bounds.Dy() - mapH - 8)
		o.drawRect(screen, x-2, y-2, mapW+4, mapH+4, color.RGBA{R: 40, G: 40, B: 48, A: 200})
		op.GeoM.Translate(x, y)
		screen.DrawImage(o.mapImg, op)
	}
}

func (o *Overlay) drawInfo(screen *ebiten.Image) {
	snap := o.src.Parameters()
	if len(snap.Groups) == 0 {
		return
	}
	face := basicfont.Face7x13
	y := 18
	for _, p := range snap.Groups[0].Params {
		text.Draw(screen, p.Label+": "+p.Value, face, 8, y, color.RGBA{R: 200, G: 210, B: 220, A: 255})
		y += 15
	}
	ebitenutil.DebugPrintAt(screen, "1/2/3 archetype  S reseed  R regen  M map  I info", 8, screen.Bounds().Dy()-mapH-32)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
