package app

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/core"
	"planet-synth/internal/planet"
	"planet-synth/internal/shader"
)

// SurfaceMap renders the live planet's unlit surface as an equirectangular
// w*h image: crater height for barren worlds, biome colors for terrestrial
// ones, band colors for gas giants. It reports false before Generate.
func (s *Session) SurfaceMap(w, h int) (*image.RGBA, bool) {
	if s.current == nil {
		return nil, false
	}
	shells := s.current.Shells()
	if len(shells) == 0 {
		return nil, false
	}
	t := shells[0].Table
	grid := core.NewSphereGrid(w, h)
	img := image.NewRGBA(image.Rect(0, 0, grid.W, grid.H))

	var albedo func(p mgl64.Vec3) mgl64.Vec3
	switch s.current.Archetype() {
	case planet.Barren:
		prog := shader.NewBarren(s.noise)
		grid.Fill(func(p mgl64.Vec3) float64 { return prog.Sample(p, t).Height })
		lo, hi := grid.Range()
		span := hi - lo
		if span <= 0 {
			span = 1
		}
		rock := t.Vec3(shader.ColorRock)
		for y := 0; y < grid.H; y++ {
			for x := 0; x < grid.W; x++ {
				v := (grid.Cells()[grid.Index(x, y)] - lo) / span
				img.SetRGBA(x, y, rgba(rock.Mul(0.25+0.75*v)))
			}
		}
		return img, true
	case planet.Terrestrial:
		cls := shader.NewTerrestrial(s.noise).Classifier(t)
		albedo = func(p mgl64.Vec3) mgl64.Vec3 { return cls.At(p).Color }
	case planet.Gas:
		prog := shader.NewGas(s.noise)
		a, b := t.Vec3(shader.ColorPrimary), t.Vec3(shader.ColorSecondary)
		albedo = func(p mgl64.Vec3) mgl64.Vec3 {
			k := prog.Band(p, t)
			return a.Mul(1 - k).Add(b.Mul(k))
		}
	default:
		return nil, false
	}
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			img.SetRGBA(x, y, rgba(albedo(grid.Point(x, y))))
		}
	}
	return img, true
}

func rgba(c mgl64.Vec3) color.RGBA {
	ch := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 255}
}
