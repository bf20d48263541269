package planet

import (
	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/core"
	"planet-synth/internal/render"
	"planet-synth/internal/shader"
)

// BarrenSegments is the barren surface tessellation; crater rims need the
// extra resolution.
const BarrenSegments = 256

var craterTint = mgl64.Vec3{0.7, 0.7, 0.8}

// barrenScalars are the config keys copied straight into same-named slots.
var barrenScalars = []string{
	KeyCraterLargeDensity, KeyCraterLargeDepth, KeyCraterMedDensity, KeyCraterMedDepth,
	KeyBaseBumpiness, KeyGrainStrength, KeyGrainFrequency, KeyDisplacementStrength,
	KeyNormalStrength, KeySurfaceGrit, KeyAmbientLight,
}

// BarrenPlanet is an airless cratered body with a single displaced surface.
type BarrenPlanet struct {
	base
	rock   mgl64.Vec3
	crater mgl64.Vec3
}

// RockColor returns the surface albedo chosen at generation.
func (p *BarrenPlanet) RockColor() mgl64.Vec3 { return p.rock }

// CraterColor returns the crater floor albedo chosen at generation.
func (p *BarrenPlanet) CraterColor() mgl64.Vec3 { return p.crater }

func (p *BarrenPlanet) generate(rng *core.SeededRandom) error {
	rock, ok := p.vector(KeyRockColor)
	if !ok {
		rock = mgl64.Vec3{rng.Range(0.6, 0.8), rng.Range(0.6, 0.7), rng.Range(0.6, 0.7)}
	}
	crater, ok := p.vector(KeyCraterColor)
	if !ok {
		crater = mgl64.Vec3{rock[0] * craterTint[0], rock[1] * craterTint[1], rock[2] * craterTint[2]}
	}
	p.rock, p.crater = rock, crater

	t := p.newTable()
	t.Declare(shader.ColorRock, shader.Vector(rock))
	t.Declare(shader.ColorCraters, shader.Vector(crater))
	for _, k := range barrenScalars {
		t.Declare(k, shader.Scalar(p.float(k)))
	}

	if _, err := p.attach("surface", 1, BarrenSegments, shader.NewBarren(p.noise), t, render.MaterialOptions{}); err != nil {
		return err
	}
	p.bind(barrenScalars...)
	p.bindAs(KeyRockColor, shader.ColorRock)
	p.bindAs(KeyCraterColor, shader.ColorCraters)
	return nil
}
