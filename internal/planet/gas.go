package planet

import (
	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/core"
	"planet-synth/internal/render"
	"planet-synth/internal/shader"
)

// GasSegments is the gas giant tessellation.
const GasSegments = 128

// GasPlanet is a banded gas giant. It has no tunable slots; only rotation
// speed is read from its config.
type GasPlanet struct {
	base
	primary   mgl64.Vec3
	secondary mgl64.Vec3
}

// Colors returns the two band colors drawn at generation.
func (p *GasPlanet) Colors() (primary, secondary mgl64.Vec3) {
	return p.primary, p.secondary
}

func (p *GasPlanet) generate(rng *core.SeededRandom) error {
	p.primary = mgl64.Vec3{rng.Draw(), rng.Draw(), rng.Draw()}
	p.secondary = mgl64.Vec3{rng.Draw(), rng.Draw(), rng.Draw()}

	t := p.newTable()
	t.Declare(shader.Time, shader.Scalar(0))
	t.Declare(shader.ColorPrimary, shader.Vector(p.primary))
	t.Declare(shader.ColorSecondary, shader.Vector(p.secondary))
	_, err := p.attach("surface", 1, GasSegments, shader.NewGas(p.noise), t, render.MaterialOptions{})
	return err
}
