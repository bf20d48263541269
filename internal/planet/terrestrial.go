package planet

import (
	"planet-synth/internal/biome"
	"planet-synth/internal/core"
	"planet-synth/internal/render"
	"planet-synth/internal/shader"
)

// Terrestrial shell geometry.
const (
	TerrestrialSegments = 128
	CloudSegments       = 64
	CloudRadius         = 1.02
	// CloudSpin is the cloud shell's rotation relative to the surface.
	CloudSpin = 1.2
	// cloudVisibleAbove hides the shell when density is effectively zero.
	cloudVisibleAbove = 0.01
)

// TerrestrialPlanet is an earth-like world: a biome-classified surface plus a
// translucent cloud shell.
type TerrestrialPlanet struct {
	base
	alien bool
}

// Alien reports whether the alien palette was drawn.
func (p *TerrestrialPlanet) Alien() bool { return p.alien }

func (p *TerrestrialPlanet) generate(rng *core.SeededRandom) error {
	p.alien = biome.IsAlien(rng.Draw())
	pal := biome.NewPalette(p.alien)

	surface := p.newTable()
	surface.Declare(shader.ColorWater, shader.Vector(pal.Water))
	surface.Declare(shader.ColorOceanDeep, shader.Vector(pal.OceanDeep))
	surface.Declare(shader.ColorLand, shader.Vector(pal.Land))
	surface.Declare(shader.ColorDesert, shader.Vector(pal.Desert))
	surface.Declare(shader.ColorIce, shader.Vector(pal.Ice))
	surface.Declare(shader.WaterLevel, shader.Scalar(p.float(KeyWaterLevel)))
	surface.Declare(shader.AtmosphereDensity, shader.Scalar(p.float(KeyAtmosphereDensity)))
	if _, err := p.attach("surface", 1, TerrestrialSegments, shader.NewTerrestrial(p.noise), surface, render.MaterialOptions{}); err != nil {
		return err
	}
	p.bindAs(KeyWaterLevel, shader.WaterLevel)
	p.bindAs(KeyAtmosphereDensity, shader.AtmosphereDensity)

	clouds := shader.NewTable()
	clouds.Declare(shader.Time, shader.Scalar(0))
	clouds.Declare(shader.Seed, shader.Vector(p.seedVec))
	clouds.Declare(shader.CloudDensity, shader.Scalar(p.float(KeyCloudDensity)))
	shell, err := p.attach("clouds", CloudRadius, CloudSegments, shader.NewCloud(p.noise), clouds, render.MaterialOptions{Transparent: true})
	if err != nil {
		return err
	}
	shell.spin = CloudSpin
	p.bindAs(KeyCloudDensity, shader.CloudDensity)

	p.afterParams = p.syncClouds
	p.syncClouds()
	return nil
}

func (p *TerrestrialPlanet) syncClouds() {
	for _, s := range p.shells {
		if s.Name == "clouds" {
			s.Visible = s.Table.Float(shader.CloudDensity) > cloudVisibleAbove
		}
	}
}
