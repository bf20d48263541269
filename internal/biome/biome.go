// Package biome classifies terrestrial surface samples into color bands.
package biome

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/noise"
)

// Kind enumerates the bands the classifier can return.
type Kind uint8

const (
	Ocean Kind = iota
	Shore
	Ice
	Tundra
	Desert
	Vegetation
	Rock
	Snowcap
)

func (k Kind) String() string {
	switch k {
	case Ocean:
		return "ocean"
	case Shore:
		return "shore"
	case Ice:
		return "ice"
	case Tundra:
		return "tundra"
	case Desert:
		return "desert"
	case Vegetation:
		return "vegetation"
	case Rock:
		return "rock"
	case Snowcap:
		return "snowcap"
	default:
		return "unknown"
	}
}

// Specular strengths per band.
const (
	SpecularOcean = 1.0
	SpecularShore = 0.2
	SpecularIce   = 0.4
)

const (
	shoreBand     = 0.05
	iceTemp       = 0.15
	tundraTemp    = 0.3
	dryMoisture   = -0.2
	rockHeight    = 0.65
	capHeight     = 0.85
	capMaxTemp    = 0.8
	jungleShade   = 0.6
	tundraGrey    = 0.5
	rockGrey      = 0.3
	rockBlend     = 0.8
	depthScale    = 2.0
	moistureShift = 10.0
)

// Palette is the set of base colors the classifier blends between.
type Palette struct {
	Water     mgl64.Vec3
	OceanDeep mgl64.Vec3
	Land      mgl64.Vec3
	Desert    mgl64.Vec3
	Ice       mgl64.Vec3
}

var (
	earthWater  = mgl64.Vec3{0.0, 0.3, 0.6}
	earthLand   = mgl64.Vec3{0.1, 0.45, 0.1}
	earthDesert = mgl64.Vec3{0.75, 0.65, 0.4}
	alienWater  = mgl64.Vec3{0.6, 0.2, 0.6}
	alienLand   = mgl64.Vec3{0.5, 0.1, 0.1}
	alienDesert = mgl64.Vec3{0.8, 0.4, 0.2}
	iceColor    = mgl64.Vec3{0.95, 0.95, 1.0}
)

// AlienChance is the probability a terrestrial planet gets the alien palette.
const AlienChance = 0.2

// IsAlien turns one uniform draw into the alien-palette decision.
func IsAlien(draw float64) bool { return draw > 1-AlienChance }

// NewPalette returns the earth-like or alien palette. Deep ocean is the water
// color at half brightness.
func NewPalette(alien bool) Palette {
	water, land, desert := earthWater, earthLand, earthDesert
	if alien {
		water, land, desert = alienWater, alienLand, alienDesert
	}
	return Palette{
		Water:     water,
		OceanDeep: water.Mul(0.5),
		Land:      land,
		Desert:    desert,
		Ice:       iceColor,
	}
}

// Inputs are the per-sample scalars the cascade works on.
type Inputs struct {
	Height      float64
	Temperature float64
	Moisture    float64
}

// Result is a classified sample.
type Result struct {
	Kind     Kind
	Color    mgl64.Vec3
	Specular float64
}

// Sample draws the classifier inputs for unit-sphere position p.
func Sample(f *noise.Field, p, seed mgl64.Vec3) Inputs {
	lat := math.Abs(p[1])
	base := f.FBM(p.Mul(2).Add(seed))
	detail := f.FBM(p.Mul(10).Add(seed))
	temp := (1 - lat) + f.Snoise(p.Mul(3).Add(seed))*0.2
	shift := mgl64.Vec3{moistureShift, moistureShift, moistureShift}
	moisture := math.Cos(lat*6) + f.Snoise(p.Mul(4).Add(seed).Add(shift))
	return Inputs{
		Height:      base + detail*0.1,
		Temperature: temp,
		Moisture:    moisture,
	}
}

// Classify runs the ordered cascade. Earlier rules win; the vegetation branch
// may still be overridden by altitude.
func Classify(in Inputs, waterLevel float64, pal Palette) Result {
	if in.Height < waterLevel {
		depth := clamp01((waterLevel - in.Height) * depthScale)
		return Result{Kind: Ocean, Color: mix(pal.Water, pal.OceanDeep, depth), Specular: SpecularOcean}
	}
	if in.Height < waterLevel+shoreBand {
		return Result{Kind: Shore, Color: pal.Desert, Specular: SpecularShore}
	}
	switch {
	case in.Temperature < iceTemp:
		return Result{Kind: Ice, Color: pal.Ice, Specular: SpecularIce}
	case in.Temperature < tundraTemp:
		return Result{Kind: Tundra, Color: mix(pal.Land, grey(tundraGrey), 0.5)}
	case in.Moisture < dryMoisture:
		return Result{Kind: Desert, Color: pal.Desert}
	}

	res := Result{Kind: Vegetation}
	jungle := pal.Land.Mul(jungleShade)
	res.Color = mix(pal.Land, jungle, noise.Smoothstep(0, 1, in.Moisture))
	if in.Height > rockHeight {
		res.Kind = Rock
		res.Color = mix(res.Color, grey(rockGrey), rockBlend)
	}
	if in.Height > capHeight && in.Temperature < capMaxTemp {
		res.Kind = Snowcap
		res.Color = pal.Ice
	}
	return res
}

// Classifier binds a noise field, seed and palette for repeated lookups.
type Classifier struct {
	Noise      *noise.Field
	Seed       mgl64.Vec3
	WaterLevel float64
	Palette    Palette
}

// At classifies the unit-sphere position p.
func (c Classifier) At(p mgl64.Vec3) Result {
	f := c.Noise
	if f == nil {
		f = noise.Default()
	}
	return Classify(Sample(f, p, c.Seed), c.WaterLevel, c.Palette)
}

func mix(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func grey(v float64) mgl64.Vec3 { return mgl64.Vec3{v, v, v} }

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
