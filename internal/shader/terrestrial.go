package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/biome"
	"planet-synth/internal/noise"
)

// Terrestrial surface slot names.
const (
	ColorWater        = "colorWater"
	ColorOceanDeep    = "colorOceanDeep"
	ColorLand         = "colorLand"
	ColorDesert       = "colorDesert"
	ColorIce          = "colorIce"
	WaterLevel        = "waterLevel"
	AtmosphereDensity = "atmosphereDensity"
)

var (
	terrestrialUniforms = []string{
		SunDirection, Seed, ColorWater, ColorOceanDeep, ColorLand,
		ColorDesert, ColorIce, WaterLevel, AtmosphereDensity,
	}
	skyColor = mgl64.Vec3{0.4, 0.7, 1.0}
)

const (
	terrestrialAmbient = 0.05
	shininess          = 32.0
)

// Terrestrial shades the biome-classified surface of an earth-like world.
type Terrestrial struct {
	noise *noise.Field
}

// NewTerrestrial builds the program over a noise field (nil uses the default).
func NewTerrestrial(n *noise.Field) *Terrestrial {
	if n == nil {
		n = noise.Default()
	}
	return &Terrestrial{noise: n}
}

func (p *Terrestrial) Name() string { return "terrestrial" }

func (p *Terrestrial) Uniforms() []string { return append([]string(nil), terrestrialUniforms...) }

func (p *Terrestrial) Vertex(in VertexIn, _ *Table) Varyings { return passthrough(in) }

// Classifier binds the table's seed, water level and palette.
func (p *Terrestrial) Classifier(t *Table) biome.Classifier {
	return biome.Classifier{
		Noise:      p.noise,
		Seed:       t.Vec3(Seed),
		WaterLevel: t.Float(WaterLevel),
		Palette: biome.Palette{
			Water:     t.Vec3(ColorWater),
			OceanDeep: t.Vec3(ColorOceanDeep),
			Land:      t.Vec3(ColorLand),
			Desert:    t.Vec3(ColorDesert),
			Ice:       t.Vec3(ColorIce),
		},
	}
}

func (p *Terrestrial) Fragment(in FragmentIn, t *Table) Color {
	res := p.Classifier(t).At(in.ObjectPos)

	sun := t.Vec3(SunDirection).Normalize()
	n := in.WorldNormal
	view := viewDir(in)
	diff := math.Max(n.Dot(sun), 0)
	spec := math.Pow(math.Max(view.Dot(reflect(sun.Mul(-1), n)), 0), shininess)

	rgb := res.Color.Mul(terrestrialAmbient + diff).Add(mgl64.Vec3{1, 1, 1}.Mul(spec * res.Specular))
	if atmo := t.Float(AtmosphereDensity); atmo > 0 {
		fresnel := math.Pow(1-clamp(view.Dot(n), 0, 1), 3)
		rgb = rgb.Add(skyColor.Mul(fresnel * atmo))
	}
	return Color{RGB: rgb, Alpha: 1}
}
