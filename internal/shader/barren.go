package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/noise"
	"planet-synth/internal/terrain"
)

// Barren slot names.
const (
	ColorRock            = "colorRock"
	ColorCraters         = "colorCraters"
	CraterLargeDensity   = "craterLargeDensity"
	CraterLargeDepth     = "craterLargeDepth"
	CraterMedDensity     = "craterMedDensity"
	CraterMedDepth       = "craterMedDepth"
	BaseBumpiness        = "baseBumpiness"
	GrainStrength        = "grainStrength"
	GrainFrequency       = "grainFrequency"
	DisplacementStrength = "displacementStrength"
	NormalStrength       = "normalStrength"
	SurfaceGrit          = "surfaceGrit"
	AmbientLight         = "ambientLight"
)

const gritFrequency = 80.0

var barrenUniforms = []string{
	SunDirection, Seed, ColorRock, ColorCraters,
	CraterLargeDensity, CraterLargeDepth, CraterMedDensity, CraterMedDepth,
	BaseBumpiness, GrainStrength, GrainFrequency, DisplacementStrength,
	NormalStrength, SurfaceGrit, AmbientLight,
}

// Barren shades cratered airless bodies. The vertex stage displaces the
// silhouette; the fragment stage re-samples the height field for micro
// normals and crater shadowing.
type Barren struct {
	noise  *noise.Field
	height terrain.Field
}

// NewBarren builds the program over a noise field (nil uses the default).
func NewBarren(n *noise.Field) *Barren {
	if n == nil {
		n = noise.Default()
	}
	return &Barren{noise: n, height: terrain.NewField(n)}
}

func (b *Barren) Name() string { return "barren" }

func (b *Barren) Uniforms() []string { return append([]string(nil), barrenUniforms...) }

// TerrainParams reads the height-field inputs from a table.
func TerrainParams(t *Table) terrain.Params {
	return terrain.Params{
		Seed:                 t.Vec3(Seed),
		CraterLargeDensity:   t.Float(CraterLargeDensity),
		CraterLargeDepth:     t.Float(CraterLargeDepth),
		CraterMedDensity:     t.Float(CraterMedDensity),
		CraterMedDepth:       t.Float(CraterMedDepth),
		BaseBumpiness:        t.Float(BaseBumpiness),
		GrainStrength:        t.Float(GrainStrength),
		GrainFrequency:       t.Float(GrainFrequency),
		DisplacementStrength: t.Float(DisplacementStrength),
		NormalStrength:       t.Float(NormalStrength),
	}
}

func (b *Barren) Vertex(in VertexIn, t *Table) Varyings {
	prm := TerrainParams(t)
	h := b.height.Height(in.Position, prm)
	displaced := terrain.Displace(in.Position, in.Normal, h, prm.DisplacementStrength)
	return Varyings{
		ObjectPos:   in.Position,
		Normal:      in.Normal,
		WorldNormal: in.Model.Mul3x1(in.Normal).Normalize(),
		WorldPos:    in.Model.Mul3x1(displaced),
		Displaced:   displaced,
		Height:      h,
	}
}

func (b *Barren) Fragment(in FragmentIn, t *Table) Color {
	prm := TerrainParams(t)
	sun := t.Vec3(SunDirection).Normalize()

	// Day/night follows the undisplaced sphere, never the micro normal.
	macro := math.Max(in.WorldNormal.Dot(sun), 0)

	h := in.Height
	grad := b.height.Gradient(in.ObjectPos, h, prm)
	shadow := terrain.Shadow(grad)

	isCrater := noise.Smoothstep(-0.02, 0.03, h)
	albedo := mix(t.Vec3(ColorCraters), t.Vec3(ColorRock), isCrater)

	grit := t.Float(SurfaceGrit)
	g := b.noise.Snoise(in.ObjectPos.Mul(gritFrequency).Add(prm.Seed))
	albedo = albedo.Mul((1 - grit*0.5) + grit*g)

	ambient := t.Float(AmbientLight)
	light := ambient + (1-ambient)*macro*shadow
	return Color{RGB: albedo.Mul(light), Alpha: 1}
}

// Sample evaluates the full height-field sample for an object-space point.
func (b *Barren) Sample(p mgl64.Vec3, t *Table) terrain.Sample {
	return b.height.Evaluate(p, p.Normalize(), TerrainParams(t))
}
