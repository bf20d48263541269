package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/noise"
)

// Gas giant slot names.
const (
	ColorPrimary   = "colorPrimary"
	ColorSecondary = "colorSecondary"
)

var gasUniforms = []string{SunDirection, Seed, Time, ColorPrimary, ColorSecondary}

// Gas shades banded gas giants: noise stretched along latitude and drifting
// with time.
type Gas struct {
	noise *noise.Field
}

// NewGas builds the program over a noise field (nil uses the default).
func NewGas(n *noise.Field) *Gas {
	if n == nil {
		n = noise.Default()
	}
	return &Gas{noise: n}
}

func (g *Gas) Name() string { return "gas" }

func (g *Gas) Uniforms() []string { return append([]string(nil), gasUniforms...) }

func (g *Gas) Vertex(in VertexIn, _ *Table) Varyings { return passthrough(in) }

// Band returns the primary/secondary blend factor at an object-space point.
func (g *Gas) Band(p mgl64.Vec3, t *Table) float64 {
	stretched := mgl64.Vec3{p[0] * 0.5, p[1] * 10, p[2]}
	drift := mgl64.Vec3{t.Float(Time) * 0.1, 0, 0}
	return g.noise.FBM(stretched.Add(t.Vec3(Seed)).Add(drift))
}

func (g *Gas) Fragment(in FragmentIn, t *Table) Color {
	color := mix(t.Vec3(ColorPrimary), t.Vec3(ColorSecondary), g.Band(in.ObjectPos, t))
	sun := t.Vec3(SunDirection).Normalize()
	diff := math.Max(in.WorldNormal.Dot(sun), 0)*0.8 + 0.2
	fresnel := math.Pow(1-clamp(viewDir(in).Dot(in.WorldNormal), 0, 1), 2)
	rgb := color.Mul(diff).Add(color.Mul(fresnel * 0.5))
	return Color{RGB: rgb, Alpha: 1}
}
