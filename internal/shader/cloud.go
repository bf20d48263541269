package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/noise"
)

// CloudDensity is the cloud-shell coverage slot.
const CloudDensity = "cloudDensity"

var cloudUniforms = []string{Time, Seed, CloudDensity}

// Cloud shades the translucent shell around a terrestrial planet.
type Cloud struct {
	noise *noise.Field
}

// NewCloud builds the program over a noise field (nil uses the default).
func NewCloud(n *noise.Field) *Cloud {
	if n == nil {
		n = noise.Default()
	}
	return &Cloud{noise: n}
}

func (c *Cloud) Name() string { return "cloud" }

func (c *Cloud) Uniforms() []string { return append([]string(nil), cloudUniforms...) }

func (c *Cloud) Vertex(in VertexIn, _ *Table) Varyings { return passthrough(in) }

// Coverage returns the cloud alpha at an object-space point.
func (c *Cloud) Coverage(p mgl64.Vec3, t *Table) float64 {
	drift := mgl64.Vec3{t.Float(Time) * 0.02, 0, 0}
	n := c.noise.FBM(p.Mul(1.5).Add(t.Vec3(Seed)).Add(drift))
	threshold := 0.6 - t.Float(CloudDensity)*0.6
	return noise.Smoothstep(threshold, threshold+0.1, n)
}

func (c *Cloud) Fragment(in FragmentIn, t *Table) Color {
	diff := math.Max(in.WorldNormal.Dot(SunDir), 0)
	rgb := mgl64.Vec3{0.95, 0.95, 0.95}.Mul(0.3 + diff*0.7)
	return Color{RGB: rgb, Alpha: c.Coverage(in.ObjectPos, t)}
}
