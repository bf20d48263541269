// Package terrain composes noise and crater layers into a height field over
// the unit sphere and derives lighting inputs from it.
package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/crater"
	"planet-synth/internal/noise"
)

// Epsilon is the forward-difference step used for the micro normal.
const Epsilon = 0.001

// Params are the height-field inputs shared by the vertex and fragment stages.
type Params struct {
	Seed mgl64.Vec3

	CraterLargeDensity float64
	CraterLargeDepth   float64
	CraterMedDensity   float64
	CraterMedDepth     float64

	BaseBumpiness  float64
	GrainStrength  float64
	GrainFrequency float64

	DisplacementStrength float64
	NormalStrength       float64
}

// Layers holds the individual contributions that make up a height sample.
type Layers struct {
	Base         float64
	CratersLarge float64
	CratersMed   float64
	Grain        float64
}

// Total sums the layers.
func (l Layers) Total() float64 {
	return l.Base + l.CratersLarge + l.CratersMed + l.Grain
}

// Sample is everything derived for one surface point.
type Sample struct {
	Position        mgl64.Vec3
	Layers          Layers
	Height          float64
	Gradient        mgl64.Vec3
	PerturbedNormal mgl64.Vec3
	Shadow          float64
}

// Field evaluates heights with a specific noise field.
type Field struct {
	noise *noise.Field
}

// NewField wraps a noise field. A nil field falls back to noise.Default().
func NewField(n *noise.Field) Field {
	if n == nil {
		n = noise.Default()
	}
	return Field{noise: n}
}

// Layers evaluates each contribution at p.
func (f Field) Layers(p mgl64.Vec3, prm Params) Layers {
	ps := p.Add(prm.Seed)
	return Layers{
		Base:         f.noise.FBM(ps) * prm.BaseBumpiness,
		CratersLarge: crater.Height(ps, prm.CraterLargeDensity, 1) * prm.CraterLargeDepth,
		CratersMed:   crater.Height(ps.Add(crater.MediumOffset), prm.CraterMedDensity, 1) * prm.CraterMedDepth,
		Grain:        f.noise.Snoise(p.Mul(prm.GrainFrequency).Add(prm.Seed)) * prm.GrainStrength,
	}
}

// Height returns the composite height at p.
func (f Field) Height(p mgl64.Vec3, prm Params) float64 {
	return f.Layers(p, prm).Total()
}

// Gradient estimates the height gradient at p by forward differences, given
// the already computed height h at p.
func (f Field) Gradient(p mgl64.Vec3, h float64, prm Params) mgl64.Vec3 {
	hx := f.Height(p.Add(mgl64.Vec3{Epsilon, 0, 0}), prm)
	hy := f.Height(p.Add(mgl64.Vec3{0, Epsilon, 0}), prm)
	hz := f.Height(p.Add(mgl64.Vec3{0, 0, Epsilon}), prm)
	return mgl64.Vec3{hx - h, hy - h, hz - h}.Mul(1 / Epsilon)
}

// Evaluate computes a full sample at p with base normal n.
func (f Field) Evaluate(p, n mgl64.Vec3, prm Params) Sample {
	layers := f.Layers(p, prm)
	h := layers.Total()
	g := f.Gradient(p, h, prm)
	return Sample{
		Position:        p,
		Layers:          layers,
		Height:          h,
		Gradient:        g,
		PerturbedNormal: PerturbNormal(n, g, prm.NormalStrength),
		Shadow:          Shadow(g),
	}
}

// Displace offsets p along n by height*strength.
func Displace(p, n mgl64.Vec3, height, strength float64) mgl64.Vec3 {
	return p.Add(n.Mul(height * strength))
}

// PerturbNormal tilts n against the gradient. A zero-length result falls back
// to n.
func PerturbNormal(n, gradient mgl64.Vec3, strength float64) mgl64.Vec3 {
	v := n.Sub(gradient.Mul(strength))
	if v.Len() == 0 {
		return n
	}
	return v.Normalize()
}

// Shadow dims steep crater walls: 1 - clamp(|gradient|*2, 0, 0.5).
func Shadow(gradient mgl64.Vec3) float64 {
	return 1 - math.Min(math.Max(gradient.Len()*2, 0), 0.5)
}
