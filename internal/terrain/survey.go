package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/core"
)

// Stats summarises a height field sampled over a sphere grid.
type Stats struct {
	Samples int

	MinHeight  float64
	MaxHeight  float64
	MeanHeight float64

	// LargeCoverage and MedCoverage are the fractions of samples inside a
	// crater bowl of that layer.
	LargeCoverage float64
	MedCoverage   float64

	// Shadowed is the fraction of samples with Shadow < 1.
	Shadowed  float64
	MeanSlope float64
}

// Survey evaluates prm at every cell of grid and reports aggregate
// statistics. The grid receives the composite heights.
func (f Field) Survey(grid *core.SphereGrid, prm Params) Stats {
	st := Stats{MinHeight: math.Inf(1), MaxHeight: math.Inf(-1)}
	var sum, slope float64
	var large, med, shadowed int
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			p := grid.Point(x, y)
			s := f.Evaluate(p, p, prm)
			grid.Cells()[grid.Index(x, y)] = s.Height

			st.MinHeight = math.Min(st.MinHeight, s.Height)
			st.MaxHeight = math.Max(st.MaxHeight, s.Height)
			sum += s.Height
			slope += tangential(s.Gradient, p)
			if s.Layers.CratersLarge < 0 {
				large++
			}
			if s.Layers.CratersMed < 0 {
				med++
			}
			if s.Shadow < 1 {
				shadowed++
			}
		}
	}
	n := grid.W * grid.H
	st.Samples = n
	st.MeanHeight = sum / float64(n)
	st.MeanSlope = slope / float64(n)
	st.LargeCoverage = float64(large) / float64(n)
	st.MedCoverage = float64(med) / float64(n)
	st.Shadowed = float64(shadowed) / float64(n)
	return st
}

// tangential drops the radial part of g so slope measures surface relief.
func tangential(g, n mgl64.Vec3) float64 {
	return g.Sub(n.Mul(g.Dot(n))).Len()
}
