package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphereGrid stores one float per cell of an equirectangular (longitude by
// latitude) grid over the unit sphere, in row-major order. Row 0 is the
// north pole.
type SphereGrid struct {
	W, H int
	data []float64
}

// NewSphereGrid allocates a grid with the given dimensions.
func NewSphereGrid(w, h int) *SphereGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &SphereGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *SphereGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *SphereGrid) Index(x, y int) int { return y*g.W + x }

// Wrap wraps x around the longitude seam and clamps y at the poles.
func (g *SphereGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	if y < 0 {
		y = 0
	}
	if y >= g.H {
		y = g.H - 1
	}
	return x, y
}

// Point returns the unit-sphere position at the centre of cell (x, y).
func (g *SphereGrid) Point(x, y int) mgl64.Vec3 {
	lon := (float64(x)+0.5)/float64(g.W)*2*math.Pi - math.Pi
	lat := math.Pi/2 - (float64(y)+0.5)/float64(g.H)*math.Pi
	c := math.Cos(lat)
	return mgl64.Vec3{c * math.Sin(lon), math.Sin(lat), c * math.Cos(lon)}
}

// Fill evaluates f at every cell centre.
func (g *SphereGrid) Fill(f func(p mgl64.Vec3) float64) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.data[g.Index(x, y)] = f(g.Point(x, y))
		}
	}
}

// Range returns the smallest and largest stored values.
func (g *SphereGrid) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Clear fills the grid with zeros.
func (g *SphereGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
