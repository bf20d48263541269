// Package crater stamps bowl-and-rim craters onto a sphere using a jittered
// cellular partition of space.
package crater

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/noise"
)

const (
	// Jitter controls how far a feature point may wander from its cell corner.
	Jitter = 0.8

	// SparsityThreshold suppresses craters in cells whose id exceeds it.
	SparsityThreshold = 0.5

	rimWidth   = 0.1
	rimHeight  = 0.25
	bowlDepth  = 0.6
	baseRadius = 0.3
	radiusSpan = 0.2
)

// MediumOffset decorrelates the medium crater layer from the large one.
var MediumOffset = mgl64.Vec3{12.3, 12.3, 12.3}

// Cell is the result of a cellular lookup.
type Cell struct {
	Distance float64
	ID       float64
}

// Populated reports whether the cell passes the sparsity filter.
func (c Cell) Populated() bool { return c.ID <= SparsityThreshold }

// Cellular finds the nearest jittered feature point among the 27 cells
// surrounding p and returns the distance to it plus the winner's random id.
func Cellular(p mgl64.Vec3) Cell {
	pi := noise.Floor3(p)
	pf := p.Sub(pi)

	minDist := 10.0
	id := 0.0
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				n := mgl64.Vec3{float64(i), float64(j), float64(k)}
				offset := noise.Hash33(pi.Add(n))
				center := n.Add(offset.Mul(Jitter))
				d := pf.Sub(center)
				if dist := d.Dot(d); dist < minDist {
					minDist = dist
					id = offset[0]
				}
			}
		}
	}
	return Cell{Distance: math.Sqrt(minDist), ID: id}
}

// Height returns the crater profile at p. Density scales the cell grid, so
// higher values give smaller, more numerous craters; size scales each
// crater's radius. The result is rim*0.25 - bowl*0.6.
func Height(p mgl64.Vec3, density, size float64) float64 {
	c := Cellular(p.Mul(density))
	return Profile(c, size)
}

// Profile shapes a crater from a cellular lookup.
func Profile(c Cell, size float64) float64 {
	if !c.Populated() {
		return 0
	}
	radius := (baseRadius + c.ID*radiusSpan) * size
	bowl := noise.Smoothstep(radius, 0, c.Distance)
	rim := noise.Smoothstep(radius+rimWidth, radius, c.Distance) * noise.Smoothstep(radius-rimWidth, radius, c.Distance)
	return rim*rimHeight - bowl*bowlDepth
}
