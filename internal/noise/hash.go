package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// hashScale and hashBias are fixed; changing them changes every crater layout.
var hashScale = mgl64.Vec3{0.1031, 0.1030, 0.0973}

const hashBias = 33.33

// Hash33 scrambles a 3-vector into a pseudo-random vector in [0,1)^3.
func Hash33(p mgl64.Vec3) mgl64.Vec3 {
	p3 := Fract3(mgl64.Vec3{p[0] * hashScale[0], p[1] * hashScale[1], p[2] * hashScale[2]})
	d := p3.Dot(mgl64.Vec3{p3[1] + hashBias, p3[0] + hashBias, p3[2] + hashBias})
	p3 = mgl64.Vec3{p3[0] + d, p3[1] + d, p3[2] + d}
	return Fract3(mgl64.Vec3{
		(p3[0] + p3[1]) * p3[2],
		(p3[0] + p3[0]) * p3[1],
		(p3[1] + p3[0]) * p3[0],
	})
}

// Fract returns x - floor(x).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Fract3 applies Fract per component.
func Fract3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{Fract(v[0]), Fract(v[1]), Fract(v[2])}
}

// Floor3 applies math.Floor per component.
func Floor3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Floor(v[0]), math.Floor(v[1]), math.Floor(v[2])}
}

// Smoothstep is the GLSL smoothstep. edge0 may exceed edge1 to build an
// inverted ramp.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
