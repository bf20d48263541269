package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// toRGBA clamps a linear color into 8-bit channels.
func toRGBA(rgb mgl64.Vec3) color.RGBA {
	return color.RGBA{R: channel(rgb[0]), G: channel(rgb[1]), B: channel(rgb[2]), A: 255}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// luminance returns the Rec. 709 luma of an 8-bit color in [0,1].
func luminance(c color.RGBA) float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

// blend composites src over dst with alpha a.
func blend(dst, src mgl64.Vec3, a float64) mgl64.Vec3 {
	if a <= 0 {
		return dst
	}
	if a >= 1 {
		return src
	}
	return dst.Mul(1 - a).Add(src.Mul(a))
}
