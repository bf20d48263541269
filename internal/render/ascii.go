package render

import (
	"image"
	"strings"
)

const asciiRamp = " .:-=+*#%@"

// ASCII turns a shaded frame into a character preview, one rune per pixel.
// Callers usually render at half the vertical resolution to compensate for
// terminal cell aspect.
func ASCII(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow((b.Dx() + 1) * b.Dy())
	last := len(asciiRamp) - 1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			l := luminance(img.RGBAAt(x, y))
			idx := int(l*float64(last) + 0.5)
			if idx > last {
				idx = last
			}
			sb.WriteByte(asciiRamp[idx])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
