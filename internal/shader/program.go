// Package shader holds the per-archetype vertex and fragment logic the
// rendering collaborator evaluates for every surface sample, together with the
// named parameter tables those programs read.
package shader

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Slot names shared by several programs.
const (
	SunDirection = "sunDirection"
	Seed         = "seed"
	Time         = "time"
)

// SunDir is the fixed world-space light direction.
var SunDir = mgl64.Vec3{1.0, 0.5, 1.0}.Normalize()

// VertexIn is one undisplaced vertex of a sphere mesh in object space.
type VertexIn struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	// Model rotates object space into world space.
	Model mgl64.Mat3
}

// Varyings are the per-vertex outputs handed to the fragment stage.
type Varyings struct {
	ObjectPos   mgl64.Vec3
	Normal      mgl64.Vec3
	WorldNormal mgl64.Vec3
	WorldPos    mgl64.Vec3
	// Displaced is the vertex position after displacement, in object space.
	Displaced mgl64.Vec3
	Height    float64
}

// FragmentIn is a fragment stage input.
type FragmentIn struct {
	Varyings
	Camera mgl64.Vec3
}

// Color is a linear RGB color with alpha.
type Color struct {
	RGB   mgl64.Vec3
	Alpha float64
}

// Program is a shading program: vertex and fragment logic plus the slots it
// reads. Implementations must be pure so samples can be shaded concurrently.
type Program interface {
	Name() string
	Uniforms() []string
	Vertex(in VertexIn, t *Table) Varyings
	Fragment(in FragmentIn, t *Table) Color
}

// Missing lists the uniforms p reads that t does not declare.
func Missing(p Program, t *Table) []string {
	var missing []string
	for _, name := range p.Uniforms() {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// passthrough is the vertex stage used by programs without displacement.
func passthrough(in VertexIn) Varyings {
	world := in.Model.Mul3x1(in.Position)
	return Varyings{
		ObjectPos:   in.Position,
		Normal:      in.Normal,
		WorldNormal: in.Model.Mul3x1(in.Normal).Normalize(),
		WorldPos:    world,
		Displaced:   in.Position,
	}
}

func viewDir(in FragmentIn) mgl64.Vec3 {
	d := in.Camera.Sub(in.WorldPos)
	if d.Len() == 0 {
		return in.WorldNormal
	}
	return d.Normalize()
}

func reflect(i, n mgl64.Vec3) mgl64.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func mix(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
