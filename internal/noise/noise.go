package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// Backend names a smooth-noise implementation.
type Backend string

const (
	// BackendSimplex uses OpenSimplex noise. It is the default.
	BackendSimplex Backend = "simplex"
	// BackendPerlin uses classic Perlin gradient noise.
	BackendPerlin Backend = "perlin"
)

// Octave defaults for FBM.
const (
	DefaultOctaves     = 4
	DefaultPersistence = 0.5
	DefaultLacunarity  = 2.0
)

// Source evaluates a smooth scalar field over R^3 in roughly [-1, 1].
type Source interface {
	Eval3(x, y, z float64) float64
}

type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Eval3(x, y, z float64) float64 { return s.p.Noise3D(x, y, z) }

// Field is an immutable noise field. Variation between planets comes from the
// seed-vector offset added to sample positions, so every Field uses a fixed
// internal seed and the same position always yields the same value.
type Field struct {
	backend     Backend
	src         Source
	octaves     int
	persistence float64
	lacunarity  float64
}

var defaultField = mustField(BackendSimplex)

// Default returns the shared simplex-backed field.
func Default() *Field { return defaultField }

// New builds a field for the named backend with default octave settings.
func New(backend Backend) (*Field, error) {
	var src Source
	switch backend {
	case BackendSimplex, "":
		backend = BackendSimplex
		src = opensimplex.New(0)
	case BackendPerlin:
		src = perlinSource{p: perlin.NewPerlin(2, 2, 1, 0)}
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
	return &Field{
		backend:     backend,
		src:         src,
		octaves:     DefaultOctaves,
		persistence: DefaultPersistence,
		lacunarity:  DefaultLacunarity,
	}, nil
}

func mustField(backend Backend) *Field {
	f, err := New(backend)
	if err != nil {
		panic(err)
	}
	return f
}

// WithOctaves returns a copy of the field using a different octave count.
func (f *Field) WithOctaves(octaves int) *Field {
	if octaves < 1 {
		octaves = 1
	}
	c := *f
	c.octaves = octaves
	return &c
}

// Backend reports which implementation backs the field.
func (f *Field) Backend() Backend { return f.backend }

// Octaves reports the FBM octave count.
func (f *Field) Octaves() int { return f.octaves }

// Snoise samples the smooth scalar field at p.
func (f *Field) Snoise(p mgl64.Vec3) float64 {
	return f.src.Eval3(p[0], p[1], p[2])
}

// FBM sums octaves of Snoise with halving amplitude and doubling frequency.
// The first octave carries amplitude 0.5 so the sum stays inside [-1, 1].
func (f *Field) FBM(p mgl64.Vec3) float64 {
	var total float64
	amplitude := 0.5
	frequency := 1.0
	for i := 0; i < f.octaves; i++ {
		total += f.Snoise(p.Mul(frequency)) * amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	return total
}
