// Package render is the rendering collaborator the planet core configures:
// it owns mesh and material resources and shades submitted objects.
package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"planet-synth/internal/shader"
)

// MeshHandle identifies a sphere mesh owned by a Collaborator.
type MeshHandle uint32

// MaterialHandle identifies a bound material owned by a Collaborator.
type MaterialHandle uint32

var (
	// ErrUnknownHandle is returned for handles that were never issued or were
	// already released.
	ErrUnknownHandle = errors.New("unknown or released handle")
	// ErrInvalidMesh is returned for non-positive radii or tessellation.
	ErrInvalidMesh = errors.New("invalid sphere request")
	// ErrProgramRejected is returned when a program cannot be bound.
	ErrProgramRejected = errors.New("program rejected")
)

// MaterialOptions carry blend state.
type MaterialOptions struct {
	Transparent bool
}

// Sphere is a tessellated sphere mesh.
type Sphere struct {
	Radius   float64
	Segments int
}

// Material pairs a program with the parameter table it reads. The table is
// shared with the owner, so slot writes are visible on the next draw.
type Material struct {
	Program shader.Program
	Params  *shader.Table
	MaterialOptions
}

// Object is one mesh+material pair submitted for drawing.
type Object struct {
	Mesh      MeshHandle
	Material  MaterialHandle
	RotationY float64
	Visible   bool
}

// Collaborator allocates and releases the resources a planet draws with.
type Collaborator interface {
	RequestSphere(radius float64, segments int) (MeshHandle, error)
	BindMaterial(p shader.Program, t *shader.Table, opts MaterialOptions) (MaterialHandle, error)
	Release(mesh MeshHandle, material MaterialHandle) error
}

// Store is an in-memory Collaborator. It tracks live resources so leaks and
// double releases are observable.
type Store struct {
	mu        sync.Mutex
	next      uint32
	meshes    map[MeshHandle]Sphere
	materials map[MaterialHandle]Material
	released  int
	log       *slog.Logger
}

// NewStore returns an empty store. A nil logger discards output.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		meshes:    map[MeshHandle]Sphere{},
		materials: map[MaterialHandle]Material{},
		log:       log.With("component", "render"),
	}
}

// RequestSphere allocates a sphere mesh.
func (s *Store) RequestSphere(radius float64, segments int) (MeshHandle, error) {
	if radius <= 0 || segments < 3 {
		return 0, fmt.Errorf("%w: radius %g segments %d", ErrInvalidMesh, radius, segments)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	h := MeshHandle(s.next)
	s.meshes[h] = Sphere{Radius: radius, Segments: segments}
	s.log.Debug("mesh allocated", "mesh", h, "radius", radius, "segments", segments)
	return h, nil
}

// BindMaterial validates that t declares every uniform p reads.
func (s *Store) BindMaterial(p shader.Program, t *shader.Table, opts MaterialOptions) (MaterialHandle, error) {
	if p == nil || t == nil {
		return 0, fmt.Errorf("%w: nil program or table", ErrProgramRejected)
	}
	if missing := shader.Missing(p, t); len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s missing uniforms %v", ErrProgramRejected, p.Name(), missing)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	h := MaterialHandle(s.next)
	s.materials[h] = Material{Program: p, Params: t, MaterialOptions: opts}
	s.log.Debug("material bound", "material", h, "program", p.Name())
	return h, nil
}

// Release frees a mesh and its material. A zero handle is skipped, which lets
// callers free a half-built shell; every non-zero handle must be live.
func (s *Store) Release(mesh MeshHandle, material MaterialHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mesh == 0 && material == 0 {
		return fmt.Errorf("release: %w", ErrUnknownHandle)
	}
	if _, ok := s.meshes[mesh]; mesh != 0 && !ok {
		return fmt.Errorf("release mesh %d: %w", mesh, ErrUnknownHandle)
	}
	if _, ok := s.materials[material]; material != 0 && !ok {
		return fmt.Errorf("release material %d: %w", material, ErrUnknownHandle)
	}
	delete(s.meshes, mesh)
	delete(s.materials, material)
	s.released++
	s.log.Debug("resources released", "mesh", mesh, "material", material)
	return nil
}

// Mesh looks up a live mesh.
func (s *Store) Mesh(h MeshHandle) (Sphere, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meshes[h]
	return m, ok
}

// Material looks up a live material.
func (s *Store) Material(h MaterialHandle) (Material, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[h]
	return m, ok
}

// Live reports the number of live meshes and materials.
func (s *Store) Live() (meshes, materials int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meshes), len(s.materials)
}

// Released reports how many Release calls succeeded.
func (s *Store) Released() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
