package app

import (
	"errors"
	"math"
	"testing"

	"planet-synth/internal/core"
	"planet-synth/internal/planet"
	"planet-synth/internal/render"
	"planet-synth/internal/shader"
)

func newSession(t *testing.T) (*Session, *render.Store) {
	t.Helper()
	store := render.NewStore(nil)
	s := NewSession(planet.DefaultDefaults(), store, nil, nil)
	if err := s.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return s, store
}

func TestSessionStartsWithDefaults(t *testing.T) {
	s, store := newSession(t)
	if s.Archetype() != planet.Barren || s.Seed() != 12345 {
		t.Fatalf("archetype %s seed %d", s.Archetype(), s.Seed())
	}
	if m, n := store.Live(); m != 1 || n != 1 {
		t.Fatalf("live = %d, %d", m, n)
	}
	if s.Title() != "Barren #12345" {
		t.Fatalf("title = %q", s.Title())
	}
}

func TestSessionSwitchDisposesPrevious(t *testing.T) {
	s, store := newSession(t)
	old := s.Variant()
	if err := s.SwitchArchetype(planet.Terrestrial); err != nil {
		t.Fatalf("SwitchArchetype: %v", err)
	}
	if old.State() != planet.Disposed {
		t.Fatalf("old variant state = %s", old.State())
	}
	if m, n := store.Live(); m != 2 || n != 2 {
		t.Fatalf("live = %d, %d, want surface + clouds", m, n)
	}
	if store.Released() != 1 {
		t.Fatalf("released = %d", store.Released())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if m, n := store.Live(); m != 0 || n != 0 {
		t.Fatalf("leak after Close: %d, %d", m, n)
	}
}

func TestSessionReseedIsDeterministic(t *testing.T) {
	a, _ := newSession(t)
	b, _ := newSession(t)
	for i := 0; i < 5; i++ {
		if err := a.Reseed(); err != nil {
			t.Fatal(err)
		}
		if err := b.Reseed(); err != nil {
			t.Fatal(err)
		}
		if a.Seed() != b.Seed() {
			t.Fatalf("reseed %d diverged: %d vs %d", i, a.Seed(), b.Seed())
		}
		if a.Seed() < 0 || a.Seed() >= ReseedRange {
			t.Fatalf("seed %d out of range", a.Seed())
		}
	}
	rng := core.NewSeededRandom(12345)
	want := int64(math.Floor(rng.Draw() * ReseedRange))
	c, _ := newSession(t)
	if err := c.Reseed(); err != nil {
		t.Fatal(err)
	}
	if c.Seed() != want {
		t.Fatalf("first reseed = %d, want %d", c.Seed(), want)
	}
}

func TestSessionParamsRememberedPerArchetype(t *testing.T) {
	s, _ := newSession(t)
	if !s.SetFloatParameter(planet.KeyCraterLargeDepth, 0.3) {
		t.Fatalf("barren key rejected")
	}
	if got := s.Variant().Shells()[0].Table.Float(shader.CraterLargeDepth); got != 0.3 {
		t.Fatalf("slot = %v, want 0.3", got)
	}
	if s.SetFloatParameter(planet.KeyWaterLevel, 0.5) {
		t.Fatalf("terrestrial key accepted while barren is active")
	}

	if err := s.SwitchArchetype(planet.Terrestrial); err != nil {
		t.Fatal(err)
	}
	if !s.SetFloatParameter(planet.KeyWaterLevel, 0.2) {
		t.Fatalf("waterLevel rejected")
	}
	if err := s.SwitchArchetype(planet.Barren); err != nil {
		t.Fatal(err)
	}
	if got := s.Variant().Shells()[0].Table.Float(shader.CraterLargeDepth); got != 0.3 {
		t.Fatalf("barren param forgotten: %v", got)
	}
	if got := s.Params(planet.Terrestrial)[planet.KeyWaterLevel].Float(); got != 0.2 {
		t.Fatalf("terrestrial param forgotten: %v", got)
	}
}

func TestSessionRotationSpeedShared(t *testing.T) {
	s, _ := newSession(t)
	if !s.SetFloatParameter(planet.KeyRotationSpeed, 0.2) {
		t.Fatalf("rotationSpeed rejected")
	}
	if err := s.SwitchArchetype(planet.Gas); err != nil {
		t.Fatal(err)
	}
	if err := s.Tick(5); err != nil {
		t.Fatal(err)
	}
	if got := s.Variant().Shells()[0].RotationY; math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("gas rotation = %v, want 1.0", got)
	}
}

func TestSessionOutOfRangeStillGenerates(t *testing.T) {
	s, _ := newSession(t)
	s.SetFloatParameter(planet.KeyNormalStrength, 50)
	if err := s.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := s.Variant().Shells()[0].Table.Float(shader.NormalStrength); got != 50 {
		t.Fatalf("normalStrength = %v", got)
	}
}

func TestSessionControlsFollowArchetype(t *testing.T) {
	s, _ := newSession(t)
	if got := len(s.ParameterControls()); got != 12 {
		t.Fatalf("barren controls = %d", got)
	}
	if err := s.SwitchArchetype(planet.Gas); err != nil {
		t.Fatal(err)
	}
	ctrls := s.ParameterControls()
	if len(ctrls) != 1 || ctrls[0].Key != planet.KeyRotationSpeed {
		t.Fatalf("gas controls = %+v", ctrls)
	}
	snap := s.Parameters()
	if p, ok := snap.Lookup("seed"); !ok || p.Value != "12345" {
		t.Fatalf("seed param = %+v", p)
	}
	if p, ok := snap.Lookup(planet.KeyRotationSpeed); !ok || p.Value != "0.05" {
		t.Fatalf("rotationSpeed param = %+v", p)
	}
}

type refusingCollaborator struct{ *render.Store }

func (refusingCollaborator) RequestSphere(float64, int) (render.MeshHandle, error) {
	return 0, errors.New("no device")
}

func TestSessionGenerateFailure(t *testing.T) {
	s := NewSession(planet.DefaultDefaults(), refusingCollaborator{render.NewStore(nil)}, nil, nil)
	err := s.Generate()
	if planet.KindOf(err) != planet.KindCollaboratorFailure {
		t.Fatalf("err = %v", err)
	}
	if s.Variant() != nil || s.Objects() != nil {
		t.Fatalf("failed generate left a variant")
	}
	if err := s.Tick(1); err != nil {
		t.Fatalf("Tick without variant: %v", err)
	}
}

func TestSurfaceMap(t *testing.T) {
	s, _ := newSession(t)
	for _, a := range planet.Archetypes() {
		if err := s.SwitchArchetype(a); err != nil {
			t.Fatal(err)
		}
		img, ok := s.SurfaceMap(16, 8)
		if !ok {
			t.Fatalf("%s: no surface map", a)
		}
		if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
			t.Fatalf("%s: bounds %v", a, b)
		}
		distinct := map[uint32]bool{}
		for _, px := range img.Pix {
			distinct[uint32(px)] = true
		}
		if len(distinct) < 3 {
			t.Fatalf("%s: surface map is flat", a)
		}
	}
}
