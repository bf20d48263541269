package planet

import (
	"errors"
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/core"
	"planet-synth/internal/noise"
	"planet-synth/internal/render"
	"planet-synth/internal/shader"
)

// Variant is a planet of one archetype. A variant is Unrealized until
// Generate succeeds, and every call after Dispose fails with ErrDisposed.
// Variants are not safe for concurrent use.
type Variant interface {
	Archetype() Archetype
	State() State
	Generate(cfg Config) error
	UpdateParams(partial Params) error
	Update(time float64) error
	Dispose() error

	// SeedVector is the noise offset derived from the seed.
	SeedVector() mgl64.Vec3
	// Config returns a copy of the variant's current configuration.
	Config() Config
	// Shells describes the allocated mesh/material pairs.
	Shells() []Shell
	// Objects is what the host submits to the rasterizer each frame.
	Objects() []render.Object
}

// New returns an Unrealized variant of archetype a. A nil noise field uses the
// default backend and a nil logger discards output.
func New(a Archetype, c render.Collaborator, n *noise.Field, log *slog.Logger) (Variant, error) {
	if c == nil {
		return nil, &Error{Kind: KindCollaboratorFailure, Message: "nil collaborator"}
	}
	if n == nil {
		n = noise.Default()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := base{
		archetype: a,
		collab:    c,
		noise:     n,
		log:       log.With("component", "planet", "archetype", a.String()),
	}
	switch a {
	case Barren:
		v := &BarrenPlanet{base: b}
		v.build = v.generate
		return v, nil
	case Terrestrial:
		v := &TerrestrialPlanet{base: b}
		v.build = v.generate
		return v, nil
	case Gas:
		v := &GasPlanet{base: b}
		v.build = v.generate
		return v, nil
	}
	return nil, &Error{Kind: KindUnknownParameter, Message: "unknown archetype " + a.String()}
}

// SeedVector draws the three seed-vector components, each scaled to [0, 100).
// It must be the first thing drawn from a fresh generator.
func SeedVector(rng *core.SeededRandom) mgl64.Vec3 {
	return mgl64.Vec3{rng.Draw() * 100, rng.Draw() * 100, rng.Draw() * 100}
}

// Shell is one allocated mesh plus its material and parameter table.
type Shell struct {
	Name      string
	Mesh      render.MeshHandle
	Material  render.MaterialHandle
	Table     *shader.Table
	RotationY float64
	Visible   bool

	spin float64
}

// binding routes a config key to a slot of one shell.
type binding struct {
	shell int
	slot  string
}

type base struct {
	archetype Archetype
	state     State
	cfg       Config
	seedVec   mgl64.Vec3
	shells    []*Shell
	bindings  map[string]binding

	collab render.Collaborator
	noise  *noise.Field
	log    *slog.Logger

	build func(rng *core.SeededRandom) error
	// afterParams runs after a non-empty UpdateParams has written its slots.
	afterParams func()
}

func (b *base) Archetype() Archetype { return b.archetype }

func (b *base) State() State { return b.state }

func (b *base) SeedVector() mgl64.Vec3 { return b.seedVec }

func (b *base) Config() Config { return b.cfg.Clone() }

func (b *base) Shells() []Shell {
	out := make([]Shell, len(b.shells))
	for i, s := range b.shells {
		out[i] = *s
	}
	return out
}

func (b *base) Objects() []render.Object {
	out := make([]render.Object, 0, len(b.shells))
	for _, s := range b.shells {
		out = append(out, render.Object{
			Mesh:      s.Mesh,
			Material:  s.Material,
			RotationY: s.RotationY,
			Visible:   s.Visible,
		})
	}
	return out
}

// Generate draws the seed vector and archetype colors, then allocates every
// shell. On collaborator failure everything allocated so far is released and
// the variant stays Unrealized.
func (b *base) Generate(cfg Config) error {
	switch b.state {
	case Disposed:
		return lifecycle("generate", ErrDisposed)
	case Generated, Updated:
		return lifecycle("generate", ErrAlreadyGenerated)
	}
	b.cfg = cfg.Clone()
	b.cfg.Archetype = b.archetype
	if b.cfg.Params == nil {
		b.cfg.Params = Params{}
	}
	b.bindings = map[string]binding{}

	rng := core.NewSeededRandom(b.cfg.Seed)
	b.seedVec = SeedVector(rng)
	if err := b.build(rng); err != nil {
		b.rollback()
		return err
	}
	b.state = Generated
	b.log.Debug("planet generated", "seed", b.cfg.Seed, "shells", len(b.shells), "draws", rng.Counter()-float64(b.cfg.Seed))
	return nil
}

func (b *base) rollback() {
	for _, s := range b.shells {
		if err := b.collab.Release(s.Mesh, s.Material); err != nil {
			b.log.Warn("rollback release failed", "shell", s.Name, "err", err)
		}
	}
	b.shells = nil
	b.bindings = nil
}

// UpdateParams merges partial into the variant's config and writes the bound
// slots. Keys without a slot only change the config copy. It never draws
// randomness or reallocates.
func (b *base) UpdateParams(partial Params) error {
	if err := b.requireLive("update params"); err != nil {
		return err
	}
	if len(partial) == 0 {
		return nil
	}
	b.cfg.Params.Merge(partial)
	for key, v := range partial {
		bind, ok := b.bindings[key]
		if !ok {
			continue
		}
		t := b.shells[bind.shell].Table
		if cur, ok := t.Get(bind.slot); ok && cur.IsVector() != v.IsVector() {
			b.log.Debug("parameter kind mismatch", "key", key, "value", v.String())
			continue
		}
		t.Set(bind.slot, v)
	}
	if b.afterParams != nil {
		b.afterParams()
	}
	b.state = Updated
	return nil
}

// Update advances every shell to time: rotation is time*rotationSpeed scaled
// by the shell's spin, and tables with a time slot receive time.
func (b *base) Update(time float64) error {
	if err := b.requireLive("update"); err != nil {
		return err
	}
	speed := b.float(KeyRotationSpeed)
	for _, s := range b.shells {
		s.RotationY = time * speed * s.spin
		if s.Table.Has(shader.Time) {
			s.Table.Set(shader.Time, shader.Scalar(time))
		}
	}
	b.state = Updated
	return nil
}

// Dispose releases every shell exactly once.
func (b *base) Dispose() error {
	if b.state == Disposed {
		return lifecycle("dispose", ErrDisposed)
	}
	var errs []error
	for _, s := range b.shells {
		if err := b.collab.Release(s.Mesh, s.Material); err != nil {
			errs = append(errs, err)
		}
	}
	released := len(b.shells)
	b.shells = nil
	b.bindings = nil
	b.state = Disposed
	b.log.Debug("planet disposed", "seed", b.cfg.Seed, "shells", released)
	if len(errs) > 0 {
		return collaboratorFailure("dispose", errors.Join(errs...))
	}
	return nil
}

func (b *base) requireLive(op string) error {
	switch b.state {
	case Disposed:
		return lifecycle(op, ErrDisposed)
	case Unrealized:
		return lifecycle(op, ErrNotGenerated)
	}
	return nil
}

// attach allocates a shell and registers it.
func (b *base) attach(name string, radius float64, segments int, p shader.Program, t *shader.Table, opts render.MaterialOptions) (*Shell, error) {
	mesh, err := b.collab.RequestSphere(radius, segments)
	if err != nil {
		return nil, collaboratorFailure("request "+name+" sphere", err)
	}
	mat, err := b.collab.BindMaterial(p, t, opts)
	if err != nil {
		if rerr := b.collab.Release(mesh, 0); rerr != nil {
			b.log.Warn("orphan mesh release failed", "shell", name, "err", rerr)
		}
		return nil, collaboratorFailure("bind "+name+" material", err)
	}
	s := &Shell{Name: name, Mesh: mesh, Material: mat, Table: t, Visible: true, spin: 1}
	b.shells = append(b.shells, s)
	return s, nil
}

// bind routes each config key to the same-named slot on the last shell.
func (b *base) bind(keys ...string) {
	for _, k := range keys {
		b.bindAs(k, k)
	}
}

func (b *base) bindAs(key, slot string) {
	b.bindings[key] = binding{shell: len(b.shells) - 1, slot: slot}
}

// float reads a scalar parameter, falling back to the schema default.
func (b *base) float(key string) float64 {
	if v, ok := b.cfg.Params[key]; ok && !v.IsVector() {
		return v.Float()
	}
	if s, ok := Spec(b.archetype, key); ok {
		return s.Default
	}
	return 0
}

func (b *base) vector(key string) (mgl64.Vec3, bool) {
	v, ok := b.cfg.Params[key]
	if !ok || !v.IsVector() {
		return mgl64.Vec3{}, false
	}
	return v.Vec3(), true
}

// newTable declares the slots every surface program reads.
func (b *base) newTable() *shader.Table {
	t := shader.NewTable()
	t.Declare(shader.SunDirection, shader.Vector(shader.SunDir))
	t.Declare(shader.Seed, shader.Vector(b.seedVec))
	return t
}
