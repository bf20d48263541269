package app

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"planet-synth/internal/core"
	"planet-synth/internal/logging"
	"planet-synth/internal/noise"
	"planet-synth/internal/planet"
	"planet-synth/internal/render"
	"planet-synth/internal/shader"
)

// ReseedRange bounds the seeds Reseed picks: [0, ReseedRange).
const ReseedRange = 99999

// Session is the host controller: it remembers parameters per archetype,
// owns the active variant and forwards HUD edits to it. A Session is owned
// by one goroutine.
type Session struct {
	collab render.Collaborator
	noise  *noise.Field
	log    *slog.Logger

	archetype planet.Archetype
	seed      int64
	params    map[planet.Archetype]planet.Params
	time      float64

	reseed  *core.SeededRandom
	current planet.Variant
}

// NewSession seeds a session from d. Nothing is generated until Generate.
func NewSession(d planet.Defaults, c render.Collaborator, n *noise.Field, log *slog.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	if n == nil {
		n = noise.Default()
	}
	s := &Session{
		collab:    c,
		noise:     n,
		log:       log.With("component", "session"),
		archetype: d.Archetype(),
		seed:      d.Seed(),
		params:    map[planet.Archetype]planet.Params{},
		reseed:    core.NewSeededRandom(d.Seed()),
	}
	for _, a := range planet.Archetypes() {
		s.params[a] = d.Params(a)
	}
	return s
}

// Archetype returns the active archetype.
func (s *Session) Archetype() planet.Archetype { return s.archetype }

// Seed returns the active seed.
func (s *Session) Seed() int64 { return s.seed }

// Time returns the accumulated planet time in seconds.
func (s *Session) Time() float64 { return s.time }

// Variant returns the live variant, or nil before the first Generate.
func (s *Session) Variant() planet.Variant { return s.current }

// Noise returns the session's noise field.
func (s *Session) Noise() *noise.Field { return s.noise }

// Params returns a copy of the remembered parameters for a.
func (s *Session) Params(a planet.Archetype) planet.Params {
	return s.params[a].Clone()
}

// Generate disposes the current variant and builds a new one from the active
// archetype, seed and remembered parameters. Out-of-range parameters are
// logged and used as given.
func (s *Session) Generate() error {
	if s.current != nil {
		if err := s.current.Dispose(); err != nil {
			s.log.Warn("dispose previous planet", "err", err)
		}
		s.current = nil
	}
	cfg := planet.Config{Archetype: s.archetype, Seed: s.seed, Params: s.params[s.archetype].Clone()}
	if err := planet.Validate(cfg); err != nil {
		s.log.Warn("parameters outside documented ranges", "err", err)
	}
	v, err := planet.New(s.archetype, s.collab, s.noise, s.log)
	if err != nil {
		return err
	}
	if err := v.Generate(cfg); err != nil {
		return fmt.Errorf("generate %s seed %d: %w", s.archetype, s.seed, err)
	}
	s.current = v
	if err := v.Update(s.time); err != nil {
		return err
	}
	s.log.Info("generated", "archetype", s.archetype.String(), "seed", s.seed)
	return nil
}

// SwitchArchetype regenerates the planet as archetype a with the same seed.
func (s *Session) SwitchArchetype(a planet.Archetype) error {
	s.archetype = a
	return s.Generate()
}

// Reseed picks the next seed from the session's own generator and
// regenerates.
func (s *Session) Reseed() error {
	s.seed = int64(math.Floor(s.reseed.Draw() * ReseedRange))
	return s.Generate()
}

// SetSeed regenerates with an explicit seed.
func (s *Session) SetSeed(seed int64) error {
	s.seed = seed
	return s.Generate()
}

// SetParam records value for key on the active archetype and forwards it to
// the live variant. Rotation speed is shared by every archetype. It reports
// false for keys the active archetype does not declare.
func (s *Session) SetParam(key string, value shader.Value) bool {
	if key == planet.KeyRotationSpeed {
		for _, a := range planet.Archetypes() {
			s.params[a][key] = value
		}
	} else if _, ok := planet.Spec(s.archetype, key); ok || s.isOverride(key) {
		s.params[s.archetype][key] = value
	} else {
		return false
	}
	if s.current != nil && s.current.Archetype() == s.archetype {
		if err := s.current.UpdateParams(planet.Params{key: value}); err != nil {
			s.log.Warn("update params", "key", key, "err", err)
			return false
		}
	}
	return true
}

func (s *Session) isOverride(key string) bool {
	return s.archetype == planet.Barren && (key == planet.KeyRockColor || key == planet.KeyCraterColor)
}

// Tick advances planet time by dt seconds and updates the live variant.
func (s *Session) Tick(dt float64) error {
	s.time += dt
	if s.current == nil {
		return nil
	}
	return s.current.Update(s.time)
}

// Objects returns what should be drawn this frame.
func (s *Session) Objects() []render.Object {
	if s.current == nil {
		return nil
	}
	return s.current.Objects()
}

// Close disposes the live variant.
func (s *Session) Close() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Dispose()
	s.current = nil
	return err
}

// Title names the active planet for window titles and the HUD header.
func (s *Session) Title() string {
	name := s.archetype.String()
	return fmt.Sprintf("%s%s #%d", strings.ToUpper(name[:1]), name[1:], s.seed)
}

// ParameterControls exposes the active archetype's schema as HUD controls.
func (s *Session) ParameterControls() []core.ParameterControl {
	specs := planet.Schema(s.archetype)
	out := make([]core.ParameterControl, 0, len(specs))
	for _, spec := range specs {
		out = append(out, core.ParameterControl{
			Key:    spec.Key,
			Label:  spec.Label,
			Type:   core.ParamTypeFloat,
			Step:   spec.Step,
			Min:    spec.Min,
			Max:    spec.Max,
			HasMin: true,
			HasMax: true,
		})
	}
	return out
}

// SetFloatParameter implements core.FloatParameterSetter.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	return s.SetParam(key, shader.Scalar(value))
}

// Parameters reports the session and planet state for display.
func (s *Session) Parameters() core.ParameterSnapshot {
	info := core.ParameterGroup{
		Name: "Planet",
		Params: []core.Parameter{
			{Key: "archetype", Label: "Archetype", Type: core.ParamTypeText, Value: s.archetype.String()},
			{Key: "seed", Label: "Seed", Type: core.ParamTypeText, Value: strconv.FormatInt(s.seed, 10)},
			{Key: "time", Label: "Time", Type: core.ParamTypeText, Value: strconv.FormatFloat(s.time, 'f', 1, 64)},
		},
	}
	if s.current != nil {
		info.Params = append(info.Params,
			core.Parameter{Key: "state", Label: "State", Type: core.ParamTypeText, Value: s.current.State().String()},
			core.Parameter{Key: "seedVector", Label: "Seed vector", Type: core.ParamTypeVec3, Value: formatVec(s.current.SeedVector())},
		)
	}
	groups := []core.ParameterGroup{info}

	byGroup := map[string]int{}
	params := s.params[s.archetype]
	for _, spec := range planet.Schema(s.archetype) {
		idx, ok := byGroup[spec.Group]
		if !ok {
			idx = len(groups)
			byGroup[spec.Group] = idx
			groups = append(groups, core.ParameterGroup{Name: spec.Group})
		}
		v := spec.Default
		if pv, ok := params[spec.Key]; ok {
			v = pv.Float()
		}
		groups[idx].Params = append(groups[idx].Params, core.Parameter{
			Key:         spec.Key,
			Label:       spec.Label,
			Type:        core.ParamTypeFloat,
			Value:       strconv.FormatFloat(v, 'g', -1, 64),
			Description: fmt.Sprintf("%g to %g", spec.Min, spec.Max),
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

func formatVec(v [3]float64) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", v[0], v[1], v[2])
}
