package planet

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"planet-synth/internal/shader"
)

// Parameter keys understood by the variants.
const (
	KeyRotationSpeed = "rotationSpeed"

	KeyWaterLevel        = "waterLevel"
	KeyAtmosphereDensity = "atmosphereDensity"
	KeyCloudDensity      = "cloudDensity"

	KeyCraterLargeDensity   = "craterLargeDensity"
	KeyCraterLargeDepth     = "craterLargeDepth"
	KeyCraterMedDensity     = "craterMedDensity"
	KeyCraterMedDepth       = "craterMedDepth"
	KeyBaseBumpiness        = "baseBumpiness"
	KeyGrainStrength        = "grainStrength"
	KeyGrainFrequency       = "grainFrequency"
	KeyDisplacementStrength = "displacementStrength"
	KeyNormalStrength       = "normalStrength"
	KeySurfaceGrit          = "surfaceGrit"
	KeyAmbientLight         = "ambientLight"

	// KeyRockColor and KeyCraterColor are optional vec3 overrides for Barren.
	KeyRockColor   = "rockColor"
	KeyCraterColor = "craterColor"
)

// Params maps parameter keys to scalar or vec3 values.
type Params map[string]shader.Value

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge overlays partial onto p in place.
func (p Params) Merge(partial Params) {
	for k, v := range partial {
		p[k] = v
	}
}

// Keys returns the keys in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Config is everything a variant needs to generate.
type Config struct {
	Archetype Archetype
	Seed      int64
	Params    Params
}

// Clone returns a deep copy so the caller's maps are never shared.
func (c Config) Clone() Config {
	c.Params = c.Params.Clone()
	return c
}

// ParamSpec documents one tunable: its range, slider step and default.
type ParamSpec struct {
	Key     string
	Label   string
	Group   string
	Default float64
	Min     float64
	Max     float64
	Step    float64
}

// Contains reports whether v lies within the documented range.
func (s ParamSpec) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

var sharedSchema = []ParamSpec{
	{Key: KeyRotationSpeed, Label: "Rotation speed", Group: "Motion", Default: 0.05, Min: 0, Max: 0.5, Step: 0.01},
}

var terrestrialSchema = []ParamSpec{
	{Key: KeyWaterLevel, Label: "Water level", Group: "Surface", Default: 0.0, Min: -1, Max: 1, Step: 0.01},
	{Key: KeyAtmosphereDensity, Label: "Atmosphere", Group: "Surface", Default: 0.6, Min: 0, Max: 2, Step: 0.05},
	{Key: KeyCloudDensity, Label: "Clouds", Group: "Surface", Default: 0.5, Min: 0, Max: 1, Step: 0.01},
}

var barrenSchema = []ParamSpec{
	{Key: KeyCraterLargeDensity, Label: "Large crater density", Group: "Craters", Default: 3.0, Min: 1, Max: 10, Step: 0.1},
	{Key: KeyCraterLargeDepth, Label: "Large crater depth", Group: "Craters", Default: 0.2, Min: 0, Max: 0.5, Step: 0.01},
	{Key: KeyCraterMedDensity, Label: "Medium crater density", Group: "Craters", Default: 8.0, Min: 2, Max: 20, Step: 0.5},
	{Key: KeyCraterMedDepth, Label: "Medium crater depth", Group: "Craters", Default: 0.08, Min: 0, Max: 0.2, Step: 0.005},
	{Key: KeyBaseBumpiness, Label: "Bumpiness", Group: "Terrain", Default: 0.05, Min: 0, Max: 0.2, Step: 0.005},
	{Key: KeyGrainStrength, Label: "Grain strength", Group: "Terrain", Default: 0.005, Min: 0, Max: 0.02, Step: 0.001},
	{Key: KeyGrainFrequency, Label: "Grain frequency", Group: "Terrain", Default: 40.0, Min: 10, Max: 100, Step: 1},
	{Key: KeyDisplacementStrength, Label: "Displacement", Group: "Terrain", Default: 0.05, Min: 0, Max: 0.15, Step: 0.005},
	{Key: KeyNormalStrength, Label: "Normal strength", Group: "Lighting", Default: 3.0, Min: 0.5, Max: 8, Step: 0.1},
	{Key: KeySurfaceGrit, Label: "Surface grit", Group: "Lighting", Default: 0.3, Min: 0, Max: 1, Step: 0.01},
	{Key: KeyAmbientLight, Label: "Ambient light", Group: "Lighting", Default: 0.03, Min: 0, Max: 0.2, Step: 0.005},
}

// Schema lists the scalar tunables of an archetype, shared ones first.
func Schema(a Archetype) []ParamSpec {
	out := append([]ParamSpec(nil), sharedSchema...)
	switch a {
	case Barren:
		out = append(out, barrenSchema...)
	case Terrestrial:
		out = append(out, terrestrialSchema...)
	}
	return out
}

// Spec looks up the schema entry for key within archetype a.
func Spec(a Archetype, key string) (ParamSpec, bool) {
	for _, s := range Schema(a) {
		if s.Key == key {
			return s, true
		}
	}
	return ParamSpec{}, false
}

func isOverride(a Archetype, key string) bool {
	return a == Barren && (key == KeyRockColor || key == KeyCraterColor)
}

// Validate checks cfg against the schema. It never modifies cfg; the variants
// accept out-of-range values as given, so callers decide what to do with the
// returned violations.
func Validate(cfg Config) error {
	var errs []error
	for _, key := range cfg.Params.Keys() {
		v := cfg.Params[key]
		if isOverride(cfg.Archetype, key) {
			if !v.IsVector() {
				errs = append(errs, &Error{Kind: KindConfigRangeViolation, Message: fmt.Sprintf("%s: want vec3, got %s", key, v)})
			}
			continue
		}
		spec, ok := Spec(cfg.Archetype, key)
		if !ok {
			errs = append(errs, &Error{Kind: KindUnknownParameter, Message: fmt.Sprintf("%s: not a %s parameter", key, cfg.Archetype)})
			continue
		}
		if v.IsVector() || !spec.Contains(v.Float()) {
			errs = append(errs, &Error{
				Kind:    KindConfigRangeViolation,
				Message: fmt.Sprintf("%s=%s outside [%g, %g]", key, v, spec.Min, spec.Max),
			})
		}
	}
	return errors.Join(errs...)
}

// Defaults is the immutable set of starting values a host seeds its session
// from. Methods return copies.
type Defaults struct {
	seed      int64
	archetype Archetype
	values    map[string]shader.Value
}

// DefaultDefaults returns the built-in defaults: seed 12345, a barren planet,
// and every schema default.
func DefaultDefaults() Defaults {
	d := Defaults{seed: 12345, archetype: Barren, values: map[string]shader.Value{}}
	for _, a := range Archetypes() {
		for _, s := range Schema(a) {
			d.values[s.Key] = shader.Scalar(s.Default)
		}
	}
	return d
}

// Seed returns the default seed.
func (d Defaults) Seed() int64 { return d.seed }

// Archetype returns the default archetype.
func (d Defaults) Archetype() Archetype { return d.archetype }

// Value returns the default for key.
func (d Defaults) Value(key string) (shader.Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Params returns the defaults that apply to archetype a, plus any override
// keys that were set for it.
func (d Defaults) Params(a Archetype) Params {
	out := Params{}
	for _, s := range Schema(a) {
		out[s.Key] = d.values[s.Key]
	}
	for k, v := range d.values {
		if isOverride(a, k) {
			out[k] = v
		}
	}
	return out
}

// Config builds a full configuration for archetype a and seed.
func (d Defaults) Config(a Archetype, seed int64) Config {
	return Config{Archetype: a, Seed: seed, Params: d.Params(a)}
}

// With returns a copy of d with key set to v.
func (d Defaults) With(key string, v shader.Value) Defaults {
	values := make(map[string]shader.Value, len(d.values)+1)
	for k, old := range d.values {
		values[k] = old
	}
	values[key] = v
	d.values = values
	return d
}

// FromMap populates defaults from a string map (flag-style key/value pairs).
// "seed" and "archetype" are recognised; every other key is parsed with
// ParseValue. Unparseable entries keep the built-in default.
func FromMap(cfg map[string]string) Defaults {
	d := DefaultDefaults()
	if cfg == nil {
		return d
	}
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw := cfg[k]
		switch k {
		case "seed":
			if parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
				d.seed = parsed
			}
		case "archetype":
			if parsed, err := ParseArchetype(raw); err == nil {
				d.archetype = parsed
			}
		default:
			if v, err := ParseValue(raw); err == nil {
				d = d.With(k, v)
			}
		}
	}
	return d
}

// ParseValue parses "0.5" as a scalar and "0.7,0.6,0.6" as a vec3.
func ParseValue(s string) (shader.Value, error) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return shader.Value{}, fmt.Errorf("parse scalar %q: %w", s, err)
		}
		return shader.Scalar(f), nil
	case 3:
		var xyz [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return shader.Value{}, fmt.Errorf("parse vec3 %q: %w", s, err)
			}
			xyz[i] = f
		}
		return shader.Vec(xyz[0], xyz[1], xyz[2]), nil
	}
	return shader.Value{}, fmt.Errorf("parse value %q: want 1 or 3 components", s)
}
