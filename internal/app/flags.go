package app

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"planet-synth/internal/planet"
)

// Environment keys read by LoadEnv.
const (
	EnvSeed      = "PLANET_SEED"
	EnvArchetype = "PLANET_ARCHETYPE"
	EnvLogLevel  = "PLANET_LOG_LEVEL"
	EnvLogJSON   = "PLANET_LOG_JSON"
	EnvWorkers   = "PLANET_WORKERS"
)

// kvList collects repeatable key=value flags.
type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("want key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters for the application.
type Config struct {
	Archetype string
	Seed      int64
	Width     int
	Height    int
	Scale     int
	TPS       int
	Workers   int
	Noise     string
	LogLevel  string
	LogJSON   bool
	EnvFile   string
	Frames    int

	Sets kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := planet.DefaultDefaults()
	return &Config{
		Archetype: d.Archetype().String(),
		Seed:      d.Seed(),
		Width:     240,
		Height:    240,
		Scale:     3,
		TPS:       30,
		Noise:     "simplex",
		LogLevel:  "info",
		EnvFile:   ".env",
		Frames:    1,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Archetype, "archetype", c.Archetype, "planet archetype: barren, terrestrial or gas")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "planet seed")
	fs.IntVar(&c.Width, "width", c.Width, "render width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "render height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Workers, "workers", c.Workers, "shading goroutines (0 = one per CPU)")
	fs.StringVar(&c.Noise, "noise", c.Noise, "noise backend: simplex or perlin")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "emit JSON logs")
	fs.StringVar(&c.EnvFile, "env", c.EnvFile, "optional .env file with PLANET_* settings")
	fs.IntVar(&c.Frames, "frames", c.Frames, "frames to render in the terminal preview")
	fs.Var(&c.Sets, "set", "parameter override in key=value form, vec3 as key=x,y,z (repeatable)")
}

// Explicit returns the names of the flags that were set on the command line.
func Explicit(fs *flag.FlagSet) map[string]bool {
	out := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { out[f.Name] = true })
	return out
}

// LoadEnv applies PLANET_* settings from the process environment and from
// path, in that order of precedence, to every field whose flag was not set
// explicitly. A missing file is not an error.
func (c *Config) LoadEnv(path string, explicit map[string]bool) error {
	file := map[string]string{}
	if path != "" {
		vals, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", path, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	var errs []error
	if v, ok := lookup(EnvSeed); ok && !explicit["seed"] {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.Seed = parsed
		}
	}
	if v, ok := lookup(EnvArchetype); ok && !explicit["archetype"] {
		c.Archetype = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && !explicit["log-level"] {
		c.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogJSON); ok && !explicit["log-json"] {
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogJSON, err))
		} else {
			c.LogJSON = parsed
		}
	}
	if v, ok := lookup(EnvWorkers); ok && !explicit["workers"] {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvWorkers, err))
		} else {
			c.Workers = parsed
		}
	}
	return errors.Join(errs...)
}

// Overrides flattens seed, archetype and every -set pair into the string map
// planet.FromMap understands. Later -set pairs win.
func (c *Config) Overrides() map[string]string {
	out := map[string]string{
		"seed":      strconv.FormatInt(c.Seed, 10),
		"archetype": c.Archetype,
	}
	for _, kv := range c.Sets {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Defaults resolves the planet defaults described by c.
func (c *Config) Defaults() (planet.Defaults, error) {
	if _, err := planet.ParseArchetype(c.Archetype); err != nil {
		return planet.Defaults{}, err
	}
	return planet.FromMap(c.Overrides()), nil
}
