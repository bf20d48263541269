package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"planet-synth/internal/planet"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func allEnv(t *testing.T) {
	unsetEnv(t, EnvSeed, EnvArchetype, EnvLogLevel, EnvLogJSON, EnvWorkers)
}

func TestBindAndOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("planet", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-seed", "7", "-archetype", "gas", "-set", "rotationSpeed=0.3", "-set", "rockColor=0.5,0.5,0.5"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d, err := cfg.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if d.Seed() != 7 || d.Archetype() != planet.Gas {
		t.Fatalf("seed %d archetype %s", d.Seed(), d.Archetype())
	}
	if v, _ := d.Value(planet.KeyRotationSpeed); v.Float() != 0.3 {
		t.Fatalf("rotationSpeed = %v", v)
	}
	if v, _ := d.Value(planet.KeyRockColor); !v.IsVector() {
		t.Fatalf("rockColor = %v", v)
	}
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatalf("malformed -set accepted")
	}
}

func TestDefaultsRejectsUnknownArchetype(t *testing.T) {
	cfg := NewConfig()
	cfg.Archetype = "ringworld"
	if _, err := cfg.Defaults(); err == nil {
		t.Fatalf("unknown archetype accepted")
	}
}

func TestLoadEnvFilePrecedence(t *testing.T) {
	allEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	body := "PLANET_SEED=99\nPLANET_ARCHETYPE=terrestrial\nPLANET_LOG_JSON=true\nPLANET_WORKERS=3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvWorkers, "5")

	cfg := NewConfig()
	fs := flag.NewFlagSet("planet", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-archetype", "gas"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.LoadEnv(path, Explicit(fs)); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want file value 99", cfg.Seed)
	}
	if cfg.Archetype != "gas" {
		t.Errorf("archetype = %q, explicit flag should win", cfg.Archetype)
	}
	if !cfg.LogJSON {
		t.Errorf("log json not applied")
	}
	if cfg.Workers != 5 {
		t.Errorf("workers = %d, process env should beat file", cfg.Workers)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	allEnv(t)
	cfg := NewConfig()
	if err := cfg.LoadEnv(filepath.Join(t.TempDir(), "absent.env"), nil); err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Seed != 12345 {
		t.Fatalf("seed changed to %d", cfg.Seed)
	}
}

func TestLoadEnvBadValues(t *testing.T) {
	allEnv(t)
	t.Setenv(EnvSeed, "twelve")
	t.Setenv(EnvLogLevel, "debug")
	cfg := NewConfig()
	if err := cfg.LoadEnv("", nil); err == nil {
		t.Fatalf("bad seed accepted")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("valid keys should still apply, log level = %q", cfg.LogLevel)
	}
}
