package biome

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/noise"
)

func TestOceanBeatsIce(t *testing.T) {
	pal := NewPalette(false)
	got := Classify(Inputs{Height: -0.1, Temperature: 0.05, Moisture: 0}, 0.0, pal)
	if got.Kind != Ocean {
		t.Fatalf("kind = %s, want ocean", got.Kind)
	}
	if got.Specular != SpecularOcean {
		t.Fatalf("specular = %f, want %f", got.Specular, SpecularOcean)
	}
	want := mix(pal.Water, pal.OceanDeep, 0.2)
	if !got.Color.ApproxEqual(want) {
		t.Fatalf("color = %v, want %v", got.Color, want)
	}
}

func TestCascadeOrder(t *testing.T) {
	pal := NewPalette(false)
	tests := []struct {
		name string
		in   Inputs
		want Kind
	}{
		{"deep ocean", Inputs{Height: -0.9, Temperature: 0.9}, Ocean},
		{"shore ignores cold", Inputs{Height: 0.02, Temperature: 0.01}, Shore},
		{"ice", Inputs{Height: 0.3, Temperature: 0.1, Moisture: 1}, Ice},
		{"tundra", Inputs{Height: 0.3, Temperature: 0.2, Moisture: 1}, Tundra},
		{"desert", Inputs{Height: 0.3, Temperature: 0.7, Moisture: -0.5}, Desert},
		{"vegetation", Inputs{Height: 0.3, Temperature: 0.7, Moisture: 0.5}, Vegetation},
		{"rock", Inputs{Height: 0.7, Temperature: 0.7, Moisture: 0.5}, Rock},
		{"snowcap", Inputs{Height: 0.9, Temperature: 0.7, Moisture: 0.5}, Snowcap},
		{"warm peak stays rock", Inputs{Height: 0.9, Temperature: 0.85, Moisture: 0.5}, Rock},
		{"dry peak is desert", Inputs{Height: 0.9, Temperature: 0.7, Moisture: -0.5}, Desert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in, 0, pal); got.Kind != tt.want {
				t.Fatalf("kind = %s, want %s", got.Kind, tt.want)
			}
		})
	}
}

func TestBandColors(t *testing.T) {
	pal := NewPalette(true)
	shore := Classify(Inputs{Height: 0.01}, 0, pal)
	if shore.Color != pal.Desert || shore.Specular != SpecularShore {
		t.Fatalf("shore = %+v", shore)
	}
	tundra := Classify(Inputs{Height: 0.3, Temperature: 0.2}, 0, pal)
	if !tundra.Color.ApproxEqual(pal.Land.Mul(0.5).Add(mgl64.Vec3{0.25, 0.25, 0.25})) {
		t.Fatalf("tundra color = %v", tundra.Color)
	}
	snow := Classify(Inputs{Height: 0.9, Temperature: 0.5, Moisture: 0.5}, 0, pal)
	if snow.Color != pal.Ice {
		t.Fatalf("snowcap color = %v, want ice", snow.Color)
	}
}

func TestWaterLevelShiftsCoastline(t *testing.T) {
	pal := NewPalette(false)
	in := Inputs{Height: 0.1, Temperature: 0.7, Moisture: 0.5}
	if Classify(in, 0.0, pal).Kind == Ocean {
		t.Fatal("height above water classified as ocean")
	}
	if Classify(in, 0.2, pal).Kind != Ocean {
		t.Fatal("raising the water level should flood the sample")
	}
}

func TestPalettes(t *testing.T) {
	earth := NewPalette(false)
	alien := NewPalette(true)
	if earth.Water == alien.Water || earth.Land == alien.Land {
		t.Fatal("alien palette should differ")
	}
	if !earth.OceanDeep.ApproxEqual(earth.Water.Mul(0.5)) {
		t.Fatalf("deep ocean = %v", earth.OceanDeep)
	}
	if IsAlien(0.8) || !IsAlien(0.81) {
		t.Fatal("alien threshold should be draw > 0.8")
	}
}

func TestClassifierDeterministic(t *testing.T) {
	c := Classifier{Seed: mgl64.Vec3{55.2, 3.4, 90.1}, Palette: NewPalette(false)}
	for i := 0; i < 100; i++ {
		a := float64(i) * 0.31
		p := mgl64.Vec3{math.Cos(a), math.Sin(a * 1.3), math.Sin(a)}.Normalize()
		if c.At(p) != c.At(p) {
			t.Fatalf("classification not deterministic at %v", p)
		}
	}
}

func TestTemperatureFollowsLatitude(t *testing.T) {
	c := Classifier{Seed: mgl64.Vec3{1, 2, 3}, Palette: NewPalette(false)}
	equator := Sample(noise.Default(), mgl64.Vec3{1, 0, 0}, c.Seed)
	pole := Sample(noise.Default(), mgl64.Vec3{0, 1, 0}, c.Seed)
	if equator.Temperature <= pole.Temperature {
		t.Fatalf("equator %f should be warmer than pole %f", equator.Temperature, pole.Temperature)
	}
}
