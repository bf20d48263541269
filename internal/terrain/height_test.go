package terrain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/core"
	"planet-synth/internal/crater"
	"planet-synth/internal/noise"
)

func barrenParams() Params {
	return Params{
		Seed:                 mgl64.Vec3{12.1, 47.9, 83.3},
		CraterLargeDensity:   3,
		CraterLargeDepth:     0.2,
		CraterMedDensity:     8,
		CraterMedDepth:       0.08,
		BaseBumpiness:        0.05,
		GrainStrength:        0.005,
		GrainFrequency:       40,
		DisplacementStrength: 0.05,
		NormalStrength:       3,
	}
}

func TestHeightComposesLayers(t *testing.T) {
	f := NewField(nil)
	prm := barrenParams()
	p := mgl64.Vec3{0.48, 0.6, 0.64}

	ps := p.Add(prm.Seed)
	want := noise.Default().FBM(ps)*prm.BaseBumpiness +
		crater.Height(ps, prm.CraterLargeDensity, 1)*prm.CraterLargeDepth +
		crater.Height(ps.Add(crater.MediumOffset), prm.CraterMedDensity, 1)*prm.CraterMedDepth +
		noise.Default().Snoise(p.Mul(prm.GrainFrequency).Add(prm.Seed))*prm.GrainStrength

	if got := f.Height(p, prm); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Height = %v, want %v", got, want)
	}
}

func TestZeroParamsFlat(t *testing.T) {
	f := NewField(nil)
	prm := Params{Seed: mgl64.Vec3{1, 2, 3}, CraterLargeDensity: 3, CraterMedDensity: 8, GrainFrequency: 40}
	for i := 0; i < 50; i++ {
		p := mgl64.Vec3{math.Cos(float64(i)), 0.1, math.Sin(float64(i))}.Normalize()
		if h := f.Height(p, prm); h != 0 {
			t.Fatalf("Height with zero strengths = %f", h)
		}
		s := f.Evaluate(p, p, prm)
		if s.Shadow != 1 {
			t.Fatalf("flat shadow = %f, want 1", s.Shadow)
		}
		if !s.PerturbedNormal.ApproxEqual(p) {
			t.Fatalf("flat perturbed normal %v != %v", s.PerturbedNormal, p)
		}
	}
}

func TestGradientMatchesForwardDifference(t *testing.T) {
	f := NewField(nil)
	prm := barrenParams()
	p := mgl64.Vec3{0.1, -0.3, 0.95}.Normalize()
	h := f.Height(p, prm)
	g := f.Gradient(p, h, prm)
	hx := f.Height(p.Add(mgl64.Vec3{Epsilon, 0, 0}), prm)
	if want := (hx - h) / Epsilon; math.Abs(g[0]-want) > 1e-9 {
		t.Fatalf("gradient x = %v, want %v", g[0], want)
	}
}

func TestShadowClamp(t *testing.T) {
	tests := []struct {
		gradient mgl64.Vec3
		want     float64
	}{
		{mgl64.Vec3{}, 1},
		{mgl64.Vec3{0.1, 0, 0}, 0.8},
		{mgl64.Vec3{5, 5, 5}, 0.5},
	}
	for _, tt := range tests {
		if got := Shadow(tt.gradient); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Shadow(%v) = %f, want %f", tt.gradient, got, tt.want)
		}
	}
}

func TestPerturbedNormalUnitLength(t *testing.T) {
	f := NewField(nil)
	prm := barrenParams()
	for i := 0; i < 100; i++ {
		a := float64(i) * 0.21
		p := mgl64.Vec3{math.Cos(a), math.Sin(a*0.7) * 0.5, math.Sin(a)}.Normalize()
		s := f.Evaluate(p, p, prm)
		if math.Abs(s.PerturbedNormal.Len()-1) > 1e-9 {
			t.Fatalf("perturbed normal length %f", s.PerturbedNormal.Len())
		}
		if s.Shadow < 0.5 || s.Shadow > 1 {
			t.Fatalf("shadow %f out of [0.5,1]", s.Shadow)
		}
	}
}

func TestDisplace(t *testing.T) {
	p := mgl64.Vec3{0, 1, 0}
	got := Displace(p, p, -0.4, 0.05)
	if !got.ApproxEqual(mgl64.Vec3{0, 0.98, 0}) {
		t.Fatalf("Displace = %v", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	f := NewField(nil)
	prm := barrenParams()
	p := mgl64.Vec3{0.6, 0.0, 0.8}
	a := f.Evaluate(p, p, prm)
	b := f.Evaluate(p, p, prm)
	if a != b {
		t.Fatalf("Evaluate not deterministic: %+v vs %+v", a, b)
	}
}

func TestSurveyFlatSurface(t *testing.T) {
	f := NewField(nil)
	grid := core.NewSphereGrid(12, 6)
	st := f.Survey(grid, Params{})
	if st.Samples != 72 {
		t.Fatalf("samples = %d", st.Samples)
	}
	if st.MinHeight != 0 || st.MaxHeight != 0 || st.LargeCoverage != 0 || st.Shadowed != 0 {
		t.Fatalf("flat survey = %+v", st)
	}
}

func TestSurveyCraterCoverageGrowsWithDepth(t *testing.T) {
	f := NewField(nil)
	prm := Params{
		Seed:               mgl64.Vec3{28.3, 32.8, 83.1},
		CraterLargeDensity: 3,
		CraterLargeDepth:   0.2,
		CraterMedDensity:   8,
		CraterMedDepth:     0.08,
	}
	st := f.Survey(core.NewSphereGrid(48, 24), prm)
	if st.LargeCoverage <= 0 || st.LargeCoverage >= 1 {
		t.Fatalf("large coverage = %v", st.LargeCoverage)
	}
	if st.MedCoverage <= 0 || st.MedCoverage >= 1 {
		t.Fatalf("medium coverage = %v", st.MedCoverage)
	}
	if st.MinHeight >= 0 {
		t.Fatalf("craters should dig below zero, min = %v", st.MinHeight)
	}
	if st.MeanSlope <= 0 {
		t.Fatalf("mean slope = %v", st.MeanSlope)
	}
}
